package diffx

import (
	"errors"
	"testing"
)

func TestScanner_TakeWhile1(t *testing.T) {
	s := &scanner{buf: []byte("abc=def")}
	run, err := s.takeWhile1(isOptionByte)
	if err != nil || string(run) != "abc" {
		t.Fatalf("run = %q, err = %v", run, err)
	}
	if s.pos != 3 {
		t.Fatalf("pos = %d", s.pos)
	}
	// '=' is outside the alphabet: zero-length run fails in place.
	_, err = s.takeWhile1(isOptionByte)
	if !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
	if s.pos != 3 {
		t.Fatalf("failed takeWhile1 moved pos to %d", s.pos)
	}
}

func TestScanner_ExpectDoesNotConsumeOnFailure(t *testing.T) {
	s := &scanner{buf: []byte("ab")}
	if err := s.expect('x'); !errors.Is(err, ErrMissingSeparator) {
		t.Fatalf("expected ErrMissingSeparator, got %v", err)
	}
	if s.pos != 0 {
		t.Fatalf("failed expect moved pos to %d", s.pos)
	}
	if err := s.expect('a'); err != nil {
		t.Fatal(err)
	}
	if s.pos != 1 {
		t.Fatalf("pos = %d", s.pos)
	}
}

func TestScanner_Take(t *testing.T) {
	s := &scanner{buf: []byte("abcdef")}
	b, err := s.take(4)
	if err != nil || string(b) != "abcd" {
		t.Fatalf("take = %q, err = %v", b, err)
	}
	_, err = s.take(3)
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Offset != 4 {
		t.Fatalf("offset anchor wrong: %v", err)
	}
}

func TestScanner_Alphabets(t *testing.T) {
	for _, b := range []byte("azAZ09-_.") {
		if !isOptionByte(b) {
			t.Fatalf("isOptionByte(%q) = false", b)
		}
	}
	for _, b := range []byte("=,: \n#\x00\xff") {
		if isOptionByte(b) {
			t.Fatalf("isOptionByte(%q) = true", b)
		}
	}
	for _, b := range []byte("azAZ-") {
		if !isTitleByte(b) {
			t.Fatalf("isTitleByte(%q) = false", b)
		}
	}
	for _, b := range []byte("09_.=:") {
		if isTitleByte(b) {
			t.Fatalf("isTitleByte(%q) = true", b)
		}
	}
}
