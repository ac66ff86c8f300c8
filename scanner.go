package diffx

// scanner provides the byte-level primitives the grammar is built from:
// predicate runs, literal bytes, and exact-length slices. Primitives either
// consume on success or leave the position untouched on failure, which is
// what lets the section parser distinguish a committed failure from "the
// next bytes don't start a header".
type scanner struct {
	buf []byte
	pos int
}

func isOptionByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_' || b == '.':
		return true
	}
	return false
}

func isTitleByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '-'
}

func (s *scanner) eof() bool { return s.pos >= len(s.buf) }

// peek returns the byte at the current position without consuming it.
func (s *scanner) peek() (byte, bool) {
	if s.eof() {
		return 0, false
	}
	return s.buf[s.pos], true
}

// expect consumes the byte b or fails in place with ErrMissingSeparator.
func (s *scanner) expect(b byte) error {
	if c, ok := s.peek(); !ok || c != b {
		return parseErr(s.pos, ErrMissingSeparator, "expected %q", string(b))
	}
	s.pos++
	return nil
}

// takeWhile consumes the maximal (possibly empty) run of bytes matching
// pred and returns it as a subslice of the input.
func (s *scanner) takeWhile(pred func(byte) bool) []byte {
	start := s.pos
	for s.pos < len(s.buf) && pred(s.buf[s.pos]) {
		s.pos++
	}
	return s.buf[start:s.pos]
}

// takeWhile1 is takeWhile requiring at least one byte; it fails in place
// with ErrEmptyToken on a zero-length run.
func (s *scanner) takeWhile1(pred func(byte) bool) ([]byte, error) {
	run := s.takeWhile(pred)
	if len(run) == 0 {
		return nil, parseErr(s.pos, ErrEmptyToken, "")
	}
	return run, nil
}

// take consumes exactly n bytes, failing in place with ErrUnexpectedEOF if
// fewer remain.
func (s *scanner) take(n int) ([]byte, error) {
	if len(s.buf)-s.pos < n {
		return nil, parseErr(s.pos, ErrUnexpectedEOF, "need %d bytes, have %d", n, len(s.buf)-s.pos)
	}
	out := s.buf[s.pos : s.pos+n]
	s.pos += n
	return out, nil
}

// skipSpaces consumes a run of space bytes and reports whether any were
// consumed.
func (s *scanner) skipSpaces() bool {
	n := len(s.takeWhile(func(b byte) bool { return b == ' ' }))
	return n > 0
}
