package diffx

import (
	"errors"
	"reflect"
	"testing"
)

func TestWalk_VisitsDepthFirstSorted(t *testing.T) {
	doc := mustParse(t, sampleInput())
	var paths []string
	err := Walk(doc, func(path string, s *Section) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"document",
		"document/files",
		"document/files/file-a",
		"document/files/file-b",
		"document/meta",
		"document/trailer",
	}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("paths = %v", paths)
	}
}

func TestWalk_SkipChildren(t *testing.T) {
	doc := mustParse(t, sampleInput())
	var paths []string
	err := Walk(doc, func(path string, s *Section) error {
		paths = append(paths, path)
		if path == "document/files" {
			return SkipChildren
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range paths {
		if p == "document/files/file-a" || p == "document/files/file-b" {
			t.Fatalf("walked into skipped subtree: %v", paths)
		}
	}
}

func TestWalk_ErrorStops(t *testing.T) {
	doc := mustParse(t, sampleInput())
	boom := errors.New("boom")
	count := 0
	err := Walk(doc, func(path string, s *Section) error {
		count++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d", count)
	}
}

func TestWalk_NilDocument(t *testing.T) {
	if err := Walk(nil, func(string, *Section) error { return errors.New("called") }); err != nil {
		t.Fatal(err)
	}
}
