package diffx

import (
	"errors"
	"sort"
)

// SkipChildren can be returned from a WalkFunc to skip the children of the
// current section without stopping the walk.
var SkipChildren = errors.New("diffx: skip children")

// WalkFunc is called once per section during a Walk. path is the
// slash-joined chain of titles from the root.
type WalkFunc func(path string, s *Section) error

// Walk visits every section of doc depth-first, children in sorted title
// order. Any error other than [SkipChildren] stops the walk and is
// returned.
func Walk(doc *Document, fn WalkFunc) error {
	if doc == nil || doc.Root == nil {
		return nil
	}
	return walkSection(doc.Title, doc.Root, fn)
}

func walkSection(path string, s *Section, fn WalkFunc) error {
	err := fn(path, s)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	if err != nil {
		return err
	}
	children, ok := s.Content.(ChildSections)
	if !ok {
		return nil
	}
	titles := make([]string, 0, len(children))
	for t := range children {
		titles = append(titles, t)
	}
	sort.Strings(titles)
	for _, t := range titles {
		if err := walkSection(path+"/"+t, children[t], fn); err != nil {
			return err
		}
	}
	return nil
}
