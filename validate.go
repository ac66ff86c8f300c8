package diffx

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// validateDocument checks that doc can be represented in the DiffX grammar
// and respects limits. It walks the whole tree; Encode calls it before
// writing anything.
func validateDocument(doc *Document, limits Limits) error {
	if doc == nil || doc.Root == nil {
		return fmt.Errorf("%w: document is nil", ErrValidation)
	}
	v := &validator{limits: limits}
	return v.section(doc.Title, doc.Root, 0)
}

type validator struct {
	limits   Limits
	sections int
}

func (v *validator) section(title string, s *Section, depth int) error {
	v.sections++
	if v.sections > v.limits.MaxSections {
		return fmt.Errorf("%w: more than %d sections", ErrLimitExceeded, v.limits.MaxSections)
	}
	if depth > v.limits.MaxDepth {
		return fmt.Errorf("%w: section %q nested deeper than %d", ErrLimitExceeded, title, v.limits.MaxDepth)
	}
	if err := validateTitle(title); err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: section %q is nil", ErrValidation, title)
	}
	if len(s.Options) > v.limits.MaxOptionsPerHeader {
		return fmt.Errorf("%w: section %q has more than %d options", ErrLimitExceeded, title, v.limits.MaxOptionsPerHeader)
	}
	for k, val := range s.Options {
		if !isOptionToken(k) || !isOptionToken(val) {
			return fmt.Errorf("%w: section %q option %q=%q outside option alphabet", ErrValidation, title, k, val)
		}
	}
	if name, ok := s.Options[OptionEncoding]; ok {
		enc, known := ParseEncoding(name)
		if !known {
			return fmt.Errorf("%w: section %q encoding option %q", ErrValidation, title, name)
		}
		if enc != s.Encoding {
			return fmt.Errorf("%w: section %q encoding option %q disagrees with resolved encoding %s", ErrValidation, title, name, s.Encoding)
		}
	}

	switch content := s.Content.(type) {
	case EncodedData:
		if s.Encoding != EncodingUTF8 {
			return fmt.Errorf("%w: section %q has text content but %s encoding", ErrValidation, title, s.Encoding)
		}
		if !utf8.ValidString(string(content)) {
			return fmt.Errorf("%w: section %q text content is not valid UTF-8", ErrValidation, title)
		}
		return v.dataLength(title, s, len(content))
	case RawData:
		if s.Encoding != EncodingBinary {
			return fmt.Errorf("%w: section %q has raw content but %s encoding", ErrValidation, title, s.Encoding)
		}
		return v.dataLength(title, s, len(content))
	case ChildSections:
		if len(content) == 0 {
			return fmt.Errorf("%w: section %q has no children", ErrValidation, title)
		}
		if _, ok := s.Options[OptionContentLength]; ok {
			return fmt.Errorf("%w: section %q declares content-length but holds child sections", ErrValidation, title)
		}
		for childTitle, child := range content {
			if err := v.section(childTitle, child, depth+1); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: section %q has no content", ErrValidation, title)
	}
}

func (v *validator) dataLength(title string, s *Section, n int) error {
	if uint64(n) > v.limits.MaxContentLength {
		return fmt.Errorf("%w: section %q payload of %d bytes exceeds %d", ErrLimitExceeded, title, n, v.limits.MaxContentLength)
	}
	if raw, ok := s.Options[OptionContentLength]; ok {
		declared, err := strconv.ParseUint(raw, 10, 63)
		if err != nil || declared != uint64(n) {
			return fmt.Errorf("%w: section %q content-length option %q disagrees with %d payload bytes", ErrValidation, title, raw, n)
		}
	}
	return nil
}

func validateTitle(title string) error {
	for i := 0; i < len(title); i++ {
		if !isTitleByte(title[i]) {
			return fmt.Errorf("%w: title %q outside title alphabet", ErrValidation, title)
		}
	}
	return nil
}

func isOptionToken(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isOptionByte(s[i]) {
			return false
		}
	}
	return true
}
