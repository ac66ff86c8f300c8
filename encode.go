package diffx

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Encode writes doc to w in the DiffX text format.
//
// The document is validated before writing; Encode returns ErrValidation
// when titles or options stray outside their alphabets, when a content
// variant disagrees with its section's encoding, or when an explicit
// content-length or encoding option contradicts the actual content.
//
// Encode emits options in sorted key order and child sections in sorted
// title order, so output is deterministic. A section whose encoding
// differs from its parent's gets an encoding option injected if the
// section does not already carry one, and data sections always get an
// accurate content-length, so Encode output re-parses to a structurally
// equal document.
//
// Use WithCompression to wrap the output in gzip, zstd, lz4, or brotli
// transport compression.
func Encode(w io.Writer, doc *Document, opts ...WriteOption) error {
	cfg := writeConfig{limits: DefaultLimits(), compression: CompNone}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	if err := validateDocument(doc, cfg.limits); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := encodeSection(&buf, doc.Title, doc.Root, 0, EncodingBinary); err != nil {
		return err
	}
	out, err := compress(cfg.compression, buf.Bytes())
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func encodeSection(buf *bytes.Buffer, title string, s *Section, depth int, inherited Encoding) error {
	buf.WriteByte('#')
	for i := 0; i < depth; i++ {
		buf.WriteByte('.')
	}
	buf.WriteString(title)
	buf.WriteByte(':')

	options := effectiveOptions(s, inherited)
	if len(options) > 0 {
		keys := make([]string, 0, len(options))
		for k := range options {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte(' ')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(k)
			buf.WriteByte('=')
			buf.WriteString(options[k])
		}
	}
	buf.WriteByte('\n')

	switch content := s.Content.(type) {
	case EncodedData:
		buf.WriteString(string(content))
		buf.WriteByte('\n')
	case RawData:
		buf.Write(content)
		buf.WriteByte('\n')
	case ChildSections:
		titles := make([]string, 0, len(content))
		for t := range content {
			titles = append(titles, t)
		}
		sort.Strings(titles)
		for _, t := range titles {
			if err := encodeSection(buf, t, content[t], depth+1, s.Encoding); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: section %q has no content", ErrValidation, title)
	}
	return nil
}

// effectiveOptions derives the option set a section's header must carry:
// the raw options plus an accurate content-length for data sections and an
// encoding option wherever inheritance alone would not reproduce the
// section's encoding.
func effectiveOptions(s *Section, inherited Encoding) map[string]string {
	options := make(map[string]string, len(s.Options)+2)
	for k, v := range s.Options {
		options[k] = v
	}
	switch content := s.Content.(type) {
	case EncodedData:
		options[OptionContentLength] = strconv.Itoa(len(content))
	case RawData:
		options[OptionContentLength] = strconv.Itoa(len(content))
	}
	if s.Encoding != inherited {
		if _, ok := options[OptionEncoding]; !ok {
			options[OptionEncoding] = s.Encoding.String()
		}
	}
	return options
}
