package diffx

import "fmt"

// Option keys with parsing semantics. All other option keys are preserved
// verbatim and carry no meaning to the decoder.
const (
	OptionEncoding      = "encoding"
	OptionContentLength = "content-length"
)

// Encoding option values as they appear on the wire.
const (
	encodingNameUTF8   = "utf-8"
	encodingNameBinary = "binary"
)

// Encoding is the text encoding of a section's payload. A section without
// an explicit encoding option inherits its parent's resolved encoding; the
// document root defaults to EncodingBinary.
type Encoding uint8

const (
	EncodingBinary Encoding = iota
	EncodingUTF8
)

func (e Encoding) String() string {
	switch e {
	case EncodingBinary:
		return encodingNameBinary
	case EncodingUTF8:
		return encodingNameUTF8
	default:
		return fmt.Sprintf("Encoding(%d)", uint8(e))
	}
}

// ParseEncoding maps an encoding option value to an Encoding. Only the two
// wire names are accepted.
func ParseEncoding(s string) (Encoding, bool) {
	switch s {
	case encodingNameUTF8:
		return EncodingUTF8, true
	case encodingNameBinary:
		return EncodingBinary, true
	default:
		return 0, false
	}
}

// Content is the payload of a parsed section: exactly one of
// [ChildSections], [EncodedData], or [RawData]. Every parsed section has a
// content value; a content-length of zero yields empty EncodedData or
// RawData, never an empty ChildSections.
type Content interface {
	isContent()
}

// ChildSections holds a section's nested sections, keyed by title. A later
// sibling with a duplicate title overwrites the earlier one.
type ChildSections map[string]*Section

// EncodedData is a UTF-8 text payload of a utf-8 encoded section.
type EncodedData string

// RawData is the verbatim payload of a binary encoded section.
type RawData []byte

func (ChildSections) isContent() {}
func (EncodedData) isContent()   {}
func (RawData) isContent()       {}

// Section is one node of a parsed document tree.
//
// Encoding is always resolved: either the section's own encoding option or
// the parent's resolved encoding. Options holds the header's raw key/value
// pairs verbatim, including encoding and content-length when present.
type Section struct {
	Encoding Encoding
	Options  map[string]string
	Content  Content
}

// Document is a parsed DiffX document: the root section and its title.
type Document struct {
	Title string
	Root  *Section
}

// sectionHeader is the transient result of parsing one header line. It is
// consumed immediately by the section parser and never retained.
type sectionHeader struct {
	depth   int
	title   string
	options map[string]string
	// valueOffsets records the input offset of each option's value,
	// last-wins like the options themselves, so semantic failures
	// (unknown encoding, bad content-length) anchor at the value.
	valueOffsets map[string]int
}
