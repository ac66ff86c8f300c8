package diffx

import (
	"io"
	"strconv"
	"unicode/utf8"
)

// parser threads the scanner, the active limits, and a running section
// count through one decode pass.
type parser struct {
	scanner
	limits   Limits
	sections int
}

// parseOptionToken reads one option key or value: the longest run of bytes
// from [a-zA-Z0-9._-], at least one byte. The alphabet is a strict ASCII
// subset, so the string conversion never needs UTF-8 validation.
func (p *parser) parseOptionToken() (string, error) {
	run, err := p.takeWhile1(isOptionByte)
	if err != nil {
		return "", err
	}
	return string(run), nil
}

// parseOption reads one key=value pair. valueOffset is the input offset of
// the value token, used to anchor semantic failures on known keys.
func (p *parser) parseOption() (key, value string, valueOffset int, err error) {
	if key, err = p.parseOptionToken(); err != nil {
		return "", "", 0, err
	}
	if err = p.expect('='); err != nil {
		return "", "", 0, err
	}
	valueOffset = p.pos
	if value, err = p.parseOptionToken(); err != nil {
		return "", "", 0, err
	}
	return key, value, valueOffset, nil
}

// parseOptionList reads one or more comma-separated options into a map.
// A duplicate key overwrites the earlier value. A comma commits the list
// to another option, so a trailing bare comma is an error.
func (p *parser) parseOptionList() (map[string]string, map[string]int, error) {
	options := make(map[string]string)
	offsets := make(map[string]int)
	for {
		key, value, valueOffset, err := p.parseOption()
		if err != nil {
			return nil, nil, err
		}
		options[key] = value
		offsets[key] = valueOffset
		if len(options) > p.limits.MaxOptionsPerHeader {
			return nil, nil, parseErr(p.pos, ErrLimitExceeded, "more than %d options in one header", p.limits.MaxOptionsPerHeader)
		}
		if c, ok := p.peek(); !ok || c != ',' {
			return options, offsets, nil
		}
		p.pos++
	}
}

// parseHeader reads one header line:
//
//	"#" "."{depth} title ":" [" "+ option_list] " "* "\n"
//
// The title may be empty at this layer. An option list is only attempted
// when at least one space follows the colon and the next byte can start an
// option; a colon followed by nothing but spaces and a newline yields empty
// options.
func (p *parser) parseHeader() (sectionHeader, error) {
	if err := p.expect('#'); err != nil {
		return sectionHeader{}, err
	}
	depth := len(p.takeWhile(func(b byte) bool { return b == '.' }))
	title := string(p.takeWhile(isTitleByte))
	if err := p.expect(':'); err != nil {
		return sectionHeader{}, err
	}
	h := sectionHeader{depth: depth, title: title}
	if p.skipSpaces() {
		if c, ok := p.peek(); ok && isOptionByte(c) {
			options, offsets, err := p.parseOptionList()
			if err != nil {
				return sectionHeader{}, err
			}
			h.options, h.valueOffsets = options, offsets
			p.skipSpaces()
		}
	}
	if err := p.expect('\n'); err != nil {
		return sectionHeader{}, err
	}
	return h, nil
}

// startsHeaderAtDepth reports, without consuming input, whether the next
// bytes begin a header whose dot count is exactly depth. The child loop
// uses this to stop cleanly at a sibling or ancestor boundary instead of
// committing to a header it cannot own.
func (p *parser) startsHeaderAtDepth(depth int) bool {
	i := p.pos
	if i >= len(p.buf) || p.buf[i] != '#' {
		return false
	}
	i++
	dots := 0
	for i < len(p.buf) && p.buf[i] == '.' {
		dots++
		i++
	}
	return dots == depth
}

// parseSection parses one section expected at the given depth, with the
// parent's resolved encoding.
//
// The header is committed input once read: a depth mismatch or any failure
// past the header is propagated, never silently retried. Encoding resolves
// to the section's own encoding option when present, otherwise to
// inherited. Content is either a content-length payload or one or more
// children at depth+1 inheriting the resolved encoding.
func (p *parser) parseSection(depth int, inherited Encoding) (string, *Section, error) {
	if depth > p.limits.MaxDepth {
		return "", nil, parseErr(p.pos, ErrLimitExceeded, "nesting deeper than %d", p.limits.MaxDepth)
	}
	p.sections++
	if p.sections > p.limits.MaxSections {
		return "", nil, parseErr(p.pos, ErrLimitExceeded, "more than %d sections", p.limits.MaxSections)
	}

	headerStart := p.pos
	h, err := p.parseHeader()
	if err != nil {
		return "", nil, err
	}
	if h.depth != depth {
		return "", nil, parseErr(headerStart+1, ErrDepthMismatch, "expected depth %d, header has depth %d", depth, h.depth)
	}

	encoding := inherited
	if name, ok := h.options[OptionEncoding]; ok {
		enc, ok := ParseEncoding(name)
		if !ok {
			return "", nil, parseErr(h.valueOffsets[OptionEncoding], ErrUnknownEncoding, "%q", name)
		}
		encoding = enc
	}

	sec := &Section{Encoding: encoding, Options: h.options}
	if raw, ok := h.options[OptionContentLength]; ok {
		content, err := p.parseLengthDelimited(raw, h.valueOffsets[OptionContentLength], encoding)
		if err != nil {
			return "", nil, err
		}
		sec.Content = content
		return h.title, sec, nil
	}

	contentStart := p.pos
	children := make(ChildSections)
	for p.startsHeaderAtDepth(depth + 1) {
		title, child, err := p.parseSection(depth+1, encoding)
		if err != nil {
			return "", nil, err
		}
		children[title] = child
	}
	if len(children) == 0 {
		return "", nil, parseErr(contentStart, ErrMissingContent, "need a content-length or at least one depth-%d child", depth+1)
	}
	sec.Content = children
	return h.title, sec, nil
}

// parseLengthDelimited consumes a content-length payload plus its trailing
// newline. raw is the unparsed option value and valueOffset its position,
// so a malformed length anchors at the value itself.
func (p *parser) parseLengthDelimited(raw string, valueOffset int, encoding Encoding) (Content, error) {
	n, err := strconv.ParseUint(raw, 10, 63)
	if err != nil {
		return nil, parseErr(valueOffset, ErrInvalidContentLength, "%q", raw)
	}
	if n > p.limits.MaxContentLength {
		return nil, parseErr(valueOffset, ErrLimitExceeded, "content-length %d exceeds %d", n, p.limits.MaxContentLength)
	}
	payloadStart := p.pos
	payload, err := p.take(int(n))
	if err != nil {
		return nil, err
	}
	if err := p.expect('\n'); err != nil {
		return nil, err
	}
	if encoding == EncodingUTF8 {
		if i, ok := firstInvalidUTF8(payload); ok {
			return nil, parseErr(payloadStart+i, ErrInvalidUTF8, "")
		}
		return EncodedData(payload), nil
	}
	return RawData(payload), nil
}

// firstInvalidUTF8 returns the index of the first byte at which b stops
// being valid UTF-8.
func firstInvalidUTF8(b []byte) (int, bool) {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i, true
		}
		i += size
	}
	return 0, false
}

// ParseSection parses a single section from data at the given expected
// depth and inherited encoding, returning its title, the section, and the
// unconsumed remainder. It is the low-level entry for callers that drive
// their own top level; most callers want [Parse] or [Decode].
func ParseSection(data []byte, depth int, inherited Encoding, opts ...ReadOption) (string, *Section, []byte, error) {
	cfg := newReadConfig(opts)
	p := &parser{scanner: scanner{buf: data}, limits: cfg.limits}
	title, sec, err := p.parseSection(depth, inherited)
	if err != nil {
		return "", nil, nil, err
	}
	return title, sec, data[p.pos:], nil
}

// Parse decodes a complete DiffX document from an in-memory buffer.
//
// The root section is parsed at depth 0 with an inherited encoding of
// binary. By default any bytes after the root section are ignored; with
// WithStrictTrailing, a remainder containing anything other than spaces
// and newlines fails with ErrTrailingInput.
//
// Returned payload values reference data; the buffer must not be modified
// while the document is in use.
func Parse(data []byte, opts ...ReadOption) (*Document, error) {
	return parseBuffer(data, newReadConfig(opts))
}

func parseBuffer(data []byte, cfg readConfig) (*Document, error) {
	if uint64(len(data)) > cfg.limits.MaxInputLen {
		return nil, parseErr(0, ErrLimitExceeded, "input of %d bytes exceeds %d", len(data), cfg.limits.MaxInputLen)
	}
	p := &parser{scanner: scanner{buf: data}, limits: cfg.limits}
	title, root, err := p.parseSection(0, EncodingBinary)
	if err != nil {
		return nil, err
	}
	if cfg.strictTrailing {
		p.takeWhile(func(b byte) bool { return b == ' ' || b == '\n' })
		if !p.eof() {
			return nil, parseErr(p.pos, ErrTrailingInput, "%d bytes after root section", len(data)-p.pos)
		}
	}
	return &Document{Title: title, Root: root}, nil
}

// Decode reads a complete DiffX document from r.
//
// The decoding process:
//  1. Reads the whole input, bounded by Limits.MaxInputLen
//  2. Detects transport compression by magic bytes (gzip, zstd, lz4) and
//     decompresses, bounded by Limits.MaxUncompressedLen
//  3. Parses the resulting buffer with [Parse] semantics
//
// Brotli streams carry no magic bytes; use WithReadCompression(CompBrotli)
// to decode them. WithReadCompression(CompNone) disables detection.
func Decode(r io.Reader, opts ...ReadOption) (*Document, error) {
	cfg := newReadConfig(opts)
	data, err := readAllLimited(r, cfg.limits.MaxInputLen)
	if err != nil {
		return nil, err
	}
	comp := cfg.compression
	if !cfg.compressionSet {
		comp = detectCompression(data)
	}
	if comp != CompNone {
		data, err = decompress(comp, data, cfg.limits.MaxUncompressedLen)
		if err != nil {
			return nil, err
		}
	}
	return parseBuffer(data, cfg)
}

func readAllLimited(r io.Reader, limit uint64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) > limit {
		return nil, parseErr(0, ErrLimitExceeded, "input exceeds %d bytes", limit)
	}
	return data, nil
}
