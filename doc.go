// Package diffx implements a decoder and encoder for the DiffX structured
// document format.
//
// DiffX is a hierarchical, text-delimited container format. A document is a
// tree of sections; each section carries key/value options, a text encoding
// that is inherited from its parent unless overridden, and content that is
// either further nested sections or a length-delimited literal payload.
//
// # Format Overview
//
// Every section starts with a header line:
//
//	#<dots><title>: <options>\n
//
// The number of dots after the '#' is the section's nesting depth. Options
// are comma-separated key=value pairs. Two options have parsing semantics:
//   - encoding: "utf-8" or "binary"; when absent the parent's encoding
//     applies (the root defaults to binary).
//   - content-length: a non-negative byte count. When present, exactly that
//     many payload bytes follow the header, terminated by a newline. When
//     absent, the section's content is one or more child sections at the
//     next depth.
//
// All other options are preserved verbatim and ignored by the parser.
//
// # Basic Usage
//
// To parse an in-memory document:
//
//	doc, err := diffx.Parse(data)
//
// To read a document from a file, transparently decompressing gzip, zstd,
// or lz4 transport compression:
//
//	f, _ := os.Open("change.diffx")
//	defer f.Close()
//	doc, err := diffx.Decode(f)
//
// To write a document back out:
//
//	err := diffx.Encode(w, doc, diffx.WithCompression(diffx.CompZstd))
//
// # Errors
//
// Parse failures are reported first-failure-only as a *ParseError carrying
// the byte offset where the problem was detected and wrapping one of the
// package sentinel errors, so callers can match with errors.Is:
//
//	if errors.Is(err, diffx.ErrDepthMismatch) { ... }
//
// # Security Considerations
//
// The package enforces configurable [Limits] during decoding: input and
// decompressed sizes, nesting depth, section counts, payload lengths, and
// options per header are all bounded to prevent resource exhaustion from
// hostile inputs.
package diffx
