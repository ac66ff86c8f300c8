package diffx

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyToken           = errors.New("diffx: empty token")
	ErrMissingSeparator     = errors.New("diffx: missing separator")
	ErrDepthMismatch        = errors.New("diffx: header depth mismatch")
	ErrUnknownEncoding      = errors.New("diffx: unknown encoding")
	ErrInvalidContentLength = errors.New("diffx: invalid content-length")
	ErrInvalidUTF8          = errors.New("diffx: payload is not valid UTF-8")
	ErrMissingContent       = errors.New("diffx: section has no content")
	ErrTrailingInput        = errors.New("diffx: unexpected trailing input")
	ErrUnexpectedEOF        = errors.New("diffx: unexpected end of input")
	ErrLimitExceeded        = errors.New("diffx: limit exceeded")
	ErrValidation           = errors.New("diffx: validation failed")
)

// ParseError anchors a parse failure to the byte offset in the input at
// which it was detected. It wraps one of the package sentinel errors, so
// errors.Is works against the sentinels.
type ParseError struct {
	Offset int    // byte offset into the input buffer
	Err    error  // sentinel error kind
	Detail string // optional context, e.g. the offending value
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v: %s (offset %d)", e.Err, e.Detail, e.Offset)
	}
	return fmt.Sprintf("%v (offset %d)", e.Err, e.Offset)
}

func (e *ParseError) Unwrap() error { return e.Err }

// parseErr builds an offset-anchored error wrapping the given sentinel.
func parseErr(offset int, kind error, format string, args ...any) error {
	detail := format
	if len(args) > 0 {
		detail = fmt.Sprintf(format, args...)
	}
	return &ParseError{Offset: offset, Err: kind, Detail: detail}
}
