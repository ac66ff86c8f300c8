package diffx

// Limits bounds resource usage while decoding. A zero value for any field
// means "use the default"; see DefaultLimits.
type Limits struct {
	MaxInputLen         uint64 // raw input bytes as read from the source
	MaxUncompressedLen  uint64 // bytes after transport decompression
	MaxContentLength    uint64 // single section payload bytes
	MaxDepth            int    // section nesting depth
	MaxSections         int    // total sections in one document
	MaxOptionsPerHeader int    // distinct option keys in one header
}

// DefaultLimits returns the limits applied when none are supplied.
func DefaultLimits() Limits {
	return Limits{
		MaxInputLen:         1 << 30,   // 1 GiB
		MaxUncompressedLen:  1 << 30,   // 1 GiB
		MaxContentLength:    512 << 20, // 512 MiB
		MaxDepth:            64,
		MaxSections:         100_000,
		MaxOptionsPerHeader: 64,
	}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxInputLen == 0 {
		l.MaxInputLen = d.MaxInputLen
	}
	if l.MaxUncompressedLen == 0 {
		l.MaxUncompressedLen = d.MaxUncompressedLen
	}
	if l.MaxContentLength == 0 {
		l.MaxContentLength = d.MaxContentLength
	}
	if l.MaxDepth == 0 {
		l.MaxDepth = d.MaxDepth
	}
	if l.MaxSections == 0 {
		l.MaxSections = d.MaxSections
	}
	if l.MaxOptionsPerHeader == 0 {
		l.MaxOptionsPerHeader = d.MaxOptionsPerHeader
	}
	return l
}
