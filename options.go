package diffx

type readConfig struct {
	limits         Limits
	strictTrailing bool
	compression    Compression
	compressionSet bool
}

func newReadConfig(opts []ReadOption) readConfig {
	cfg := readConfig{limits: DefaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	return cfg
}

type ReadOption func(*readConfig)

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

// WithStrictTrailing makes Parse and Decode reject input that continues
// past the root section with anything other than spaces and newlines.
func WithStrictTrailing(v bool) ReadOption {
	return func(c *readConfig) { c.strictTrailing = v }
}

// WithReadCompression pins the transport compression instead of detecting
// it from magic bytes. Required for brotli, which has no magic; CompNone
// disables detection entirely.
func WithReadCompression(comp Compression) ReadOption {
	return func(c *readConfig) { c.compression = comp; c.compressionSet = true }
}

type writeConfig struct {
	limits      Limits
	compression Compression
}

type WriteOption func(*writeConfig)

func WithWriteLimits(l Limits) WriteOption {
	return func(c *writeConfig) { c.limits = l }
}

// WithCompression selects the transport compression Encode applies to its
// output. The default is CompNone: DiffX is a text format and is usually
// stored uncompressed.
func WithCompression(comp Compression) WriteOption {
	return func(c *writeConfig) { c.compression = comp }
}
