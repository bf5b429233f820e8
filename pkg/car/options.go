// pkg/car/options.go
package car

const (
	// DefaultMaxHeaderBytes is the default cap on the header envelope record
	DefaultMaxHeaderBytes = 32 << 20 // 32 MiB

	// DefaultMaxBlockBytes is the default cap on a single block record
	DefaultMaxBlockBytes = 8 << 20 // 8 MiB
)

// Options configures the decode behavior
type Options struct {
	// MaxHeaderBytes caps the header envelope record length. A larger
	// length prefix fails before the allocation is made. 0 = default.
	MaxHeaderBytes uint64

	// MaxBlockBytes caps a single block record length. 0 = default.
	MaxBlockBytes uint64

	// Progress receives per-block progress events during decode (optional)
	Progress ProgressCallback
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() *Options {
	return &Options{
		MaxHeaderBytes: DefaultMaxHeaderBytes,
		MaxBlockBytes:  DefaultMaxBlockBytes,
	}
}

// Validate checks if options are valid and fills in defaults
func (o *Options) Validate() error {
	if o.MaxHeaderBytes == 0 {
		o.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if o.MaxBlockBytes == 0 {
		o.MaxBlockBytes = DefaultMaxBlockBytes
	}
	return nil
}
