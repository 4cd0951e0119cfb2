package domain

// Default chunking option values, tuned for embedding-sized passages.
const (
	DefaultTargetChunkSize = 1000
	DefaultMinChunkSize    = 100
	DefaultMaxChunkSize    = 1500
	DefaultOverlapSize     = 200
)

// ChunkingOptions is the configuration surface of the chunking core.
// All sizes are in characters.
//
// Precondition: MinChunkSize <= MaxChunkSize. The core does not validate
// caller configuration; behaviour outside this precondition is undefined.
type ChunkingOptions struct {
	// TargetChunkSize is the preferred chunk length.
	TargetChunkSize int

	// MinChunkSize is the smallest chunk the core will emit, except for
	// the final trailing remainder of a document.
	MinChunkSize int

	// MaxChunkSize is the bound above which text is split further.
	MaxChunkSize int

	// OverlapSize is the approximate number of trailing characters
	// duplicated into the next chunk to preserve boundary context.
	OverlapSize int

	// PreserveTables keeps table blocks whole even when oversized.
	PreserveTables bool

	// PreserveLists keeps list splitting on item boundaries only.
	PreserveLists bool

	// PreserveCode keeps code blocks whole even when oversized.
	PreserveCode bool
}

// DefaultChunkingOptions returns the standard option set.
func DefaultChunkingOptions() ChunkingOptions {
	return ChunkingOptions{
		TargetChunkSize: DefaultTargetChunkSize,
		MinChunkSize:    DefaultMinChunkSize,
		MaxChunkSize:    DefaultMaxChunkSize,
		OverlapSize:     DefaultOverlapSize,
		PreserveTables:  true,
		PreserveLists:   true,
		PreserveCode:    true,
	}
}

// Normalized fills zero-valued sizes with defaults and clamps an overlap
// that would prevent forward progress. It does not attempt to repair a
// caller-supplied MinChunkSize > MaxChunkSize.
func (o ChunkingOptions) Normalized() ChunkingOptions {
	if o.TargetChunkSize <= 0 {
		o.TargetChunkSize = DefaultTargetChunkSize
	}
	if o.MinChunkSize <= 0 {
		o.MinChunkSize = DefaultMinChunkSize
	}
	if o.MaxChunkSize <= 0 {
		o.MaxChunkSize = DefaultMaxChunkSize
	}
	if o.OverlapSize < 0 {
		o.OverlapSize = 0
	}
	if o.OverlapSize >= o.MaxChunkSize {
		o.OverlapSize = o.MaxChunkSize / 4
	}
	return o
}
