package mutatorset

// Sliding-window Bloom filter parameters. These are consensus constants
// (compile-time data, never globals that could drift at runtime — the
// same stance the teacher takes with its network-parameter tables in
// node/config.go, just fixed here rather than loaded per network).
const (
	// ChunkSize is the number of bits evicted from the active window at
	// once, and the size of one inactive-chunk leaf.
	ChunkSize = 4096

	// WindowSize is the width of the in-memory active window, a
	// multiple of ChunkSize so eviction always consumes whole chunks.
	WindowSize = ChunkSize * 50

	// NumTrials is the number of absolute indices a single addition
	// contributes to the Bloom filter, and thus the width of every
	// removal record's index set.
	NumTrials = 45
)
