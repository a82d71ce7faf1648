package frame

var (
	DefaultShuffleSeed int64 = 1234567890
)

type (
	// Option selects how a Codec turns a payload into message bits.
	// Embedding and extracting must use the same options.
	Option func(*Codec)
	factory interface {
		encode(bits []bool) ([]bool, error)
		decode(bits []bool, size int) ([]bool, error)
		encodedLen(size int) int
	}
)

// WithoutECC frames the payload as-is: a 32-bit length header followed by
// the payload bits. This is the default.
func WithoutECC() Option {
	return func(c *Codec) {
		c.ecc = withoutecc{}
	}
}

// WithGolay protects the header and the payload with Golay(24,12) codes,
// which correct up to 3 flipped bits in every 24-bit block.
// seed is the seed value for shuffling the encoded bits, which spreads a
// burst of damaged runs over many blocks.
func WithGolay(seed int64) Option {
	return func(c *Codec) {
		c.ecc = shuffledgolay(seed)
	}
}

// WithZstd compresses the payload with zstd before framing it. The length
// header then counts compressed bytes.
func WithZstd() Option {
	return func(c *Codec) {
		c.compress = true
	}
}
