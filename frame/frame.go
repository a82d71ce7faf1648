// Package frame turns a byte payload into the message bits hidden in a
// carrier and back. A frame is a 32-bit big-endian byte-length header
// followed by the payload bits, most-significant bit first, so that an
// extractor knows where the payload ends.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/yyyoichi/runstego/internal/bitconv"
)

// HeaderBits is the size of the plain length header.
const HeaderBits = 32

var (
	// ErrTruncated is returned when the bits end before the header or the
	// body it announces.
	ErrTruncated = errors.New("frame: truncated")
	// ErrTooLarge is returned for payloads whose length does not fit the header.
	ErrTooLarge = errors.New("frame: payload too large")
)

// Codec encodes and decodes frames. The zero value is not usable; use New.
type Codec struct {
	ecc      factory
	compress bool
}

// New returns a Codec. Without options it frames payloads without error
// correction or compression.
func New(opts ...Option) *Codec {
	c := &Codec{ecc: withoutecc{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode returns the message bits for payload.
func (c *Codec) Encode(payload []byte) ([]bool, error) {
	body := payload
	if c.compress && len(body) > 0 {
		body = compressZstd(body)
	}
	if uint64(len(body)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(body))
	}
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(body)))

	h, err := c.ecc.encode(bitconv.BytesToBools(header[:]))
	if err != nil {
		return nil, fmt.Errorf("frame header: %w", err)
	}
	b, err := c.ecc.encode(bitconv.BytesToBools(body))
	if err != nil {
		return nil, fmt.Errorf("frame body: %w", err)
	}
	out := make([]bool, 0, len(h)+len(b))
	out = append(out, h...)
	return append(out, b...), nil
}

// Decode reads one frame from the start of bits. Bits after the frame are
// ignored.
func (c *Codec) Decode(bits []bool) ([]byte, error) {
	hl := c.ecc.encodedLen(HeaderBits)
	if len(bits) < hl {
		return nil, fmt.Errorf("%w: %d bits, header needs %d", ErrTruncated, len(bits), hl)
	}
	h, err := c.ecc.decode(bits[:hl], HeaderBits)
	if err != nil {
		return nil, fmt.Errorf("frame header: %w", err)
	}
	announced := uint64(binary.BigEndian.Uint32(bitconv.BoolsToBytes(h)))
	rest := bits[hl:]
	// encoded bodies are never shorter than the plain ones
	if announced*8 > uint64(len(rest)) {
		return nil, fmt.Errorf("%w: header announces %d bytes, %d bits left", ErrTruncated, announced, len(rest))
	}
	size := int(announced)
	bl := c.ecc.encodedLen(size * 8)
	if bl > len(rest) {
		return nil, fmt.Errorf("%w: header announces %d bytes, %d bits left", ErrTruncated, size, len(rest))
	}
	b, err := c.ecc.decode(rest[:bl], size*8)
	if err != nil {
		return nil, fmt.Errorf("frame body: %w", err)
	}
	body := bitconv.BoolsToBytes(b)
	if c.compress && len(body) > 0 {
		body, err = decompressZstd(body)
		if err != nil {
			return nil, fmt.Errorf("frame body: zstd: %w", err)
		}
	}
	return body, nil
}

// Len returns the number of message bits of a frame whose body is n bytes.
// With WithZstd n is the compressed size.
func (c *Codec) Len(n int) int {
	return c.ecc.encodedLen(HeaderBits) + c.ecc.encodedLen(n*8)
}

// MaxPayload returns the largest payload size in bytes whose frame fits in
// the given number of message bits whatever the payload's content, or -1
// when not even an empty frame fits. With WithZstd the size is counted
// before compression and assumes the payload does not compress.
func (c *Codec) MaxPayload(bits int) int {
	if c.Len(0) > bits {
		return -1
	}
	hi := bits / 8
	// first n that does not fit, minus one
	return sort.Search(hi+1, func(n int) bool { return c.Len(c.bodyBound(n)) > bits }) - 1
}

// bodyBound returns the largest body a payload of n bytes can produce.
func (c *Codec) bodyBound(n int) int {
	if c.compress && n > 0 {
		return zstdBound(n)
	}
	return n
}
