package runstego

import (
	"context"
	"image"
	"slices"
	"sync"

	"github.com/yyyoichi/runstego/internal/plane"
)

// Batch enables efficient multiple operations on a single image by caching
// its luma and the carrier bits of every plane already read.
// A Batch is safe for concurrent use.
type Batch struct {
	gray *image.Gray

	mu   sync.Mutex
	bits map[plane.Plane][]bool
}

// NewBatch creates a new Batch instance and converts src to luma once.
func NewBatch(src image.Image) *Batch {
	return &Batch{
		gray: plane.Gray(src),
		bits: make(map[plane.Plane][]bool),
	}
}

// Embed hides payload in a copy of the cached image with the specified options.
func (b *Batch) Embed(ctx context.Context, payload []byte, opts ...Option) (image.Image, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	bits := slices.Clone(b.carrier(s.plane))
	if err := s.embed(ctx, bits, payload); err != nil {
		return nil, err
	}
	return s.apply(b.gray, bits)
}

// Extract reads the payload hidden in the cached image with the specified options.
func (b *Batch) Extract(ctx context.Context, opts ...Option) ([]byte, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.extract(ctx, b.carrier(s.plane))
}

// Capacity returns the payload bytes the cached image can hold with the
// specified options.
func (b *Batch) Capacity(opts ...Option) (int, error) {
	s, err := New(opts...)
	if err != nil {
		return 0, err
	}
	return s.capacity(b.carrier(s.plane))
}

// carrier returns the cached bits of p. Callers must not modify them.
func (b *Batch) carrier(p plane.Plane) []bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	bits, ok := b.bits[p]
	if !ok {
		bits = p.Bits(b.gray)
		b.bits[p] = bits
	}
	return bits
}
