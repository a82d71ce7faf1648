// Package runstego hides data in the parity of long runs of equal bits.
//
// A carrier is read as a bit sequence: the bit plane of a grayscale image or
// the bits of any file. Every maximal run of at least M equal bits carries
// one message bit, 1 for an odd length and 0 for an even one. Embedding
// stretches or shrinks runs until the parities spell the framed payload, then
// breaks every later long run so that extraction stops there.
package runstego

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/yyyoichi/runstego/frame"
	"github.com/yyyoichi/runstego/internal/bitconv"
	"github.com/yyyoichi/runstego/internal/plane"
	"github.com/yyyoichi/runstego/internal/runparity"
)

// Embed hides payload in src with the specified options.
// This is a convenience function that creates a Stego instance and calls its Embed method.
func Embed(ctx context.Context, src image.Image, payload []byte, opts ...Option) (image.Image, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Embed(ctx, src, payload)
}

// Extract reads the payload hidden in src with the specified options.
// This is a convenience function that creates a Stego instance and calls its Extract method.
func Extract(ctx context.Context, src image.Image, opts ...Option) ([]byte, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Extract(ctx, src)
}

type Stego struct {
	m      int
	strict bool
	plane  plane.Plane
	codec  *frame.Codec
}

// New initializes a Stego. Without options it uses a minimum run length of
// 4, the binary plane, plain framing and non-strict embedding.
func New(opts ...Option) (*Stego, error) {
	s := new(Stego)
	if err := s.init(opts...); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Stego) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return err
		}
	}
	if s.m == 0 {
		s.m = 4
	}
	if s.codec == nil {
		s.codec = frame.New()
	}
	return nil
}

// MinRunLength returns M.
func (s *Stego) MinRunLength() int { return s.m }

// Embed returns a grayscale copy of src that carries payload.
//
// Process:
//  1. Converts the image to 8-bit luma and reads the carrier bits from the plane.
//  2. Frames the payload with a length header.
//  3. Rewrites runs so that their parities spell the frame, and breaks the rest.
//  4. Writes the bits back to the plane.
//
// Returns an error wrapping ErrCarrierTooSmall if the image cannot hold the
// payload; src is never modified.
func (s *Stego) Embed(ctx context.Context, src image.Image, payload []byte) (image.Image, error) {
	g := plane.Gray(src)
	bits := s.plane.Bits(g)
	if err := s.embed(ctx, bits, payload); err != nil {
		return nil, err
	}
	return s.apply(g, bits)
}

// Extract reads the payload hidden in src.
func (s *Stego) Extract(ctx context.Context, src image.Image) ([]byte, error) {
	return s.extract(ctx, s.plane.Bits(plane.Gray(src)))
}

// Sanitize returns a grayscale copy of src in which no run qualifies, so that
// it decodes to nothing.
func (s *Stego) Sanitize(ctx context.Context, src image.Image) (image.Image, error) {
	g := plane.Gray(src)
	bits := s.plane.Bits(g)
	if err := s.sanitize(ctx, bits); err != nil {
		return nil, err
	}
	return s.apply(g, bits)
}

// EmbedBytes hides payload in the bits of an arbitrary file, most-significant
// bit first. The returned carrier has the same length; carrier itself is not
// modified.
func (s *Stego) EmbedBytes(ctx context.Context, carrier, payload []byte) ([]byte, error) {
	bits := bitconv.BytesToBools(carrier)
	if err := s.embed(ctx, bits, payload); err != nil {
		return nil, err
	}
	return bitconv.BoolsToBytes(bits), nil
}

// ExtractBytes reads the payload hidden in the bits of carrier.
func (s *Stego) ExtractBytes(ctx context.Context, carrier []byte) ([]byte, error) {
	return s.extract(ctx, bitconv.BytesToBools(carrier))
}

// SanitizeBytes returns a copy of carrier in which no run qualifies.
func (s *Stego) SanitizeBytes(ctx context.Context, carrier []byte) ([]byte, error) {
	bits := bitconv.BytesToBools(carrier)
	if err := s.sanitize(ctx, bits); err != nil {
		return nil, err
	}
	return bitconv.BoolsToBytes(bits), nil
}

// Capacity returns the number of payload bytes that src can hold whatever
// their value. Every message bit costs at most M+1 carrier bits (2 for M=1).
// With a minimum run length of 1 the carrier length and the number of 1 bits
// in the frame must also have the same parity, which Capacity cannot promise.
// With zstd framing the payload is assumed not to compress.
func (s *Stego) Capacity(src image.Image) (int, error) {
	return s.capacity(s.plane.Bits(plane.Gray(src)))
}

func (s *Stego) capacity(bits []bool) (int, error) {
	k, err := s.messageBits(bits)
	if err != nil {
		return 0, err
	}
	n := s.codec.MaxPayload(k)
	if n < 0 {
		return 0, fmt.Errorf("%w: %d carrier bits cannot hold a %d-bit frame header",
			ErrCarrierTooSmall, len(bits), s.codec.Len(0))
	}
	return n, nil
}

// messageBits returns how many message bits of any value fit in bits.
func (s *Stego) messageBits(bits []bool) (int, error) {
	k := len(bits) / max(s.m+1, 2)
	if s.strict {
		runs, err := runparity.CountRuns(bits, s.m)
		if err != nil {
			return 0, err
		}
		k = min(k, runs)
	}
	return k, nil
}

func (s *Stego) apply(g *image.Gray, bits []bool) (image.Image, error) {
	out, err := s.plane.Apply(g, bits)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Stego) embed(ctx context.Context, bits []bool, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := s.codec.Encode(payload)
	if err != nil {
		return err
	}
	if err := runparity.Embed(bits, msg, s.m, s.strict); err != nil {
		if errors.Is(err, runparity.ErrCapacity) {
			return fmt.Errorf("%w: %w", ErrCarrierTooSmall, err)
		}
		return err
	}
	return nil
}

func (s *Stego) extract(ctx context.Context, bits []bool) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	msg, err := runparity.Decode(bits, s.m)
	if err != nil {
		return nil, err
	}
	return s.codec.Decode(msg)
}

func (s *Stego) sanitize(ctx context.Context, bits []bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return runparity.BreakAll(bits, s.m)
}
