package runstego

import (
	"fmt"

	"github.com/yyyoichi/runstego/frame"
	"github.com/yyyoichi/runstego/internal/plane"
)

type Option func(*Stego) error

// WithMinRunLength sets the minimum run length M. Only runs of at least M
// equal bits carry a message bit, so a larger M needs a larger carrier but
// leaves short runs of the cover alone.
//
// Embedding and extracting must use the same M.
func WithMinRunLength(m int) Option {
	return func(s *Stego) error {
		if m <= 0 {
			return fmt.Errorf("%w: minimum run length %d", ErrInvalidArgument, m)
		}
		s.m = m
		return nil
	}
}

// WithStrict requires the carrier to already contain at least as many
// qualifying runs as the message has bits.
func WithStrict(strict bool) Option {
	return func(s *Stego) error {
		s.strict = strict
		return nil
	}
}

// WithBinaryPlane reads a pixel as 1 when its luma is at least 128 and writes
// pure black or white pixels. This is the default and suits 1-bit images.
func WithBinaryPlane() Option {
	return withPlane(plane.Binary, 0)
}

// WithThresholdPlane reads a pixel as 1 when its luma is at least cutoff.
// Only pixels whose bit changes are rewritten, to cutoff or cutoff-1.
func WithThresholdPlane(cutoff uint8) Option {
	return withPlane(plane.Threshold, cutoff)
}

// WithLSBPlane uses the least-significant bit of every pixel's luma.
func WithLSBPlane() Option {
	return withPlane(plane.LSB, 0)
}

func withPlane(kind plane.Kind, cutoff uint8) Option {
	return func(s *Stego) error {
		p, err := plane.New(kind, cutoff)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		s.plane = p
		return nil
	}
}

// WithFrame selects error correction and compression of the payload frame.
// See the frame package.
func WithFrame(opts ...frame.Option) Option {
	return func(s *Stego) error {
		s.codec = frame.New(opts...)
		return nil
	}
}
