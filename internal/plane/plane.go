package plane

import (
	"fmt"
	"image"
	"image/color"

	"github.com/yyyoichi/runstego/internal/yuv"
)

type Kind int

const (
	// Binary reads 1-bit images: a pixel is 1 when its luma is at least 128.
	Binary Kind = iota
	// Threshold compares luma against a caller-chosen cutoff.
	Threshold
	// LSB uses the least-significant bit of the luma.
	LSB
)

func (k Kind) String() string {
	switch k {
	case Binary:
		return "binary"
	case Threshold:
		return "threshold"
	case LSB:
		return "lsb"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{Binary, Threshold, LSB} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown bit plane %q", s)
}

const binaryCutoff = 128

// Plane maps the pixels of a grayscale image to a carrier bit sequence in
// row-major order, and writes a mutated sequence back.
type Plane struct {
	kind   Kind
	cutoff uint8
}

// New returns a plane of the given kind. cutoff is only used by Threshold
// and must be at least 1 so that both bit values can be written.
func New(kind Kind, cutoff uint8) (Plane, error) {
	switch kind {
	case Binary, LSB:
		return Plane{kind: kind}, nil
	case Threshold:
		if cutoff == 0 {
			return Plane{}, fmt.Errorf("threshold cutoff must be between 1 and 255")
		}
		return Plane{kind: kind, cutoff: cutoff}, nil
	}
	return Plane{}, fmt.Errorf("unknown bit plane %v", kind)
}

func (p Plane) Kind() Kind { return p.kind }

// Gray converts src to 8-bit luma. A *image.Gray is copied as is.
func Gray(src image.Image) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	if g, ok := src.(*image.Gray); ok {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			copy(dst.Pix[dst.PixOffset(bounds.Min.X, y):dst.PixOffset(bounds.Max.X, y)],
				g.Pix[g.PixOffset(bounds.Min.X, y):g.PixOffset(bounds.Max.X, y)])
		}
		return dst
	}
	width := bounds.Dx()
	pixels := make([]color.Color, width)
	row := make([]uint8, width)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := range width {
			pixels[x] = src.At(bounds.Min.X+x, y)
		}
		yuv.LumaBatch(pixels, row)
		copy(dst.Pix[dst.PixOffset(bounds.Min.X, y):], row)
	}
	return dst
}

// Bits reads the carrier bits of g.
func (p Plane) Bits(g *image.Gray) []bool {
	bounds := g.Bounds()
	bits := make([]bool, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			bits = append(bits, p.bit(g.Pix[g.PixOffset(x, y)]))
		}
	}
	return bits
}

// Apply returns a copy of g carrying bits. Pixels whose bit is unchanged are
// kept, except on the Binary plane where every pixel becomes 0 or 255.
func (p Plane) Apply(g *image.Gray, bits []bool) (*image.Gray, error) {
	bounds := g.Bounds()
	if n := bounds.Dx() * bounds.Dy(); n != len(bits) {
		return nil, fmt.Errorf("plane has %d pixels, got %d bits", n, len(bits))
	}
	dst := image.NewGray(bounds)
	at := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.Pix[dst.PixOffset(x, y)] = p.write(g.Pix[g.PixOffset(x, y)], bits[at])
			at++
		}
	}
	return dst, nil
}

func (p Plane) bit(v uint8) bool {
	switch p.kind {
	case Threshold:
		return v >= p.cutoff
	case LSB:
		return v&1 == 1
	default:
		return v >= binaryCutoff
	}
}

func (p Plane) write(v uint8, bit bool) uint8 {
	switch p.kind {
	case Threshold:
		if p.bit(v) == bit {
			return v
		}
		if bit {
			return p.cutoff
		}
		return p.cutoff - 1
	case LSB:
		if bit {
			return v | 1
		}
		return v &^ 1
	default:
		if bit {
			return 0xff
		}
		return 0
	}
}
