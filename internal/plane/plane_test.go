package plane

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayImage(w, h int, pix ...uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	copy(g.Pix, pix)
	return g
}

func TestPlaneBits(t *testing.T) {
	g := grayImage(3, 2, 0, 127, 128, 255, 201, 60)
	test := []struct {
		name   string
		kind   Kind
		cutoff uint8
		exp    []bool
	}{
		{"binary", Binary, 0, []bool{false, false, true, true, true, false}},
		{"threshold", Threshold, 200, []bool{false, false, false, true, true, false}},
		{"lsb", LSB, 0, []bool{false, true, false, true, true, false}},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.kind, tt.cutoff)
			require.NoError(t, err)
			assert.Equal(t, tt.exp, p.Bits(g))
		})
	}
}

func TestPlaneApply(t *testing.T) {
	g := grayImage(2, 2, 10, 150, 220, 99)
	want := []bool{true, false, false, true}
	test := []struct {
		name   string
		kind   Kind
		cutoff uint8
		exp    []uint8
	}{
		{"binary", Binary, 0, []uint8{255, 0, 0, 255}},
		{"threshold", Threshold, 100, []uint8{100, 99, 99, 100}},
		{"lsb", LSB, 0, []uint8{11, 150, 220, 99}},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.kind, tt.cutoff)
			require.NoError(t, err)
			out, err := p.Apply(g, want)
			require.NoError(t, err)
			assert.Equal(t, tt.exp, out.Pix)
			assert.Equal(t, want, p.Bits(out))
			// the source is not modified
			assert.Equal(t, []uint8{10, 150, 220, 99}, g.Pix)
		})
	}

	p, _ := New(LSB, 0)
	_, err := p.Apply(g, want[:3])
	assert.Error(t, err)
}

func TestThresholdKeepsUnchangedPixels(t *testing.T) {
	g := grayImage(4, 1, 30, 180, 181, 90)
	p, err := New(Threshold, 128)
	require.NoError(t, err)
	out, err := p.Apply(g, []bool{false, true, false, false})
	require.NoError(t, err)
	assert.Equal(t, []uint8{30, 180, 127, 90}, out.Pix)
}

func TestGray(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(2, 3, 4, 4))
	rgba.Set(2, 3, color.RGBA{255, 255, 255, 255})
	rgba.Set(3, 3, color.RGBA{255, 0, 0, 255})
	g := Gray(rgba)
	assert.Equal(t, rgba.Bounds(), g.Bounds())
	assert.Equal(t, []uint8{255, 76}, g.Pix)

	src := grayImage(3, 1, 1, 2, 3)
	cp := Gray(src)
	assert.Equal(t, src.Pix, cp.Pix)
	cp.Pix[0] = 9
	assert.Equal(t, uint8(1), src.Pix[0])

	// sub-images keep their own bounds
	sub := grayImage(3, 3, 0, 1, 2, 3, 4, 5, 6, 7, 8).SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)
	assert.Equal(t, []uint8{4, 5, 7, 8}, Gray(sub).Pix)
}

func TestNew(t *testing.T) {
	_, err := New(Threshold, 0)
	assert.Error(t, err)
	_, err = New(Kind(9), 0)
	assert.Error(t, err)

	for _, k := range []Kind{Binary, Threshold, LSB} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err = ParseKind("msb")
	assert.Error(t, err)
}
