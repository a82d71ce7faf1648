package yuv

import (
	"image/color"
	"math"
)

// https://github.com/opencv/opencv/blob/0e88b49a53842f0f7cdc4c61b98c283be7e5057c/modules/imgproc/src/opencl/color_yuv.cl#L148-L234

const (
	yr = 0.299
	yg = 0.587
	yb = 0.114
)

// Luma returns the Y component of a color, rounded to 8 bits.
func Luma(c color.Color) uint8 {
	r32, g32, b32, _ := c.RGBA()
	r := float64(r32 >> 8)
	g := float64(g32 >> 8)
	b := float64(b32 >> 8)
	return clip8(yr*r + yg*g + yb*b)
}

func LumaBatch(pixels []color.Color, y []uint8) {
	for i, pixel := range pixels {
		y[i] = Luma(pixel)
	}
}

func clip8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
