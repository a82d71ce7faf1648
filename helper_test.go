package runstego_test

import (
	"image"
	"math/rand"
)

// stripes returns a w x h gray image whose pixels form runs of 1 to 12 dark
// or bright pixels in row-major order. Dark pixels are below 100 and bright
// ones at least 156, so binary and threshold planes read the same bits.
func stripes(w, h int, seed int64) *image.Gray {
	rd := rand.New(rand.NewSource(seed))
	g := image.NewGray(image.Rect(0, 0, w, h))
	bright := rd.Intn(2) == 0
	for i := 0; i < len(g.Pix); {
		n := 1 + rd.Intn(12)
		for ; n > 0 && i < len(g.Pix); n-- {
			if bright {
				g.Pix[i] = uint8(156 + rd.Intn(100))
			} else {
				g.Pix[i] = uint8(rd.Intn(100))
			}
			i++
		}
		bright = !bright
	}
	return g
}

func randomBytes(n int, seed int64) []byte {
	b := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(b)
	return b
}
