package bench_test

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/yyyoichi/runstego"
	"github.com/yyyoichi/runstego/frame"
)

// BenchmarkEmbed_FHD runs a table-driven set of embed benchmarks for FHD images
func BenchmarkEmbed_FHD(b *testing.B) {
	test := []struct {
		name string
		opts []runstego.Option
	}{
		{name: "M2_binary", opts: []runstego.Option{
			runstego.WithMinRunLength(2),
		}},
		{name: "M4_binary", opts: []runstego.Option{
			runstego.WithMinRunLength(4),
		}},
		{name: "M4_threshold", opts: []runstego.Option{
			runstego.WithMinRunLength(4),
			runstego.WithThresholdPlane(128),
		}},
		{name: "M4_golay", opts: []runstego.Option{
			runstego.WithMinRunLength(4),
			runstego.WithFrame(frame.WithGolay(frame.DefaultShuffleSeed)),
		}},
		{name: "M8_binary", opts: []runstego.Option{
			runstego.WithMinRunLength(8),
		}},
	}

	img := createImage(1920, 1080)
	payload := createPayload(4096)
	ctx := b.Context()

	for _, tt := range test {
		b.Run(tt.name, func(b *testing.B) {
			s, err := runstego.New(tt.opts...)
			if err != nil {
				b.Fatalf("Failed to create Stego instance (%s): %v", tt.name, err)
			}
			for b.Loop() {
				dist, err := s.Embed(ctx, img, payload)
				if err != nil {
					b.Fatalf("Failed to embed payload (%s): %v", tt.name, err)
				}
				_ = dist
			}
		})
	}
}

func BenchmarkBatch_FHD(b *testing.B) {
	img := createImage(1920, 1080)
	payload := createPayload(4096)
	ctx := b.Context()

	b.Run("noBatch", func(b *testing.B) {
		for b.Loop() {
			if _, err := runstego.Embed(ctx, img, payload); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("batch", func(b *testing.B) {
		batch := runstego.NewBatch(img)
		for b.Loop() {
			if _, err := batch.Embed(ctx, payload); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkExtract_FHD(b *testing.B) {
	img := createImage(1920, 1080)
	ctx := b.Context()
	marked, err := runstego.Embed(ctx, img, createPayload(4096))
	if err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		if _, err := runstego.Extract(ctx, marked); err != nil {
			b.Fatal(err)
		}
	}
}

// createImage creates a widthxheight test image of bands with random widths,
// so that runs of many lengths occur on every plane
func createImage(width, height int) *image.RGBA {
	rd := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var bright bool
	n := 0
	for y := range height {
		for x := range width {
			if n == 0 {
				n = 1 + rd.Intn(16)
				bright = !bright
			}
			n--
			v := uint8(rd.Intn(120))
			if bright {
				v += 135
			}
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

func createPayload(n int) []byte {
	p := make([]byte, n)
	rand.New(rand.NewSource(2)).Read(p)
	return p
}
