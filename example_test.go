package runstego_test

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/yyyoichi/runstego"
	"github.com/yyyoichi/runstego/frame"
)

func Example_runstego() {
	// Create a simple black and white image (64x64 pixels) of diagonal bands
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			if (x+y)/5%2 == 0 {
				img.Set(x, y, color.Gray{Y: 255})
			}
		}
	}

	// Runs of at least 3 equal pixels carry one bit each
	s, err := runstego.New(
		runstego.WithMinRunLength(3),
		runstego.WithFrame(frame.WithGolay(frame.DefaultShuffleSeed)),
	)
	if err != nil {
		fmt.Printf("Error creating stego: %v\n", err)
		return
	}

	ctx := context.Background()
	stegoImg, err := s.Embed(ctx, img, []byte("Test-Mark"))
	if err != nil {
		fmt.Printf("Error embedding: %v\n", err)
		return
	}

	payload, err := s.Extract(ctx, stegoImg)
	if err != nil {
		fmt.Printf("Error extracting: %v\n", err)
		return
	}
	fmt.Println(string(payload))

	// Output:
	// Test-Mark
}

func ExampleStego_EmbedBytes() {
	// Any file can be a carrier, read most-significant bit first
	carrier := make([]byte, 64)
	for i := range carrier {
		carrier[i] = byte(i * 37)
	}

	s, _ := runstego.New(runstego.WithMinRunLength(2))
	ctx := context.Background()
	out, err := s.EmbedBytes(ctx, carrier, []byte("hi"))
	if err != nil {
		fmt.Printf("Error embedding: %v\n", err)
		return
	}
	payload, _ := s.ExtractBytes(ctx, out)
	fmt.Println(len(out), string(payload))

	// Output:
	// 64 hi
}

func ExampleSurvey() {
	bits := []bool{false, false, false, true, true, false, false, false, false}
	r, _ := runstego.Survey(context.Background(), bits, 3)
	fmt.Printf("runs=%d mean=%.1f median=%.1f\n", r.Runs, r.MeanRun, r.MedianRun)
	for _, l := range r.Levels {
		fmt.Printf("M=%d qualifying=%d\n", l.MinRun, l.Qualifying)
	}

	// Output:
	// runs=3 mean=3.0 median=3.0
	// M=1 qualifying=3
	// M=2 qualifying=3
	// M=3 qualifying=2
}
