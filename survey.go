package runstego

import (
	"context"
	"fmt"
	"image"
	"math"
	"runtime"
	"slices"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/yyyoichi/runstego/internal/kmeans"
	"github.com/yyyoichi/runstego/internal/plane"
	"github.com/yyyoichi/runstego/internal/runparity"
)

// Report describes how well a carrier suits run-parity embedding.
type Report struct {
	Bits int
	// Runs counts every maximal run, qualifying or not.
	Runs       int
	MeanRun    float64
	StdDevRun  float64
	MedianRun  float64
	LongestRun int
	// Levels holds one entry per minimum run length, starting at 1 and
	// ending at LongestRun+1 at most: no run qualifies beyond that.
	Levels []Level
	// SuggestedCutoff is a threshold plane cutoff that splits the image's
	// luma into two clusters. Only set by SurveyImage.
	SuggestedCutoff uint8
}

type Level struct {
	MinRun int
	// Qualifying is the number of runs of at least MinRun bits, which is the
	// number of message bits a decoder would read from the carrier as is.
	Qualifying int
	// Payload is the number of bytes Capacity guarantees at this level, or
	// -1 when not even an empty frame fits.
	Payload int
	// StrictPayload is Payload when embedding in strict mode.
	StrictPayload int
}

// Survey computes run statistics of bits and the capacity for every minimum
// run length from 1 to maxMinRun, or to one past the longest run when that
// is smaller. The levels are computed by a bounded set of workers.
// opts select the frame; any minimum run length or strict option is ignored.
func Survey(ctx context.Context, bits []bool, maxMinRun int, opts ...Option) (*Report, error) {
	if maxMinRun < 1 {
		return nil, fmt.Errorf("%w: maximum minimum run length %d", ErrInvalidArgument, maxMinRun)
	}
	base, err := New(opts...)
	if err != nil {
		return nil, err
	}
	runs, err := runparity.Runs(bits, 1)
	if err != nil {
		return nil, err
	}
	r := &Report{
		Bits: len(bits),
		Runs: len(runs),
	}
	if len(runs) > 0 {
		lengths := make([]float64, len(runs))
		for i, run := range runs {
			lengths[i] = float64(run.Len())
			r.LongestRun = max(r.LongestRun, run.Len())
		}
		r.MeanRun = stat.Mean(lengths, nil)
		if len(lengths) > 1 {
			r.StdDevRun = stat.StdDev(lengths, nil)
		}
		slices.Sort(lengths)
		r.MedianRun = stat.Quantile(0.5, stat.Empirical, lengths, nil)
	}

	levels := min(maxMinRun, r.LongestRun+1)
	r.Levels = make([]Level, levels)
	errs := make([]error, levels)
	jobs := make(chan int)
	var wg sync.WaitGroup
	for range min(levels, runtime.GOMAXPROCS(0)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				r.Levels[i], errs[i] = base.level(bits, runs, i+1)
			}
		}()
	}
	for i := range levels {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// SurveyImage surveys the plane selected by opts and suggests a cutoff for
// the threshold plane.
func SurveyImage(ctx context.Context, src image.Image, maxMinRun int, opts ...Option) (*Report, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	g := plane.Gray(src)
	r, err := Survey(ctx, s.plane.Bits(g), maxMinRun, opts...)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(g.Pix))
	for i, v := range g.Pix {
		values[i] = float64(v)
	}
	// values at the midpoint belong to the high cluster
	r.SuggestedCutoff = uint8(min(max(math.Ceil(kmeans.Threshold(values)), 1), 255))
	return r, nil
}

func (s *Stego) level(bits []bool, runs []runparity.Run, m int) (Level, error) {
	l := Level{MinRun: m}
	for _, run := range runs {
		if run.Len() >= m {
			l.Qualifying++
		}
	}
	ls := Stego{m: m, plane: s.plane, codec: s.codec}
	l.Payload = ls.codec.MaxPayload(len(bits) / max(m+1, 2))
	ls.strict = true
	k, err := ls.messageBits(bits)
	if err != nil {
		return Level{}, err
	}
	l.StrictPayload = ls.codec.MaxPayload(k)
	return l, nil
}
