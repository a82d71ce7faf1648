package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/yyyoichi/runstego"
	"github.com/yyyoichi/runstego/internal/bitconv"
	"github.com/yyyoichi/runstego/internal/config"
)

func runHide(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var f commonFlags
	var message, cover, output string
	fs := newFlagSet("hide", &f, stderr)
	fs.StringVarP(&message, "message", "m", "", "path to the message file")
	fs.StringVarP(&cover, "cover", "c", "", "cover image or file")
	fs.StringVarP(&output, "output", "o", "", "stego file to write")
	cfg, logger, err := setup(fs, &f, args, stdout, stderr, "message", "cover", "output")
	if cfg == nil {
		return err
	}
	return report(logger, "hide", hide(ctx, logger, cfg, message, cover, output))
}

func hide(ctx context.Context, logger *slog.Logger, cfg *config.Config, message, cover, output string) error {
	s, err := runstego.New(options(cfg)...)
	if err != nil {
		return err
	}
	payload, err := os.ReadFile(message)
	if err != nil {
		return err
	}
	logger.Info("hiding message", "message", message, "bytes", len(payload), "cover", cover, "min_run", cfg.MinRun)

	if !isImage(cover) {
		carrier, err := os.ReadFile(cover)
		if err != nil {
			return err
		}
		logger.Debug("raw carrier", "bits", len(carrier)*8)
		out, err := s.EmbedBytes(ctx, carrier, payload)
		if err != nil {
			return err
		}
		return writeFile(logger, output, out)
	}

	if err := checkImageOutput(output); err != nil {
		return err
	}
	img, format, err := readImage(cover)
	if err != nil {
		return err
	}
	if n, err := s.Capacity(img); err == nil {
		logger.Debug("image carrier", "format", format, "bounds", img.Bounds(), "plane", cfg.Plane, "capacity_bytes", n)
	}
	out, err := s.Embed(ctx, img, payload)
	if err != nil {
		return err
	}
	if err := writeImage(output, out); err != nil {
		return err
	}
	logger.Info("wrote stego image", "path", output)
	return nil
}

func runExtract(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var f commonFlags
	var stego, output string
	fs := newFlagSet("extract", &f, stderr)
	fs.StringVarP(&stego, "stego", "s", "", "stego image or file")
	fs.StringVarP(&output, "output", "o", "", "file to write the message to")
	cfg, logger, err := setup(fs, &f, args, stdout, stderr, "stego", "output")
	if cfg == nil {
		return err
	}
	return report(logger, "extract", extract(ctx, logger, cfg, stego, output))
}

func extract(ctx context.Context, logger *slog.Logger, cfg *config.Config, stego, output string) error {
	s, err := runstego.New(options(cfg)...)
	if err != nil {
		return err
	}
	logger.Info("extracting message", "stego", stego, "min_run", cfg.MinRun)

	var payload []byte
	if isImage(stego) {
		img, _, err := readImage(stego)
		if err != nil {
			return err
		}
		payload, err = s.Extract(ctx, img)
		if err != nil {
			return err
		}
	} else {
		carrier, err := os.ReadFile(stego)
		if err != nil {
			return err
		}
		payload, err = s.ExtractBytes(ctx, carrier)
		if err != nil {
			return err
		}
	}
	return writeFile(logger, output, payload)
}

func runSanitize(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var f commonFlags
	var cover, output string
	fs := newFlagSet("sanitize", &f, stderr)
	fs.StringVarP(&cover, "cover", "c", "", "image or file to sanitize")
	fs.StringVarP(&output, "output", "o", "", "file to write")
	cfg, logger, err := setup(fs, &f, args, stdout, stderr, "cover", "output")
	if cfg == nil {
		return err
	}
	return report(logger, "sanitize", sanitize(ctx, logger, cfg, cover, output))
}

func sanitize(ctx context.Context, logger *slog.Logger, cfg *config.Config, cover, output string) error {
	s, err := runstego.New(options(cfg)...)
	if err != nil {
		return err
	}
	logger.Info("sanitizing", "cover", cover, "min_run", cfg.MinRun)

	if !isImage(cover) {
		carrier, err := os.ReadFile(cover)
		if err != nil {
			return err
		}
		out, err := s.SanitizeBytes(ctx, carrier)
		if err != nil {
			return err
		}
		return writeFile(logger, output, out)
	}

	if err := checkImageOutput(output); err != nil {
		return err
	}
	img, _, err := readImage(cover)
	if err != nil {
		return err
	}
	out, err := s.Sanitize(ctx, img)
	if err != nil {
		return err
	}
	if err := writeImage(output, out); err != nil {
		return err
	}
	logger.Info("wrote sanitized image", "path", output)
	return nil
}

func runSurvey(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var f commonFlags
	var cover string
	var maxMinRun int
	fs := newFlagSet("survey", &f, stderr)
	fs.StringVarP(&cover, "cover", "c", "", "image or file to survey")
	fs.IntVar(&maxMinRun, "max-min-run", config.Default().MaxMinRun, "largest minimum run length to report")
	cfg, logger, err := setup(fs, &f, args, stdout, stderr, "cover")
	if cfg == nil {
		return err
	}
	if fs.Changed("max-min-run") {
		cfg.MaxMinRun = maxMinRun
	}
	return report(logger, "survey", survey(ctx, logger, cfg, cover, stdout))
}

func survey(ctx context.Context, logger *slog.Logger, cfg *config.Config, cover string, stdout io.Writer) error {
	opts := options(cfg)
	var r *runstego.Report
	if isImage(cover) {
		img, _, err := readImage(cover)
		if err != nil {
			return err
		}
		r, err = runstego.SurveyImage(ctx, img, cfg.MaxMinRun, opts...)
		if err != nil {
			return err
		}
	} else {
		carrier, err := os.ReadFile(cover)
		if err != nil {
			return err
		}
		r, err = runstego.Survey(ctx, bitconv.BytesToBools(carrier), cfg.MaxMinRun, opts...)
		if err != nil {
			return err
		}
	}
	logger.Debug("surveyed", "cover", cover, "levels", len(r.Levels))
	return printReport(stdout, cover, r)
}

func printReport(w io.Writer, name string, r *runstego.Report) error {
	fmt.Fprintf(w, "%s: %d bits, %d runs\n", name, r.Bits, r.Runs)
	fmt.Fprintf(w, "run length: mean %.2f, std dev %.2f, median %.1f, longest %d\n",
		r.MeanRun, r.StdDevRun, r.MedianRun, r.LongestRun)
	if r.SuggestedCutoff > 0 {
		fmt.Fprintf(w, "suggested threshold: %d\n", r.SuggestedCutoff)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "min run\tqualifying\tpayload bytes\tstrict bytes\t")
	for _, l := range r.Levels {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t\n", l.MinRun, l.Qualifying, max(l.Payload, 0), max(l.StrictPayload, 0))
	}
	return tw.Flush()
}

// setup parses the flags, checks that every name in required was given and
// resolves the configuration. A nil config with a nil error means help was
// printed.
func setup(fs *pflag.FlagSet, f *commonFlags, args []string, stdout, stderr io.Writer, required ...string) (*config.Config, *slog.Logger, error) {
	ok, err := parse(fs, args, stdout)
	if !ok {
		return nil, nil, err
	}
	var missing []string
	for _, name := range required {
		if !fs.Changed(name) {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, usageErrorf("%s: missing %s", fs.Name(), strings.Join(missing, ", "))
	}
	cfg, err := f.resolve(fs)
	if err != nil {
		return nil, nil, err
	}
	return cfg, newLogger(cfg, stderr), nil
}

func report(logger *slog.Logger, cmd string, err error) error {
	if err == nil {
		return nil
	}
	logger.Error(cmd+" failed", "error", err)
	return &loggedError{err}
}

func checkImageOutput(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".bmp", ".tif", ".tiff":
		return nil
	}
	return fmt.Errorf("%w: %s, stego images are written as .png, .bmp or .tiff",
		runstego.ErrUnsupportedFormat, path)
}

func writeFile(logger *slog.Logger, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	logger.Info("wrote file", "path", path, "bytes", len(data))
	return nil
}
