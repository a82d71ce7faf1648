package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/yyyoichi/runstego"
	"github.com/yyyoichi/runstego/frame"
	"github.com/yyyoichi/runstego/internal/config"
)

// commonFlags are accepted by every subcommand. A flag only overrides the
// configuration when it is given explicitly.
type commonFlags struct {
	configPath string
	minRun     int
	plane      string
	threshold  int
	strict     bool
	ecc        bool
	seed       int64
	compress   bool
	logLevel   string
}

func newFlagSet(name string, f *commonFlags, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	d := config.Default()
	fs.StringVar(&f.configPath, "config", "", "YAML configuration file (default: $RUNSTEGO_CONFIG)")
	fs.IntVar(&f.minRun, "min-run", d.MinRun, "minimum run length M; runs of at least M equal bits carry one bit")
	fs.StringVar(&f.plane, "plane", d.Plane, "bit plane of images: binary, threshold or lsb")
	fs.IntVar(&f.threshold, "threshold", d.Threshold, "luma cutoff of the threshold plane (1-255)")
	fs.BoolVar(&f.strict, "strict", d.Strict, "require one existing qualifying run per message bit")
	fs.BoolVar(&f.ecc, "ecc", d.ECC, "protect the message with Golay error correction")
	fs.Int64Var(&f.seed, "seed", d.Seed, "shuffle seed of the error correction")
	fs.BoolVar(&f.compress, "compress", d.Compress, "zstd compress the message")
	fs.StringVar(&f.logLevel, "log-level", d.LogLevel, "log level: debug, info, warn or error")
	return fs
}

// parse parses args and reports whether the command should continue.
func parse(fs *pflag.FlagSet, args []string, stdout io.Writer) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fs.SetOutput(stdout)
			fs.PrintDefaults()
			return false, nil
		}
		return false, &usageError{err}
	}
	if fs.NArg() > 0 {
		return false, usageErrorf("unexpected argument: %s", fs.Arg(0))
	}
	return true, nil
}

// resolve layers the explicitly set flags over the loaded configuration.
func (f *commonFlags) resolve(fs *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if fs.Changed("min-run") {
		cfg.MinRun = f.minRun
	}
	if fs.Changed("plane") {
		cfg.Plane = f.plane
	}
	if fs.Changed("threshold") {
		cfg.Threshold = f.threshold
	}
	if fs.Changed("strict") {
		cfg.Strict = f.strict
	}
	if fs.Changed("ecc") {
		cfg.ECC = f.ecc
	}
	if fs.Changed("seed") {
		cfg.Seed = f.seed
	}
	if fs.Changed("compress") {
		cfg.Compress = f.compress
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, &usageError{fmt.Errorf("invalid configuration: %w", err)}
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, stderr io.Writer) *slog.Logger {
	// Validate has checked the level
	level, _ := cfg.Level()
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func options(cfg *config.Config) []runstego.Option {
	opts := []runstego.Option{
		runstego.WithMinRunLength(cfg.MinRun),
		runstego.WithStrict(cfg.Strict),
	}
	switch cfg.Plane {
	case "threshold":
		opts = append(opts, runstego.WithThresholdPlane(uint8(cfg.Threshold)))
	case "lsb":
		opts = append(opts, runstego.WithLSBPlane())
	default:
		opts = append(opts, runstego.WithBinaryPlane())
	}
	var fopts []frame.Option
	if cfg.ECC {
		fopts = append(fopts, frame.WithGolay(cfg.Seed))
	}
	if cfg.Compress {
		fopts = append(fopts, frame.WithZstd())
	}
	return append(opts, runstego.WithFrame(fopts...))
}
