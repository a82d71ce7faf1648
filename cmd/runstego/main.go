// runstego hides a file in the parity of long runs of equal bits of a cover
// image or any other file, and extracts it again.
//
// Usage:
//
//	runstego hide     -m <message> -c <cover> -o <output>
//	runstego extract  -s <stego> -o <output>
//	runstego sanitize -c <cover> -o <output>
//	runstego survey   -c <cover> [--max-min-run N]
//
// Covers ending in .png, .bmp, .gif, .jpg, .jpeg, .tif or .tiff are read as
// images; every other file is used as a raw bit carrier.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		var logged *loggedError
		if !errors.As(err, &logged) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

type command struct {
	name, summary string
	run           func(ctx context.Context, args []string, stdout, stderr io.Writer) error
}

var commands = []command{
	{"hide", "hide a message file in a cover", runHide},
	{"extract", "extract a hidden message", runExtract},
	{"sanitize", "break every run that could carry a message", runSanitize},
	{"survey", "report run statistics and capacity of a cover", runSurvey},
}

// run dispatches to a subcommand. Usage errors carry exit status 2.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return usageErrorf("missing command")
	}
	switch args[0] {
	case "-h", "--help", "help":
		printUsage(stdout)
		return nil
	}
	for _, c := range commands {
		if c.name == args[0] {
			return c.run(ctx, args[1:], stdout, stderr)
		}
	}
	printUsage(stderr)
	return usageErrorf("unknown command %q", args[0])
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Hide and extract data in the parity of runs of equal bits.\n\nUsage:\n  runstego <command> [flags]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(w, "\nRun 'runstego <command> --help' for the flags of a command.\n")
}

type usageError struct{ err error }

func usageErrorf(format string, args ...any) error {
	return &usageError{fmt.Errorf(format, args...)}
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }
func (e *usageError) ExitCode() int { return 2 }

// loggedError marks an error the subcommand already reported through its
// logger.
type loggedError struct{ err error }

func (e *loggedError) Error() string { return e.err.Error() }
func (e *loggedError) Unwrap() error { return e.err }
