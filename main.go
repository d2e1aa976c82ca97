package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

func main() {
	if err := realMain(
		context.Background(),
		os.Args,
		os.Stdin,
		os.Stdout,
		os.Stderr,
	); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		if isatty.IsTerminal(os.Stderr.Fd()) {
			colorError.EnableColor()
		} else {
			colorError.DisableColor()
		}

		fmt.Fprintf(os.Stderr, "%v: %v\n", colorError.Sprint("error"), err)
		os.Exit(1)
	}
}

var colorError = color.New(color.FgRed, color.Bold)

func realMain(
	ctx context.Context,
	args []string,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
) error {
	exec := args[0]

	fs := flag.NewFlagSet(exec, flag.ContinueOnError)
	fs.SetOutput(stderr)
	flagGuard := fs.String("guard", DefaultGuard, "include guard token")
	flagStrict := fs.Bool("strict", false, "fail on values cut at a second '='")
	flagDebug := fs.Bool("debug", false, "debug logging")

	listfs := flag.NewFlagSet("list", flag.ContinueOnError)
	listfs.SetOutput(stderr)
	flagFormat := listfs.String("format", formatYAML, "output format: yaml or table")

	listCmd := &ffcli.Command{
		Name:       "list",
		ShortUsage: fmt.Sprintf("%v list [-format yaml|table] [file]", exec),
		ShortHelp:  "Print parsed entries instead of a header",
		FlagSet:    listfs,
		Exec: func(_ context.Context, args []string) error {
			if err := validFormat(*flagFormat); err != nil {
				return err
			}

			in, closer, err := openInput(stdin, args)
			if err != nil {
				return err
			}
			defer closer()

			return list(stdout, in, *flagFormat)
		},
	}

	rootCmd := &ffcli.Command{
		Name:        exec,
		ShortUsage:  fmt.Sprintf("%v [flags] [file] < config", exec),
		ShortHelp:   "Generate a C header from NAME=VALUE lines",
		LongHelp:    fmt.Sprintf("Every line must contain '='; input lines are limited to %v.", humanize.IBytes(maxLineSize)),
		FlagSet:     fs,
		Options:     []ff.Option{ff.WithEnvVarPrefix("CONFIGHDR")},
		Subcommands: []*ffcli.Command{listCmd},
		Exec: func(_ context.Context, args []string) error {
			logger := newLogger(stderr, *flagDebug)

			in, closer, err := openInput(stdin, args)
			if err != nil {
				return err
			}
			defer closer()

			if f, ok := in.Reader.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
				logger.Debug("reading entries from terminal, end input with ctrl-d")
			}

			emitter := Emitter{
				Guard:  *flagGuard,
				Strict: *flagStrict,
				Logger: logger,
			}

			cw := &countingWriter{w: stdout}
			n, err := emitter.Emit(cw, in)
			if err != nil {
				return err
			}

			logger.Debug(
				"header written",
				"guard", emitter.Guard,
				"entries", humanize.Comma(int64(n)),
				"size", humanize.Bytes(uint64(cw.n)),
			)

			return nil
		},
	}

	return rootCmd.ParseAndRun(ctx, args[1:])
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(
		slog.NewTextHandler(
			w,
			&slog.HandlerOptions{Level: level},
		),
	)
}

func openInput(stdin io.Reader, args []string) (Input, func() error, error) {
	nop := func() error { return nil }

	switch {
	case len(args) > 1:
		return Input{}, nop, fmt.Errorf("expected at most one input file, got %v", len(args))
	case len(args) == 0 || args[0] == "-":
		return Input{Name: "stdin", Reader: stdin}, nop, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return Input{}, nop, fmt.Errorf("open-input: %w", err)
	}

	return Input{Name: args[0], Reader: f}, f.Close, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
