package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const DefaultGuard = "_CONFIG_CONFIG_H"

// Emitter writes a C header with one #define per entry, straight to the
// output as the input is consumed. Whatever was written before a failure is
// left in place, so a failed run never carries the closing #endif.
type Emitter struct {
	Guard string

	// Strict rejects entries whose value was cut at a second '=' instead of
	// only warning about them.
	Strict bool

	Logger *slog.Logger
}

func (e Emitter) Emit(out io.Writer, in Input) (int, error) {
	guard := e.Guard
	if guard == "" {
		guard = DefaultGuard
	}

	logger := e.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if _, err := fmt.Fprintf(out, "#ifndef %s\n#define %s\n", guard, guard); err != nil {
		return 0, err
	}

	n := 0
	for entry, err := range entries(in) {
		if err != nil {
			return n, err
		}

		if entry.Truncated() {
			if e.Strict {
				return n, fmt.Errorf("%v:%v: %w: %v", in.Name, entry.Line, ErrTruncatedValue, entry.Name)
			}

			logger.Warn(
				"value truncated",
				"source", in.Name,
				"line", entry.Line,
				"name", entry.Name,
				"dropped", "="+strings.Join(entry.Discarded, "="),
			)
		}

		if _, err := fmt.Fprintf(out, "#define %s              %s\n", entry.Name, entry.Value); err != nil {
			return n, err
		}
		n++

		logger.Debug("define", "line", entry.Line, "name", entry.Name, "value", entry.Value)
	}

	if _, err := fmt.Fprintln(out, "#endif"); err != nil {
		return n, err
	}

	return n, nil
}
