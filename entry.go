package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

const maxLineSize = 1 << 20

var ErrTruncatedValue = errors.New("value truncated at '='")

// Input is a named source of NAME=VALUE lines.
type Input struct {
	Name string
	io.Reader
}

type Entry struct {
	Line  int    `yaml:"line"`
	Name  string `yaml:"name"`
	Value string `yaml:"value"`

	// Fragments after the second '=' delimited field. They never reach the
	// generated header.
	Discarded []string `yaml:"discarded,omitempty"`
}

func (e Entry) Truncated() bool {
	return len(e.Discarded) > 0
}

type MalformedEntryError struct {
	Source string
	Line   int
	Text   string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("%v:%v: missing '=' delimiter: %q", e.Source, e.Line, e.Text)
}

// ParseEntry splits text on every '=' and keeps the first two fields.
func ParseEntry(source string, lineno int, text string) (Entry, error) {
	fields := strings.Split(strings.TrimSpace(text), "=")
	if len(fields) < 2 {
		return Entry{}, &MalformedEntryError{
			Source: source,
			Line:   lineno,
			Text:   text,
		}
	}

	entry := Entry{
		Line:  lineno,
		Name:  fields[0],
		Value: fields[1],
	}
	if len(fields) > 2 {
		entry.Discarded = fields[2:]
	}

	return entry, nil
}

func entries(in Input) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

		l := 0
		for scanner.Scan() {
			l++
			entry, err := ParseEntry(in.Name, l, scanner.Text())
			if !yield(entry, err) || err != nil {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield(Entry{}, fmt.Errorf("%v: read: %w", in.Name, err))
		}
	}
}
