package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

const (
	formatYAML  = "yaml"
	formatTable = "table"
)

func validFormat(format string) error {
	switch format {
	case formatYAML, formatTable:
		return nil
	}

	return fmt.Errorf("invalid format: %q (must be %v or %v)", format, formatYAML, formatTable)
}

// list expects a format already accepted by validFormat.
func list(out io.Writer, in Input, format string) error {
	var all []Entry
	for entry, err := range entries(in) {
		if err != nil {
			return err
		}
		all = append(all, entry)
	}

	if format == formatTable {
		writeTable(out, all)
		return nil
	}

	if len(all) == 0 {
		all = []Entry{}
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(all); err != nil {
		return err
	}

	return enc.Close()
}

func writeTable(out io.Writer, all []Entry) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"line", "name", "value", "discarded"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")

	for _, e := range all {
		var discarded string
		if e.Truncated() {
			discarded = "=" + strings.Join(e.Discarded, "=")
		}

		table.Append([]string{strconv.Itoa(e.Line), e.Name, e.Value, discarded})
	}

	table.Render()
}
