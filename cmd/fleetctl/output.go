package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jmespath-community/go-jmespath"
	"github.com/onebus/fleet-console/internal/console"
	"github.com/onebus/fleet-console/internal/export"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// errorText is the line printed for a failed command.
func errorText(err error) string {
	return console.FeedbackMessage(err, err.Error())
}

func writeTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(headers, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// writeListing prints the page as a table followed by the page summary and
// the numbered page controls.
func writeListing(w io.Writer, t export.Table, listing console.Listing) error {
	if len(t.Rows) == 0 {
		if err := writeln(w, "No records found."); err != nil {
			return err
		}
	} else {
		headers := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			headers[i] = strings.ToUpper(c.Header)
		}
		rows := make([][]string, len(t.Rows))
		for i, r := range t.Rows {
			row := make([]string, len(t.Columns))
			for j, c := range t.Columns {
				row[j] = oneLine(export.CellText(r[c.Key]))
			}
			rows[i] = row
		}
		if err := writeTable(w, headers, rows); err != nil {
			return err
		}
	}

	p := listing.Pagination
	if p.TotalPages == 0 {
		return nil
	}
	summary := message.NewPrinter(language.BrazilianPortuguese).
		Sprintf("Page %d of %d (%d records)", p.CurrentPage+1, p.TotalPages, p.TotalItems)
	return writef(w, "\n%s  %s\n", summary, windowLine(listing.Window, p.CurrentPage))
}

// windowLine renders zero-based page indices one-based, with the current
// page bracketed.
func windowLine(window []int, current int) string {
	parts := make([]string, len(window))
	for i, p := range window {
		if p == current {
			parts[i] = fmt.Sprintf("[%d]", p+1)
		} else {
			parts[i] = fmt.Sprintf("%d", p+1)
		}
	}
	return strings.Join(parts, " ")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// writeJSON prints v indented. A non-empty query is evaluated against the
// generic JSON form of v first.
func writeJSON(w io.Writer, v any, query string) error {
	if query != "" {
		generic, err := toGeneric(v)
		if err != nil {
			return err
		}
		if v, err = jmespath.Search(query, generic); err != nil {
			return usageError("query %q: %v", query, err)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func toGeneric(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode output: %w", err)
	}
	return out, nil
}
