// Package export renders ranked results as CSV, JSON or an aligned text table.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/okian/judgeboard/internal/domain/model"
	"github.com/okian/judgeboard/internal/domain/types"
)

// Format names an output encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ErrUnknownFormat is returned by ParseFormat and Write for unsupported formats.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat maps a user supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Write renders entries in format f. categories fixes the column order.
func Write(w io.Writer, f Format, categories []model.Category, entries []types.RankedEntry) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, categories, entries)
	case FormatJSON:
		return WriteJSON(w, entries)
	case FormatTable:
		return WriteTable(w, categories, entries)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Header returns the CSV/table header row for categories.
func Header(categories []model.Category) []string {
	row := []string{"rank", "bib", "name"}
	for _, c := range categories {
		row = append(row, c.ID+" best run", c.ID+" attempt", c.ID+" score")
	}
	return append(row, "total", "complete")
}

// Row flattens one entry. Absent values become empty cells.
func Row(categories []model.Category, e types.RankedEntry) []string {
	row := []string{strconv.Itoa(e.Rank), e.Bib, e.Name}
	for _, c := range categories {
		cs, ok := findCategory(e.Categories, c.ID)
		if !ok || cs.BestRun == 0 {
			row = append(row, "", "", "")
			continue
		}
		row = append(row, strconv.Itoa(cs.BestRun), strconv.Itoa(cs.Attempt), formatScore(cs.Average))
	}
	return append(row, formatScore(e.Total), strconv.FormatBool(e.Complete))
}

// WriteCSV writes a header row followed by one row per entry.
func WriteCSV(w io.Writer, categories []model.Category, entries []types.RankedEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(categories)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(Row(categories, e)); err != nil {
			return fmt.Errorf("write csv row for bib %s: %w", e.Bib, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes entries as an indented JSON array; absent scores are null.
func WriteJSON(w io.Writer, entries []types.RankedEntry) error {
	if entries == nil {
		entries = []types.RankedEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// WriteTable writes a tab-aligned table for terminals. Absent values show as "-".
func WriteTable(w io.Writer, categories []model.Category, entries []types.RankedEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(Header(categories), "\t"))
	for _, e := range entries {
		row := Row(categories, e)
		for i, cell := range row {
			if cell == "" {
				row[i] = "-"
			}
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func formatScore(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func findCategory(scores []types.CategoryScore, id string) (types.CategoryScore, bool) {
	for _, cs := range scores {
		if cs.CategoryID == id {
			return cs, true
		}
	}
	return types.CategoryScore{}, false
}
