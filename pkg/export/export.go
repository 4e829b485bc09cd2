// Package export holds the format-side helpers the row-table sinks share:
// sheet model, sheet title sanitizing and semicolon-delimited CSV writing.
// Binary spreadsheet layout is the consumer's concern, not ours.
package export

import (
	"encoding/csv"
	"io"
	"strings"
)

// Sheet is one named row table of a workbook-shaped export.
type Sheet struct {
	Title string     `json:"title"`
	Rows  [][]string `json:"rows"`
}

// Workbook is the sink-agnostic spreadsheet: an ordered list of sheets.
type Workbook struct {
	Sheets []*Sheet `json:"sheets"`
}

func (w *Workbook) AddSheet(title string) *Sheet {
	s := &Sheet{Title: SafeSheetTitle(title, "Feuille")}
	w.Sheets = append(w.Sheets, s)
	return s
}

func (s *Sheet) Append(row ...string) {
	s.Rows = append(s.Rows, row)
}

const maxSheetTitleLen = 31

// SafeSheetTitle makes a name acceptable as a spreadsheet sheet title:
// at most 31 characters, with the characters []:*?/\ stripped.
func SafeSheetTitle(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			continue
		}
		b.WriteRune(r)
	}
	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" {
		return fallback
	}
	if len([]rune(cleaned)) > maxSheetTitleLen {
		cleaned = string([]rune(cleaned)[:maxSheetTitleLen])
	}
	return cleaned
}

// WriteCSV streams rows with the export convention's semicolon delimiter.
func WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
