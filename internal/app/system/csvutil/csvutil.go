// internal/app/system/csvutil/csvutil.go
package csvutil

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/export"
)

// MaxRows bounds a single export.
const MaxRows = 10000

// Escape neutralizes cells that spreadsheet programs would evaluate as a
// formula.
func Escape(cell string) string {
	if cell == "" {
		return cell
	}
	switch cell[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + cell
	}
	return cell
}

// Write streams header and rows as a CSV attachment named filename.
func Write(w http.ResponseWriter, filename string, header []string, rows [][]string) error {
	if len(rows) > MaxRows {
		return fmt.Errorf("csv export: %d rows exceeds limit of %d", len(rows), MaxRows)
	}

	out := export.NewCSV().UseLF().Headers(header...)
	for _, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = Escape(cell)
		}
		out.Row(cells...)
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sanitizeFilename(filename)))
	if err := out.Write(w); err != nil {
		return fmt.Errorf("csv export: %w", err)
	}
	return nil
}

func sanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, name)
	if name == "" {
		return "export.csv"
	}
	return name
}
