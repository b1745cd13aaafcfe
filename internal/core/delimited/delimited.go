// Package delimited parses and formats the dataset's flat files: one record
// per line, fields separated by a multi-character delimiter so in-field
// commas survive.
package delimited

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/example/bestiary/internal/core/schema"
)

// Delimiter separates fields within a record.
const Delimiter = "{}{}{}"

// Missing pads short rows on import.
const Missing = "N/A"

// ColumnSpec is one positional column of an imported table.
type ColumnSpec struct {
	Name string
	Type schema.ColumnType
}

// Parse splits text into trimmed, non-empty rows of trimmed fields.
func Parse(text string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, Delimiter)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		rows = append(rows, parts)
	}
	return rows
}

// Width is the widest row, never less than 1.
func Width(rows [][]string) int {
	w := 1
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// InferColumns names columns column1..columnN and types a column REAL when
// every row has a value there, at least one value is non-empty, and every
// non-empty value parses fully as a finite number. Anything else is TEXT.
func InferColumns(rows [][]string) []ColumnSpec {
	width := Width(rows)
	specs := make([]ColumnSpec, width)
	for i := 0; i < width; i++ {
		specs[i] = ColumnSpec{Name: fmt.Sprintf("column%d", i+1), Type: inferType(rows, i)}
	}
	return specs
}

func inferType(rows [][]string, col int) schema.ColumnType {
	seen := false
	for _, r := range rows {
		if col >= len(r) {
			// Short rows are padded with Missing, which is never numeric.
			return schema.Text
		}
		v := r[col]
		if v == "" {
			continue
		}
		if !isFiniteNumber(v) {
			return schema.Text
		}
		seen = true
	}
	if !seen {
		return schema.Text
	}
	return schema.Real
}

func isFiniteNumber(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

var floatPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// CoerceCell converts an imported value: a leading decimal number becomes a
// float64 ("3" -> 3, "2.5kg" -> 2.5), everything else stays text.
func CoerceCell(s string) any {
	m := floatPrefix.FindString(s)
	if m == "" {
		return s
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return s
	}
	return f
}

// Row coerces and pads one parsed row to width.
func Row(fields []string, width int) []any {
	out := make([]any, width)
	for i := 0; i < width; i++ {
		if i < len(fields) {
			out[i] = CoerceCell(fields[i])
			continue
		}
		out[i] = Missing
	}
	return out
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// TableName derives the table from a file path: base name, first ".csv"
// removed, every character outside [A-Za-z0-9_] replaced by "_".
func TableName(path string) string {
	base := filepath.Base(path)
	base = strings.Replace(base, ".csv", "", 1)
	return unsafeName.ReplaceAllString(base, "_")
}

// FormatValue renders one stored value for export. nil is the empty string
// and whole floats drop their fraction.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

// FormatRow joins a row with the delimiter.
func FormatRow(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatValue(v)
	}
	return strings.Join(parts, Delimiter)
}
