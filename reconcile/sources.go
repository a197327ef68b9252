package reconcile

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"
)

// readCSVRows reads a headered CSV into one map per row. Short rows are
// padded, long rows truncated to the header width.
func readCSVRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rdr := csv.NewReader(f)
	rdr.FieldsPerRecord = -1
	rdr.LazyQuotes = true

	header, err := rdr.Read()
	if err != nil {
		return nil, err
	}

	var rows []map[string]string
	for {
		rec, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// One malformed record, not a dead source.
			continue
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// loadKeyedCSV indexes a CSV source by the first key column present in the
// header, candidates tried in order. Keys are lowercased and trimmed. A
// missing or unreadable file yields an empty map.
func loadKeyedCSV(path string, candidates []string) map[string]map[string]string {
	out := make(map[string]map[string]string)

	rows, err := readCSVRows(path)
	if err != nil {
		return out
	}
	if len(rows) == 0 {
		return out
	}

	var field string
	for _, c := range candidates {
		if _, ok := rows[0][c]; ok {
			field = c
			break
		}
	}
	if field == "" {
		return out
	}

	for _, row := range rows {
		key := strings.ToLower(strings.TrimSpace(row[field]))
		if key != "" {
			out[key] = row
		}
	}

	return out
}

// loadJSONMap reads a code-keyed JSON feature dict. Numbers keep their
// lexical form via json.Number so the output table reproduces them exactly.
// Any error yields an empty map.
func loadJSONMap(path string) map[string]any {
	out := make(map[string]any)

	f, err := os.Open(path)
	if err != nil {
		return out
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return map[string]any{}
	}

	return out
}

// formatValue renders a JSON feature value for the CSV cell.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "1"
		}
		return "0"
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// coerceCount turns a free-form count into an integer string: thousands
// separators stripped, fractional values floored. Non-numeric becomes blank,
// never an error.
func coerceCount(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return ""
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ""
	}
	return strconv.FormatInt(int64(f), 10)
}

// coercePercent is coerceCount's sibling for percentage-ish columns: a
// trailing % sign is tolerated, the numeric value is kept as-is.
func coercePercent(s string) string {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return ""
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return ""
	}
	return s
}
