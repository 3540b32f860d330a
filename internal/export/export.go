// Package export writes flat, ordered records to portable file formats.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrEmptyInput is returned, and no file is written, when a tabular format
	// is asked to export zero records.
	ErrEmptyInput = errors.New("no records to export")

	ErrUnknownFormat = errors.New("unknown export format")
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// Formats lists the accepted --format values.
var Formats = []Format{FormatCSV, FormatJSON, FormatXLSX}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Field is one column of a record.
type Field struct {
	Key   string
	Value any
}

// Record is an ordered set of columns. Key order is preserved in every format.
type Record []Field

// Keys returns the column names in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteCSV writes a header from the first record's keys, then one row per
// record in that column order.
func WriteCSV(w io.Writer, records []Record) error {
	if len(records) == 0 {
		return ErrEmptyInput
	}

	header := records[0].Keys()
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for _, r := range records {
		for i, key := range header {
			v, _ := r.Get(key)
			row[i] = cell(v)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes an array of objects with two-space indentation. An empty
// input writes "[]".
func WriteJSON(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteXLSX writes a single-sheet workbook with a header row.
func WriteXLSX(w io.Writer, records []Record) error {
	if len(records) == 0 {
		return ErrEmptyInput
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "export"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header := records[0].Keys()
	headerRow := make([]any, len(header))
	for i, k := range header {
		headerRow[i] = k
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return err
	}

	for n, r := range records {
		row := make([]any, len(header))
		for i, key := range header {
			row[i], _ = r.Get(key)
		}
		cellName, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// Write dispatches on format.
func Write(w io.Writer, format Format, records []Record) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatJSON:
		return WriteJSON(w, records)
	case FormatXLSX:
		return WriteXLSX(w, records)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// WriteFile exports records to path. For CSV and XLSX an empty input returns
// ErrEmptyInput without creating the file.
func WriteFile(path string, format Format, records []Record) error {
	format, err := ParseFormat(string(format))
	if err != nil {
		return err
	}
	if len(records) == 0 && format != FormatJSON {
		return ErrEmptyInput
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, format, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// DefaultFilename builds export_{kind}_{YYYYMMDD_HHMMSS}.{format}.
func DefaultFilename(kind string, format Format, now time.Time) string {
	return fmt.Sprintf("export_%s_%s.%s", kind, now.Format("20060102_150405"), format)
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	default:
		return fmt.Sprint(x)
	}
}
