// Package batch reads CSV uploads into ordered records, one QR payload per row.
package batch

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
)

var (
	// ErrNoRows is returned when the CSV has no data rows below the header.
	ErrNoRows = errors.New("csv has no data rows")
	// ErrMalformedCSV wraps parse errors from the csv reader.
	ErrMalformedCSV = errors.New("malformed csv")
)

// Record maps column name to cell value, keeping the CSV column order.
type Record struct {
	fields *orderedmap.OrderedMap[string, string]
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{fields: orderedmap.NewOrderedMap[string, string]()}
}

// Set assigns a cell. New columns are appended after existing ones.
func (r *Record) Set(column, value string) {
	r.fields.Set(column, value)
}

// Get returns the cell for column.
func (r *Record) Get(column string) (string, bool) {
	return r.fields.Get(column)
}

// Len returns the number of columns.
func (r *Record) Len() int { return r.fields.Len() }

// Columns returns column names in order.
func (r *Record) Columns() []string {
	cols := make([]string, 0, r.fields.Len())
	for el := r.fields.Front(); el != nil; el = el.Next() {
		cols = append(cols, el.Key)
	}
	return cols
}

// Payload serializes the record as a JSON object with keys in column order.
func (r *Record) Payload() (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for el := r.fields.Front(); el != nil; el = el.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(el.Key)
		if err != nil {
			return "", err
		}
		v, err := json.Marshal(el.Value)
		if err != nil {
			return "", err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.String(), nil
}

// Read parses CSV data whose first row is the header.
// Rows shorter than the header get empty cells; extra cells are dropped.
// Repeated header names get a ".N" suffix so no column is lost.
func Read(r io.Reader) ([]*Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, errors.Join(ErrMalformedCSV, err)
	}
	header = uniqueColumns(header)

	var records []*Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Join(ErrMalformedCSV, err)
		}
		rec := NewRecord()
		for i, col := range header {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			rec.Set(col, cell)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, ErrNoRows
	}
	return records, nil
}

// Preview returns at most the first n records.
func Preview(records []*Record, n int) []*Record {
	if n < 0 || n >= len(records) {
		return records
	}
	return records[:n]
}

func uniqueColumns(header []string) []string {
	names := make([]string, len(header))
	taken := make(map[string]bool, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = "column_" + strconv.Itoa(i+1)
		}
		names[i] = h
		taken[h] = true
	}

	out := make([]string, len(names))
	used := make(map[string]bool, len(names))
	next := make(map[string]int, len(names))
	for i, h := range names {
		name := h
		if used[name] {
			n := next[h]
			for {
				n++
				name = fmt.Sprintf("%s.%d", h, n)
				if !used[name] && !taken[name] {
					break
				}
			}
			next[h] = n
		}
		used[name] = true
		out[i] = name
	}
	return out
}
