// Package spreadsheet reads and writes worksheet rows as field-named records.
// The first row of a worksheet is its header.
package spreadsheet

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrEmptyWorksheet is returned when a worksheet has no rows at all.
	ErrEmptyWorksheet = errors.New("worksheet is empty")
	// ErrKeyNotFound is returned when no row carries the requested key.
	ErrKeyNotFound = errors.New("key not found")
	// ErrWorksheetNotFound is returned when the named worksheet does not exist.
	ErrWorksheetNotFound = errors.New("worksheet not found")
)

// Record is one data row keyed by header name.
type Record map[string]string

// Get returns the trimmed value of field, or "" when absent.
func (r Record) Get(field string) string {
	return strings.TrimSpace(r[field])
}

// Source is a remote store of worksheets addressed by document ID and name.
// Every call is a single attempt; implementations do not retry.
type Source interface {
	FetchRecords(ctx context.Context, documentID, worksheet string) ([]Record, error)
	AppendRecord(ctx context.Context, documentID, worksheet string, values []any) error
	EnsureWorksheet(ctx context.Context, documentID, worksheet string, header []string) error
	UpdateCellByKey(ctx context.Context, documentID, worksheet string, keyColumn int, keyValue string, column int, value string) error
	Ping(ctx context.Context, documentID string) error
}

// ZipRows turns raw rows into records using rows[0] as the header.
// Short rows are padded with empty strings, extra cells are dropped.
func ZipRows(rows [][]string) ([]Record, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyWorksheet
	}
	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// findKeyRow returns the 1-based row number of the first data row whose
// keyColumn cell equals keyValue. The header row is never matched.
func findKeyRow(rows [][]string, keyColumn int, keyValue string) (int, error) {
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if keyColumn-1 < len(row) && row[keyColumn-1] == keyValue {
			return i + 1, nil
		}
	}
	return 0, ErrKeyNotFound
}
