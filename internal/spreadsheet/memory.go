package spreadsheet

import (
	"context"
	"fmt"
	"sync"
)

// MemorySource keeps worksheets in memory. It backs the "memory" driver and
// the service tests.
type MemorySource struct {
	mu     sync.Mutex
	docs   map[string]map[string][][]string
	failed error
}

func NewMemorySource() *MemorySource {
	return &MemorySource{docs: make(map[string]map[string][][]string)}
}

// Fail makes every subsequent call return err. Pass nil to recover.
func (m *MemorySource) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = err
}

// Put replaces a worksheet with rows (header first).
func (m *MemorySource) Put(documentID, worksheet string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs[documentID] == nil {
		m.docs[documentID] = make(map[string][][]string)
	}
	m.docs[documentID][worksheet] = rows
}

// Rows returns a copy of the raw worksheet rows.
func (m *MemorySource) Rows(documentID, worksheet string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	src := m.docs[documentID][worksheet]
	out := make([][]string, len(src))
	for i, r := range src {
		out[i] = append([]string(nil), r...)
	}
	return out
}

func (m *MemorySource) sheet(documentID, worksheet string) ([][]string, error) {
	if m.failed != nil {
		return nil, m.failed
	}
	ws, ok := m.docs[documentID][worksheet]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWorksheetNotFound, worksheet)
	}
	return ws, nil
}

func (m *MemorySource) FetchRecords(ctx context.Context, documentID, worksheet string) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, err := m.sheet(documentID, worksheet)
	if err != nil {
		return nil, err
	}
	return ZipRows(rows)
}

func (m *MemorySource) AppendRecord(ctx context.Context, documentID, worksheet string, values []any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, err := m.sheet(documentID, worksheet)
	if err != nil {
		return err
	}
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = fmt.Sprint(v)
	}
	m.docs[documentID][worksheet] = append(rows, row)
	return nil
}

func (m *MemorySource) EnsureWorksheet(ctx context.Context, documentID, worksheet string, header []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failed != nil {
		return m.failed
	}
	if _, ok := m.docs[documentID][worksheet]; ok {
		return nil
	}
	if m.docs[documentID] == nil {
		m.docs[documentID] = make(map[string][][]string)
	}
	m.docs[documentID][worksheet] = [][]string{append([]string(nil), header...)}
	return nil
}

func (m *MemorySource) UpdateCellByKey(ctx context.Context, documentID, worksheet string, keyColumn int, keyValue string, column int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, err := m.sheet(documentID, worksheet)
	if err != nil {
		return err
	}
	n, err := findKeyRow(rows, keyColumn, keyValue)
	if err != nil {
		return err
	}
	row := rows[n-1]
	for len(row) < column {
		row = append(row, "")
	}
	row[column-1] = value
	rows[n-1] = row
	return nil
}

func (m *MemorySource) Ping(ctx context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failed != nil {
		return m.failed
	}
	if _, ok := m.docs[documentID]; !ok {
		return fmt.Errorf("unknown document %q", documentID)
	}
	return nil
}
