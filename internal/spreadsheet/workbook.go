package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// WorkbookSource is a Source backed by local .xlsx files, one file per
// document ID, stored under a directory.
type WorkbookSource struct {
	dir string
	mu  sync.Mutex
}

// NewWorkbookSource returns a WorkbookSource rooted at dir.
func NewWorkbookSource(dir string) *WorkbookSource {
	return &WorkbookSource{dir: dir}
}

// Path returns the workbook file of a document.
func (s *WorkbookSource) Path(documentID string) string {
	return filepath.Join(s.dir, documentID+".xlsx")
}

func (s *WorkbookSource) open(documentID string) (*excelize.File, error) {
	f, err := excelize.OpenFile(s.Path(documentID))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %q: %w", documentID, err)
	}
	return f, nil
}

func sheetRows(f *excelize.File, worksheet string) ([][]string, error) {
	idx, err := f.GetSheetIndex(worksheet)
	if err != nil {
		return nil, err
	}
	if idx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrWorksheetNotFound, worksheet)
	}
	return f.GetRows(worksheet)
}

func (s *WorkbookSource) FetchRecords(ctx context.Context, documentID, worksheet string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open(documentID)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := sheetRows(f, worksheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", worksheet, err)
	}
	return ZipRows(rows)
}

// userEntered mimics the USER_ENTERED input option: numeric strings are
// stored as numbers.
func userEntered(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	return s
}

func appendRow(f *excelize.File, worksheet string, values []any) error {
	rows, err := sheetRows(f, worksheet)
	if err != nil {
		return err
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = userEntered(v)
	}
	return f.SetSheetRow(worksheet, cell, &row)
}

func (s *WorkbookSource) AppendRecord(ctx context.Context, documentID, worksheet string, values []any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open(documentID)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := appendRow(f, worksheet, values); err != nil {
		return fmt.Errorf("failed to append to worksheet %q: %w", worksheet, err)
	}
	return f.Save()
}

func (s *WorkbookSource) EnsureWorksheet(ctx context.Context, documentID, worksheet string, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(documentID)
	var f *excelize.File
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return fmt.Errorf("failed to create workbook dir: %w", err)
		}
		f = excelize.NewFile()
		if err := f.SetSheetName(f.GetSheetName(0), worksheet); err != nil {
			f.Close()
			return err
		}
	} else {
		opened, err := s.open(documentID)
		if err != nil {
			return err
		}
		f = opened
		idx, err := f.GetSheetIndex(worksheet)
		if err != nil {
			f.Close()
			return err
		}
		if idx != -1 {
			return f.Close()
		}
		if _, err := f.NewSheet(worksheet); err != nil {
			f.Close()
			return fmt.Errorf("failed to create worksheet %q: %w", worksheet, err)
		}
	}
	defer f.Close()

	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
	}
	if err := appendRow(f, worksheet, row); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func (s *WorkbookSource) UpdateCellByKey(ctx context.Context, documentID, worksheet string, keyColumn int, keyValue string, column int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open(documentID)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := sheetRows(f, worksheet)
	if err != nil {
		return fmt.Errorf("failed to read worksheet %q: %w", worksheet, err)
	}
	row, err := findKeyRow(rows, keyColumn, keyValue)
	if err != nil {
		return err
	}
	cell, err := excelize.CoordinatesToCellName(column, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(worksheet, cell, value); err != nil {
		return fmt.Errorf("failed to update %s in %q: %w", cell, worksheet, err)
	}
	return f.Save()
}

func (s *WorkbookSource) Ping(ctx context.Context, documentID string) error {
	_, err := os.Stat(s.Path(documentID))
	return err
}
