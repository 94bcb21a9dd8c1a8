package spreadsheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const (
	valueInputUserEntered = "USER_ENTERED"
	newWorksheetRows      = 1000
	newWorksheetCols      = 20
)

// GoogleSource is a Source backed by the Google Sheets v4 API.
type GoogleSource struct {
	svc *gsheets.Service
}

// NewGoogleSource creates a Sheets API client with the given options.
func NewGoogleSource(ctx context.Context, opts ...option.ClientOption) (*GoogleSource, error) {
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &GoogleSource{svc: svc}, nil
}

// quoteSheet renders a worksheet name as an A1 range prefix.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func cellsToStrings(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = fmt.Sprint(cell)
		}
	}
	return rows
}

func (s *GoogleSource) FetchRecords(ctx context.Context, documentID, worksheet string) ([]Record, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(documentID, quoteSheet(worksheet)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", worksheet, err)
	}
	return ZipRows(cellsToStrings(resp.Values))
}

func (s *GoogleSource) AppendRecord(ctx context.Context, documentID, worksheet string, values []any) error {
	vr := &gsheets.ValueRange{Values: [][]interface{}{values}}
	_, err := s.svc.Spreadsheets.Values.Append(documentID, quoteSheet(worksheet), vr).
		ValueInputOption(valueInputUserEntered).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to worksheet %q: %w", worksheet, err)
	}
	return nil
}

func (s *GoogleSource) EnsureWorksheet(ctx context.Context, documentID, worksheet string, header []string) error {
	ss, err := s.svc.Spreadsheets.Get(documentID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == worksheet {
			return nil
		}
	}

	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{
					Title: worksheet,
					GridProperties: &gsheets.GridProperties{
						RowCount:    newWorksheetRows,
						ColumnCount: newWorksheetCols,
					},
				},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(documentID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to create worksheet %q: %w", worksheet, err)
	}

	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
	}
	return s.AppendRecord(ctx, documentID, worksheet, row)
}

func (s *GoogleSource) UpdateCellByKey(ctx context.Context, documentID, worksheet string, keyColumn int, keyValue string, column int, value string) error {
	col, err := excelize.ColumnNumberToName(keyColumn)
	if err != nil {
		return fmt.Errorf("invalid key column %d: %w", keyColumn, err)
	}
	keyRange := fmt.Sprintf("%s!%s:%s", quoteSheet(worksheet), col, col)
	resp, err := s.svc.Spreadsheets.Values.Get(documentID, keyRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read key column of %q: %w", worksheet, err)
	}

	// Column reads come back one cell per row, so the key sits at index 0.
	row, err := findKeyRow(cellsToStrings(resp.Values), 1, keyValue)
	if err != nil {
		return err
	}

	cell, err := excelize.CoordinatesToCellName(column, row)
	if err != nil {
		return fmt.Errorf("invalid target column %d: %w", column, err)
	}
	vr := &gsheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err = s.svc.Spreadsheets.Values.Update(documentID, quoteSheet(worksheet)+"!"+cell, vr).
		ValueInputOption(valueInputUserEntered).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update %s in %q: %w", cell, worksheet, err)
	}
	return nil
}

func (s *GoogleSource) Ping(ctx context.Context, documentID string) error {
	_, err := s.svc.Spreadsheets.Get(documentID).Fields("spreadsheetId").Context(ctx).Do()
	return err
}
