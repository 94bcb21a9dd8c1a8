package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/matthieukhl/sheetstock/internal/models"
)

// Execer is the subset of *sql.DB the journal writes through.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Journal keeps an append-only log of writes made to the delivery worksheet.
type Journal struct {
	db Execer
}

func NewJournal(db Execer) *Journal {
	return &Journal{db: db}
}

const insertEventSQL = `INSERT INTO delivery_events (kind, code, value, occurred_at) VALUES (?, ?, ?, ?)`

// Record inserts one event
func (j *Journal) Record(ctx context.Context, ev models.DeliveryEvent) error {
	_, err := j.db.ExecContext(ctx, insertEventSQL, ev.Kind, ev.Code, ev.Value, ev.At)
	if err != nil {
		return fmt.Errorf("failed to insert delivery event: %w", err)
	}
	return nil
}
