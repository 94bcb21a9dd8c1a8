package database

import (
	"context"
	"fmt"
)

const DeliveryEventsSQL = `
CREATE TABLE IF NOT EXISTS delivery_events (
    id BIGINT PRIMARY KEY AUTO_INCREMENT,
    kind ENUM('registered', 'payment_status', 'delivery_status') NOT NULL,
    code VARCHAR(128) NOT NULL,
    value VARCHAR(255) NOT NULL DEFAULT '',
    occurred_at DATETIME NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    INDEX idx_code (code),
    INDEX idx_occurred_at (occurred_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// EnsureSchema creates the journal table if it does not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, DeliveryEventsSQL); err != nil {
		return fmt.Errorf("failed to create delivery_events: %w", err)
	}
	return nil
}
