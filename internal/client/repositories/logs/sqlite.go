package logs

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zerotask/zerotask/internal/client/models"
	"github.com/zerotask/zerotask/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetAll lists entries newest first. Ties on timestamp are broken by rowid so
// the order stays stable for entries recorded within the same millisecond.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.AuditEntry, error) {
	query := `SELECT id, action, timestamp, details, user_id FROM logs ORDER BY timestamp DESC, rowid DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select logs: %w", err)
	}
	defer rows.Close()

	var result []models.AuditEntry
	for rows.Next() {
		var item models.AuditEntry
		var userID sql.NullString
		if err := rows.Scan(&item.ID, &item.Action, &item.Timestamp, &item.Details, &userID); err != nil {
			return nil, err
		}
		item.UserID = userID.String
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, e models.AuditEntry) error {
	query := `INSERT INTO logs (id, action, timestamp, details, user_id) VALUES (?, ?, ?, ?, ?)`

	var userID any
	if e.UserID != "" {
		userID = e.UserID
	}
	if _, err := r.db.ExecContext(ctx, query, e.ID, e.Action, e.Timestamp, e.Details, userID); err != nil {
		return fmt.Errorf("failed to insert log entry: %w", err)
	}
	return nil
}

// Prune keeps only the keep newest entries and deletes the rest.
func (r *SQLiteRepository) Prune(ctx context.Context, keep int) error {
	query := `DELETE FROM logs WHERE id NOT IN (
		SELECT id FROM logs ORDER BY timestamp DESC, rowid DESC LIMIT ?
	)`
	if _, err := r.db.ExecContext(ctx, query, keep); err != nil {
		return fmt.Errorf("failed to prune logs: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM logs`); err != nil {
		return fmt.Errorf("failed to clear logs: %w", err)
	}
	return nil
}
