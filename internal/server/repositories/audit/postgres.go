package audit

import (
	"context"
	"fmt"

	"github.com/zerotask/zerotask/internal/dbx"
	"github.com/zerotask/zerotask/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetAllByUser(ctx context.Context, userID string) ([]models.AuditEntry, error) {
	query := `
		SELECT id, action, ts, details
		FROM audit_entries
		WHERE user_id = $1
		ORDER BY ts DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		e := models.AuditEntry{UserID: userID}
		if err := rows.Scan(&e.ID, &e.Action, &e.Timestamp, &e.Details); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entries, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, entry models.AuditEntry) error {
	query := `
		INSERT INTO audit_entries (id, user_id, action, ts, details)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.Action, entry.Timestamp, entry.Details); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Prune(ctx context.Context, userID string, keep int) error {
	query := `
		DELETE FROM audit_entries
		WHERE user_id = $1 AND id NOT IN (
			SELECT id FROM audit_entries
			WHERE user_id = $1
			ORDER BY ts DESC, id DESC
			LIMIT $2
		)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, keep); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
