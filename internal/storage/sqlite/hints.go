package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/scavhunt/internal/models"
	"github.com/mmynk/scavhunt/internal/storage"
)

// ListHints returns the question pool in ID order.
func (s *SQLiteStore) ListHints(ctx context.Context) ([]models.Hint, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, question, answer FROM hints ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list hints: %w", err)
	}
	defer rows.Close()

	var hints []models.Hint
	for rows.Next() {
		var hint models.Hint
		if err := rows.Scan(&hint.ID, &hint.Question, &hint.Answer); err != nil {
			return nil, fmt.Errorf("failed to scan hint: %w", err)
		}
		hints = append(hints, hint)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hints: %w", err)
	}

	return hints, nil
}

// GetHint retrieves one question by ID.
func (s *SQLiteStore) GetHint(ctx context.Context, id int64) (*models.Hint, error) {
	hint := &models.Hint{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, question, answer FROM hints WHERE id = ?", id,
	).Scan(&hint.ID, &hint.Question, &hint.Answer)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("hint %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hint: %w", err)
	}

	return hint, nil
}
