package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/scavhunt/internal/models"
)

// GetGlobals returns the singleton game state row. Migrations guarantee the
// row exists.
func (s *SQLiteStore) GetGlobals(ctx context.Context) (*models.Globals, error) {
	globals := &models.Globals{}
	err := s.db.QueryRowContext(ctx,
		`SELECT game_has_started,
			checkpoint1_completed, checkpoint2_completed, checkpoint3_completed,
			building, floor, aisle, section
		 FROM globals WHERE id = 1`,
	).Scan(
		&globals.GameHasStarted,
		&globals.Checkpoint1Completed, &globals.Checkpoint2Completed, &globals.Checkpoint3Completed,
		&globals.Location.Building, &globals.Location.Floor, &globals.Location.Aisle, &globals.Location.Section,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get globals: %w", err)
	}

	return globals, nil
}

// MarkCheckpointCompleted records that some group cleared checkpoint n (1-3).
func (s *SQLiteStore) MarkCheckpointCompleted(ctx context.Context, n int) error {
	var column string
	switch n {
	case 1:
		column = "checkpoint1_completed"
	case 2:
		column = "checkpoint2_completed"
	case 3:
		column = "checkpoint3_completed"
	default:
		return fmt.Errorf("invalid checkpoint number: %d", n)
	}

	_, err := s.db.ExecContext(ctx,
		"UPDATE globals SET "+column+" = 1 WHERE id = 1")
	if err != nil {
		return fmt.Errorf("failed to mark checkpoint %d completed: %w", n, err)
	}

	return nil
}
