package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/scavhunt/internal/models"
	"github.com/mmynk/scavhunt/internal/storage"
)

// insertGroup writes a group row plus its slot and question rows inside the
// caller's transaction.
func insertGroup(ctx context.Context, tx *sql.Tx, group *models.Group) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO groups (id, photo_url, found, location_is_solved, assembly_solved, created_at) VALUES (?, ?, 0, 0, 0, ?)",
		group.ID, group.PhotoURL, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i := range group.Slots {
		slot := &group.Slots[i]
		_, err := tx.ExecContext(ctx,
			"INSERT INTO group_slots (group_id, slot, user_id, progress, solved) VALUES (?, ?, ?, 0, 0)",
			group.ID, i, slot.UserID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group slot: %w", err)
		}

		for pos, hintID := range slot.QuestionIDs {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO slot_questions (group_id, slot, position, hint_id) VALUES (?, ?, ?, ?)",
				group.ID, i, pos, hintID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert slot question: %w", err)
			}
		}
	}

	return nil
}

// GetGroup retrieves a group with all member slots and question assignments.
func (s *SQLiteStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, photo_url, found, location_is_solved, assembly_solved, finished, created_at FROM groups WHERE id = ?",
		id,
	).Scan(&group.ID, &group.PhotoURL, &group.Found, &group.LocationIsSolved, &group.AssemblySolved, &group.Finished, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if err := s.loadSlots(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

// GetGroupByMember finds the group containing the given user.
func (s *SQLiteStore) GetGroupByMember(ctx context.Context, userID string) (*models.Group, error) {
	var groupID string
	err := s.db.QueryRowContext(ctx,
		"SELECT group_id FROM group_slots WHERE user_id = ?", userID,
	).Scan(&groupID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group for user %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find group by member: %w", err)
	}

	return s.GetGroup(ctx, groupID)
}

func (s *SQLiteStore) loadSlots(ctx context.Context, group *models.Group) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT slot, user_id, progress, solved FROM group_slots WHERE group_id = ? ORDER BY slot",
		group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get group slots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var idx int
		var slot models.MemberSlot
		if err := rows.Scan(&idx, &slot.UserID, &slot.Progress, &slot.Solved); err != nil {
			return fmt.Errorf("failed to scan group slot: %w", err)
		}
		group.Slots = append(group.Slots, slot)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate group slots: %w", err)
	}

	qrows, err := s.db.QueryContext(ctx,
		"SELECT slot, hint_id FROM slot_questions WHERE group_id = ? ORDER BY slot, position",
		group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get slot questions: %w", err)
	}
	defer qrows.Close()

	for qrows.Next() {
		var idx int
		var hintID int64
		if err := qrows.Scan(&idx, &hintID); err != nil {
			return fmt.Errorf("failed to scan slot question: %w", err)
		}
		if idx < 0 || idx >= len(group.Slots) {
			return fmt.Errorf("slot question references missing slot %d in group %s", idx, group.ID)
		}
		group.Slots[idx].QuestionIDs = append(group.Slots[idx].QuestionIDs, hintID)
	}
	if err := qrows.Err(); err != nil {
		return fmt.Errorf("failed to iterate slot questions: %w", err)
	}

	return nil
}

// MarkGroupFound flips the group's found flag. The WHERE guard makes the
// update a no-op for every caller after the first.
func (s *SQLiteStore) MarkGroupFound(ctx context.Context, groupID string) (bool, error) {
	return s.flagUpdate(ctx, groupID,
		"UPDATE groups SET found = 1 WHERE id = ? AND found = 0")
}

// MarkLocationSolved flips the group-wide location flag, once.
func (s *SQLiteStore) MarkLocationSolved(ctx context.Context, groupID string) (bool, error) {
	return s.flagUpdate(ctx, groupID,
		"UPDATE groups SET location_is_solved = 1 WHERE id = ? AND location_is_solved = 0")
}

// MarkAssemblySolved flips the final-assembly flag, once.
func (s *SQLiteStore) MarkAssemblySolved(ctx context.Context, groupID string) (bool, error) {
	return s.flagUpdate(ctx, groupID,
		"UPDATE groups SET assembly_solved = 1 WHERE id = ? AND assembly_solved = 0")
}

// MarkFinished flips the terminal finished flag, once.
func (s *SQLiteStore) MarkFinished(ctx context.Context, groupID string) (bool, error) {
	return s.flagUpdate(ctx, groupID,
		"UPDATE groups SET finished = 1 WHERE id = ? AND finished = 0")
}

func (s *SQLiteStore) flagUpdate(ctx context.Context, groupID, query string) (bool, error) {
	res, err := s.db.ExecContext(ctx, query, groupID)
	if err != nil {
		return false, fmt.Errorf("failed to update group flag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// AdvanceSlot moves a slot's question progress forward by one, guarded by the
// expected current value so a stale writer cannot skip a question.
func (s *SQLiteStore) AdvanceSlot(ctx context.Context, groupID string, slot, from int) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE group_slots SET progress = ? WHERE group_id = ? AND slot = ? AND progress = ?",
		from+1, groupID, slot, from,
	)
	if err != nil {
		return false, fmt.Errorf("failed to advance slot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// MarkSlotSolved flips one member slot's solved flag, once.
func (s *SQLiteStore) MarkSlotSolved(ctx context.Context, groupID string, slot int) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE group_slots SET solved = 1 WHERE group_id = ? AND slot = ? AND solved = 0",
		groupID, slot,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark slot solved: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}
