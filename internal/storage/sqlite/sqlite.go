// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/scavhunt/internal/models"
	"github.com/mmynk/scavhunt/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// StartGame replaces all groups, claims the drawn images, stores the location
// and flips the started flag in a single transaction.
func (s *SQLiteStore) StartGame(ctx context.Context, groups []*models.Group, images []string, loc models.Location) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteGroups(ctx, tx); err != nil {
		return err
	}

	for _, group := range groups {
		if err := insertGroup(ctx, tx, group); err != nil {
			return err
		}
	}

	for _, name := range images {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO image_allocations (name) VALUES (?)", name)
		if err != nil {
			return fmt.Errorf("failed to claim image %q: %w", name, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE globals SET game_has_started = 1,
			building = ?, floor = ?, aisle = ?, section = ? WHERE id = 1`,
		loc.Building, loc.Floor, loc.Aisle, loc.Section)
	if err != nil {
		return fmt.Errorf("failed to flip started flag: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// StopGame deletes all groups, releases claimed images and resets the game
// flags in a single transaction. The location survives so a restarted game
// can reuse it.
func (s *SQLiteStore) StopGame(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteGroups(ctx, tx); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM image_allocations"); err != nil {
		return fmt.Errorf("failed to release images: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE globals SET game_has_started = 0,
			checkpoint1_completed = 0, checkpoint2_completed = 0, checkpoint3_completed = 0
		 WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("failed to reset game flags: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// deleteGroups clears all group rows and their children. Child tables are
// deleted explicitly rather than via cascade, which only fires on connections
// where the foreign_keys pragma took effect.
func deleteGroups(ctx context.Context, tx *sql.Tx) error {
	for _, table := range []string{"slot_questions", "group_slots", "groups"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// AllocatedImages returns the image names claimed during the current run.
func (s *SQLiteStore) AllocatedImages(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM image_allocations")
	if err != nil {
		return nil, fmt.Errorf("failed to list allocated images: %w", err)
	}
	defer rows.Close()

	claimed := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan allocated image: %w", err)
		}
		claimed[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate allocated images: %w", err)
	}

	return claimed, nil
}
