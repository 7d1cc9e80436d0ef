// Package storage provides abstractions for persistent game state.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/scavhunt/internal/models"
)

// ErrNotFound is returned for point lookups that match nothing. Callers use
// errors.Is to distinguish a missing record from a storage failure.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence interface the services operate on. All group
// flag transitions are exposed as single-field conditional updates, never
// full-record overwrites, so two members writing different per-slot flags
// concurrently cannot clobber each other. The boolean result of a flag method
// reports whether this call performed the flip; false means another writer
// already did, which callers treat as a no-op.
type Store interface {
	// CreateUser persists a new user. The user.ID field is populated by the
	// store; a duplicate email fails.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by their unique email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsers returns the full roster.
	ListUsers(ctx context.Context) ([]models.User, error)

	// ListHints returns the question pool in ID order.
	ListHints(ctx context.Context) ([]models.Hint, error)

	// GetHint retrieves one question by ID.
	GetHint(ctx context.Context, id int64) (*models.Hint, error)

	// GetGroup retrieves a group with all member slots.
	GetGroup(ctx context.Context, id string) (*models.Group, error)

	// GetGroupByMember finds the group containing the given user.
	GetGroupByMember(ctx context.Context, userID string) (*models.Group, error)

	// MarkGroupFound flips the group's found flag, once.
	MarkGroupFound(ctx context.Context, groupID string) (bool, error)

	// AdvanceSlot moves a slot's question progress from `from` to from+1.
	// Returns false if the stored progress no longer equals `from`.
	AdvanceSlot(ctx context.Context, groupID string, slot, from int) (bool, error)

	// MarkSlotSolved flips one member slot's solved flag, once.
	MarkSlotSolved(ctx context.Context, groupID string, slot int) (bool, error)

	// MarkLocationSolved flips the group-wide location flag, once. The second
	// of two racing members observes false and performs no write.
	MarkLocationSolved(ctx context.Context, groupID string) (bool, error)

	// MarkAssemblySolved flips the final-assembly flag, once.
	MarkAssemblySolved(ctx context.Context, groupID string) (bool, error)

	// MarkFinished flips the terminal finished flag, once.
	MarkFinished(ctx context.Context, groupID string) (bool, error)

	// GetGlobals returns the singleton game state row.
	GetGlobals(ctx context.Context) (*models.Globals, error)

	// MarkCheckpointCompleted records that some group cleared checkpoint n
	// (1-3) for the admin progress view.
	MarkCheckpointCompleted(ctx context.Context, n int) error

	// AllocatedImages returns the image names claimed during the current
	// game run.
	AllocatedImages(ctx context.Context) (map[string]bool, error)

	// StartGame atomically replaces all groups, claims the drawn images,
	// stores the location and flips the started flag. If any part fails the
	// whole transition rolls back and the game stays unstarted.
	StartGame(ctx context.Context, groups []*models.Group, images []string, loc models.Location) error

	// StopGame atomically deletes all groups, releases claimed images and
	// resets the started and checkpoint flags.
	StopGame(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
