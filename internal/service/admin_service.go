package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/scavhunt/internal/allocator"
	"github.com/mmynk/scavhunt/internal/game"
	"github.com/mmynk/scavhunt/internal/media"
	"github.com/mmynk/scavhunt/internal/metrics"
	"github.com/mmynk/scavhunt/internal/models"
	"github.com/mmynk/scavhunt/internal/realtime"
	"github.com/mmynk/scavhunt/internal/storage"
)

// AdminService implements the admin dashboard actions: the start/stop toggle
// and the game status view. StartGame is the allocation run; everything it
// writes lands in one transaction, so any failure leaves the game unstarted.
type AdminService struct {
	store storage.Store
	media media.Store
	hub   *realtime.Hub
}

// NewAdminService creates an AdminService with the given backends.
func NewAdminService(store storage.Store, mediaStore media.Store, hub *realtime.Hub) *AdminService {
	return &AdminService{store: store, media: mediaStore, hub: hub}
}

// Status describes the current game for the dashboard.
type Status struct {
	Globals   *models.Globals
	UserCount int
}

// Status returns the game state plus roster and team shape.
func (s *AdminService) Status(ctx context.Context) (*Status, error) {
	globals, err := s.store.GetGlobals(ctx)
	if err != nil {
		slog.Error("Status failed", "error", err)
		return nil, err
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	return &Status{Globals: globals, UserCount: len(users)}, nil
}

// StartGame forms teams from the full roster, allocates a distinct pool image
// and the question set to every group, then flips the global started flag.
// Allocation failures (no users, short image pool, short question pool) abort
// the whole transition.
func (s *AdminService) StartGame(ctx context.Context) ([]*models.Group, error) {
	slog.Info("StartGame request received")

	globals, err := s.store.GetGlobals(ctx)
	if err != nil {
		return nil, err
	}
	if globals.GameHasStarted {
		return nil, conflictf("game has already started")
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	hints, err := s.store.ListHints(ctx)
	if err != nil {
		return nil, err
	}
	questionIDs := make([]int64, len(hints))
	for i, hint := range hints {
		questionIDs[i] = hint.ID
	}

	groups, err := allocator.FormTeams(users, questionIDs)
	if err != nil {
		slog.Warn("StartGame allocation failed", "users", len(users), "error", err)
		return nil, conflictf("%v", err)
	}

	pool, err := s.media.List(ctx, media.PoolPrefix)
	if err != nil {
		slog.Error("StartGame failed listing image pool", "error", err)
		return nil, externalErr(err)
	}

	claimed, err := s.store.AllocatedImages(ctx)
	if err != nil {
		return nil, err
	}

	images, err := allocator.DrawImages(pool, claimed, len(groups))
	if err != nil {
		slog.Warn("StartGame image draw failed", "pool", len(pool), "groups", len(groups), "error", err)
		return nil, conflictf("%v", err)
	}
	for i, group := range groups {
		group.PhotoURL = s.media.URL(images[i])
	}

	loc := globals.Location
	if loc.IsZero() {
		loc = game.RandomLocation()
		slog.Info("Generated game location", "building", loc.Building, "floor", loc.Floor)
	}

	if err := s.store.StartGame(ctx, groups, images, loc); err != nil {
		slog.Error("StartGame transaction failed", "error", err)
		return nil, err
	}

	sizes := make([]int, len(groups))
	for i, group := range groups {
		sizes[i] = len(group.Slots)
	}

	metrics.GamesStarted.Inc()
	s.hub.GlobalsChanged()
	slog.Info("Game started", "groups", len(groups), "sizes", sizes)

	return groups, nil
}

// StopGame clears all groups, releases the claimed images and resets the
// game flags.
func (s *AdminService) StopGame(ctx context.Context) error {
	slog.Info("StopGame request received")

	globals, err := s.store.GetGlobals(ctx)
	if err != nil {
		return err
	}
	if !globals.GameHasStarted {
		return conflictf("game is not running")
	}

	if err := s.store.StopGame(ctx); err != nil {
		slog.Error("StopGame failed", "error", err)
		return err
	}

	s.hub.GlobalsChanged()
	slog.Info("Game stopped")

	return nil
}
