package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/scavhunt/internal/models"
	"github.com/mmynk/scavhunt/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "scavhunt-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser generates ID and timestamp", func(t *testing.T) {
		user := &models.User{
			Email:     "alice@example.edu",
			Name:      "Alice",
			Major:     "Physics",
			SelfieURL: "/media/selfies/alice.jpg",
		}

		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.ID == "" {
			t.Error("Expected user ID to be generated")
		}
		if user.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetUser retrieves the record", func(t *testing.T) {
		user := &models.User{Email: "bob@example.edu", Name: "Bob", Major: "History"}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		got, err := store.GetUser(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got.Email != "bob@example.edu" || got.Name != "Bob" || got.Major != "History" {
			t.Errorf("GetUser returned %+v", got)
		}
	})

	t.Run("GetUserByEmail is case-insensitive on stored email", func(t *testing.T) {
		user := &models.User{Email: "Carol@Example.edu", Name: "Carol", Major: "CS"}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		got, err := store.GetUserByEmail(ctx, "carol@example.edu")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("GetUserByEmail returned user %s, want %s", got.ID, user.ID)
		}
	})

	t.Run("duplicate email fails", func(t *testing.T) {
		user := &models.User{Email: "alice@example.edu", Name: "Alice Again", Major: "Math"}
		if err := store.CreateUser(ctx, user); err == nil {
			t.Error("Expected duplicate email to fail")
		}
	})

	t.Run("missing user returns ErrNotFound", func(t *testing.T) {
		if _, err := store.GetUser(ctx, "no-such-id"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetUser error = %v, want ErrNotFound", err)
		}
		if _, err := store.GetUserByEmail(ctx, "nobody@example.edu"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetUserByEmail error = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListUsers returns the roster", func(t *testing.T) {
		users, err := store.ListUsers(ctx)
		if err != nil {
			t.Fatalf("ListUsers failed: %v", err)
		}
		if len(users) != 3 {
			t.Errorf("ListUsers returned %d users, want 3", len(users))
		}
	})
}

func TestHints(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	hints, err := store.ListHints(ctx)
	if err != nil {
		t.Fatalf("ListHints failed: %v", err)
	}
	if len(hints) != 4 {
		t.Fatalf("ListHints returned %d hints, want 4", len(hints))
	}
	for i, hint := range hints {
		if hint.ID != int64(i+1) {
			t.Errorf("hint %d has ID %d, want %d", i, hint.ID, i+1)
		}
		if hint.Question == "" || hint.Answer == "" {
			t.Errorf("hint %d is missing question or answer", hint.ID)
		}
	}

	hint, err := store.GetHint(ctx, hints[0].ID)
	if err != nil {
		t.Fatalf("GetHint failed: %v", err)
	}
	if hint.Answer != hints[0].Answer {
		t.Errorf("GetHint answer = %q, want %q", hint.Answer, hints[0].Answer)
	}

	if _, err := store.GetHint(ctx, 999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetHint error = %v, want ErrNotFound", err)
	}
}

func testGroups(t *testing.T, store *SQLiteStore, ctx context.Context) []*models.Group {
	t.Helper()

	users := make([]*models.User, 5)
	for i, name := range []string{"Dave", "Erin", "Frank", "Grace", "Heidi"} {
		users[i] = &models.User{Email: name + "@example.edu", Name: name, Major: "Undeclared"}
		if err := store.CreateUser(ctx, users[i]); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	groups := []*models.Group{
		{
			ID:       "group-1",
			PhotoURL: "/media/auto/a.jpg",
			Slots: []models.MemberSlot{
				{UserID: users[0].ID, QuestionIDs: []int64{1, 2}},
				{UserID: users[1].ID, QuestionIDs: []int64{3, 4}},
			},
			CreatedAt: 1700000000,
		},
		{
			ID:       "group-2",
			PhotoURL: "/media/auto/b.jpg",
			Slots: []models.MemberSlot{
				{UserID: users[2].ID, QuestionIDs: []int64{1, 2}},
				{UserID: users[3].ID, QuestionIDs: []int64{3}},
				{UserID: users[4].ID, QuestionIDs: []int64{4}},
			},
			CreatedAt: 1700000000,
		},
	}

	loc := models.Location{Building: "Library", Floor: 2, Aisle: 21, Section: "C"}
	if err := store.StartGame(ctx, groups, []string{"auto/a.jpg", "auto/b.jpg"}, loc); err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}

	return groups
}

func TestGroupLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	groups := testGroups(t, store, ctx)

	t.Run("StartGame flips the started flag and stores the location", func(t *testing.T) {
		globals, err := store.GetGlobals(ctx)
		if err != nil {
			t.Fatalf("GetGlobals failed: %v", err)
		}
		if !globals.GameHasStarted {
			t.Error("Expected game to be started")
		}
		if globals.Location.Building != "Library" || globals.Location.Aisle != 21 {
			t.Errorf("Location = %+v", globals.Location)
		}
	})

	t.Run("GetGroup round-trips slots and questions", func(t *testing.T) {
		got, err := store.GetGroup(ctx, "group-2")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(got.Slots) != 3 {
			t.Fatalf("got %d slots, want 3", len(got.Slots))
		}
		if got.PhotoURL != "/media/auto/b.jpg" {
			t.Errorf("PhotoURL = %q", got.PhotoURL)
		}
		if len(got.Slots[0].QuestionIDs) != 2 || got.Slots[0].QuestionIDs[0] != 1 {
			t.Errorf("slot 0 questions = %v", got.Slots[0].QuestionIDs)
		}
		if len(got.Slots[2].QuestionIDs) != 1 || got.Slots[2].QuestionIDs[0] != 4 {
			t.Errorf("slot 2 questions = %v", got.Slots[2].QuestionIDs)
		}
	})

	t.Run("GetGroupByMember finds the containing group", func(t *testing.T) {
		memberID := groups[1].Slots[1].UserID
		got, err := store.GetGroupByMember(ctx, memberID)
		if err != nil {
			t.Fatalf("GetGroupByMember failed: %v", err)
		}
		if got.ID != "group-2" {
			t.Errorf("GetGroupByMember returned group %s, want group-2", got.ID)
		}

		if _, err := store.GetGroupByMember(ctx, "no-such-user"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetGroupByMember error = %v, want ErrNotFound", err)
		}
	})

	t.Run("AllocatedImages reflects the claimed set", func(t *testing.T) {
		claimed, err := store.AllocatedImages(ctx)
		if err != nil {
			t.Fatalf("AllocatedImages failed: %v", err)
		}
		if !claimed["auto/a.jpg"] || !claimed["auto/b.jpg"] || len(claimed) != 2 {
			t.Errorf("claimed = %v", claimed)
		}
	})

	t.Run("flag flips are one-time", func(t *testing.T) {
		flipped, err := store.MarkGroupFound(ctx, "group-1")
		if err != nil {
			t.Fatalf("MarkGroupFound failed: %v", err)
		}
		if !flipped {
			t.Error("Expected first MarkGroupFound to flip")
		}

		flipped, err = store.MarkGroupFound(ctx, "group-1")
		if err != nil {
			t.Fatalf("MarkGroupFound failed: %v", err)
		}
		if flipped {
			t.Error("Expected second MarkGroupFound to be a no-op")
		}

		flipped, err = store.MarkLocationSolved(ctx, "group-1")
		if err != nil {
			t.Fatalf("MarkLocationSolved failed: %v", err)
		}
		if !flipped {
			t.Error("Expected first MarkLocationSolved to flip")
		}
		flipped, err = store.MarkLocationSolved(ctx, "group-1")
		if err != nil {
			t.Fatalf("MarkLocationSolved failed: %v", err)
		}
		if flipped {
			t.Error("Expected second MarkLocationSolved to be a no-op")
		}

		got, err := store.GetGroup(ctx, "group-1")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if !got.Found || !got.LocationIsSolved {
			t.Errorf("flags not persisted: %+v", got)
		}
	})

	t.Run("AdvanceSlot is guarded by current progress", func(t *testing.T) {
		moved, err := store.AdvanceSlot(ctx, "group-2", 0, 0)
		if err != nil {
			t.Fatalf("AdvanceSlot failed: %v", err)
		}
		if !moved {
			t.Error("Expected AdvanceSlot from 0 to move")
		}

		// A stale writer expecting progress 0 must not skip ahead.
		moved, err = store.AdvanceSlot(ctx, "group-2", 0, 0)
		if err != nil {
			t.Fatalf("AdvanceSlot failed: %v", err)
		}
		if moved {
			t.Error("Expected stale AdvanceSlot to be a no-op")
		}

		got, err := store.GetGroup(ctx, "group-2")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Slots[0].Progress != 1 {
			t.Errorf("slot 0 progress = %d, want 1", got.Slots[0].Progress)
		}
	})

	t.Run("MarkSlotSolved flips once", func(t *testing.T) {
		solved, err := store.MarkSlotSolved(ctx, "group-2", 1)
		if err != nil {
			t.Fatalf("MarkSlotSolved failed: %v", err)
		}
		if !solved {
			t.Error("Expected first MarkSlotSolved to flip")
		}
		solved, err = store.MarkSlotSolved(ctx, "group-2", 1)
		if err != nil {
			t.Fatalf("MarkSlotSolved failed: %v", err)
		}
		if solved {
			t.Error("Expected second MarkSlotSolved to be a no-op")
		}
	})

	t.Run("MarkCheckpointCompleted updates globals", func(t *testing.T) {
		for n := 1; n <= 3; n++ {
			if err := store.MarkCheckpointCompleted(ctx, n); err != nil {
				t.Fatalf("MarkCheckpointCompleted(%d) failed: %v", n, err)
			}
		}
		globals, err := store.GetGlobals(ctx)
		if err != nil {
			t.Fatalf("GetGlobals failed: %v", err)
		}
		if !globals.Checkpoint1Completed || !globals.Checkpoint2Completed || !globals.Checkpoint3Completed {
			t.Errorf("checkpoints not persisted: %+v", globals)
		}

		if err := store.MarkCheckpointCompleted(ctx, 4); err == nil {
			t.Error("Expected invalid checkpoint number to fail")
		}
	})

	t.Run("StopGame clears groups and resets flags but keeps the location", func(t *testing.T) {
		if err := store.StopGame(ctx); err != nil {
			t.Fatalf("StopGame failed: %v", err)
		}

		if _, err := store.GetGroup(ctx, "group-1"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetGroup after stop error = %v, want ErrNotFound", err)
		}

		claimed, err := store.AllocatedImages(ctx)
		if err != nil {
			t.Fatalf("AllocatedImages failed: %v", err)
		}
		if len(claimed) != 0 {
			t.Errorf("Expected released images, got %v", claimed)
		}

		globals, err := store.GetGlobals(ctx)
		if err != nil {
			t.Fatalf("GetGlobals failed: %v", err)
		}
		if globals.GameHasStarted || globals.Checkpoint1Completed {
			t.Errorf("flags not reset: %+v", globals)
		}
		if globals.Location.Building != "Library" {
			t.Errorf("location lost on stop: %+v", globals.Location)
		}
	})
}
