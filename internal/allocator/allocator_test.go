package allocator

import (
	"errors"
	"testing"

	"github.com/mmynk/scavhunt/internal/models"
)

func makeUsers(n int) []models.User {
	users := make([]models.User, n)
	for i := range users {
		users[i] = models.User{ID: string(rune('a' + i))}
	}
	return users
}

var fourQuestions = []int64{1, 2, 3, 4}

func TestFormTeams(t *testing.T) {
	tests := []struct {
		name      string
		userCount int
		wantSizes []int
		wantErr   error
	}{
		{name: "zero users", userCount: 0, wantErr: ErrNotEnoughUsers},
		{name: "one user", userCount: 1, wantErr: ErrNotEnoughUsers},
		{name: "two users form one pair", userCount: 2, wantSizes: []int{2}},
		{name: "three users form one trio", userCount: 3, wantSizes: []int{3}},
		{name: "four users form one quad", userCount: 4, wantSizes: []int{4}},
		{name: "five users split into 3 and 2", userCount: 5, wantSizes: []int{3, 2}},
		{name: "six users form two trios", userCount: 6, wantSizes: []int{3, 3}},
		{name: "seven users fold the loner into a quad", userCount: 7, wantSizes: []int{3, 4}},
		{name: "eight users form two quads", userCount: 8, wantSizes: []int{4, 4}},
		{name: "nine users form three trios", userCount: 9, wantSizes: []int{3, 3, 3}},
		{name: "ten users fold the loner into the last trio", userCount: 10, wantSizes: []int{3, 3, 4}},
		{name: "eleven users get a trailing pair", userCount: 11, wantSizes: []int{3, 3, 3, 2}},
		{name: "thirteen users split the trailing loner off a quad", userCount: 13, wantSizes: []int{4, 4, 3, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := FormTeams(makeUsers(tt.userCount), fourQuestions)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FormTeams() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FormTeams() failed: %v", err)
			}

			if len(groups) != len(tt.wantSizes) {
				t.Fatalf("got %d groups, want %d", len(groups), len(tt.wantSizes))
			}

			seen := make(map[string]bool)
			for i, group := range groups {
				if len(group.Slots) != tt.wantSizes[i] {
					t.Errorf("group %d has %d members, want %d", i, len(group.Slots), tt.wantSizes[i])
				}
				if len(group.Slots) > models.MaxGroupSize {
					t.Errorf("group %d exceeds max size: %d", i, len(group.Slots))
				}
				if group.ID == "" {
					t.Errorf("group %d has no ID", i)
				}

				questions := make(map[int64]int)
				for _, slot := range group.Slots {
					if seen[slot.UserID] {
						t.Errorf("user %s appears in more than one slot", slot.UserID)
					}
					seen[slot.UserID] = true

					if len(slot.QuestionIDs) == 0 {
						t.Errorf("group %d has a slot with no questions", i)
					}
					for _, id := range slot.QuestionIDs {
						questions[id]++
					}
				}

				// Every pool question lands on exactly one member.
				for _, id := range fourQuestions {
					if questions[id] != 1 {
						t.Errorf("group %d: question %d assigned %d times, want 1", i, id, questions[id])
					}
				}
			}

			if len(seen) != tt.userCount {
				t.Errorf("placed %d users, want %d", len(seen), tt.userCount)
			}
		})
	}
}

func TestAssignQuestions(t *testing.T) {
	tests := []struct {
		name       string
		groupSize  int
		wantCounts []int
		wantErr    bool
	}{
		{name: "quad gets one each", groupSize: 4, wantCounts: []int{1, 1, 1, 1}},
		{name: "trio front-loads the surplus", groupSize: 3, wantCounts: []int{2, 1, 1}},
		{name: "pair splits evenly", groupSize: 2, wantCounts: []int{2, 2}},
		{name: "more slots than questions", groupSize: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assignments, err := assignQuestions(tt.groupSize, fourQuestions)
			if tt.wantErr {
				if !errors.Is(err, ErrNotEnoughQuestions) {
					t.Fatalf("assignQuestions() error = %v, want ErrNotEnoughQuestions", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("assignQuestions() failed: %v", err)
			}

			var got []int64
			for i, slot := range assignments {
				if len(slot) != tt.wantCounts[i] {
					t.Errorf("slot %d has %d questions, want %d", i, len(slot), tt.wantCounts[i])
				}
				got = append(got, slot...)
			}

			if len(got) != len(fourQuestions) {
				t.Fatalf("assigned %d questions, want %d", len(got), len(fourQuestions))
			}
			for i, id := range fourQuestions {
				if got[i] != id {
					t.Errorf("question order broken at %d: got %d, want %d", i, got[i], id)
				}
			}
		})
	}
}

func TestDrawImages(t *testing.T) {
	pool := []string{"auto/a.jpg", "auto/b.jpg", "auto/c.jpg", "auto/d.jpg"}

	t.Run("excludes claimed images", func(t *testing.T) {
		claimed := map[string]bool{"auto/a.jpg": true, "auto/c.jpg": true}

		drawn, err := DrawImages(pool, claimed, 2)
		if err != nil {
			t.Fatalf("DrawImages() failed: %v", err)
		}
		if len(drawn) != 2 {
			t.Fatalf("drew %d images, want 2", len(drawn))
		}
		for _, name := range drawn {
			if claimed[name] {
				t.Errorf("drew already claimed image %s", name)
			}
		}
		if drawn[0] == drawn[1] {
			t.Errorf("drew duplicate image %s", drawn[0])
		}
	})

	t.Run("reports shortage", func(t *testing.T) {
		claimed := map[string]bool{"auto/a.jpg": true, "auto/b.jpg": true, "auto/c.jpg": true}

		_, err := DrawImages(pool, claimed, 2)
		var shortage *ErrNotEnoughImages
		if !errors.As(err, &shortage) {
			t.Fatalf("DrawImages() error = %v, want ErrNotEnoughImages", err)
		}
		if shortage.Available != 1 || shortage.Needed != 2 {
			t.Errorf("shortage = %d available for %d needed, want 1 for 2", shortage.Available, shortage.Needed)
		}
	})
}
