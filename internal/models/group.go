package models

// MaxGroupSize is the number of member slots a group record carries.
const MaxGroupSize = 4

// MemberSlot is one positional member reference within a Group.
//
// Slots are filled contiguously from index 0; group size equals the number
// of slots present. Each slot owns the questions assigned to that member and
// the member's progress through them.
type MemberSlot struct {
	// UserID references the user occupying this slot.
	UserID string

	// QuestionIDs are the hint IDs assigned to this slot, answered in order.
	// Across all slots of a group every pool question appears exactly once.
	QuestionIDs []int64

	// Progress is the index of the next unanswered question in QuestionIDs.
	Progress int

	// Solved is true once every assigned question has been answered.
	Solved bool
}

// Current returns the hint ID the member should answer next, or false when
// the slot is already solved.
func (s *MemberSlot) Current() (int64, bool) {
	if s.Solved || s.Progress >= len(s.QuestionIDs) {
		return 0, false
	}
	return s.QuestionIDs[s.Progress], true
}

// Group represents a team of 2-4 users sharing checkpoint progress.
//
// Groups are created in bulk when the admin starts the game (the previous
// run's groups are deleted first) and cleared when the game stops.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Slots are the member slots, filled contiguously. len(Slots) is the
	// group size and is always 2, 3 or 4.
	Slots []MemberSlot

	// PhotoURL is the group's allocated image from the media pool, distinct
	// per group within one game run.
	PhotoURL string

	// Found flips true exactly once, when the face-match checkpoint for this
	// group succeeds.
	Found bool

	// LocationIsSolved flips true exactly once, after every slot's Solved
	// flag is true.
	LocationIsSolved bool

	// AssemblySolved flips true exactly once, when the team submits the
	// correct assembled location.
	AssemblySolved bool

	// Finished flips true exactly once, when the team scans the correct QR
	// code at the final location. Terminal state.
	Finished bool

	// CreatedAt is the Unix timestamp when the group was formed.
	CreatedAt int64
}

// SlotOf returns the slot index occupied by the given user, or -1.
func (g *Group) SlotOf(userID string) int {
	for i := range g.Slots {
		if g.Slots[i].UserID == userID {
			return i
		}
	}
	return -1
}

// MemberIDs returns the user IDs of all filled slots, in slot order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Slots))
	for i := range g.Slots {
		ids[i] = g.Slots[i].UserID
	}
	return ids
}

// AllSolved reports whether every filled slot has answered all of its
// questions. This is the convergence condition for LocationIsSolved.
func (g *Group) AllSolved() bool {
	for i := range g.Slots {
		if !g.Slots[i].Solved {
			return false
		}
	}
	return len(g.Slots) > 0
}
