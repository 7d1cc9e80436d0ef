package models

// Location is the hidden spot teams assemble from their revealed answers at
// the final checkpoint.
type Location struct {
	Building string
	Floor    int
	Aisle    int
	Section  string
}

// IsZero reports whether no location has been generated yet.
func (l Location) IsZero() bool {
	return l.Building == "" && l.Floor == 0 && l.Aisle == 0 && l.Section == ""
}

// Globals is the singleton game state record, toggled only by admin actions.
type Globals struct {
	// GameHasStarted gates every checkpoint; while false all clients sit in
	// the waiting state.
	GameHasStarted bool

	// Checkpoint completion markers, flipped the first time any group clears
	// the corresponding checkpoint.
	Checkpoint1Completed bool
	Checkpoint2Completed bool
	Checkpoint3Completed bool

	// Location is the final-assembly target, generated once per game.
	Location Location
}
