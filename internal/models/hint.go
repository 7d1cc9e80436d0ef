package models

// Hint is one riddle from the fixed question pool.
//
// Hints are static reference data: seeded at first startup, read-only at
// runtime, and reused across all groups each game run. The pool is small
// (four questions) and every question is assigned to exactly one member slot
// per group.
type Hint struct {
	// ID is the hint's stable numeric identifier.
	ID int64

	// Question is the riddle text shown to the assigned member.
	Question string

	// Answer is the canonical answer. Matching is case-insensitive; numeric
	// answers additionally accept spelled-out number words.
	Answer string
}
