package game

import "github.com/mmynk/scavhunt/internal/models"

// Phase is the checkpoint a user currently sits at, derived entirely from the
// persisted global and group flags. Transitions are one-directional: once a
// backing flag flips true the earlier phase can never be re-entered.
type Phase string

const (
	// PhaseNotStarted: the admin has not started the game.
	PhaseNotStarted Phase = "not_started"

	// PhaseFaceMatch: the group must submit a photo proving all members are
	// together.
	PhaseFaceMatch Phase = "face_match"

	// PhaseRiddle: members answer their assigned questions; the phase ends
	// when every slot is solved.
	PhaseRiddle Phase = "riddle"

	// PhaseFinalAssembly: the team assembles the hidden location from their
	// revealed answers.
	PhaseFinalAssembly Phase = "final_assembly"

	// PhaseQRScan: the team scans the QR code at the final location.
	PhaseQRScan Phase = "qr_scan"

	// PhaseDone: terminal; the team scanned the correct code.
	PhaseDone Phase = "done"
)

// Evaluate derives the current phase from the persisted flags. It never
// mutates anything; callers re-evaluate whenever the group record changes,
// whether via websocket notification or a client poll. A user with no group
// stays in NotStarted: a running game they were not allocated into is still
// a waiting screen for them.
func Evaluate(globals *models.Globals, group *models.Group) Phase {
	switch {
	case globals == nil || !globals.GameHasStarted || group == nil:
		return PhaseNotStarted
	case !group.Found:
		return PhaseFaceMatch
	case !group.LocationIsSolved:
		return PhaseRiddle
	case !group.AssemblySolved:
		return PhaseFinalAssembly
	case !group.Finished:
		return PhaseQRScan
	default:
		return PhaseDone
	}
}
