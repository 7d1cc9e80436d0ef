package models

// User represents a registered participant.
//
// Users are created once at registration and never edited afterwards; there
// is no profile edit flow. Groups reference users by ID only.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique). Registration is keyed on
	// it: an existing email logs the user back in instead of re-registering.
	Email string

	// Name is the display name shown to teammates.
	Name string

	// Major is the user's field of study, collected for icebreaker flavor.
	Major string

	// SelfieURL points at the selfie captured during registration, stored in
	// the media store. Teammate face matching compares against this image.
	SelfieURL string

	// CreatedAt is the Unix timestamp when the user registered.
	CreatedAt int64
}
