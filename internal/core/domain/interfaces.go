package domain

import "context"

// ProfileRepository looks up user profiles in the external datastore.
// Used only for direct-message enrichment; failure is non-fatal.
type ProfileRepository interface {
	FindByID(ctx context.Context, userID string) (*Profile, error)
}
