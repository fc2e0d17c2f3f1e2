package domain

// PresenceEntry maps a user to the live connection they currently own.
// At most one entry exists per user; reconnects overwrite, disconnects
// delete.
type PresenceEntry struct {
	UserID       string
	ConnectionID string
}

// Profile is the slice of the external user record needed to enrich
// direct messages.
type Profile struct {
	UserID    string
	FirstName string
	LastName  string
}

// DisplayName is the sender name stamped onto enriched messages.
func (p *Profile) DisplayName() string {
	return p.FirstName + " " + p.LastName
}
