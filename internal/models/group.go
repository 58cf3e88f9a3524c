package models

// Group is a reusable participant list that owns group expenses.
//
// Members are display-name strings in a stable order; expense authorization
// is a trimmed string-equality check against this list.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g. "Roommates", "Goa Trip").
	Name string

	// Members is the ordered list of member display-names.
	Members []string

	// CreatedBy is the user ID that created the group.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
