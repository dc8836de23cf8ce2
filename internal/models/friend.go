package models

// Friend is a person the owner splits receipts with.
type Friend struct {
	// ID is the unique identifier for the friend (UUID format).
	ID string `db:"id"`

	// OwnerID is the user whose friend list this entry belongs to.
	OwnerID string `db:"owner_id"`

	// UserID links the friend to a registered account, if any.
	// The owner's self friend has UserID == OwnerID.
	UserID string `db:"user_id"`

	// Name is the display name (e.g., "Alice").
	Name string `db:"name"`

	// CreatedAt is the Unix timestamp when the friend was added.
	CreatedAt int64 `db:"created_at"`
}

// IsSelf reports whether this friend record represents its owner.
func (f *Friend) IsSelf() bool {
	return f.UserID != "" && f.UserID == f.OwnerID
}
