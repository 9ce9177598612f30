package types

// ContactID uniquely identifies an emergency contact.
type ContactID string

// String returns the string form of the identifier.
func (id ContactID) String() string { return string(id) }

// NoteID uniquely identifies a note.
type NoteID string

// String returns the string form of the identifier.
func (id NoteID) String() string { return string(id) }

// StorageKey names a slot in the underlying byte store.
type StorageKey string

// String returns the string form of the key.
func (k StorageKey) String() string { return string(k) }
