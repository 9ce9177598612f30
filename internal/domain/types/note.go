package types

import (
	"fmt"
	"time"
)

// NoteDateLayout is the ISO-8601 layout used for note timestamps.
const NoteDateLayout = "2006-01-02T15:04:05.000Z"

// NoteType classifies a note.
type NoteType string

const (
	NoteIncident NoteType = "incident"
	NoteMedical  NoteType = "medical"
	NoteLegal    NoteType = "legal"
	NoteOther    NoteType = "other"
)

// NoteTypes lists the accepted note types in display order.
var NoteTypes = []NoteType{NoteIncident, NoteMedical, NoteLegal, NoteOther}

// String returns the string form of the note type.
func (t NoteType) String() string { return string(t) }

// Valid reports whether t is one of the known note types.
func (t NoteType) Valid() bool {
	switch t {
	case NoteIncident, NoteMedical, NoteLegal, NoteOther:
		return true
	}
	return false
}

// ParseNoteType converts s into a NoteType.
func ParseNoteType(s string) (NoteType, error) {
	t := NoteType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown note type %q (want one of %v)", s, NoteTypes)
	}
	return t, nil
}

// EncryptedNote is a sensitive note kept in the secure store.
//
// Date is set once at creation and never changed by an update.
type EncryptedNote struct {
	ID      NoteID   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Date    string   `json:"date"`
	Type    NoteType `json:"type"`
}

// Time parses Date. A malformed date yields the zero time.
func (n EncryptedNote) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, n.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatNoteDate renders t in the layout stored in EncryptedNote.Date.
func FormatNoteDate(t time.Time) string {
	return t.UTC().Format(NoteDateLayout)
}

// NoteDraft holds the caller-supplied fields of a new note.
type NoteDraft struct {
	Title   string
	Content string
	Type    NoteType
}

// NotePatch carries the fields of a note update; nil fields are left unchanged.
// There is no Date field: the creation time is immutable.
type NotePatch struct {
	Title   *string
	Content *string
	Type    *NoteType
}

// Apply returns n with the non-nil fields of p applied.
func (p NotePatch) Apply(n EncryptedNote) EncryptedNote {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Type != nil {
		n.Type = *p.Type
	}
	return n
}
