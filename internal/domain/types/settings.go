package types

import "slices"

// AppSettings is the aggregate persisted as a single envelope.
type AppSettings struct {
	EmergencyContacts []EmergencyContact `json:"emergencyContacts"`
	Notes             []EncryptedNote    `json:"notes"`
	IsFirstLaunch     bool               `json:"isFirstLaunch"`
}

// DefaultSettings returns the aggregate used when nothing trustworthy is stored.
func DefaultSettings() AppSettings {
	return AppSettings{
		EmergencyContacts: []EmergencyContact{},
		Notes:             []EncryptedNote{},
		IsFirstLaunch:     true,
	}
}

// Clone returns a deep copy of s with non-nil slices.
func (s AppSettings) Clone() AppSettings {
	out := AppSettings{
		EmergencyContacts: slices.Clone(s.EmergencyContacts),
		Notes:             slices.Clone(s.Notes),
		IsFirstLaunch:     s.IsFirstLaunch,
	}
	if out.EmergencyContacts == nil {
		out.EmergencyContacts = []EmergencyContact{}
	}
	if out.Notes == nil {
		out.Notes = []EncryptedNote{}
	}
	return out
}

// Contact returns the contact with id.
func (s AppSettings) Contact(id ContactID) (EmergencyContact, bool) {
	i := slices.IndexFunc(s.EmergencyContacts, func(c EmergencyContact) bool { return c.ID == id })
	if i < 0 {
		return EmergencyContact{}, false
	}
	return s.EmergencyContacts[i], true
}

// Note returns the note with id.
func (s AppSettings) Note(id NoteID) (EncryptedNote, bool) {
	i := slices.IndexFunc(s.Notes, func(n EncryptedNote) bool { return n.ID == id })
	if i < 0 {
		return EncryptedNote{}, false
	}
	return s.Notes[i], true
}

// PhoneNumbers returns the phone numbers of all contacts in insertion order.
func (s AppSettings) PhoneNumbers() []string {
	out := make([]string, 0, len(s.EmergencyContacts))
	for _, c := range s.EmergencyContacts {
		out = append(out, c.Phone)
	}
	return out
}
