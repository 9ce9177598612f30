package types

// MaxEmergencyContacts caps how many contacts may exist at once.
const MaxEmergencyContacts = 3

// EmergencyContact is a trusted person who receives panic alerts.
type EmergencyContact struct {
	ID    ContactID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

// ContactPatch carries the fields of an update; nil fields are left unchanged.
type ContactPatch struct {
	Name  *string
	Phone *string
}

// Apply returns c with the non-nil fields of p applied.
func (p ContactPatch) Apply(c EmergencyContact) EmergencyContact {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	return c
}
