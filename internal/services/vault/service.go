package vault

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"wtime/internal/domain"
	"wtime/internal/logger"
)

var (
	// ErrContactLimit is returned when adding a contact would exceed
	// domain.MaxEmergencyContacts.
	ErrContactLimit = fmt.Errorf("at most %d emergency contacts", domain.MaxEmergencyContacts)

	// ErrMissingContactField is returned when a contact name or phone is blank.
	ErrMissingContactField = errors.New("contact needs both name and phone number")

	// ErrMissingTitle is returned for a note without a title.
	ErrMissingTitle = errors.New("note needs a title")

	// ErrMissingContent is returned for a note without content.
	ErrMissingContent = errors.New("note needs content")

	// ErrInvalidNoteType is returned for a note type outside domain.NoteTypes.
	ErrInvalidNoteType = errors.New("invalid note type")
)

// Service validates input before it reaches the store. Nothing invalid is
// ever written.
type Service struct {
	store domain.SettingsStore
	log   *logger.Logger

	// addMu makes the contact cap check and the add one step.
	addMu sync.Mutex
}

// New constructs a vault Service over store.
func New(store domain.SettingsStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{store: store, log: log.With("component", "vault")}
}

// Contacts returns the stored contacts in insertion order.
func (s *Service) Contacts() []domain.EmergencyContact {
	return s.store.Settings().EmergencyContacts
}

// AddContact trims and validates name and phone and appends the contact.
func (s *Service) AddContact(ctx context.Context, name, phone string) (domain.EmergencyContact, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return domain.EmergencyContact{}, ErrMissingContactField
	}

	s.addMu.Lock()
	defer s.addMu.Unlock()

	if n := len(s.store.Settings().EmergencyContacts); n >= domain.MaxEmergencyContacts {
		s.log.Debug("contact rejected at cap", "contacts", n)
		return domain.EmergencyContact{}, ErrContactLimit
	}
	return s.store.AddContact(ctx, name, phone)
}

// UpdateContact replaces name and phone of the contact with id.
func (s *Service) UpdateContact(ctx context.Context, id domain.ContactID, name, phone string) error {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return ErrMissingContactField
	}
	return s.store.UpdateContact(ctx, id, domain.ContactPatch{Name: &name, Phone: &phone})
}

// RemoveContact deletes the contact with id.
func (s *Service) RemoveContact(ctx context.Context, id domain.ContactID) error {
	return s.store.RemoveContact(ctx, id)
}

// AddNote validates draft and stores it. An empty type defaults to incident.
func (s *Service) AddNote(ctx context.Context, draft domain.NoteDraft) (domain.EncryptedNote, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Content = strings.TrimSpace(draft.Content)
	if draft.Type == "" {
		draft.Type = domain.NoteIncident
	}
	if err := validateNote(draft.Title, draft.Content, draft.Type); err != nil {
		return domain.EncryptedNote{}, err
	}
	return s.store.AddNote(ctx, draft)
}

// UpdateNote validates the non-nil fields of patch and applies it.
func (s *Service) UpdateNote(ctx context.Context, id domain.NoteID, patch domain.NotePatch) error {
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return ErrMissingTitle
		}
		patch.Title = &t
	}
	if patch.Content != nil {
		c := strings.TrimSpace(*patch.Content)
		if c == "" {
			return ErrMissingContent
		}
		patch.Content = &c
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidNoteType, *patch.Type)
	}
	return s.store.UpdateNote(ctx, id, patch)
}

// RemoveNote deletes the note with id.
func (s *Service) RemoveNote(ctx context.Context, id domain.NoteID) error {
	return s.store.RemoveNote(ctx, id)
}

// NotesByDate returns the notes newest first. Notes with equal dates keep
// their stored order.
func (s *Service) NotesByDate() []domain.EncryptedNote {
	notes := s.store.Settings().Notes
	slices.SortStableFunc(notes, func(a, b domain.EncryptedNote) int {
		return b.Time().Compare(a.Time())
	})
	return notes
}

func validateNote(title, content string, typ domain.NoteType) error {
	switch {
	case title == "":
		return ErrMissingTitle
	case content == "":
		return ErrMissingContent
	case !typ.Valid():
		return fmt.Errorf("%w: %q", ErrInvalidNoteType, typ)
	}
	return nil
}
