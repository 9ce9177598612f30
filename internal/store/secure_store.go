package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"wtime/internal/crypto"
	"wtime/internal/domain"
	"wtime/internal/logger"
)

// DefaultKey is the single byte-store key holding the envelope.
const DefaultKey domain.StorageKey = "@wtime_secure_data"

// SecureStore owns the AppSettings aggregate.
//
// The cached aggregate only changes after the byte store accepted the new
// envelope. All mutations, Save, Load and ClearAllData run under mu, so
// mutation N always starts from the result of mutation N-1.
type SecureStore struct {
	kv    domain.ByteStore
	key   domain.StorageKey
	codec Codec
	log   *logger.Logger
	now   func() time.Time
	newID func() string

	mu     sync.Mutex
	cache  domain.AppSettings
	closed bool
}

// Option configures a SecureStore.
type Option func(*SecureStore)

// WithKey overrides the byte-store key.
func WithKey(key domain.StorageKey) Option { return func(s *SecureStore) { s.key = key } }

// WithCodec overrides the envelope codec.
func WithCodec(c Codec) Option { return func(s *SecureStore) { s.codec = c } }

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option { return func(s *SecureStore) { s.log = l } }

// WithClock sets the clock used to stamp new notes.
func WithClock(now func() time.Time) Option { return func(s *SecureStore) { s.now = now } }

// WithIDGenerator sets the generator for contact and note ids.
func WithIDGenerator(gen func() string) Option { return func(s *SecureStore) { s.newID = gen } }

// NewSecureStore returns a store over kv holding the default aggregate.
// Call Load once at startup before issuing mutations.
func NewSecureStore(kv domain.ByteStore, opts ...Option) *SecureStore {
	s := &SecureStore{
		kv:    kv,
		key:   DefaultKey,
		codec: NewDigestCodec(""),
		log:   logger.NewNop(),
		now:   time.Now,
		newID: uuid.NewString,
		cache: domain.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "secure_store", "key", s.key.String())
	return s
}

// Settings returns a copy of the cached aggregate.
func (s *SecureStore) Settings() domain.AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Clone()
}

// Load reads and verifies the persisted envelope and replaces the cache with
// its contents. Anything other than a verified envelope yields the default
// aggregate; the failure is logged, never returned.
func (s *SecureStore) Load(ctx context.Context) domain.AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = s.read(ctx)
	return s.cache.Clone()
}

func (s *SecureStore) read(ctx context.Context) domain.AppSettings {
	blob, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.log.Error("read settings failed, using defaults", "error", err)
		return domain.DefaultSettings()
	}
	if !ok {
		return domain.DefaultSettings()
	}
	data, err := s.codec.Open(blob)
	if err != nil {
		s.log.Warn("settings envelope rejected, using defaults", "error", err, "bytes", len(blob))
		return domain.DefaultSettings()
	}
	var settings domain.AppSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		s.log.Warn("settings payload unreadable, using defaults", "error", err)
		return domain.DefaultSettings()
	}
	return settings.Clone()
}

// Save persists next and, once the write succeeded, makes it the cached
// aggregate. A failed write returns an error wrapping domain.ErrWriteFailed
// and leaves the cache untouched.
func (s *SecureStore) Save(ctx context.Context, next domain.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrClosed
	}
	return s.saveLocked(ctx, next.Clone())
}

func (s *SecureStore) saveLocked(ctx context.Context, next domain.AppSettings) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
	}
	data, err := marshalCompact(next)
	if err != nil {
		return fmt.Errorf("%w: encode settings: %w", domain.ErrWriteFailed, err)
	}
	blob, err := s.codec.Seal(data)
	if err != nil {
		return fmt.Errorf("%w: seal settings: %w", domain.ErrWriteFailed, err)
	}
	if err := s.kv.Set(ctx, s.key, blob); err != nil {
		s.log.Error("write settings failed", "error", err)
		return fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
	}
	s.cache = next
	s.log.Debug("settings written", "fingerprint", crypto.Fingerprint(blob))
	return nil
}

// mutate runs fn against a copy of the cache and saves the result.
func (s *SecureStore) mutate(ctx context.Context, op string, fn func(cur domain.AppSettings) (domain.AppSettings, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrClosed
	}
	next, err := fn(s.cache.Clone())
	if err != nil {
		return err
	}
	if err := s.saveLocked(ctx, next); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Debug("settings updated", "op", op,
		"contacts", len(next.EmergencyContacts), "notes", len(next.Notes))
	return nil
}

// AddContact appends a new contact.
func (s *SecureStore) AddContact(ctx context.Context, name, phone string) (domain.EmergencyContact, error) {
	var added domain.EmergencyContact
	err := s.mutate(ctx, "add contact", func(cur domain.AppSettings) (domain.AppSettings, error) {
		added = domain.EmergencyContact{ID: domain.ContactID(s.newID()), Name: name, Phone: phone}
		cur.EmergencyContacts = append(cur.EmergencyContacts, added)
		return cur, nil
	})
	if err != nil {
		return domain.EmergencyContact{}, err
	}
	return added, nil
}

// RemoveContact deletes the contact with id.
func (s *SecureStore) RemoveContact(ctx context.Context, id domain.ContactID) error {
	return s.mutate(ctx, "remove contact", func(cur domain.AppSettings) (domain.AppSettings, error) {
		i := slices.IndexFunc(cur.EmergencyContacts, func(c domain.EmergencyContact) bool { return c.ID == id })
		if i < 0 {
			return cur, fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
		}
		cur.EmergencyContacts = slices.Delete(cur.EmergencyContacts, i, i+1)
		return cur, nil
	})
}

// UpdateContact applies patch to the contact with id.
func (s *SecureStore) UpdateContact(ctx context.Context, id domain.ContactID, patch domain.ContactPatch) error {
	return s.mutate(ctx, "update contact", func(cur domain.AppSettings) (domain.AppSettings, error) {
		i := slices.IndexFunc(cur.EmergencyContacts, func(c domain.EmergencyContact) bool { return c.ID == id })
		if i < 0 {
			return cur, fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
		}
		cur.EmergencyContacts[i] = patch.Apply(cur.EmergencyContacts[i])
		return cur, nil
	})
}

// AddNote appends a new note stamped with the current time.
func (s *SecureStore) AddNote(ctx context.Context, draft domain.NoteDraft) (domain.EncryptedNote, error) {
	var added domain.EncryptedNote
	err := s.mutate(ctx, "add note", func(cur domain.AppSettings) (domain.AppSettings, error) {
		added = domain.EncryptedNote{
			ID:      domain.NoteID(s.newID()),
			Title:   draft.Title,
			Content: draft.Content,
			Date:    domain.FormatNoteDate(s.now()),
			Type:    draft.Type,
		}
		cur.Notes = append(cur.Notes, added)
		return cur, nil
	})
	if err != nil {
		return domain.EncryptedNote{}, err
	}
	return added, nil
}

// RemoveNote deletes the note with id.
func (s *SecureStore) RemoveNote(ctx context.Context, id domain.NoteID) error {
	return s.mutate(ctx, "remove note", func(cur domain.AppSettings) (domain.AppSettings, error) {
		i := slices.IndexFunc(cur.Notes, func(n domain.EncryptedNote) bool { return n.ID == id })
		if i < 0 {
			return cur, fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
		}
		cur.Notes = slices.Delete(cur.Notes, i, i+1)
		return cur, nil
	})
}

// UpdateNote applies patch to the note with id. The creation date is kept.
func (s *SecureStore) UpdateNote(ctx context.Context, id domain.NoteID, patch domain.NotePatch) error {
	return s.mutate(ctx, "update note", func(cur domain.AppSettings) (domain.AppSettings, error) {
		i := slices.IndexFunc(cur.Notes, func(n domain.EncryptedNote) bool { return n.ID == id })
		if i < 0 {
			return cur, fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
		}
		cur.Notes[i] = patch.Apply(cur.Notes[i])
		return cur, nil
	})
}

// CompleteFirstLaunch clears the first-launch flag.
func (s *SecureStore) CompleteFirstLaunch(ctx context.Context) error {
	return s.mutate(ctx, "complete first launch", func(cur domain.AppSettings) (domain.AppSettings, error) {
		cur.IsFirstLaunch = false
		return cur, nil
	})
}

// ClearAllData deletes the envelope and resets the cache to the default
// aggregate. If the delete fails the cache is kept and the error returned.
func (s *SecureStore) ClearAllData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrClosed
	}
	if err := s.kv.Delete(ctx, s.key); err != nil {
		s.log.Error("clear settings failed", "error", err)
		return fmt.Errorf("clear all data: %w: %w", domain.ErrWriteFailed, err)
	}
	s.cache = domain.DefaultSettings()
	s.log.Info("all secure data cleared")
	return nil
}

// Fingerprint returns a short fingerprint of the envelope as persisted, so a
// user can tell whether it changed between runs. ok is false when nothing is
// stored.
func (s *SecureStore) Fingerprint(ctx context.Context) (fp string, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, ok, err := s.kv.Get(ctx, s.key)
	if err != nil || !ok {
		return "", false, err
	}
	return crypto.Fingerprint(blob), true, nil
}

// Close tears the store down. Later mutations return domain.ErrClosed.
func (s *SecureStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cache = domain.DefaultSettings()
	return nil
}

// Compile-time assertion that SecureStore implements domain.SettingsStore.
var _ domain.SettingsStore = (*SecureStore)(nil)
