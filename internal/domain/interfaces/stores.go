package interfaces

import (
	"context"

	domaintypes "wtime/internal/domain/types"
)

// ByteStore is the platform key-value store the secure store sits on.
//
// Get reports ok=false for an absent key. Delete of an absent key is not an error.
type ByteStore interface {
	Get(ctx context.Context, key domaintypes.StorageKey) (value []byte, ok bool, err error)
	Set(ctx context.Context, key domaintypes.StorageKey, value []byte) error
	Delete(ctx context.Context, key domaintypes.StorageKey) error
}

// SettingsReader exposes read-only snapshots of the aggregate.
type SettingsReader interface {
	Settings() domaintypes.AppSettings
}

// SettingsStore owns the AppSettings aggregate. Every mutation is a serialised
// read-modify-write of the whole aggregate.
type SettingsStore interface {
	SettingsReader

	Load(ctx context.Context) domaintypes.AppSettings
	Save(ctx context.Context, next domaintypes.AppSettings) error

	AddContact(ctx context.Context, name, phone string) (domaintypes.EmergencyContact, error)
	UpdateContact(ctx context.Context, id domaintypes.ContactID, patch domaintypes.ContactPatch) error
	RemoveContact(ctx context.Context, id domaintypes.ContactID) error

	AddNote(ctx context.Context, draft domaintypes.NoteDraft) (domaintypes.EncryptedNote, error)
	UpdateNote(ctx context.Context, id domaintypes.NoteID, patch domaintypes.NotePatch) error
	RemoveNote(ctx context.Context, id domaintypes.NoteID) error

	CompleteFirstLaunch(ctx context.Context) error
	ClearAllData(ctx context.Context) error
}
