package domain

import (
	interfaces "wtime/internal/domain/interfaces"
	types "wtime/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	ContactID        = types.ContactID
	NoteID           = types.NoteID
	StorageKey       = types.StorageKey
	EmergencyContact = types.EmergencyContact
	ContactPatch     = types.ContactPatch
	EncryptedNote    = types.EncryptedNote
	NoteType         = types.NoteType
	NoteDraft        = types.NoteDraft
	NotePatch        = types.NotePatch
	AppSettings      = types.AppSettings
	Location         = types.Location
	SMSRequest       = types.SMSRequest
	AlertStatus      = types.AlertStatus
	AlertReport      = types.AlertReport
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	ByteStore      = interfaces.ByteStore
	SettingsReader = interfaces.SettingsReader
	SettingsStore  = interfaces.SettingsStore
	Locator        = interfaces.Locator
	SMSSender      = interfaces.SMSSender
	AlertService   = interfaces.AlertService
)

const (
	MaxEmergencyContacts = types.MaxEmergencyContacts
	NoteDateLayout       = types.NoteDateLayout

	NoteIncident = types.NoteIncident
	NoteMedical  = types.NoteMedical
	NoteLegal    = types.NoteLegal
	NoteOther    = types.NoteOther

	AlertSent           = types.AlertSent
	AlertNoContacts     = types.AlertNoContacts
	AlertSMSUnavailable = types.AlertSMSUnavailable
	AlertFailed         = types.AlertFailed
)

var (
	NoteTypes       = types.NoteTypes
	DefaultSettings = types.DefaultSettings
	ParseNoteType   = types.ParseNoteType
	FormatNoteDate  = types.FormatNoteDate
)
