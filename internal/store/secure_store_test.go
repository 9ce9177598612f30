package store_test

import (
	"encoding/base64"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtime/internal/domain"
	"wtime/internal/store"
)

func TestLoad_AbsentReturnsDefault(t *testing.T) {
	s := newTestStore(store.NewMemoryByteStore())
	assert.Equal(t, domain.DefaultSettings(), s.Load(t.Context()))
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	kv := store.NewMemoryByteStore()
	want := sampleSettings()
	require.NoError(t, newTestStore(kv).Save(t.Context(), want))

	got := newTestStore(kv).Load(t.Context())
	assert.Equal(t, want, got)
}

func TestMutations_PersistAcrossInstances(t *testing.T) {
	ctx := t.Context()
	kv := store.NewMemoryByteStore()
	s := newTestStore(kv)
	s.Load(ctx)

	c, err := s.AddContact(ctx, "Alex", "+15550001")
	require.NoError(t, err)
	n, err := s.AddNote(ctx, domain.NoteDraft{Title: "t", Content: "c", Type: domain.NoteMedical})
	require.NoError(t, err)
	require.NoError(t, s.CompleteFirstLaunch(ctx))

	got := newTestStore(kv).Load(ctx)
	assert.Equal(t, []domain.EmergencyContact{c}, got.EmergencyContacts)
	assert.Equal(t, []domain.EncryptedNote{n}, got.Notes)
	assert.False(t, got.IsFirstLaunch)
	assert.Equal(t, "2025-03-04T05:06:07.089Z", n.Date)
}

func TestLoad_TamperedEnvelopeFailsSoft(t *testing.T) {
	ctx := t.Context()
	kv := store.NewMemoryByteStore()
	require.NoError(t, newTestStore(kv).Save(ctx, sampleSettings()))
	blob, _, err := kv.Get(ctx, store.DefaultKey)
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(string(blob))
	require.NoError(t, err)

	for i := range raw {
		mutated := append([]byte(nil), raw...)
		mutated[i] ^= 0xFF
		require.NoError(t, kv.Set(ctx, store.DefaultKey, []byte(base64.StdEncoding.EncodeToString(mutated))))

		got := newTestStore(kv).Load(ctx)
		require.Equal(t, domain.DefaultSettings(), got, "flipped byte %d", i)
	}
}

func TestLoad_GarbageFailsSoft(t *testing.T) {
	ctx := t.Context()
	kv := store.NewMemoryByteStore()
	require.NoError(t, kv.Set(ctx, store.DefaultKey, []byte("definitely not an envelope")))

	assert.Equal(t, domain.DefaultSettings(), newTestStore(kv).Load(ctx))
}

func TestLoad_NullArraysNormalised(t *testing.T) {
	ctx := t.Context()
	kv := store.NewMemoryByteStore()
	blob, err := store.NewDigestCodec("").Seal([]byte(`{"emergencyContacts":null,"notes":null,"isFirstLaunch":false}`))
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, store.DefaultKey, blob))

	got := newTestStore(kv).Load(ctx)
	assert.NotNil(t, got.EmergencyContacts)
	assert.NotNil(t, got.Notes)
	assert.False(t, got.IsFirstLaunch)
}

func TestConcurrentMutations_NoLostUpdate(t *testing.T) {
	ctx := t.Context()
	kv := newGateStore()
	s := newTestStore(kv)
	s.Load(ctx)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := s.AddContact(ctx, "Alex", "+15550001")
		assert.NoError(t, err)
	}()
	<-kv.entered // first write is in flight

	go func() {
		defer wg.Done()
		_, err := s.AddNote(ctx, domain.NoteDraft{Title: "B", Content: "body", Type: domain.NoteOther})
		assert.NoError(t, err)
	}()
	time.Sleep(20 * time.Millisecond)
	kv.open()
	wg.Wait()

	got := s.Settings()
	assert.Len(t, got.EmergencyContacts, 1)
	assert.Len(t, got.Notes, 1)

	persisted := newTestStore(kv.MemoryByteStore).Load(ctx)
	assert.Equal(t, got, persisted)
}

func TestConcurrentMutations_ManyWriters(t *testing.T) {
	ctx := t.Context()
	s := newTestStore(store.NewMemoryByteStore())
	s.Load(ctx)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddNote(ctx, domain.NoteDraft{Title: "t", Content: "c", Type: domain.NoteIncident})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, s.Settings().Notes, writers)
}

func TestSave_WriteFailureKeepsCache(t *testing.T) {
	ctx := t.Context()
	kv := newFlakyStore()
	s := newTestStore(kv)
	s.Load(ctx)

	_, err := s.AddContact(ctx, "Alex", "+15550001")
	require.NoError(t, err)
	before := s.Settings()

	kv.failing.Store(true)
	_, err = s.AddContact(ctx, "Sam", "+15550002")
	require.ErrorIs(t, err, domain.ErrWriteFailed)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, before, s.Settings())

	err = s.Save(ctx, domain.DefaultSettings())
	require.ErrorIs(t, err, domain.ErrWriteFailed)
	assert.Equal(t, before, s.Settings())

	// The durable state is still the last successful write.
	kv.failing.Store(false)
	assert.Equal(t, before, newTestStore(kv).Load(ctx))
}

func TestUpdateContact(t *testing.T) {
	ctx := t.Context()
	s := newTestStore(store.NewMemoryByteStore())
	c, err := s.AddContact(ctx, "Alex", "+15550001")
	require.NoError(t, err)

	phone := "+15559999"
	require.NoError(t, s.UpdateContact(ctx, c.ID, domain.ContactPatch{Phone: &phone}))

	got, ok := s.Settings().Contact(c.ID)
	require.True(t, ok)
	assert.Equal(t, "Alex", got.Name)
	assert.Equal(t, phone, got.Phone)
}

func TestUpdateNote_KeepsCreationDate(t *testing.T) {
	ctx := t.Context()
	now := fixedNow
	s := newTestStore(store.NewMemoryByteStore(), store.WithClock(func() time.Time { return now }))
	n, err := s.AddNote(ctx, domain.NoteDraft{Title: "t", Content: "c", Type: domain.NoteIncident})
	require.NoError(t, err)

	now = now.Add(48 * time.Hour)
	title, typ := "renamed", domain.NoteLegal
	require.NoError(t, s.UpdateNote(ctx, n.ID, domain.NotePatch{Title: &title, Type: &typ}))

	got, ok := s.Settings().Note(n.ID)
	require.True(t, ok)
	assert.Equal(t, n.Date, got.Date)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, "c", got.Content)
	assert.Equal(t, domain.NoteLegal, got.Type)
}

func TestRemove_PreservesOrder(t *testing.T) {
	ctx := t.Context()
	s := newTestStore(store.NewMemoryByteStore())
	a, _ := s.AddContact(ctx, "A", "1")
	b, _ := s.AddContact(ctx, "B", "2")
	c, _ := s.AddContact(ctx, "C", "3")

	require.NoError(t, s.RemoveContact(ctx, b.ID))
	assert.Equal(t, []domain.EmergencyContact{a, c}, s.Settings().EmergencyContacts)

	n1, _ := s.AddNote(ctx, domain.NoteDraft{Title: "1", Content: "1", Type: domain.NoteOther})
	n2, _ := s.AddNote(ctx, domain.NoteDraft{Title: "2", Content: "2", Type: domain.NoteOther})
	require.NoError(t, s.RemoveNote(ctx, n1.ID))
	assert.Equal(t, []domain.EncryptedNote{n2}, s.Settings().Notes)
}

func TestUnknownIDs_NotFoundWithoutWrite(t *testing.T) {
	ctx := t.Context()
	kv := newFlakyStore()
	s := newTestStore(kv)
	name := "x"

	assert.ErrorIs(t, s.RemoveContact(ctx, "nope"), domain.ErrNotFound)
	assert.ErrorIs(t, s.UpdateContact(ctx, "nope", domain.ContactPatch{Name: &name}), domain.ErrNotFound)
	assert.ErrorIs(t, s.RemoveNote(ctx, "nope"), domain.ErrNotFound)
	assert.ErrorIs(t, s.UpdateNote(ctx, "nope", domain.NotePatch{Title: &name}), domain.ErrNotFound)
	assert.Zero(t, kv.sets.Load())
}

func TestClearAllData_ThenLoadIsDefault(t *testing.T) {
	ctx := t.Context()
	kv := store.NewMemoryByteStore()
	s := newTestStore(kv)
	require.NoError(t, s.Save(ctx, sampleSettings()))

	require.NoError(t, s.ClearAllData(ctx))
	assert.Equal(t, domain.DefaultSettings(), s.Settings())
	assert.Equal(t, domain.DefaultSettings(), s.Load(ctx))

	_, ok, err := kv.Get(ctx, store.DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing an empty store is fine too.
	require.NoError(t, s.ClearAllData(ctx))
	assert.Equal(t, domain.DefaultSettings(), newTestStore(kv).Load(ctx))
}

func TestClearAllData_DeleteFailureKeepsCache(t *testing.T) {
	ctx := t.Context()
	kv := newFlakyStore()
	s := newTestStore(kv)
	require.NoError(t, s.Save(ctx, sampleSettings()))

	kv.failing.Store(true)
	err := s.ClearAllData(ctx)
	require.ErrorIs(t, err, domain.ErrWriteFailed)
	assert.Equal(t, sampleSettings(), s.Settings())
}

func TestSettings_ReturnsCopy(t *testing.T) {
	ctx := t.Context()
	s := newTestStore(store.NewMemoryByteStore())
	_, err := s.AddContact(ctx, "Alex", "+15550001")
	require.NoError(t, err)

	snap := s.Settings()
	snap.EmergencyContacts[0].Name = "mutated"
	snap.IsFirstLaunch = false

	got := s.Settings()
	assert.Equal(t, "Alex", got.EmergencyContacts[0].Name)
	assert.True(t, got.IsFirstLaunch)
}

func TestClose_RejectsMutations(t *testing.T) {
	ctx := t.Context()
	s := newTestStore(store.NewMemoryByteStore())
	require.NoError(t, s.Close())

	_, err := s.AddContact(ctx, "Alex", "1")
	assert.ErrorIs(t, err, domain.ErrClosed)
	assert.ErrorIs(t, s.Save(ctx, sampleSettings()), domain.ErrClosed)
	assert.ErrorIs(t, s.ClearAllData(ctx), domain.ErrClosed)
}

func TestCustomKey(t *testing.T) {
	ctx := t.Context()
	kv := store.NewMemoryByteStore()
	s := newTestStore(kv, store.WithKey("other"))
	require.NoError(t, s.Save(ctx, sampleSettings()))

	_, ok, _ := kv.Get(ctx, store.DefaultKey)
	assert.False(t, ok)
	_, ok, _ = kv.Get(ctx, "other")
	assert.True(t, ok)
}

func TestFingerprint_TracksWrites(t *testing.T) {
	ctx := t.Context()
	s := newTestStore(store.NewMemoryByteStore())

	_, ok, err := s.Fingerprint(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.AddContact(ctx, "Alex", "1")
	require.NoError(t, err)
	first, ok, err := s.Fingerprint(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, first, 20)

	require.NoError(t, s.CompleteFirstLaunch(ctx))
	second, _, err := s.Fingerprint(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
