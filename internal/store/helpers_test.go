package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"wtime/internal/domain"
	"wtime/internal/store"
)

var errDiskFull = errors.New("disk full")

// fixedNow is the creation time stamped on notes in tests.
var fixedNow = time.Date(2025, 3, 4, 5, 6, 7, 89_000_000, time.UTC)

func sequentialIDs(prefix string) func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("%s%d", prefix, n.Add(1)) }
}

func newTestStore(kv domain.ByteStore, opts ...store.Option) *store.SecureStore {
	base := []store.Option{
		store.WithClock(func() time.Time { return fixedNow }),
		store.WithIDGenerator(sequentialIDs("id-")),
	}
	return store.NewSecureStore(kv, append(base, opts...)...)
}

// flakyStore fails Set and Delete while failing is true.
type flakyStore struct {
	*store.MemoryByteStore
	failing atomic.Bool
	sets    atomic.Int64
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryByteStore: store.NewMemoryByteStore()}
}

func (s *flakyStore) Set(ctx context.Context, key domain.StorageKey, value []byte) error {
	s.sets.Add(1)
	if s.failing.Load() {
		return errDiskFull
	}
	return s.MemoryByteStore.Set(ctx, key, value)
}

func (s *flakyStore) Delete(ctx context.Context, key domain.StorageKey) error {
	if s.failing.Load() {
		return errDiskFull
	}
	return s.MemoryByteStore.Delete(ctx, key)
}

// gateStore blocks every Set until release is closed and reports entry on entered.
type gateStore struct {
	*store.MemoryByteStore
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGateStore() *gateStore {
	return &gateStore{
		MemoryByteStore: store.NewMemoryByteStore(),
		entered:         make(chan struct{}, 16),
		release:         make(chan struct{}),
	}
}

func (s *gateStore) Set(ctx context.Context, key domain.StorageKey, value []byte) error {
	s.entered <- struct{}{}
	<-s.release
	return s.MemoryByteStore.Set(ctx, key, value)
}

func (s *gateStore) open() { s.once.Do(func() { close(s.release) }) }

// sampleSettings is the aggregate behind testdata/envelope_v1.golden.
func sampleSettings() domain.AppSettings {
	return domain.AppSettings{
		EmergencyContacts: []domain.EmergencyContact{
			{ID: "c1", Name: "Alex", Phone: "+15550001"},
		},
		Notes: []domain.EncryptedNote{{
			ID:      "n1",
			Title:   "Night of 3rd",
			Content: "Door forced <10pm> & left",
			Date:    "2025-03-04T05:06:07.089Z",
			Type:    domain.NoteIncident,
		}},
		IsFirstLaunch: false,
	}
}

func contextWithCancel(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithCancel(t.Context())
}
