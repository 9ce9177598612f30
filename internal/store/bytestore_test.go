package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtime/internal/domain"
	"wtime/internal/store"
)

// exerciseByteStore checks the ByteStore contract against kv.
func exerciseByteStore(t *testing.T, kv domain.ByteStore) {
	t.Helper()
	ctx := t.Context()
	const key domain.StorageKey = "@wtime_secure_data"

	_, ok, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "fresh store should not hold the key")

	require.NoError(t, kv.Set(ctx, key, []byte("first")))
	require.NoError(t, kv.Set(ctx, key, []byte("second")))
	got, ok, err := kv.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("second"), got)

	require.NoError(t, kv.Delete(ctx, key))
	_, ok, err = kv.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Delete(ctx, key), "deleting an absent key")

	// The secure store works on top of it.
	s := store.NewSecureStore(kv)
	require.NoError(t, s.Save(ctx, sampleSettings()))
	assert.Equal(t, sampleSettings(), store.NewSecureStore(kv).Load(ctx))
}

func TestMemoryByteStore(t *testing.T) {
	exerciseByteStore(t, store.NewMemoryByteStore())
}

func TestMemoryByteStore_CopiesValues(t *testing.T) {
	ctx := t.Context()
	kv := store.NewMemoryByteStore()
	in := []byte("abc")
	require.NoError(t, kv.Set(ctx, "k", in))
	in[0] = 'x'

	got, _, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}

func TestFileByteStore(t *testing.T) {
	exerciseByteStore(t, store.NewFileByteStore(filepath.Join(t.TempDir(), "nested")))
}

func TestFileByteStore_FileLayout(t *testing.T) {
	ctx := t.Context()
	dir := t.TempDir()
	kv := store.NewFileByteStore(dir)
	require.NoError(t, kv.Set(ctx, "@wtime_secure_data", []byte("blob")))

	path := kv.Path("@wtime_secure_data")
	assert.Equal(t, filepath.Join(dir, "_wtime_secure_data.dat"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileByteStore_KeysCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	kv := store.NewFileByteStore(dir)
	assert.Equal(t, dir, filepath.Dir(kv.Path("../../etc/passwd")))
}

func TestFileByteStore_CanceledContext(t *testing.T) {
	kv := store.NewFileByteStore(t.TempDir())
	ctx, cancel := contextWithCancel(t)
	cancel()
	assert.Error(t, kv.Set(ctx, "k", []byte("v")))
}

func TestSQLiteByteStore(t *testing.T) {
	kv, err := store.OpenSQLiteByteStore(filepath.Join(t.TempDir(), "wtime.db"))
	require.NoError(t, err)
	defer kv.Close()

	exerciseByteStore(t, kv)
}

func TestSQLiteByteStore_Reopen(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "wtime.db")

	kv, err := store.OpenSQLiteByteStore(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "k", []byte("persisted")))
	require.NoError(t, kv.Close())

	kv, err = store.OpenSQLiteByteStore(path)
	require.NoError(t, err)
	defer kv.Close()
	got, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("persisted"), got)
}

func TestRedisByteStore(t *testing.T) {
	addr := os.Getenv("WTIME_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("WTIME_TEST_REDIS_ADDR not set")
	}
	kv, err := store.NewRedisByteStore(t.Context(), store.RedisOptions{
		Addr:   addr,
		Prefix: "wtime-test:" + t.Name() + ":",
	})
	require.NoError(t, err)
	defer kv.Close()

	exerciseByteStore(t, kv)
}

func TestRedisByteStore_RequiresAddr(t *testing.T) {
	_, err := store.NewRedisByteStore(t.Context(), store.RedisOptions{})
	assert.Error(t, err)
}
