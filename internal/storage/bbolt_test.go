package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/argentum-labs/stackvault/internal/crypto"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testBlob(t *testing.T) *Blob {
	t.Helper()
	ciphertext, err := crypto.GenerateRandom(64)
	require.NoError(t, err)
	nonce, err := crypto.GenerateRandom(crypto.NonceSize)
	require.NoError(t, err)
	return &Blob{Version: BlobVersion, Ciphertext: ciphertext, Nonce: nonce}
}

func TestOpenCreatesBuckets(t *testing.T) {
	store := openTestStore(t)

	vaultID, err := store.GetOrCreateVaultID()
	require.NoError(t, err)
	assert.Len(t, vaultID, 32) // 16 random bytes, hex encoded

	// The ID is stable across calls.
	again, err := store.GetOrCreateVaultID()
	require.NoError(t, err)
	assert.Equal(t, vaultID, again)

	_, err = store.GetModified()
	assert.NoError(t, err)
}

func TestPreferenceDefaultsToVolatile(t *testing.T) {
	store := openTestStore(t)

	pref, err := store.GetPreference()
	require.NoError(t, err)
	assert.Equal(t, PreferVolatile, pref)

	require.NoError(t, store.SetPreference(PreferDurable))
	pref, err = store.GetPreference()
	require.NoError(t, err)
	assert.Equal(t, PreferDurable, pref)
}

func TestWriteReadVolatile(t *testing.T) {
	store := openTestStore(t)
	blob := testBlob(t)

	require.NoError(t, store.WriteBlob(blob, PreferVolatile, "session-a"))

	got, slot, err := store.ReadBlob("session-a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, SlotVolatile, slot)
	assert.Equal(t, blob.Ciphertext, got.Ciphertext)
	assert.Equal(t, blob.Nonce, got.Nonce)
}

func TestWriteReadDurable(t *testing.T) {
	store := openTestStore(t)
	blob := testBlob(t)

	require.NoError(t, store.WriteBlob(blob, PreferDurable, "session-a"))

	// Durable blobs are visible to every session.
	got, slot, err := store.ReadBlob("session-b")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, SlotDurable, slot)
}

func TestVolatileScopedToSession(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.WriteBlob(testBlob(t), PreferVolatile, "session-a"))

	// A different session does not see another session's volatile blob.
	got, slot, err := store.ReadBlob("session-b")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, SlotNone, slot)
}

func TestWriteClearsOtherSlot(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.WriteBlob(testBlob(t), PreferVolatile, "session-a"))
	durable := testBlob(t)
	require.NoError(t, store.WriteBlob(durable, PreferDurable, "session-a"))

	// Only one slot may hold a blob; the volatile copy is gone.
	got, slot, err := store.ReadBlob("session-a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, SlotDurable, slot)
	assert.Equal(t, durable.Ciphertext, got.Ciphertext)

	require.NoError(t, store.ClearVolatile())
	got, slot, err = store.ReadBlob("session-a")
	require.NoError(t, err)
	require.NotNil(t, got, "clearing the volatile slot must not touch the durable blob")
	assert.Equal(t, SlotDurable, slot)
}

func TestMigrateVolatileToDurable(t *testing.T) {
	store := openTestStore(t)
	blob := testBlob(t)

	require.NoError(t, store.WriteBlob(blob, PreferVolatile, "session-a"))
	require.NoError(t, store.Migrate(PreferDurable, "session-a"))

	got, slot, err := store.ReadBlob("session-a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, SlotDurable, slot)
	assert.Equal(t, blob.Ciphertext, got.Ciphertext)
}

func TestMigrateDurableToVolatile(t *testing.T) {
	store := openTestStore(t)
	blob := testBlob(t)

	require.NoError(t, store.WriteBlob(blob, PreferDurable, "session-a"))
	require.NoError(t, store.Migrate(PreferVolatile, "session-a"))

	got, slot, err := store.ReadBlob("session-a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, SlotVolatile, slot)
	assert.Equal(t, blob.Ciphertext, got.Ciphertext)

	// And it is session-stamped like any volatile write.
	got, _, err = store.ReadBlob("session-b")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMigrateSkipsForeignSession(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.WriteBlob(testBlob(t), PreferVolatile, "session-a"))

	// session-b cannot claim session-a's volatile blob.
	require.NoError(t, store.Migrate(PreferDurable, "session-b"))
	got, slot, err := store.ReadBlob("session-a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, SlotVolatile, slot)
}

func TestMigrateNothingToMove(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Migrate(PreferDurable, "session-a"))

	got, _, err := store.ReadBlob("session-a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClear(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.WriteBlob(testBlob(t), PreferDurable, "session-a"))
	require.NoError(t, store.Clear())

	got, slot, err := store.ReadBlob("session-a")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, SlotNone, slot)
}

func TestMalformedBlobTreatedAsAbsent(t *testing.T) {
	store := openTestStore(t)

	err := store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(DurableBucket).Put(slotBlob, []byte("not json at all"))
	})
	require.NoError(t, err)

	got, slot, err := store.ReadBlob("session-a")
	require.NoError(t, err, "corruption must not surface as an error")
	assert.Nil(t, got)
	assert.Equal(t, SlotNone, slot)
}
