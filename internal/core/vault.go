package core

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/argentum-labs/stackvault/internal/crypto"
	"github.com/argentum-labs/stackvault/internal/inventory"
	"github.com/argentum-labs/stackvault/internal/keys"
	"github.com/argentum-labs/stackvault/internal/logger"
	"github.com/argentum-labs/stackvault/internal/storage"
)

var (
	ErrLocked          = errors.New("vault is locked")
	ErrNotLocked       = errors.New("vault is not locked")
	ErrWrongPassphrase = errors.New("wrong passphrase")
	ErrKeyUnavailable  = errors.New("session key unavailable")
	ErrNoUndo          = errors.New("nothing to undo")
)

// State is the lock state of the vault.
type State int

const (
	StateNoData State = iota
	StateLocked
	StateUnlocked
)

func (s State) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	default:
		return "no data"
	}
}

// Options configures a Vault.
type Options struct {
	// Path is the vault database file.
	Path string
	// SessionID scopes the volatile slot and the ephemeral key. Empty means
	// a fresh random session per process.
	SessionID string
	// KDFIterations overrides the PBKDF2 cost for new derivations.
	KDFIterations int
	// UndoWindow overrides the removal recovery window.
	UndoWindow time.Duration
	// Log defaults to a no-op logger.
	Log *logger.Logger
}

// Vault orchestrates keys, encryption, and storage for one inventory
// dataset. All operations are serialized; no two encrypt or persist cycles
// ever race against the same blob slot.
type Vault struct {
	store     *storage.Store
	keys      *keys.Manager
	log       *logger.Logger
	saver     *saver
	undo      *inventory.UndoLog
	sessionID string

	mu      sync.Mutex
	state   State
	status  string
	dataset inventory.Dataset
	blob    *storage.Blob // present while locked, for a later unlock
	slot    storage.Slot
	key     []byte // active key, nil while locked
	salt    []byte // nil when the active key is ephemeral
	iters   int
	pref    storage.Preference
}

// Open opens (or creates) a vault and computes its initial lock state: the
// storage slots are probed for a blob, the blob's key-derivation metadata
// decides whether a passphrase is demanded, and an ephemeral-keyed blob is
// decrypted right away when the session key is still available.
func Open(opts Options) (*Vault, error) {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	sessionID := opts.SessionID
	if sessionID == "" {
		b, err := crypto.GenerateRandom(16)
		if err != nil {
			return nil, err
		}
		sessionID = hex.EncodeToString(b)
	}

	store, err := storage.Open(opts.Path, log)
	if err != nil {
		return nil, err
	}

	vaultID, err := store.GetOrCreateVaultID()
	if err != nil {
		store.Close()
		return nil, err
	}

	pref, err := store.GetPreference()
	if err != nil {
		store.Close()
		return nil, err
	}

	v := &Vault{
		store:     store,
		keys:      keys.NewManager(vaultID, opts.KDFIterations),
		log:       log,
		undo:      inventory.NewUndoLog(opts.UndoWindow),
		sessionID: sessionID,
		pref:      pref,
	}

	if err := v.probe(); err != nil {
		store.Close()
		return nil, err
	}

	v.saver = newSaver(store, sessionID, log)
	return v, nil
}

// probe implements the startup state computation.
func (v *Vault) probe() error {
	blob, slot, err := v.store.ReadBlob(v.sessionID)
	if err != nil {
		return err
	}

	if blob == nil {
		v.state = StateNoData
		v.dataset = inventory.Dataset{}
		v.status = "no data stored yet"
		return nil
	}

	v.blob = blob
	v.slot = slot

	if blob.HasSalt() {
		v.state = StateLocked
		v.status = "locked: passphrase required"
		return nil
	}

	key := v.keys.ImportEphemeral()
	if key == nil {
		// The blob was sealed under a session key that is gone. The data is
		// unrecoverable without it; say so instead of fabricating a new key
		// and discarding the user's ciphertext.
		v.state = StateLocked
		v.status = "locked: session key missing; stored data cannot be recovered without it"
		return nil
	}

	sealer := crypto.NewSealer(key)
	payload, err := sealer.Open(blob.Ciphertext, blob.Nonce)
	if err != nil {
		v.state = StateLocked
		v.status = "locked: stored data does not match the session key"
		crypto.ClearBytes(key)
		return nil
	}

	dataset, err := inventory.Decode(payload)
	if err != nil {
		v.log.Warn().Err(err).Msg("decrypted payload is unreadable")
		v.state = StateLocked
		v.status = "locked: stored payload is unreadable"
		crypto.ClearBytes(key)
		return nil
	}

	v.state = StateUnlocked
	v.dataset = dataset
	v.key = key
	v.status = fmt.Sprintf("unlocked: %d items", len(dataset))
	return nil
}

// Unlock derives a key from the passphrase and the stored salt and attempts
// to decrypt the blob. On a wrong passphrase the vault stays locked and the
// stored ciphertext is untouched.
func (v *Vault) Unlock(passphrase []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != StateLocked {
		return ErrNotLocked
	}
	if !v.blob.HasSalt() {
		return ErrKeyUnavailable
	}

	key := v.keys.DeriveFromPassphrase(passphrase, v.blob.Salt, v.blob.Iterations)
	sealer := crypto.NewSealer(key)
	payload, err := sealer.Open(v.blob.Ciphertext, v.blob.Nonce)
	if err != nil {
		crypto.ClearBytes(key)
		return ErrWrongPassphrase
	}

	dataset, err := inventory.Decode(payload)
	if err != nil {
		crypto.ClearBytes(key)
		return fmt.Errorf("failed to decode dataset: %w", err)
	}

	v.setKey(key, v.blob.Salt, v.blob.Iterations)
	v.state = StateUnlocked
	v.dataset = dataset
	v.status = fmt.Sprintf("unlocked: %d items", len(dataset))
	return nil
}

// SetPassphrase switches the vault to a passphrase-derived key (or back to
// an ephemeral key when passphrase is empty), re-encrypts the in-memory
// dataset under the new key, and persists before returning. A fresh salt is
// generated on every call; rotating the passphrase always rotates the salt.
//
// Not permitted while locked: re-encrypting the empty in-memory dataset
// would overwrite ciphertext the user can still unlock.
func (v *Vault) SetPassphrase(passphrase []byte) error {
	v.mu.Lock()

	if v.state == StateLocked {
		v.mu.Unlock()
		return ErrLocked
	}

	if len(passphrase) == 0 {
		key := v.keys.ImportEphemeral()
		if key == nil {
			var err error
			key, err = v.keys.GenerateEphemeral()
			if err != nil {
				v.mu.Unlock()
				return err
			}
		}
		v.setKey(key, nil, 0)
	} else {
		key, salt, err := v.keys.NewDerived(passphrase)
		if err != nil {
			v.mu.Unlock()
			return err
		}
		v.setKey(key, salt, v.keys.Iterations())
	}

	v.state = StateUnlocked
	v.status = fmt.Sprintf("unlocked: %d items", len(v.dataset))
	err := v.persistLocked()
	v.mu.Unlock()
	if err != nil {
		return err
	}
	return v.saver.flush()
}

// ReplaceDataset is the inbound mutation operation: the full new sequence
// of items replaces the current dataset and is re-sealed and persisted
// under the active key. On a brand-new vault with no key yet, an ephemeral
// key is provisioned silently; an empty dataset has nothing to protect.
func (v *Vault) ReplaceDataset(items inventory.Dataset) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mutateLocked(items.Clone())
}

// AddItem appends an item to the dataset.
func (v *Vault) AddItem(item inventory.Item) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mutateLocked(v.dataset.Insert(len(v.dataset), item))
}

// RemoveItem deletes the item at index and records it in the undo log.
func (v *Vault) RemoveItem(index int) (inventory.Item, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	ds, removed, ok := v.dataset.Remove(index)
	if !ok {
		return inventory.Item{}, fmt.Errorf("no item at index %d", index)
	}
	if err := v.mutateLocked(ds); err != nil {
		return inventory.Item{}, err
	}
	v.undo.Record(removed, index)
	return removed, nil
}

// Undo restores the most recently removed item to its original position.
// Fails with ErrNoUndo once the recovery window has expired or after a
// successful restore.
func (v *Vault) Undo() (inventory.Item, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	item, index, ok := v.undo.Take()
	if !ok {
		return inventory.Item{}, ErrNoUndo
	}
	if err := v.mutateLocked(v.dataset.Insert(index, item)); err != nil {
		return inventory.Item{}, err
	}
	return item, nil
}

// mutateLocked applies a full-replacement mutation. Caller holds v.mu.
func (v *Vault) mutateLocked(ds inventory.Dataset) error {
	switch v.state {
	case StateUnlocked:
	case StateNoData:
		// Self-heal into Unlocked: provision an ephemeral key for the very
		// first write. This is the only transition that happens without
		// explicit user action.
		key := v.keys.ImportEphemeral()
		if key == nil {
			var err error
			key, err = v.keys.GenerateEphemeral()
			if err != nil {
				return err
			}
		}
		v.setKey(key, nil, 0)
		v.state = StateUnlocked
	default:
		return ErrLocked
	}

	v.dataset = ds
	v.status = fmt.Sprintf("unlocked: %d items", len(ds))
	return v.persistLocked()
}

// persistLocked queues the current dataset for encryption and persistence.
// Caller holds v.mu.
func (v *Vault) persistLocked() error {
	payload, err := inventory.Encode(v.dataset)
	if err != nil {
		return err
	}
	v.saver.enqueue(&saveJob{
		payload:    payload,
		key:        append([]byte(nil), v.key...),
		salt:       append([]byte(nil), v.salt...),
		iterations: v.iters,
		pref:       v.pref,
	})
	return nil
}

// setKey replaces the active key material. Caller holds v.mu (or is the
// constructor).
func (v *Vault) setKey(key, salt []byte, iterations int) {
	crypto.ClearBytes(v.key)
	v.key = key
	v.salt = append([]byte(nil), salt...)
	v.iters = iterations
	v.blob = nil
	v.slot = storage.SlotNone
}

// SetPersistence selects the slot future writes target and migrates any
// existing blob there. Works while locked too: the ciphertext moves as-is.
func (v *Vault) SetPersistence(durable bool) error {
	if err := v.saver.flush(); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	pref := storage.PreferVolatile
	if durable {
		pref = storage.PreferDurable
	}
	if err := v.store.SetPreference(pref); err != nil {
		return err
	}
	v.pref = pref
	return v.store.Migrate(pref, v.sessionID)
}

// Flush blocks until every queued mutation has been encrypted and written.
func (v *Vault) Flush() error {
	return v.saver.flush()
}

// Clear removes the blob from both slots and forgets the ephemeral key.
// The vault returns to NoData with an empty dataset.
func (v *Vault) Clear() error {
	if err := v.saver.flush(); err != nil {
		v.log.Warn().Err(err).Msg("pending save failed before clear")
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.store.Clear(); err != nil {
		return err
	}
	if err := v.keys.ForgetEphemeral(); err != nil {
		v.log.Warn().Err(err).Msg("failed to remove session key")
	}
	v.setKey(nil, nil, 0)
	v.state = StateNoData
	v.dataset = inventory.Dataset{}
	v.status = "no data stored yet"
	return nil
}

// EndSession tears down session-scoped state: the volatile blob slot and
// the ephemeral key entry. Durable blobs and passphrase-derived data are
// unaffected.
func (v *Vault) EndSession() error {
	if err := v.saver.flush(); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.store.ClearVolatile(); err != nil {
		return err
	}
	return v.keys.ForgetEphemeral()
}

// Close drains pending saves, clears key material, and closes the store.
func (v *Vault) Close() error {
	saveErr := v.saver.close()

	v.mu.Lock()
	crypto.ClearBytes(v.key)
	v.key = nil
	v.mu.Unlock()

	if err := v.store.Close(); err != nil {
		return err
	}
	return saveErr
}

// State returns the current lock state.
func (v *Vault) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Status returns a human-readable description of the current state.
func (v *Vault) Status() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// Dataset returns a copy of the decrypted dataset. Empty unless unlocked.
func (v *Vault) Dataset() inventory.Dataset {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dataset.Clone()
}

// Preference reports whether writes currently target the durable slot.
func (v *Vault) Preference() storage.Preference {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pref
}

// Slot reports which slot the blob was found in at startup, for status
// display. SlotNone once unlocked through a fresh write.
func (v *Vault) Slot() storage.Slot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.slot
}

// HasPassphrase reports whether the stored blob (or active key) is
// passphrase-derived.
func (v *Vault) HasPassphrase() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.blob != nil {
		return v.blob.HasSalt()
	}
	return len(v.salt) > 0
}

// SessionID returns the session identifier scoping volatile state.
func (v *Vault) SessionID() string {
	return v.sessionID
}
