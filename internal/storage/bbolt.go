package storage

import (
	"encoding/hex"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/argentum-labs/stackvault/internal/crypto"
	"github.com/argentum-labs/stackvault/internal/logger"
)

// Bucket names
var (
	ConfigBucket   = []byte("config")   // version, vault id, preference, timestamps
	VolatileBucket = []byte("volatile") // blob slot cleared at session end
	DurableBucket  = []byte("durable")  // blob slot that survives restarts
)

// Config keys
var (
	ConfigVersion    = []byte("version")
	ConfigCreated    = []byte("created")
	ConfigModified   = []byte("modified")
	ConfigVaultID    = []byte("vault_id")
	ConfigPreference = []byte("preference")
)

// Slot bucket keys
var (
	slotBlob    = []byte("blob")
	slotSession = []byte("session")
)

// Slot identifies which backend a blob was found in.
type Slot int

const (
	SlotNone Slot = iota
	SlotVolatile
	SlotDurable
)

func (s Slot) String() string {
	switch s {
	case SlotVolatile:
		return "volatile"
	case SlotDurable:
		return "durable"
	default:
		return "none"
	}
}

// Preference selects the slot the next write targets. Volatile is the
// default: nothing survives the session unless the user asks for it.
type Preference int

const (
	PreferVolatile Preference = iota
	PreferDurable
)

func (p Preference) String() string {
	if p == PreferDurable {
		return "durable"
	}
	return "volatile"
}

func (p Preference) slot() []byte {
	if p == PreferDurable {
		return DurableBucket
	}
	return VolatileBucket
}

func (p Preference) other() []byte {
	if p == PreferDurable {
		return VolatileBucket
	}
	return DurableBucket
}

// Store provides BBolt-based blob storage for stackvault.
type Store struct {
	db  *bolt.DB
	log *logger.Logger
}

// Open opens or creates a stackvault database and ensures the bucket
// structure exists.
func Open(path string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, VolatileBucket, DurableBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if config.Get(ConfigVersion) != nil {
			return nil
		}
		if err := config.Put(ConfigVersion, []byte("1")); err != nil {
			return err
		}
		created, _ := time.Now().MarshalBinary()
		if err := config.Put(ConfigCreated, created); err != nil {
			return err
		}
		return config.Put(ConfigModified, created)
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, log: log}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// GetOrCreateVaultID retrieves the vault ID, generating one on first use.
// The vault ID keys the session key storage entry in the OS keyring.
func (s *Store) GetOrCreateVaultID() (string, error) {
	var vaultID string
	err := s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if data := config.Get(ConfigVaultID); data != nil {
			vaultID = string(data)
			return nil
		}
		b, err := crypto.GenerateRandom(16)
		if err != nil {
			return fmt.Errorf("failed to generate vault ID: %w", err)
		}
		vaultID = hex.EncodeToString(b)
		return config.Put(ConfigVaultID, []byte(vaultID))
	})
	return vaultID, err
}

// GetPreference returns the persisted persistence preference, defaulting to
// volatile when none has been recorded.
func (s *Store) GetPreference() (Preference, error) {
	pref := PreferVolatile
	err := s.db.View(func(tx *bolt.Tx) error {
		if string(tx.Bucket(ConfigBucket).Get(ConfigPreference)) == "durable" {
			pref = PreferDurable
		}
		return nil
	})
	return pref, err
}

// SetPreference records which slot future writes target.
func (s *Store) SetPreference(pref Preference) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(ConfigBucket).Put(ConfigPreference, []byte(pref.String()))
	})
}

// ReadBlob returns the first present, well-formed blob: the durable slot is
// probed first, then the volatile slot. A volatile blob stamped by a
// different session is treated as absent, as is any malformed entry; the
// user starts fresh rather than being locked out by corruption.
func (s *Store) ReadBlob(sessionID string) (*Blob, Slot, error) {
	var (
		blob *Blob
		slot Slot
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		if data := tx.Bucket(DurableBucket).Get(slotBlob); data != nil {
			b, err := DecodeBlob(data)
			if err != nil {
				s.log.Warn().Err(err).Str("slot", "durable").Msg("ignoring malformed blob")
			} else {
				blob, slot = b, SlotDurable
				return nil
			}
		}

		volatile := tx.Bucket(VolatileBucket)
		data := volatile.Get(slotBlob)
		if data == nil {
			return nil
		}
		if stamp := volatile.Get(slotSession); string(stamp) != sessionID {
			s.log.Debug().Msg("volatile blob belongs to another session")
			return nil
		}
		b, err := DecodeBlob(data)
		if err != nil {
			s.log.Warn().Err(err).Str("slot", "volatile").Msg("ignoring malformed blob")
			return nil
		}
		blob, slot = b, SlotVolatile
		return nil
	})
	if err != nil {
		return nil, SlotNone, fmt.Errorf("failed to read blob: %w", err)
	}
	return blob, slot, nil
}

// WriteBlob stores the blob in the slot matching pref and clears the other
// slot in the same transaction, so at most one slot ever holds a live blob.
func (s *Store) WriteBlob(b *Blob, pref Preference, sessionID string) error {
	data, err := EncodeBlob(b)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		target := tx.Bucket(pref.slot())
		if err := target.Put(slotBlob, data); err != nil {
			return err
		}
		if pref == PreferVolatile {
			if err := target.Put(slotSession, []byte(sessionID)); err != nil {
				return err
			}
		}

		other := tx.Bucket(pref.other())
		if err := other.Delete(slotBlob); err != nil {
			return err
		}
		if err := other.Delete(slotSession); err != nil {
			return err
		}

		modified, _ := time.Now().MarshalBinary()
		return tx.Bucket(ConfigBucket).Put(ConfigModified, modified)
	})
}

// Migrate moves whatever blob currently exists into the slot matching pref,
// clearing the other slot. The blob bytes are moved as-is; no key is needed,
// so a locked vault can still change its persistence preference. Doing the
// move in one transaction keeps the at-most-one-copy invariant even if the
// process dies mid-migration.
func (s *Store) Migrate(pref Preference, sessionID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		source := tx.Bucket(pref.other())
		data := source.Get(slotBlob)
		if data == nil {
			return nil
		}
		if pref == PreferDurable {
			// Moving out of the volatile slot: another session's blob is
			// not ours to migrate.
			if stamp := source.Get(slotSession); string(stamp) != sessionID {
				return nil
			}
		}

		// Copy before the Put; bbolt slices are only valid inside the tx.
		data = append([]byte(nil), data...)

		target := tx.Bucket(pref.slot())
		if err := target.Put(slotBlob, data); err != nil {
			return err
		}
		if pref == PreferVolatile {
			if err := target.Put(slotSession, []byte(sessionID)); err != nil {
				return err
			}
		}
		if err := source.Delete(slotBlob); err != nil {
			return err
		}
		return source.Delete(slotSession)
	})
}

// Clear removes the blob from both slots.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{VolatileBucket, DurableBucket} {
			b := tx.Bucket(bucket)
			if err := b.Delete(slotBlob); err != nil {
				return err
			}
			if err := b.Delete(slotSession); err != nil {
				return err
			}
		}
		return nil
	})
}

// ClearVolatile empties the volatile slot. Called at session end.
func (s *Store) ClearVolatile() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(VolatileBucket)
		if err := b.Delete(slotBlob); err != nil {
			return err
		}
		return b.Delete(slotSession)
	})
}

// GetModified retrieves the last modified timestamp
func (s *Store) GetModified() (time.Time, error) {
	var modified time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(ConfigBucket).Get(ConfigModified)
		if data == nil {
			return fmt.Errorf("modified time not found")
		}
		return modified.UnmarshalBinary(data)
	})
	return modified, err
}
