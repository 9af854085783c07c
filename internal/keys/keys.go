// Package keys manages the symmetric keys protecting the inventory blob.
//
// Two provenances exist and never mix: ephemeral keys are machine-generated
// random bytes held only in the session key storage, passphrase-derived keys
// are recomputed on demand from a user secret and a persisted salt. Neither
// kind is ever written into the vault database.
package keys

import (
	"fmt"

	"github.com/argentum-labs/stackvault/internal/crypto"
	"github.com/argentum-labs/stackvault/internal/keyring"
)

// Manager creates, imports, and derives keys for one vault.
type Manager struct {
	vaultID    string
	iterations int
}

// NewManager builds a Manager for the vault identified by vaultID.
// iterations configures PBKDF2 cost for newly derived keys; zero or less
// selects the default.
func NewManager(vaultID string, iterations int) *Manager {
	if iterations <= 0 {
		iterations = crypto.DefaultIters
	}
	return &Manager{vaultID: vaultID, iterations: iterations}
}

// Iterations returns the PBKDF2 cost used for new derivations.
func (m *Manager) Iterations() int {
	return m.iterations
}

// GenerateEphemeral creates a fresh random key and persists its material
// into the session key storage, invalidating any previously issued
// ephemeral key for this vault.
func (m *Manager) GenerateEphemeral() ([]byte, error) {
	key, err := crypto.GenerateRandom(crypto.KeySize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ephemeral key: %w", err)
	}
	if err := keyring.SaveKey(m.vaultID, key); err != nil {
		return nil, fmt.Errorf("failed to store ephemeral key: %w", err)
	}
	return key, nil
}

// ImportEphemeral reconstructs the ephemeral key from the session key
// storage. Returns nil (not an error) when no well-formed material is
// present; the caller decides whether to generate a new key.
func (m *Manager) ImportEphemeral() []byte {
	key := keyring.LoadKey(m.vaultID)
	if len(key) != crypto.KeySize {
		return nil
	}
	return key
}

// ForgetEphemeral removes the ephemeral key material from the session key
// storage.
func (m *Manager) ForgetEphemeral() error {
	return keyring.DeleteKey(m.vaultID)
}

// DeriveFromPassphrase derives a key from a passphrase and an existing
// salt. Derivation itself never fails on bad input; a wrong passphrase only
// becomes observable when the resulting key fails to authenticate a blob.
func (m *Manager) DeriveFromPassphrase(passphrase, salt []byte, iterations int) []byte {
	if iterations <= 0 {
		iterations = m.iterations
	}
	kdf := &crypto.KDF{Salt: salt, Iterations: iterations}
	return kdf.DeriveKey(passphrase)
}

// NewDerived generates a fresh random salt and derives a key from the
// passphrase under it. Used when setting or rotating a passphrase: the salt
// rotates with the passphrase so a (key, salt) pair is never reused across
// unrelated derivations.
func (m *Manager) NewDerived(passphrase []byte) (key, salt []byte, err error) {
	kdf, err := crypto.NewKDF(m.iterations)
	if err != nil {
		return nil, nil, err
	}
	return kdf.DeriveKey(passphrase), kdf.Salt, nil
}
