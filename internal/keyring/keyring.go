// Package keyring stores ephemeral key material in the OS keyring. This is
// the volatile session-scoped key storage: the raw key bytes live as base64
// under a fixed account per vault and are deleted when the session ends.
package keyring

import (
	"encoding/base64"

	"github.com/zalando/go-keyring"
)

const serviceName = "stackvault"

// SaveKey stores ephemeral key material for a vault, overwriting any prior
// entry.
func SaveKey(vaultID string, key []byte) error {
	return keyring.Set(serviceName, vaultID, base64.StdEncoding.EncodeToString(key))
}

// LoadKey retrieves ephemeral key material for a vault. Returns nil when no
// entry exists or the stored value is not valid base64; callers treat both
// the same way.
func LoadKey(vaultID string) []byte {
	encoded, err := keyring.Get(serviceName, vaultID)
	if err != nil {
		return nil
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}
	return key
}

// DeleteKey removes the ephemeral key entry for a vault.
func DeleteKey(vaultID string) error {
	err := keyring.Delete(serviceName, vaultID)
	if err == keyring.ErrNotFound {
		return nil
	}
	return err
}

// HasKey checks if ephemeral key material is stored for a vault.
func HasKey(vaultID string) bool {
	return LoadKey(vaultID) != nil
}
