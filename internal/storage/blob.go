package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/argentum-labs/stackvault/internal/crypto"
)

// BlobVersion is the current persisted blob format version.
const BlobVersion = 1

var (
	ErrBadBlob     = errors.New("malformed blob")
	ErrBlobVersion = errors.New("unsupported blob version")
)

// Blob is the persisted unit: versioned ciphertext plus the nonce it was
// sealed under. Salt is present exactly when the blob was sealed under a
// passphrase-derived key; its presence is the signal, on reload, that a
// passphrase is required. []byte fields marshal as base64 strings.
type Blob struct {
	Version    int    `json:"v"`
	Ciphertext []byte `json:"ciphertext"`
	Nonce      []byte `json:"iv"`
	Salt       []byte `json:"salt,omitempty"`
	// Iterations records the KDF cost the salt was used with, so the cost
	// can be raised later without stranding old blobs.
	Iterations int `json:"iters,omitempty"`
}

// HasSalt reports whether the blob requires a passphrase-derived key.
func (b *Blob) HasSalt() bool {
	return len(b.Salt) > 0
}

// EncodeBlob serializes a blob to its JSON wire form.
func EncodeBlob(b *Blob) ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to encode blob: %w", err)
	}
	return data, nil
}

// DecodeBlob parses and validates a persisted blob. The version field is
// checked before the rest of the structure is interpreted; an unrecognized
// version yields ErrBlobVersion, any structural problem ErrBadBlob.
func DecodeBlob(data []byte) (*Blob, error) {
	var head struct {
		Version *int `json:"v"`
	}
	if err := json.Unmarshal(data, &head); err != nil || head.Version == nil {
		return nil, ErrBadBlob
	}
	if *head.Version != BlobVersion {
		return nil, fmt.Errorf("%w: %d", ErrBlobVersion, *head.Version)
	}

	var b Blob
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, ErrBadBlob
	}
	if len(b.Ciphertext) == 0 || len(b.Nonce) != crypto.NonceSize {
		return nil, ErrBadBlob
	}
	if b.Salt != nil && len(b.Salt) != crypto.SaltSize {
		return nil, ErrBadBlob
	}
	return &b, nil
}
