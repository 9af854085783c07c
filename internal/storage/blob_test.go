package storage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argentum-labs/stackvault/internal/crypto"
)

func TestBlobRoundTrip(t *testing.T) {
	salt, err := crypto.GenerateRandom(crypto.SaltSize)
	require.NoError(t, err)
	blob := testBlob(t)
	blob.Salt = salt
	blob.Iterations = 210000

	data, err := EncodeBlob(blob)
	require.NoError(t, err)

	got, err := DecodeBlob(data)
	require.NoError(t, err)
	assert.Equal(t, blob, got)
	assert.True(t, got.HasSalt())
}

func TestBlobWireFormat(t *testing.T) {
	data, err := EncodeBlob(testBlob(t))
	require.NoError(t, err)

	// Byte fields travel as base64 strings under fixed key names.
	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, float64(BlobVersion), wire["v"])
	assert.Contains(t, wire, "ciphertext")
	assert.Contains(t, wire, "iv")
	assert.NotContains(t, wire, "salt", "ephemeral blobs carry no salt")
	assert.NotContains(t, wire, "iters")
}

func TestDecodeBlobUnknownVersion(t *testing.T) {
	blob := testBlob(t)
	blob.Version = 99
	data, err := EncodeBlob(blob)
	require.NoError(t, err)

	_, err = DecodeBlob(data)
	assert.ErrorIs(t, err, ErrBlobVersion)
}

func TestDecodeBlobMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":           `garbage`,
		"missing version":    `{"ciphertext":"AAAA","iv":"AAAAAAAAAAAAAAAA"}`,
		"empty ciphertext":   `{"v":1,"ciphertext":"","iv":"AAAAAAAAAAAAAAAA"}`,
		"wrong nonce length": `{"v":1,"ciphertext":"AAAA","iv":"AAAA"}`,
		"wrong salt length":  `{"v":1,"ciphertext":"AAAA","iv":"AAAAAAAAAAAAAAAA","salt":"AAAA"}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeBlob([]byte(data))
			assert.ErrorIs(t, err, ErrBadBlob)
		})
	}
}
