// Package crypto provides cryptographic operations for stackvault.
//
// Encryption uses AES-256-GCM with:
//   - 32-byte key, either random (ephemeral) or derived from a passphrase
//   - 12-byte random nonce drawn fresh per seal operation
//   - Authenticated encryption prevents tampering
//
// Key derivation uses PBKDF2-HMAC-SHA256 with:
//   - 16-byte random salt (stored unencrypted next to the blob)
//   - 210,000 iterations by default (OWASP minimum recommendation)
//
// Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
//   - Call Sealer.Destroy() when done with encryption operations
package crypto
