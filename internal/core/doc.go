// Package core provides the vault lock state machine.
//
// A Vault is in one of three states:
//   - NoData: no blob exists in either storage slot
//   - Locked: a blob exists but no key can open it yet
//   - Unlocked: a key is active and the dataset is in memory
//
// Startup probes the storage slots and inspects the blob's key-derivation
// metadata: a salt demands a passphrase, no salt means the ephemeral session
// key is tried. Every mutation while unlocked re-seals the dataset under the
// active key and persists it to the slot selected by the persistence
// preference; rapid mutations are coalesced so only the newest snapshot is
// ever durably written.
//
// Failures never cascade into stored state: a failed decrypt leaves the
// ciphertext untouched and is reported as a state plus a status message.
package core
