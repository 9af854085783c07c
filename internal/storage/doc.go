// Package storage provides the BBolt database interface for stackvault.
//
// Database structure uses three buckets:
//   - config: format version, vault ID, persistence preference, timestamps
//   - volatile: blob slot stamped with a session ID, cleared at session end
//   - durable: blob slot that survives restarts
//
// Writes enforce the at-most-one-copy invariant: storing a blob in one slot
// clears the other within the same transaction, so the two slots can never
// hold diverging copies of the dataset.
//
// BBolt provides ACID transactions, file locking, and corruption detection.
package storage
