// Package store provides the key-value persistence layer for the ledger.
// The whole debt collection is serialized under a single fixed key and
// replaced on every write; a second key holds the merchant configuration.
package store

// Storage keys. KeyDebts keeps the v2 suffix so existing data written by
// earlier versions of the app is picked up as-is.
const (
	KeyDebts    = "debts_v2"
	KeyMerchant = "merchant_config"
)

// KV abstracts the storage backend so it can be swapped (JSON files,
// SQLite) without touching the ledger.
type KV interface {
	// Get returns the value stored under key, and whether it exists.
	Get(key string) ([]byte, bool, error)

	// Set replaces the value stored under key.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string) error

	// Close releases any resources held by the store.
	Close() error
}
