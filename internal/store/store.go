// Package store provides the durable key-value storage the wallet keeps its
// state in. Values are opaque strings; callers encode and decode them.
package store

import (
	"errors"
	"fmt"
	"strings"
)

// Keys the application persists. Each holds one JSON or primitive value.
const (
	KeyCurrentUser     = "currentUser"
	KeyBalance         = "userBalance"
	KeyCategories      = "spendingCategories"
	KeyVaults          = "vaults"
	KeyChatHistory     = "chatHistory"
	KeyMonthlySpending = "monthlySpendingData"
	KeyUsers           = "users"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown store backend")

// Store is durable key-value storage. There are no transactions across keys.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	Close() error
}

// Open opens the named backend at path. The memory backend ignores path.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendSQLite, "":
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendBolt:
		b, err := OpenBolt(path)
		if err != nil {
			return nil, err
		}
		return b, nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
