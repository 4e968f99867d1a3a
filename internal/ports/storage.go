// Package ports defines the interfaces (driven and driving ports)
// for the daytrack application following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import "context"

// Keys of the persisted state. Each value is a JSON document.
const (
	KeyTasks            = "tasks"
	KeyDay              = "day"
	KeyTotalDays        = "totalDays"
	KeyStartDate        = "startDate"
	KeyDateLabelSetting = "dateLabelSetting"
	KeyDarkMode         = "darkMode"
)

// StateKeys lists every persisted key in load order.
var StateKeys = []string{
	KeyTasks,
	KeyDay,
	KeyTotalDays,
	KeyStartDate,
	KeyDateLabelSetting,
	KeyDarkMode,
}

// KVStore is an opaque key-value store holding the tracker state.
// This is a driven port (implemented by adapters).
type KVStore interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// GetMany returns the values of every requested key that exists.
	GetMany(ctx context.Context, keys []string) (map[string][]byte, error)

	// SetMany writes several keys atomically.
	SetMany(ctx context.Context, entries map[string][]byte) error

	// Close closes the storage connection.
	Close() error

	// Migrate creates the storage schema.
	Migrate() error
}
