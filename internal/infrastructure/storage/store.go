package storage

import (
	"fmt"
	"regexp"

	"github.com/alexisbeaulieu97/pagesmith/internal/ports"
)

// ErrNotFound is returned when nothing is stored under a key.
var ErrNotFound = ports.ErrKeyNotFound

// Driver names accepted by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidateKey rejects keys that cannot be used as file names or table keys.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}

// Open returns the backend named by driver rooted at path. For the file driver
// path is a directory; for sqlite it is the database file.
func Open(driver, path string) (ports.KeyValueStore, error) {
	switch driver {
	case DriverFile, "":
		return NewFileStore(path)
	case DriverSQLite:
		return NewSQLiteStore(path)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
