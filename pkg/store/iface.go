// iface.go defines the Interface for dependency injection and testing.
//
// The concrete *Store type satisfies this interface. Code that depends on
// the cache (e.g., the cmd layer) can accept Interface instead of *Store,
// enabling mock injection in tests.
package store

// Interface defines the full set of cache operations.
// The concrete *Store type implements this interface.
type Interface interface {
	// Close closes the database connection.
	Close() error

	// Save stores a fetched document, deduplicating against the newest
	// cached version. Returns the row ID.
	Save(rec *Record) (int64, error)

	// Latest returns the newest cached record, or nil if the cache is
	// empty.
	Latest() (*Record, error)

	// Get retrieves a cached record by row ID.
	Get(id int64) (*Record, error)

	// List returns cached records newest first. A limit <= 0 means all.
	List(limit int) ([]Record, error)

	// Count returns the number of cached records.
	Count() int64

	// Prune deletes all but the newest keep records.
	Prune(keep int) (int64, error)
}

// Compile-time check that *Store implements Interface.
var _ Interface = (*Store)(nil)
