package database

import "context"

// Query describes the predicates the catalog needs from its document store:
// exact matches and case-insensitive substring/prefix matches (title, author,
// and genre search).
type Query struct {
	Exact     map[string]any
	Substring map[string]string
	Prefix    map[string]string

	// Sort is a field name to sort ascending by. Empty means store order.
	Sort   string
	Limit  int
	Offset int
}

// Store is the document-store collaborator. Implementations must be safe for
// concurrent use; the engine treats them as a generic keyed record store and
// never relies on engine-specific behavior.
type Store interface {
	// Find decodes every matching record into out, which must be a pointer to
	// a slice.
	Find(ctx context.Context, collection string, q Query, out any) error
	// FindOne decodes the first match into out. It reports whether a match
	// was found.
	FindOne(ctx context.Context, collection string, q Query, out any) (bool, error)
	// Insert stores a new record and returns its identifier.
	Insert(ctx context.Context, collection string, record any) (string, error)
	// Update overwrites the fields of the record with the given id. It
	// reports whether the record existed.
	Update(ctx context.Context, collection string, id string, fields any) (bool, error)
	// Delete removes the record with the given id. It reports whether the
	// record existed.
	Delete(ctx context.Context, collection string, id string) (bool, error)
}
