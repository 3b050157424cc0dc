package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"shelterdb/internal/model"
)

// Contract violations. These are programmer misuse of the facade and are
// returned as errors, unlike store-level failures which are logged and
// coerced to neutral defaults (false, 0, empty slice).
var (
	ErrEmptyData   = errors.New("nothing to save: data is nil or empty")
	ErrNilQuery    = errors.New("query is required")
	ErrNilFilter   = errors.New("filter is required")
	ErrEmptyUpdate = errors.New("update spec is required")
)

// AnimalRepository defines data access for animal outcome documents.
// No business logic here, strictly persistence operations.
type AnimalRepository interface {
	// EnsureIndexes declares the secondary indexes backing the rescue-filter
	// and map-browsing query patterns. Safe to call repeatedly; failures are
	// logged and never fatal.
	EnsureIndexes(ctx context.Context)

	// NextRecordNum returns max(rec_num)+1, or ok=false on an empty
	// collection. Not atomic with respect to concurrent inserts: two callers
	// can observe the same maximum and collide.
	NextRecordNum(ctx context.Context) (next int64, ok bool, err error)

	// Create inserts one document. A nil/empty data map is a contract error;
	// a store-level insert failure is swallowed into a false result.
	Create(ctx context.Context, data bson.M) (bool, error)

	// Read returns the materialized set of documents matching query, shaped
	// by opts. A nil query is a contract error; a store failure yields an
	// empty slice.
	Read(ctx context.Context, query bson.M, opts ReadOptions) ([]bson.M, error)

	// Update applies spec to every document matching filter and returns the
	// modified count (0 on store failure).
	Update(ctx context.Context, filter bson.M, spec UpdateSpec) (int64, error)

	// Delete removes every document matching filter and returns the deleted
	// count (0 on store failure).
	Delete(ctx context.Context, filter bson.M) (int64, error)

	// BreedCounts groups matching documents by breed server-side, descending
	// by count, capped at limit. Rows with a null/absent breed are dropped.
	BreedCounts(ctx context.Context, query bson.M, limit int64) []model.BreedCount

	// Count returns the number of documents matching query (all documents
	// when query is nil), or 0 on store failure.
	Count(ctx context.Context, query bson.M) int64
}

// SortField is one (field, direction) sort pair. Direction is a signed int:
// zero or greater sorts ascending, negative sorts descending.
type SortField struct {
	Field     string
	Direction int
}

// ReadOptions shape a Read call. Zero values are no-ops: nil projection,
// no sort, Skip <= 0 ignored, Limit <= 0 unlimited.
type ReadOptions struct {
	Projection bson.M
	Sort       []SortField
	Skip       int64
	Limit      int64
}
