package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shelterdb/internal/model"
	"shelterdb/internal/repository"
)

// Persisted index names; they live in store metadata, so renaming them here
// would leave the old indexes behind on existing deployments.
const (
	IndexRescueFilters = "idx_rescue_filters"
	IndexLocation      = "idx_location"
)

// DefaultBreedLimit caps BreedCounts when the caller passes a non-positive limit.
const DefaultBreedLimit = 20

// AnimalMongo is the MongoDB implementation of repository.AnimalRepository.
// It is a stateless wrapper around one collection handle: contract
// violations come back as errors, store-level failures are logged as
// warnings and coerced to neutral defaults. It is safe for concurrent use.
type AnimalMongo struct {
	coll *mongo.Collection
}

// NewAnimalMongo binds the repository to the named collection.
func NewAnimalMongo(db *mongo.Database, collection string) *AnimalMongo {
	return &AnimalMongo{coll: db.Collection(collection)}
}

var _ repository.AnimalRepository = (*AnimalMongo)(nil)

// EnsureIndexes declares the indexes matching the dashboard filter patterns:
// rescue filtering (animal_type + sex + age range + breed membership) and
// map lookups (lat/long). Re-declaring an identical index is a no-op on the
// server, so this is safe to call on every startup. A failure only costs
// query speed, so it is logged and swallowed.
func (r *AnimalMongo) EnsureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: model.FieldAnimalType, Value: 1},
				{Key: model.FieldSexUponOutcome, Value: 1},
				{Key: model.FieldAgeUponOutcomeInWeeks, Value: 1},
				{Key: model.FieldBreed, Value: 1},
			},
			Options: options.Index().SetName(IndexRescueFilters),
		},
		{
			Keys: bson.D{
				{Key: model.FieldLocationLat, Value: 1},
				{Key: model.FieldLocationLong, Value: 1},
			},
			Options: options.Index().SetName(IndexLocation),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		r.logWarn("ensure_indexes", err)
	}
}

// NextRecordNum finds the document with the highest rec_num and returns the
// next value. ok is false when the collection is empty. The read is not
// atomic with a subsequent insert: concurrent callers can be handed the
// same number and must tolerate the collision.
func (r *AnimalMongo) NextRecordNum(ctx context.Context) (int64, bool, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: model.FieldRecNum, Value: -1}}).
		SetProjection(bson.M{model.FieldRecNum: 1})

	var doc struct {
		RecNum int64 `bson:"rec_num"`
	}
	err := r.coll.FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return doc.RecNum + 1, true, nil
}

// Create inserts the provided document. Passing nothing to insert is
// programmer misuse and returns repository.ErrEmptyData; an insert that the
// store rejects is logged and reported as false.
func (r *AnimalMongo) Create(ctx context.Context, data bson.M) (bool, error) {
	if len(data) == 0 {
		return false, repository.ErrEmptyData
	}

	if _, err := r.coll.InsertOne(ctx, data); err != nil {
		r.logWarn("insert", err)
		return false, nil
	}
	return true, nil
}

// Read drains the matching cursor into memory and returns the documents.
// Sort directions are normalized (>= 0 ascending, < 0 descending) and the
// server applies sort, then skip, then limit. A store failure yields an
// empty slice, never an error.
func (r *AnimalMongo) Read(ctx context.Context, query bson.M, opts repository.ReadOptions) ([]bson.M, error) {
	if query == nil {
		return nil, repository.ErrNilQuery
	}

	fo := options.Find()
	if opts.Projection != nil {
		fo.SetProjection(opts.Projection)
	}
	if len(opts.Sort) > 0 {
		sort := make(bson.D, 0, len(opts.Sort))
		for _, s := range opts.Sort {
			dir := 1
			if s.Direction < 0 {
				dir = -1
			}
			sort = append(sort, bson.E{Key: s.Field, Value: dir})
		}
		fo.SetSort(sort)
	}
	if opts.Skip > 0 {
		fo.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		fo.SetLimit(opts.Limit)
	}

	cur, err := r.coll.Find(ctx, query, fo)
	if err != nil {
		r.logWarn("find", err)
		return []bson.M{}, nil
	}

	out := make([]bson.M, 0)
	if err := cur.All(ctx, &out); err != nil {
		r.logWarn("find", err)
		return []bson.M{}, nil
	}
	return out, nil
}

// Update applies spec to all documents matching filter and returns how many
// were actually modified. Missing arguments are contract errors; a store
// failure is logged and reported as 0 modified.
func (r *AnimalMongo) Update(ctx context.Context, filter bson.M, spec repository.UpdateSpec) (int64, error) {
	if filter == nil {
		return 0, repository.ErrNilFilter
	}
	if spec.IsZero() {
		return 0, repository.ErrEmptyUpdate
	}

	res, err := r.coll.UpdateMany(ctx, filter, spec.Document())
	if err != nil {
		r.logWarn("update", err)
		return 0, nil
	}
	return res.ModifiedCount, nil
}

// Delete removes all documents matching filter and returns the removed
// count. A nil filter is a contract error; a store failure is logged and
// reported as 0 removed.
func (r *AnimalMongo) Delete(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		return 0, repository.ErrNilFilter
	}

	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		r.logWarn("delete", err)
		return 0, nil
	}
	return res.DeletedCount, nil
}

// BreedCounts runs the analytics server-side instead of shipping the whole
// table to the client: match, group by breed, sort descending by count, cap
// at limit. Rows grouped under a null/absent breed are dropped. A nil query
// matches everything; a non-positive limit falls back to DefaultBreedLimit.
func (r *AnimalMongo) BreedCounts(ctx context.Context, query bson.M, limit int64) []model.BreedCount {
	if query == nil {
		query = bson.M{}
	}
	if limit <= 0 {
		limit = DefaultBreedLimit
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: query}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + model.FieldBreed},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		r.logWarn("aggregate", err)
		return []model.BreedCount{}
	}

	rows := make([]model.BreedCount, 0)
	if err := cur.All(ctx, &rows); err != nil {
		r.logWarn("aggregate", err)
		return []model.BreedCount{}
	}

	out := rows[:0]
	for _, row := range rows {
		if row.Breed != "" {
			out = append(out, row)
		}
	}
	return out
}

// Count returns the number of documents matching query; a nil query counts
// the whole collection. A store failure is logged and reported as 0.
func (r *AnimalMongo) Count(ctx context.Context, query bson.M) int64 {
	if query == nil {
		query = bson.M{}
	}

	n, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		r.logWarn("count", err)
		return 0
	}
	return n
}

// logWarn emits one JSON log line for a swallowed store failure so the
// neutral return value still leaves a diagnostic behind.
func (r *AnimalMongo) logWarn(op string, err error) {
	entry := map[string]any{
		"ts":         time.Now().UTC().Format(time.RFC3339Nano),
		"level":      "warn",
		"component":  "repository",
		"collection": r.coll.Name(),
		"op":         op,
		"error":      err.Error(),
	}
	if b, mErr := json.Marshal(entry); mErr == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
