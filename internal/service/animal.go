package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"shelterdb/internal/model"
	"shelterdb/internal/repository"
)

var (
	ErrAnimalNotFound    = errors.New("animal not found")
	ErrNoPhoto           = errors.New("animal has no photo")
	ErrReaderNil         = errors.New("reader is nil")
	ErrInvalidRecNum     = errors.New("rec_num must be positive")
	ErrUnknownRescueType = errors.New("unknown rescue type")
)

// AnimalListResult is the service-level DTO for a page of animal documents.
type AnimalListResult struct {
	Items []bson.M `json:"data"`
	Total int64    `json:"total"`
}

// AnimalService defines the use cases over the animal outcomes collection.
type AnimalService interface {
	// Create inserts an outcome document, assigning the next record number
	// when the caller did not provide one. The number assignment is a
	// read-then-write with no transactional guard: concurrent creates can
	// collide on the same rec_num.
	Create(ctx context.Context, data bson.M) (bool, error)

	// List returns a page of documents matching query plus the total match
	// count for pagination.
	List(ctx context.Context, query bson.M, limit, skip int64, sort []repository.SortField) (*AnimalListResult, error)

	// UpdateMatching bulk-updates every document matching filter. Plain
	// field maps are applied as assignments; operator documents pass through.
	UpdateMatching(ctx context.Context, filter, update bson.M) (int64, error)

	// DeleteMatching bulk-removes every document matching filter.
	DeleteMatching(ctx context.Context, filter bson.M) (int64, error)

	// BreedCounts returns the top breeds among documents matching query.
	BreedCounts(ctx context.Context, query bson.M, limit int64) []model.BreedCount

	// Count returns the number of documents matching query.
	Count(ctx context.Context, query bson.M) int64

	// RescueCandidates lists dogs matching a rescue-training profile.
	RescueCandidates(ctx context.Context, rescueType RescueType, limit, skip int64) (*AnimalListResult, error)
}

// animalService is a concrete implementation of AnimalService.
type animalService struct {
	repo repository.AnimalRepository
}

// NewAnimalService constructs a new AnimalService.
func NewAnimalService(repo repository.AnimalRepository) AnimalService {
	return &animalService{repo: repo}
}

func (s *animalService) Create(ctx context.Context, data bson.M) (bool, error) {
	if len(data) == 0 {
		return false, repository.ErrEmptyData
	}

	doc := make(bson.M, len(data)+1)
	for k, v := range data {
		doc[k] = v
	}

	if _, has := doc[model.FieldRecNum]; !has {
		next, ok, err := s.repo.NextRecordNum(ctx)
		if err != nil {
			return false, fmt.Errorf("next record number: %w", err)
		}
		if !ok {
			next = 1 // empty collection: numbering starts at 1
		}
		doc[model.FieldRecNum] = next
	}

	return s.repo.Create(ctx, doc)
}

// List returns paginated documents without exposing repository option types
// to the transport layer. A non-positive limit falls back to 10; a negative
// skip is ignored.
func (s *animalService) List(ctx context.Context, query bson.M, limit, skip int64, sort []repository.SortField) (*AnimalListResult, error) {
	if query == nil {
		query = bson.M{}
	}
	if limit <= 0 {
		limit = 10
	}
	if skip < 0 {
		skip = 0
	}

	items, err := s.repo.Read(ctx, query, repository.ReadOptions{
		Sort:  sort,
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	return &AnimalListResult{
		Items: items,
		Total: s.repo.Count(ctx, query),
	}, nil
}

func (s *animalService) UpdateMatching(ctx context.Context, filter, update bson.M) (int64, error) {
	if filter == nil {
		return 0, repository.ErrNilFilter
	}
	if len(update) == 0 {
		return 0, repository.ErrEmptyUpdate
	}
	return s.repo.Update(ctx, filter, repository.InferUpdate(update))
}

func (s *animalService) DeleteMatching(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		return 0, repository.ErrNilFilter
	}
	return s.repo.Delete(ctx, filter)
}

func (s *animalService) BreedCounts(ctx context.Context, query bson.M, limit int64) []model.BreedCount {
	return s.repo.BreedCounts(ctx, query, limit)
}

func (s *animalService) Count(ctx context.Context, query bson.M) int64 {
	return s.repo.Count(ctx, query)
}

func (s *animalService) RescueCandidates(ctx context.Context, rescueType RescueType, limit, skip int64) (*AnimalListResult, error) {
	query, err := RescueQuery(rescueType)
	if err != nil {
		return nil, err
	}
	// Present youngest candidates first; they have the longest training window.
	sort := []repository.SortField{{Field: model.FieldAgeUponOutcomeInWeeks, Direction: 1}}
	return s.List(ctx, query, limit, skip, sort)
}
