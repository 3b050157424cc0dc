package mocks

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson"

	"shelterdb/internal/model"
	"shelterdb/internal/repository"
	"shelterdb/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAnimalService struct {
	mock.Mock
}

func (m *MockAnimalService) Create(ctx context.Context, data bson.M) (bool, error) {
	args := m.Called(ctx, data)
	return args.Bool(0), args.Error(1)
}

func (m *MockAnimalService) List(ctx context.Context, query bson.M, limit, skip int64, sort []repository.SortField) (*service.AnimalListResult, error) {
	args := m.Called(ctx, query, limit, skip, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnimalListResult), args.Error(1)
}

func (m *MockAnimalService) UpdateMatching(ctx context.Context, filter, update bson.M) (int64, error) {
	args := m.Called(ctx, filter, update)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnimalService) DeleteMatching(ctx context.Context, filter bson.M) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnimalService) BreedCounts(ctx context.Context, query bson.M, limit int64) []model.BreedCount {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.BreedCount)
}

func (m *MockAnimalService) Count(ctx context.Context, query bson.M) int64 {
	args := m.Called(ctx, query)
	return args.Get(0).(int64)
}

func (m *MockAnimalService) RescueCandidates(ctx context.Context, rescueType service.RescueType, limit, skip int64) (*service.AnimalListResult, error) {
	args := m.Called(ctx, rescueType, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnimalListResult), args.Error(1)
}

type MockPhotoService struct {
	mock.Mock
}

func (m *MockPhotoService) Attach(ctx context.Context, recNum int64, r io.Reader, originalFilename, contentType string, size int64) (string, error) {
	args := m.Called(ctx, recNum, r, originalFilename, contentType, size)
	return args.String(0), args.Error(1)
}

func (m *MockPhotoService) URL(ctx context.Context, recNum int64) (string, error) {
	args := m.Called(ctx, recNum)
	return args.String(0), args.Error(1)
}
