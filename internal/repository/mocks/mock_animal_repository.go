package mocks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"shelterdb/internal/model"
	"shelterdb/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockAnimalRepository struct {
	mock.Mock
}

func (m *MockAnimalRepository) EnsureIndexes(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockAnimalRepository) NextRecordNum(ctx context.Context) (int64, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockAnimalRepository) Create(ctx context.Context, data bson.M) (bool, error) {
	args := m.Called(ctx, data)
	return args.Bool(0), args.Error(1)
}

func (m *MockAnimalRepository) Read(ctx context.Context, query bson.M, opts repository.ReadOptions) ([]bson.M, error) {
	args := m.Called(ctx, query, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bson.M), args.Error(1)
}

func (m *MockAnimalRepository) Update(ctx context.Context, filter bson.M, spec repository.UpdateSpec) (int64, error) {
	args := m.Called(ctx, filter, spec)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnimalRepository) Delete(ctx context.Context, filter bson.M) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnimalRepository) BreedCounts(ctx context.Context, query bson.M, limit int64) []model.BreedCount {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.BreedCount)
}

func (m *MockAnimalRepository) Count(ctx context.Context, query bson.M) int64 {
	args := m.Called(ctx, query)
	return args.Get(0).(int64)
}
