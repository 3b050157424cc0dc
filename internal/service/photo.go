package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"shelterdb/internal/model"
	"shelterdb/internal/repository"
	"shelterdb/internal/storage"
)

const photoURLExpiry = 15 * time.Minute

// PhotoService attaches photos to animal documents: the bytes live in object
// storage, the document carries only the object key.
type PhotoService interface {
	// Attach uploads the photo and writes its object key onto the animal
	// document identified by recNum. The uploaded object is removed again if
	// the document cannot be updated.
	// originalFilename is used only to extract the extension.
	Attach(ctx context.Context, recNum int64, r io.Reader, originalFilename, contentType string, size int64) (string, error)

	// URL returns a time-limited download URL for the animal's photo.
	URL(ctx context.Context, recNum int64) (string, error)
}

type photoService struct {
	store storage.Storage
	repo  repository.AnimalRepository
}

// NewPhotoService constructs a new PhotoService.
func NewPhotoService(store storage.Storage, repo repository.AnimalRepository) PhotoService {
	return &photoService{store: store, repo: repo}
}

func (s *photoService) Attach(ctx context.Context, recNum int64, r io.Reader, originalFilename, contentType string, size int64) (string, error) {
	if recNum <= 0 {
		return "", ErrInvalidRecNum
	}
	if r == nil {
		return "", ErrReaderNil
	}

	ext := filepath.Ext(originalFilename)
	key := fmt.Sprintf("photos/%d/%s%s", recNum, uuid.New().String(), ext)

	_, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return "", fmt.Errorf("upload to storage: %w", err)
	}

	modified, err := s.repo.Update(ctx,
		bson.M{model.FieldRecNum: recNum},
		repository.SetFields(bson.M{model.FieldPhotoKey: key}),
	)
	if err == nil && modified == 0 {
		// Either no such animal or a swallowed store failure; the document
		// does not reference the object, so remove it again.
		err = ErrAnimalNotFound
	}
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return "", fmt.Errorf("document update failed: %v; rollback delete failed: %v", err, delErr)
		}
		return "", fmt.Errorf("document update failed: %w", err)
	}

	return key, nil
}

func (s *photoService) URL(ctx context.Context, recNum int64) (string, error) {
	if recNum <= 0 {
		return "", ErrInvalidRecNum
	}

	docs, err := s.repo.Read(ctx,
		bson.M{model.FieldRecNum: recNum},
		repository.ReadOptions{
			Projection: bson.M{model.FieldPhotoKey: 1},
			Limit:      1,
		},
	)
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", ErrAnimalNotFound
	}

	key, _ := docs[0][model.FieldPhotoKey].(string)
	if key == "" {
		return "", ErrNoPhoto
	}

	return s.store.PresignGet(ctx, key, photoURLExpiry)
}
