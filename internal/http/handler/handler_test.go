package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"shelterdb/internal/model"
	"shelterdb/internal/repository"
	"shelterdb/internal/service"
	serviceMocks "shelterdb/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("healthy", func(mt *mtest.T) {
		app := fiber.New()
		app.Get("/health", HealthCheck(mt.Client))

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	mt.Run("unhealthy", func(mt *mtest.T) {
		app := fiber.New()
		app.Get("/health", HealthCheck(mt.Client))

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    6,
			Name:    "HostUnreachable",
			Message: "no reachable servers",
		}))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListAnimals(t *testing.T) {
	mockSvc := new(serviceMocks.MockAnimalService)
	app := fiber.New()
	app.Get("/animals", ListAnimals(mockSvc))

	t.Run("success with filter and sort", func(t *testing.T) {
		expected := &service.AnimalListResult{
			Items: []bson.M{{"breed": "Poodle", "rec_num": float64(1)}},
			Total: 1,
		}
		mockSvc.On("List", mock.Anything,
			bson.M{"animal_type": "Dog"},
			int64(2), int64(1),
			[]repository.SortField{{Field: "age_upon_outcome_in_weeks", Direction: -1}},
		).Return(expected, nil).Once()

		target := "/animals?limit=2&skip=1&sort=age_upon_outcome_in_weeks:desc&filter=" +
			url.QueryEscape(`{"animal_type":"Dog"}`)
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.AnimalListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.EqualValues(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid filter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/animals?filter=not-json", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_FILTER", body.Error.Code)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/animals?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid sort direction", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/animals?sort=breed:sideways", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCreateAnimal(t *testing.T) {
	mockSvc := new(serviceMocks.MockAnimalService)
	app := fiber.New()
	app.Post("/animals", CreateAnimal(mockSvc))

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/animals", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("created", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(d bson.M) bool {
			return d["animal_type"] == "Dog"
		})).Return(true, nil).Once()

		resp := post(`{"animal_type":"Dog","breed":"Poodle"}`)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty document", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return(false, repository.ErrEmptyData).Once()

		resp := post(`{}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "EMPTY_DOCUMENT", body.Error.Code)
	})

	t.Run("store rejected insert", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(false, nil).Once()

		resp := post(`{"animal_type":"Dog"}`)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}

func TestUpdateAnimals(t *testing.T) {
	mockSvc := new(serviceMocks.MockAnimalService)
	app := fiber.New()
	app.Patch("/animals", UpdateAnimals(mockSvc))

	patch := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPatch, "/animals", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("success", func(t *testing.T) {
		mockSvc.On("UpdateMatching", mock.Anything,
			bson.M{"animal_type": "Dog"}, bson.M{"breed": "Poodle"},
		).Return(int64(3), nil).Once()

		resp := patch(`{"filter":{"animal_type":"Dog"},"update":{"breed":"Poodle"}}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.EqualValues(t, 3, body["modified"])
	})

	t.Run("missing arguments", func(t *testing.T) {
		mockSvc.On("UpdateMatching", mock.Anything, mock.Anything, mock.Anything).
			Return(int64(0), repository.ErrNilFilter).Once()

		resp := patch(`{"update":{"breed":"Poodle"}}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteAnimals(t *testing.T) {
	mockSvc := new(serviceMocks.MockAnimalService)
	app := fiber.New()
	app.Delete("/animals", DeleteAnimals(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("DeleteMatching", mock.Anything, bson.M{"animal_type": "Cat"}).
			Return(int64(2), nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/animals", strings.NewReader(`{"filter":{"animal_type":"Cat"}}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.EqualValues(t, 2, body["deleted"])
	})
}

func TestBreedStats(t *testing.T) {
	mockSvc := new(serviceMocks.MockAnimalService)
	app := fiber.New()
	app.Get("/animals/stats/breeds", BreedStats(mockSvc))

	mockSvc.On("BreedCounts", mock.Anything, bson.M{}, int64(20)).
		Return([]model.BreedCount{
			{Breed: "Labrador Retriever Mix", Count: 2},
			{Breed: "Poodle", Count: 1},
		}).Once()

	req := httptest.NewRequest(http.MethodGet, "/animals/stats/breeds", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []model.BreedCount `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "Labrador Retriever Mix", body.Data[0].Breed)
}

func TestCountAnimals(t *testing.T) {
	mockSvc := new(serviceMocks.MockAnimalService)
	app := fiber.New()
	app.Get("/animals/count", CountAnimals(mockSvc))

	mockSvc.On("Count", mock.Anything, bson.M{}).Return(int64(5)).Once()

	req := httptest.NewRequest(http.MethodGet, "/animals/count", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.EqualValues(t, 5, body["count"])
}

func TestRescueCandidates(t *testing.T) {
	mockSvc := new(serviceMocks.MockAnimalService)
	app := fiber.New()
	app.Get("/animals/rescue/:type", RescueCandidates(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("RescueCandidates", mock.Anything, service.RescueWater, int64(10), int64(0)).
			Return(&service.AnimalListResult{Items: []bson.M{}, Total: 0}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/animals/rescue/water", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unknown type", func(t *testing.T) {
		mockSvc.On("RescueCandidates", mock.Anything, service.RescueType("submarine"), int64(10), int64(0)).
			Return(nil, service.ErrUnknownRescueType).Once()

		req := httptest.NewRequest(http.MethodGet, "/animals/rescue/submarine", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "UNKNOWN_RESCUE_TYPE", body.Error.Code)
	})
}

func TestUploadPhoto(t *testing.T) {
	mockPhoto := new(serviceMocks.MockPhotoService)
	app := fiber.New()
	app.Post("/animals/:rec_num/photo", UploadPhoto(mockPhoto))

	newUpload := func(target string) *http.Request {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		fw, _ := w.CreateFormFile("file", "rex.jpg")
		fw.Write([]byte("jpeg bytes"))
		w.Close()

		req := httptest.NewRequest(http.MethodPost, target, &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		return req
	}

	t.Run("created", func(t *testing.T) {
		mockPhoto.On("Attach", mock.Anything, int64(7), mock.Anything, "rex.jpg", mock.Anything, mock.Anything).
			Return("photos/7/abc.jpg", nil).Once()

		resp, _ := app.Test(newUpload("/animals/7/photo"))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "photos/7/abc.jpg", body["photo_key"])
		mockPhoto.AssertExpectations(t)
	})

	t.Run("animal not found", func(t *testing.T) {
		mockPhoto.On("Attach", mock.Anything, int64(999), mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", service.ErrAnimalNotFound).Once()

		resp, _ := app.Test(newUpload("/animals/999/photo"))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid rec_num", func(t *testing.T) {
		resp, _ := app.Test(newUpload("/animals/abc/photo"))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/animals/7/photo", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetPhoto(t *testing.T) {
	mockPhoto := new(serviceMocks.MockPhotoService)
	app := fiber.New()
	app.Get("/animals/:rec_num/photo", GetPhoto(mockPhoto))

	t.Run("returns presigned url", func(t *testing.T) {
		mockPhoto.On("URL", mock.Anything, int64(7)).
			Return("https://minio.local/signed", nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/animals/7/photo", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "https://minio.local/signed", body["url"])
	})

	t.Run("no photo", func(t *testing.T) {
		mockPhoto.On("URL", mock.Anything, int64(8)).
			Return("", service.ErrNoPhoto).Once()

		req := httptest.NewRequest(http.MethodGet, "/animals/8/photo", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
