package handler

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"shelterdb/internal/repository"
	"shelterdb/internal/service"
)

// parseFilter decodes the optional "filter" query parameter, a URL-encoded
// JSON document. An absent parameter yields an empty filter.
func parseFilter(c *fiber.Ctx) (bson.M, error) {
	raw := c.Query("filter")
	if raw == "" {
		return bson.M{}, nil
	}
	var q bson.M
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		return nil, err
	}
	return q, nil
}

// parseSort decodes the optional "sort" query parameter, a comma-separated
// list of field[:asc|desc] entries, e.g. sort=age_upon_outcome_in_weeks:desc.
func parseSort(c *fiber.Ctx) ([]repository.SortField, error) {
	raw := c.Query("sort")
	if raw == "" {
		return nil, nil
	}
	var out []repository.SortField
	for _, part := range strings.Split(raw, ",") {
		field, dir, _ := strings.Cut(part, ":")
		field = strings.TrimSpace(field)
		if field == "" {
			return nil, errors.New("empty sort field")
		}
		sf := repository.SortField{Field: field, Direction: 1}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc", "1":
			// ascending
		case "desc", "-1":
			sf.Direction = -1
		default:
			return nil, errors.New("sort direction must be asc or desc")
		}
		out = append(out, sf)
	}
	return out, nil
}

func parseRecNum(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("rec_num"), 10, 64)
}

// HealthCheck reports readiness by pinging the database.
func HealthCheck(client *mongo.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx, nil); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListAnimals returns a page of animal documents.
// Query parameters: filter (JSON), sort (field[:asc|desc],...), limit, skip.
func ListAnimals(svc service.AnimalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query, err := parseFilter(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILTER", "filter must be a JSON document")
		}
		sort, err := parseSort(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SORT", "invalid sort parameter")
		}
		limit, err := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		skip, err := strconv.ParseInt(c.Query("skip", "0"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SKIP", "invalid skip")
		}

		res, err := svc.List(c.UserContext(), query, limit, skip, sort)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// CreateAnimal inserts one animal document from the JSON request body.
func CreateAnimal(svc service.AnimalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var data bson.M
		if err := c.BodyParser(&data); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "body must be a JSON document")
		}

		ok, err := svc.Create(c.UserContext(), data)
		if err != nil {
			if errors.Is(err, repository.ErrEmptyData) {
				return writeError(c, fiber.StatusBadRequest, "EMPTY_DOCUMENT", "document must not be empty")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if !ok {
			// Insert rejected by the store; the service already logged it.
			return writeError(c, fiber.StatusBadGateway, "STORE_REJECTED", "document was not stored")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"created": true})
	}
}

// updateRequest is the PATCH /animals payload: a filter selecting documents
// and the update to apply to all of them.
type updateRequest struct {
	Filter bson.M `json:"filter"`
	Update bson.M `json:"update"`
}

// UpdateAnimals bulk-updates all documents matching the filter.
func UpdateAnimals(svc service.AnimalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req updateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "body must carry filter and update documents")
		}

		modified, err := svc.UpdateMatching(c.UserContext(), req.Filter, req.Update)
		if err != nil {
			if errors.Is(err, repository.ErrNilFilter) || errors.Is(err, repository.ErrEmptyUpdate) {
				return writeError(c, fiber.StatusBadRequest, "MISSING_ARGUMENT", "filter and update are required")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"modified": modified})
	}
}

// deleteRequest is the DELETE /animals payload.
type deleteRequest struct {
	Filter bson.M `json:"filter"`
}

// DeleteAnimals bulk-removes all documents matching the filter.
func DeleteAnimals(svc service.AnimalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req deleteRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "body must carry a filter document")
		}

		deleted, err := svc.DeleteMatching(c.UserContext(), req.Filter)
		if err != nil {
			if errors.Is(err, repository.ErrNilFilter) {
				return writeError(c, fiber.StatusBadRequest, "MISSING_ARGUMENT", "filter is required")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"deleted": deleted})
	}
}

// BreedStats returns the top breeds among documents matching the filter.
func BreedStats(svc service.AnimalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query, err := parseFilter(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILTER", "filter must be a JSON document")
		}
		limit, err := strconv.ParseInt(c.Query("limit", "20"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}

		return c.JSON(fiber.Map{"data": svc.BreedCounts(c.UserContext(), query, limit)})
	}
}

// CountAnimals returns the number of documents matching the filter.
func CountAnimals(svc service.AnimalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query, err := parseFilter(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILTER", "filter must be a JSON document")
		}
		return c.JSON(fiber.Map{"count": svc.Count(c.UserContext(), query)})
	}
}

// RescueCandidates lists dogs matching a rescue-training profile
// (water, mountain, disaster).
func RescueCandidates(svc service.AnimalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		skip, err := strconv.ParseInt(c.Query("skip", "0"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SKIP", "invalid skip")
		}

		res, err := svc.RescueCandidates(c.UserContext(), service.RescueType(c.Params("type")), limit, skip)
		if err != nil {
			if errors.Is(err, service.ErrUnknownRescueType) {
				return writeError(c, fiber.StatusBadRequest, "UNKNOWN_RESCUE_TYPE", "rescue type must be water, mountain, or disaster")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// UploadPhoto attaches a photo (multipart/form-data, field name: file) to the
// animal identified by rec_num.
func UploadPhoto(photoSvc service.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recNum, err := parseRecNum(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_REC_NUM", "rec_num must be an integer")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		key, err := photoSvc.Attach(c.UserContext(), recNum, f, fh.Filename, ct, fh.Size)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrAnimalNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "animal not found")
			case errors.Is(err, service.ErrInvalidRecNum):
				return writeError(c, fiber.StatusBadRequest, "INVALID_REC_NUM", "rec_num must be positive")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"photo_key": key})
	}
}

// GetPhoto returns a time-limited download URL for the animal's photo.
func GetPhoto(photoSvc service.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recNum, err := parseRecNum(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_REC_NUM", "rec_num must be an integer")
		}

		u, err := photoSvc.URL(c.UserContext(), recNum)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrAnimalNotFound), errors.Is(err, service.ErrNoPhoto):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "photo not found")
			case errors.Is(err, service.ErrInvalidRecNum):
				return writeError(c, fiber.StatusBadRequest, "INVALID_REC_NUM", "rec_num must be positive")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(fiber.Map{"url": u})
	}
}
