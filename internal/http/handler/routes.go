package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"shelterdb/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers are
// thin adapters; the use cases live in the service layer.
func RegisterRoutes(app *fiber.App, client *mongo.Client, animalSvc service.AnimalService, photoSvc service.PhotoService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Readiness (pings the database) and liveness probes
	app.Get("/health", HealthCheck(client))
	app.Get("/healthz", LivenessProbe())

	// Animal documents
	app.Get("/animals", ListAnimals(animalSvc))
	app.Post("/animals", CreateAnimal(animalSvc))
	app.Patch("/animals", UpdateAnimals(animalSvc))
	app.Delete("/animals", DeleteAnimals(animalSvc))

	// Read-side aggregates
	app.Get("/animals/stats/breeds", BreedStats(animalSvc))
	app.Get("/animals/count", CountAnimals(animalSvc))

	// Rescue-training candidate profiles
	app.Get("/animals/rescue/:type", RescueCandidates(animalSvc))

	// Photos
	app.Post("/animals/:rec_num/photo", UploadPhoto(photoSvc))
	app.Get("/animals/:rec_num/photo", GetPhoto(photoSvc))
}
