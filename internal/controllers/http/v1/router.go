package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"

	"darksky-forecast/docs"
	"darksky-forecast/internal/services/requests"
	"darksky-forecast/pkg/observe"
)

type routes struct {
	service      *requests.RequestService
	l            *observe.Logger
	exposeAPIKey bool
}

func NewRouter(
	app *fiber.App,
	service *requests.RequestService,
	l *observe.Logger,
	exposeAPIKey bool,
) {
	r := &routes{
		service:      service,
		l:            l,
		exposeAPIKey: exposeAPIKey,
	}

	// Swagger documentation
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			r.l.Error(err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to read Swagger documentation")
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// API routes
	app.Get("/forecast/request", r.handleBuildRequest)
	app.Get("/forecast/requests", r.handleBuildRequests)
}
