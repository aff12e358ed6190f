package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/gofiber/fiber/v2"

	"github.com/kimikokel/weather-wizard/internal/session"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// A city of only whitespace is as empty as no city at all.
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

const msgEmptyCity = "city must not be empty"

// cityQuery holds the user-entered city, from either the query string or a
// JSON body.
type cityQuery struct {
	City string `json:"city" validate:"required,notblank"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, sess *session.Session) {
	v1 := app.Group("/api/v1")

	// One-shot query: fetch, aggregate and respond in a single request
	// without going through the session state machine.
	v1.Get("/weather", func(c *fiber.Ctx) error {
		q := cityQuery{City: c.Query("city")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, msgEmptyCity)
		}

		res, err := sess.QueryOnce(c.UserContext(), q.City)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, session.UserMessage(err))
		}

		return c.JSON(res)
	})

	v1.Post("/session/search", func(c *fiber.Ctx) error {
		var q cityQuery
		if err := c.BodyParser(&q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, msgEmptyCity)
		}

		ticket := sess.Search(q.City)
		return c.Status(fiber.StatusAccepted).JSON(ticket)
	})

	v1.Post("/session/refresh", func(c *fiber.Ctx) error {
		ticket, ok := sess.Refresh()
		if !ok {
			return fiber.NewError(fiber.StatusConflict, "nothing searched yet; nothing to refresh")
		}
		return c.Status(fiber.StatusAccepted).JSON(ticket)
	})

	v1.Get("/session", func(c *fiber.Ctx) error {
		return c.JSON(sess.Snapshot())
	})
}
