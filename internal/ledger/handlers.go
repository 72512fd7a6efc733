package ledger

import (
	"errors"

	"backend-greentransit/internal/task"
	"backend-greentransit/internal/trip"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, l *Ledger, authMiddleware fiber.Handler) {
	r.Post("/trips", authMiddleware, func(c *fiber.Ctx) error {
		var in trip.Input
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		res, err := l.RecordTrip(c.Context(), in)
		if errors.Is(err, trip.ErrInvalidTrip) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "trip not recorded")
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	})

	r.Get("/trips", func(c *fiber.Ctx) error {
		history, err := l.History(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(history)
	})

	r.Get("/profile", func(c *fiber.Ctx) error {
		p, err := l.Profile(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	})

	r.Get("/achievements", func(c *fiber.Ctx) error {
		states, err := l.Achievements(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(states)
	})

	r.Get("/stats", func(c *fiber.Ctx) error {
		stats, err := l.Stats(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(stats)
	})

	r.Get("/streak/verify", func(c *fiber.Ctx) error {
		report, err := l.VerifyStreak(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(report)
	})

	r.Get("/tasks", func(c *fiber.Ctx) error {
		tasks, err := l.Tasks(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(tasks)
	})

	r.Post("/tasks/reset", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Cadences []task.Cadence `json:"cadences"`
		}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}
		tasks, err := l.ResetTasks(c.Context(), body.Cadences...)
		if errors.Is(err, ErrInvalidCadence) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "tasks not reset")
		}
		return c.JSON(tasks)
	})
}
