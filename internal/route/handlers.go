package route

import (
	"fmt"
	"strconv"

	"backend-greentransit/internal/campus"
	"backend-greentransit/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, cat *campus.Catalog, m *metrics.Metrics) {
	r.Get("/recommend", func(c *fiber.Ctx) error {
		start, end, pref, err := parseQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		ranked := Rank(cat, start, end, pref)
		m.Recommendation(len(ranked) > 0)
		if len(ranked) == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no route found"})
		}
		return c.JSON(ranked[0])
	})

	r.Get("/rank", func(c *fiber.Ctx) error {
		start, end, pref, err := parseQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(Rank(cat, start, end, pref))
	})
}

func RegisterCampusRoutes(r fiber.Router, cat *campus.Catalog) {
	r.Get("/locations", func(c *fiber.Ctx) error {
		return c.JSON(cat.Locations)
	})
	r.Get("/routes", func(c *fiber.Ctx) error {
		return c.JSON(cat.Routes)
	})
	r.Get("/danger-zones", func(c *fiber.Ctx) error {
		return c.JSON(cat.DangerZones)
	})
}

func parseQuery(c *fiber.Ctx) (string, string, Preference, error) {
	start, end := c.Query("start"), c.Query("end")
	if start == "" || end == "" {
		return "", "", Preference{}, fmt.Errorf("start and end required")
	}

	pref := DefaultPreference()
	weights := []struct {
		key string
		dst *float64
	}{
		{"safety", &pref.Safety},
		{"eco", &pref.Eco},
		{"time", &pref.Time},
	}
	for _, w := range weights {
		raw := c.Query(w.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", "", Preference{}, fmt.Errorf("%w: %s must be a number", ErrInvalidPreference, w.key)
		}
		*w.dst = v
	}
	pref.Weather = c.Query("weather")
	pref.TimeOfDay = c.Query("timeOfDay")

	if err := pref.Validate(); err != nil {
		return "", "", Preference{}, err
	}
	return start, end, pref, nil
}
