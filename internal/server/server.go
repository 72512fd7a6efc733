package server

import (
	"errors"
	"fmt"

	"backend-greentransit/internal/auth"
	"backend-greentransit/internal/campus"
	"backend-greentransit/internal/config"
	"backend-greentransit/internal/ledger"
	"backend-greentransit/internal/logging"
	"backend-greentransit/internal/metrics"
	"backend-greentransit/internal/route"
	"backend-greentransit/internal/store"
	"backend-greentransit/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	App     *fiber.App
	Cfg     config.Config
	Ledger  *ledger.Ledger
	Catalog *campus.Catalog
	Stream  *stream.Hub
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

func NewServer(cfg config.Config, st store.Store, redisClient *redis.Client, log *zap.Logger) (*Server, error) {
	log = logging.OrNop(log)

	cat, err := campus.Default()
	if err != nil {
		return nil, fmt.Errorf("load campus catalog: %w", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Use(recover.New())
	app.Use(logger.New())

	m := metrics.New()
	hub := stream.NewHub(redisClient, log.Named("stream"))

	s := &Server{
		App:     app,
		Cfg:     cfg,
		Catalog: cat,
		Stream:  hub,
		Metrics: m,
		Log:     log,
		Ledger: ledger.New(ledger.Options{
			Store:        st,
			Notifier:     hub,
			Metrics:      m,
			Logger:       log.Named("ledger"),
			Location:     cfg.Location(),
			HistoryLimit: cfg.HistoryLimit,
		}),
	}

	registerRoutes(s)
	return s, nil
}

// Close releases background resources owned by the server.
func (s *Server) Close() {
	s.Stream.Close()
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.App.Get("/metrics", adaptor.HTTPHandler(s.Metrics.Handler()))

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	ledger.RegisterRoutes(s.App, s.Ledger, jwtMiddleware)
	route.RegisterRoutes(s.App.Group("/routes"), s.Catalog, s.Metrics)
	route.RegisterCampusRoutes(s.App.Group("/campus"), s.Catalog)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
