// Package httpapi exposes the task and auth services over a Fiber HTTP API.
// Routes under /api (except /api/auth) require a Bearer access token.
package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/zerotask/zerotask/internal/logging"
	"github.com/zerotask/zerotask/internal/server/services"
)

type Server struct {
	address string
	users   *services.UserService
	tasks   *services.TaskService
	logger  logging.Logger
	app     *fiber.App
	started time.Time
}

func NewServer(a string, l logging.Logger, us *services.UserService, ts *services.TaskService) *Server {
	s := &Server{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		tasks:   ts,
		started: time.Now(),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())

	app.Get("/health", s.health)

	auth := app.Group("/api/auth")
	auth.Post("/register", s.register)
	auth.Post("/login", s.login)
	auth.Post("/refresh", s.refresh)
	auth.Post("/logout", s.logout)

	authRequired := AuthMiddleware(us)

	tasks := app.Group("/api/tasks", authRequired)
	tasks.Get("/", s.listTasks)
	tasks.Post("/", s.createTask)
	tasks.Delete("/", s.clearTasks)
	tasks.Put("/:id", s.updateTask)
	tasks.Patch("/:id/toggle", s.toggleTask)
	tasks.Delete("/:id", s.deleteTask)

	app.Get("/api/audit", authRequired, s.listAudit)

	s.app = app
	return s
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.ShutdownWithTimeout(5 * time.Second); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	return s.app.Listen(s.address)
}
