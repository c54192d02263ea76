package httpapi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zerotask/zerotask/internal/common"
	"github.com/zerotask/zerotask/internal/server/models"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// respondError maps service sentinel errors onto HTTP statuses. Unrecognized
// errors are logged and reported as 500 without leaking details.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
			Error: "validation", Message: err.Error(),
		})
	case errors.Is(err, common.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{
			Error: "not_found", Message: err.Error(),
		})
	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{
			Error: "unauthorized", Message: err.Error(),
		})
	default:
		s.logger.Error(c.UserContext(), "request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{
			Error: "internal", Message: "internal server error",
		})
	}
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(healthResponse{
		Status:    "ok",
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
			Error: "bad_request", Message: "Invalid request body",
		})
	}

	user, err := s.users.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(userResponse{
		ID:    user.ID,
		Email: user.Email,
	})
}

func (s *Server) login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
			Error: "bad_request", Message: "Invalid request body",
		})
	}

	pair, err := s.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
			Error: "bad_request", Message: "Refresh token is required",
		})
	}

	pair, err := s.users.RefreshToken(c.UserContext(), req.RefreshToken)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) logout(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
			Error: "bad_request", Message: "Refresh token is required",
		})
	}

	if err := s.users.Logout(c.UserContext(), req.RefreshToken); err != nil {
		return s.respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) listTasks(c *fiber.Ctx) error {
	tasks, err := s.tasks.List(c.UserContext(), userID(c))
	if err != nil {
		return s.respondError(c, err)
	}

	// Encode an empty list as [] rather than null.
	if tasks == nil {
		tasks = []models.Task{}
	}
	return c.JSON(tasks)
}

func (s *Server) createTask(c *fiber.Ctx) error {
	var in models.Task
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
			Error: "bad_request", Message: "Invalid request body",
		})
	}

	task, err := s.tasks.Create(c.UserContext(), userID(c), in)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

func (s *Server) updateTask(c *fiber.Ctx) error {
	var in models.Task
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
			Error: "bad_request", Message: "Invalid request body",
		})
	}

	task, err := s.tasks.Update(c.UserContext(), userID(c), c.Params("id"), in.Title, in.Description, in.Status)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(task)
}

func (s *Server) toggleTask(c *fiber.Ctx) error {
	task, err := s.tasks.Toggle(c.UserContext(), userID(c), c.Params("id"))
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(task)
}

func (s *Server) deleteTask(c *fiber.Ctx) error {
	if err := s.tasks.Delete(c.UserContext(), userID(c), c.Params("id")); err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) clearTasks(c *fiber.Ctx) error {
	if err := s.tasks.Clear(c.UserContext(), userID(c)); err != nil {
		return s.respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) listAudit(c *fiber.Ctx) error {
	entries, err := s.tasks.Audit(c.UserContext(), userID(c))
	if err != nil {
		return s.respondError(c, err)
	}

	if entries == nil {
		entries = []models.AuditEntry{}
	}
	return c.JSON(entries)
}
