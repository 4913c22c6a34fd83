// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/jhmfreitas/usermanager-challenge/internal/entities"
	"github.com/jhmfreitas/usermanager-challenge/internal/transport/http/middleware"
	"github.com/jhmfreitas/usermanager-challenge/internal/usecase"
)

// Handler serves the REST API on top of the service layer.
type Handler struct {
	log      *zap.SugaredLogger
	uc       usecase.InterfaceUsecase
	validate *validator.Validate
}

// NewHandler constructs an HTTP handler with service dependencies.
func NewHandler(log *zap.SugaredLogger, uc usecase.InterfaceUsecase) *Handler {
	return &Handler{
		log:      log,
		uc:       uc,
		validate: validator.New(),
	}
}

// Register mounts all API routes behind basic authentication. Listing users
// additionally demands the ADMIN role.
func (h *Handler) Register(app *fiber.App, auth *middleware.BasicAuth) {
	api := app.Group("/api", auth.Handler())

	users := api.Group("/users")
	users.Post("/", h.CreateUser)
	users.Get("/", h.requireRole(auth, middleware.RoleAdmin), h.ListUsers)
	users.Get("/:id", h.GetUser)
	users.Put("/:id", h.UpdateUser)
	users.Delete("/:id", h.DeleteUser)

	projects := users.Group("/:userId/projects")
	projects.Post("/", h.AddProject)
	projects.Get("/", h.ListProjects)
	projects.Get("/:projectId", h.GetProject)
}

// requireRole rejects authenticated requests whose principal lacks the role,
// answering with the same error body every other failure takes.
func (h *Handler) requireRole(auth *middleware.BasicAuth, role middleware.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, _ := c.Locals("username").(string)
		if !auth.IsInRole(username, role) {
			h.log.Warnw("role check failed", "username", username, "role", role)
			return writeError(c, fmt.Errorf("%w: role %s required", entities.ErrForbidden, role))
		}
		return c.Next()
	}
}
