package handlers_fiber

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jhmfreitas/usermanager-challenge/internal/dto"
	"github.com/jhmfreitas/usermanager-challenge/internal/mapper"
)

// AddProject links an external project to the user in the path.
func (h *Handler) AddProject(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	var body dto.ProjectRequest
	if err := c.BodyParser(&body); err != nil {
		h.log.Errorw("failed to parse add project body", "error", err.Error())
		return badRequest(c, "invalid body")
	}
	if err := h.validate.Struct(body); err != nil {
		h.log.Warnw("add project validation failed", "error", err.Error(), "user_id", userID)
		return badRequest(c, err.Error())
	}

	link, err := h.uc.AddProject(c.Context(), userID, body.ID, body.Name)
	if err != nil {
		h.log.Errorw("failed to add project", "error", err.Error(), "user_id", userID, "project_id", body.ID)
		return writeError(c, err)
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/api/users/%d/projects/%s", userID, link.ID()))
	return c.Status(http.StatusCreated).JSON(mapper.ToProjectResponse(*link))
}

// ListProjects returns all project links owned by the user.
func (h *Handler) ListProjects(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	links, err := h.uc.Projects(c.Context(), userID)
	if err != nil {
		h.log.Errorw("failed to list projects", "error", err.Error(), "user_id", userID)
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(mapper.ToProjectResponseList(links))
}

// GetProject returns one project link by its composite key.
func (h *Handler) GetProject(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	link, err := h.uc.Project(c.Context(), userID, c.Params("projectId"))
	if err != nil {
		h.log.Errorw("failed to get project", "error", err.Error(), "user_id", userID)
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(mapper.ToProjectResponse(*link))
}
