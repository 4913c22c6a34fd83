package handlers_fiber

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jhmfreitas/usermanager-challenge/internal/dto"
	"github.com/jhmfreitas/usermanager-challenge/internal/mapper"
)

// CreateUser registers a new account and answers 201 with a Location header.
func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var body dto.UserRequest
	if err := c.BodyParser(&body); err != nil {
		h.log.Errorw("failed to parse create user body", "error", err.Error())
		return badRequest(c, "invalid body")
	}
	if err := h.validate.Struct(body); err != nil {
		h.log.Warnw("create user validation failed", "error", err.Error())
		return badRequest(c, err.Error())
	}

	user, err := h.uc.CreateUser(c.Context(), body.Email, body.Password, body.Name)
	if err != nil {
		h.log.Errorw("failed to create user", "error", err.Error())
		return writeError(c, err)
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/api/users/%d", user.ID))
	return c.Status(http.StatusCreated).JSON(mapper.ToUserResponse(*user))
}

// ListUsers returns every account; reachable only with the ADMIN role.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := h.uc.Users(c.Context())
	if err != nil {
		h.log.Errorw("failed to list users", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(mapper.ToUserResponseList(users))
}

// GetUser returns one account by id.
func (h *Handler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	user, err := h.uc.User(c.Context(), id)
	if err != nil {
		h.log.Errorw("failed to get user", "error", err.Error(), "user_id", id)
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(mapper.ToUserResponse(*user))
}

// UpdateUser applies a partial update. Field-level constraints are enforced
// by the service; absent email/password mean "leave unchanged" while the
// name is always overwritten, including with null.
func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	var body dto.UserRequest
	if err := c.BodyParser(&body); err != nil {
		h.log.Errorw("failed to parse update user body", "error", err.Error())
		return badRequest(c, "invalid body")
	}

	user, err := h.uc.UpdateUser(c.Context(), id, body.Email, body.Password, body.Name)
	if err != nil {
		h.log.Errorw("failed to update user", "error", err.Error(), "user_id", id)
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(mapper.ToUserResponse(*user))
}

// DeleteUser removes an account and all its project links.
func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	if err := h.uc.DeleteUser(c.Context(), id); err != nil {
		h.log.Errorw("failed to delete user", "error", err.Error(), "user_id", id)
		return writeError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}
