// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"github.com/jhmfreitas/usermanager-challenge/internal/dto"
	"github.com/jhmfreitas/usermanager-challenge/internal/entities"
)

// ToUserResponse maps a domain user to its transport shape. The password
// hash deliberately never leaves the core.
func ToUserResponse(u entities.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// ToUserResponseList maps a slice of users.
func ToUserResponseList(users []entities.User) []dto.UserResponse {
	res := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, ToUserResponse(u))
	}
	return res
}

// ToProjectResponse maps a project link; the owning user id comes from the
// composite key, which is always populated.
func ToProjectResponse(l entities.ProjectLink) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:          l.Key.ProjectID,
		UserID:      l.Key.UserID,
		ProjectName: l.Name,
	}
}

// ToProjectResponseList maps a slice of project links.
func ToProjectResponseList(links []entities.ProjectLink) []dto.ProjectResponse {
	res := make([]dto.ProjectResponse, 0, len(links))
	for _, l := range links {
		res = append(res, ToProjectResponse(l))
	}
	return res
}
