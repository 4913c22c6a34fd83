// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"github.com/jhmfreitas/usermanager-challenge/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// UserInterface exposes user-related operations.
type UserInterface interface {
	CreateUser(ctx context.Context, user entities.User) (*entities.User, error)
	Users(ctx context.Context) ([]entities.User, error)
	UserByID(ctx context.Context, id int64) (*entities.User, error)
	UpdateUser(ctx context.Context, user entities.User) (*entities.User, error)
	DeleteUser(ctx context.Context, id int64) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

// ProjectInterface exposes project-link operations scoped to a user.
type ProjectInterface interface {
	CreateProject(ctx context.Context, link entities.ProjectLink) (*entities.ProjectLink, error)
	ProjectsByUser(ctx context.Context, userID int64) ([]entities.ProjectLink, error)
	ProjectByKey(ctx context.Context, key entities.ProjectKey) (*entities.ProjectLink, error)
}
