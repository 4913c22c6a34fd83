package usecase

import (
	"context"

	"github.com/jhmfreitas/usermanager-challenge/internal/entities"
)

// UserUsecaseInterface abstracts user-related operations for delivery layer.
type UserUsecaseInterface interface {
	CreateUser(ctx context.Context, email, password string, name *string) (*entities.User, error)
	Users(ctx context.Context) ([]entities.User, error)
	User(ctx context.Context, id int64) (*entities.User, error)
	UpdateUser(ctx context.Context, id int64, email, password string, name *string) (*entities.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// ProjectUsecaseInterface abstracts project-link operations.
type ProjectUsecaseInterface interface {
	AddProject(ctx context.Context, userID int64, projectID, name string) (*entities.ProjectLink, error)
	Projects(ctx context.Context, userID int64) ([]entities.ProjectLink, error)
	Project(ctx context.Context, userID int64, projectID string) (*entities.ProjectLink, error)
}
