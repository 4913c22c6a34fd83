package usecase

import (
	"context"
	"time"

	"github.com/jhmfreitas/usermanager-challenge/internal/repository"
	"github.com/jhmfreitas/usermanager-challenge/internal/security"
	"github.com/jhmfreitas/usermanager-challenge/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	UserUsecaseInterface
	ProjectUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(log *zap.SugaredLogger, ctx context.Context, repo repository.Repository, hasher security.PasswordHasher, timeout time.Duration) InterfaceUsecase {
	return domain.New(log, ctx, repo, hasher, timeout)
}
