// Package domain contains application Usecases orchestrating domain logic by user.
package domain

import (
	"context"
	"fmt"

	"github.com/jhmfreitas/usermanager-challenge/internal/entities"
	"github.com/jhmfreitas/usermanager-challenge/internal/metrics"
)

// CreateUser validates input, hashes the raw password and persists a new
// user. The email existence check here is pre-emptive; the unique index in
// the store backstops concurrent creations.
func (u *Usecase) CreateUser(ctx context.Context, email, password string, name *string) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if email == "" {
		u.log.Warnw("user creation failed: blank email")
		return nil, fmt.Errorf("%w: email must not be blank", entities.ErrInvalidArgument)
	}

	exists, err := u.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		u.log.Warnw("duplicate email detected during user creation", "email", email)
		return nil, fmt.Errorf("%w: %s", entities.ErrEmailExists, email)
	}

	if password == "" {
		u.log.Warnw("user creation failed: blank password", "email", email)
		return nil, fmt.Errorf("%w: password must not be blank", entities.ErrInvalidArgument)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	created, err := u.repo.CreateUser(ctx, entities.User{Email: email, PasswordHash: hash, Name: name})
	if err != nil {
		return nil, err
	}

	metrics.IncUsersCreated()
	u.log.Infow("user created", "user_id", created.ID, "email", created.Email)
	return created, nil
}

// Users returns all users in store order.
func (u *Usecase) Users(ctx context.Context) ([]entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.Users(ctx)
}

// User returns a user by id.
func (u *Usecase) User(ctx context.Context, id int64) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.UserByID(ctx, id)
}

// UpdateUser applies a partial update: email only when provided, non-blank
// and different from the current one; password re-hashed when provided
// non-blank; name always overwritten with the given value, including nil.
func (u *Usecase) UpdateUser(ctx context.Context, id int64, email, password string, name *string) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	user, err := u.repo.UserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if email != "" && email != user.Email {
		taken, err := u.repo.EmailExists(ctx, email)
		if err != nil {
			return nil, err
		}
		if taken {
			u.log.Warnw("email already in use during update", "user_id", id, "new_email", email)
			return nil, fmt.Errorf("%w: email already in use: %s", entities.ErrInvalidArgument, email)
		}
		user.Email = email
	}

	if password != "" {
		hash, err := u.hasher.Hash(password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	user.Name = name

	updated, err := u.repo.UpdateUser(ctx, *user)
	if err != nil {
		return nil, err
	}

	u.log.Infow("user updated", "user_id", updated.ID, "email", updated.Email)
	return updated, nil
}

// DeleteUser removes a user and, via the store cascade, all of its project
// links. Deleting an already-deleted id fails with not found.
func (u *Usecase) DeleteUser(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := u.repo.DeleteUser(ctx, id); err != nil {
		return err
	}

	u.log.Infow("user deleted", "user_id", id)
	return nil
}
