package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhmfreitas/usermanager-challenge/internal/entities"
)

const (
	insertUserQuery = `
INSERT INTO users(email, password_hash, name)
VALUES ($1, $2, $3)
RETURNING id, created_at, updated_at`
	selectUsersQuery       = `SELECT id, email, password_hash, name, created_at, updated_at FROM users`
	selectUserByIDQuery    = `SELECT id, email, password_hash, name, created_at, updated_at FROM users WHERE id=$1`
	selectUserForUpdate    = `SELECT email FROM users WHERE id=$1 FOR UPDATE`
	updateUserQuery        = `UPDATE users SET email=$2, password_hash=$3, name=$4, updated_at=NOW() WHERE id=$1 RETURNING created_at, updated_at`
	deleteUserQuery        = `DELETE FROM users WHERE id=$1`
	emailExistsQuery       = `SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`
	uniqueViolationPgxCode = "23505"
)

// isUniqueViolation reports whether err carries a postgres unique-constraint
// violation. The driver wraps it, so errors.As has to unwrap.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationPgxCode
}

// CreateUser inserts a user and returns it with the store-assigned id and
// timestamps. The unique index on email acts as the race-safety backstop
// behind the service-level existence check.
func (p *Postgres) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	err := p.db.QueryRow(ctx, insertUserQuery, user.Email, user.PasswordHash, user.Name).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			p.log.Warnw("duplicate email on insert", "email", user.Email)
			return nil, entities.ErrEmailExists
		}
		p.log.Errorw("failed to insert user", "error", err, "email", user.Email)
		return nil, fmt.Errorf("insert user: %w", err)
	}

	p.log.Infow("user created", "user_id", user.ID, "email", user.Email)
	return &user, nil
}

// Users returns all users in store order.
func (p *Postgres) Users(ctx context.Context) ([]entities.User, error) {
	rows, err := p.db.Query(ctx, selectUsersQuery)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
			p.log.Errorw("failed to scan user", "error", err)
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		p.log.Errorw("failed to iterate users", "error", err)
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// UserByID fetches a single user by id.
func (p *Postgres) UserByID(ctx context.Context, id int64) (*entities.User, error) {
	var u entities.User
	err := p.db.QueryRow(ctx, selectUserByIDQuery, id).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		p.log.Errorw("failed to select user", "error", err, "user_id", id)
		return nil, fmt.Errorf("select user: %w", err)
	}

	return &u, nil
}

// UpdateUser persists the desired state of an existing user in one
// transaction. The row is locked first so the email-in-use check and the
// write cannot interleave with a concurrent update.
func (p *Postgres) UpdateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var currentEmail string
	if err := tx.QueryRow(ctx, selectUserForUpdate, user.ID).Scan(&currentEmail); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		p.log.Errorw("failed to lock user row", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("lock user: %w", err)
	}

	if user.Email != currentEmail {
		var taken bool
		if err := tx.QueryRow(ctx, emailExistsQuery, user.Email).Scan(&taken); err != nil {
			return nil, fmt.Errorf("email check: %w", err)
		}
		if taken {
			p.log.Warnw("email already in use during update", "user_id", user.ID, "new_email", user.Email)
			return nil, fmt.Errorf("%w: email already in use: %s", entities.ErrInvalidArgument, user.Email)
		}
	}

	err = tx.QueryRow(ctx, updateUserQuery, user.ID, user.Email, user.PasswordHash, user.Name).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email already in use: %s", entities.ErrInvalidArgument, user.Email)
		}
		p.log.Errorw("failed to update user", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("update user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("user updated", "user_id", user.ID, "email", user.Email)
	return &user, nil
}

// DeleteUser removes a user; project links go with it via ON DELETE CASCADE.
// A second delete of the same id reports not found instead of succeeding.
func (p *Postgres) DeleteUser(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, deleteUserQuery, id)
	if err != nil {
		p.log.Errorw("failed to delete user", "error", err, "user_id", id)
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrUserNotFound
	}

	p.log.Infow("user deleted", "user_id", id)
	return nil
}

// EmailExists reports whether any user already holds the given email.
func (p *Postgres) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := p.db.QueryRow(ctx, emailExistsQuery, email).Scan(&exists); err != nil {
		p.log.Errorw("failed to check email", "error", err, "email", email)
		return false, fmt.Errorf("email exists: %w", err)
	}
	return exists, nil
}
