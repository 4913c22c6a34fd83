package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhmfreitas/usermanager-challenge/internal/entities"
)

const (
	userExistsQuery    = `SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`
	insertProjectQuery = `
INSERT INTO user_projects(project_id, user_id, name)
VALUES ($1, $2, $3)
RETURNING created_at, updated_at`
	selectProjectsByUserQuery = `
SELECT project_id, user_id, name, created_at, updated_at
FROM user_projects
WHERE user_id=$1
ORDER BY created_at`
	selectProjectByKeyQuery = `
SELECT project_id, user_id, name, created_at, updated_at
FROM user_projects
WHERE project_id=$1 AND user_id=$2`
)

// CreateProject inserts a project link inside one transaction, re-checking
// that the owning user still exists. The composite primary key acts as the
// backstop for concurrent duplicate links.
func (p *Postgres) CreateProject(ctx context.Context, link entities.ProjectLink) (*entities.ProjectLink, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var ownerExists bool
	if err := tx.QueryRow(ctx, userExistsQuery, link.Key.UserID).Scan(&ownerExists); err != nil {
		return nil, fmt.Errorf("owner lookup: %w", err)
	}
	if !ownerExists {
		p.log.Warnw("owner vanished before project insert", "user_id", link.Key.UserID, "project_id", link.Key.ProjectID)
		return nil, entities.ErrUserNotFound
	}

	err = tx.QueryRow(ctx, insertProjectQuery, link.Key.ProjectID, link.Key.UserID, link.Name).
		Scan(&link.CreatedAt, &link.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			p.log.Warnw("duplicate project link on insert", "user_id", link.Key.UserID, "project_id", link.Key.ProjectID)
			return nil, fmt.Errorf("%w: project with id '%s' is already linked to user with id '%d'",
				entities.ErrInvalidArgument, link.Key.ProjectID, link.Key.UserID)
		}
		p.log.Errorw("failed to insert project link", "error", err, "user_id", link.Key.UserID, "project_id", link.Key.ProjectID)
		return nil, fmt.Errorf("insert project: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("project linked", "user_id", link.Key.UserID, "project_id", link.Key.ProjectID)
	return &link, nil
}

// ProjectsByUser returns a user's project links in creation order.
func (p *Postgres) ProjectsByUser(ctx context.Context, userID int64) ([]entities.ProjectLink, error) {
	rows, err := p.db.Query(ctx, selectProjectsByUserQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("select projects: %w", err)
	}
	defer rows.Close()

	links := make([]entities.ProjectLink, 0)
	for rows.Next() {
		var l entities.ProjectLink
		if err := rows.Scan(&l.Key.ProjectID, &l.Key.UserID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			p.log.Errorw("failed to scan project link", "error", err, "user_id", userID)
			return nil, fmt.Errorf("scan project: %w", err)
		}
		links = append(links, l)
	}

	if err := rows.Err(); err != nil {
		p.log.Errorw("failed to iterate project links", "error", err, "user_id", userID)
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return links, nil
}

// ProjectByKey fetches one link by its composite key.
func (p *Postgres) ProjectByKey(ctx context.Context, key entities.ProjectKey) (*entities.ProjectLink, error) {
	var l entities.ProjectLink
	err := p.db.QueryRow(ctx, selectProjectByKeyQuery, key.ProjectID, key.UserID).
		Scan(&l.Key.ProjectID, &l.Key.UserID, &l.Name, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrProjectNotFound
		}
		p.log.Errorw("failed to select project link", "error", err, "user_id", key.UserID, "project_id", key.ProjectID)
		return nil, fmt.Errorf("select project: %w", err)
	}

	return &l, nil
}
