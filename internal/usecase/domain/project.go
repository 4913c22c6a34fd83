// Package domain contains application services orchestrating domain logic by project link.
package domain

import (
	"context"
	"fmt"

	"github.com/jhmfreitas/usermanager-challenge/internal/entities"
	"github.com/jhmfreitas/usermanager-challenge/internal/metrics"
)

// AddProject links an external project to a user. The owning user is
// resolved fresh on every call; users may be deleted concurrently between
// request dispatch and link creation.
func (u *Usecase) AddProject(ctx context.Context, userID int64, projectID, name string) (*entities.ProjectLink, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if projectID == "" {
		u.log.Warnw("project creation failed: blank project id", "user_id", userID)
		return nil, fmt.Errorf("%w: project id must not be blank", entities.ErrInvalidArgument)
	}
	if name == "" {
		u.log.Warnw("project creation failed: blank project name", "user_id", userID, "project_id", projectID)
		return nil, fmt.Errorf("%w: project name must not be blank", entities.ErrInvalidArgument)
	}

	user, err := u.repo.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := u.repo.ProjectsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, l := range existing {
		if l.Key.ProjectID == projectID {
			u.log.Warnw("duplicate project link detected", "user_id", userID, "project_id", projectID)
			return nil, fmt.Errorf("%w: project with id '%s' is already linked to user with id '%d'",
				entities.ErrInvalidArgument, projectID, userID)
		}
	}

	link, err := entities.NewProjectLink(user, projectID, name)
	if err != nil {
		return nil, err
	}

	created, err := u.repo.CreateProject(ctx, *link)
	if err != nil {
		return nil, err
	}

	metrics.IncProjectsCreated()
	u.log.Infow("project linked", "user_id", userID, "project_id", created.ID(), "name", created.Name)
	return created, nil
}

// Projects returns all project links owned by the user.
func (u *Usecase) Projects(ctx context.Context, userID int64) ([]entities.ProjectLink, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	user, err := u.repo.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	links, err := u.repo.ProjectsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range links {
		links[i].Owner = user
	}

	return links, nil
}

// Project returns one of the user's links by project id.
func (u *Usecase) Project(ctx context.Context, userID int64, projectID string) (*entities.ProjectLink, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if projectID == "" {
		return nil, fmt.Errorf("%w: project id must not be blank", entities.ErrInvalidArgument)
	}

	user, err := u.repo.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	link, err := u.repo.ProjectByKey(ctx, entities.ProjectKey{ProjectID: projectID, UserID: userID})
	if err != nil {
		return nil, err
	}
	link.Owner = user

	return link, nil
}
