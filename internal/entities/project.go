// Package entities contains core business entities.
package entities

import (
	"fmt"
	"time"
)

// ProjectKey is the composite primary key of a project link. The pair is
// globally unique and immutable after creation; link identity derives from
// this key alone.
type ProjectKey struct {
	ProjectID string
	UserID    int64
}

// ProjectLink binds one external project identifier to exactly one owning
// user. Construct new links through NewProjectLink only; the owner reference
// is never nil after construction.
type ProjectLink struct {
	Key       ProjectKey
	Name      string
	Owner     *User
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProjectLink is the relationship factory: it builds a link bound to the
// given user and appends it to the user's collection in the same call,
// keeping both sides of the association consistent. It is the only path
// producing a well-formed link.
func NewProjectLink(user *User, projectID, name string) (*ProjectLink, error) {
	if user == nil {
		return nil, fmt.Errorf("%w: owning user is required", ErrInvalidArgument)
	}
	if projectID == "" {
		return nil, fmt.Errorf("%w: project id must not be blank", ErrInvalidArgument)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: project name must not be blank", ErrInvalidArgument)
	}

	link := &ProjectLink{
		Key:   ProjectKey{ProjectID: projectID, UserID: user.ID},
		Name:  name,
		Owner: user,
	}
	user.Projects = append(user.Projects, link)
	return link, nil
}

// ID returns the external project identifier part of the key.
func (p *ProjectLink) ID() string {
	return p.Key.ProjectID
}

// Equal reports link identity, derived solely from the composite key.
func (p *ProjectLink) Equal(other *ProjectLink) bool {
	if p == other {
		return true
	}
	if p == nil || other == nil {
		return false
	}
	return p.Key == other.Key
}
