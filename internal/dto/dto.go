// Package dto defines the transport payloads exchanged over the REST API.
package dto

import "time"

// UserRequest is the create-user payload. Update requests reuse the shape
// but skip struct validation: absent fields mean "leave unchanged" there.
type UserRequest struct {
	Email    string  `json:"email" validate:"required,email,max=200"`
	Password string  `json:"password" validate:"required,max=129"`
	Name     *string `json:"name" validate:"omitempty,max=120"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID    int64   `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

// ProjectRequest is the link-project payload.
type ProjectRequest struct {
	ID   string `json:"id" validate:"required,max=200"`
	Name string `json:"name" validate:"required,max=120"`
}

// ProjectResponse describes one project link of a user.
type ProjectResponse struct {
	ID          string `json:"id"`
	UserID      int64  `json:"userId"`
	ProjectName string `json:"projectName"`
}

// ErrorResponse is the uniform error body for every failed request.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
}
