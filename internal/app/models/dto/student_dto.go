package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yigit/studentsync/internal/app/models"
)

// CreateStudentRequest represents a single student registration
type CreateStudentRequest struct {
	Name     string `json:"name" binding:"required"`
	NISN     string `json:"nisn" binding:"required"`
	Class    string `json:"class" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// StudentResponse is the public view of a stored student
type StudentResponse struct {
	UID       uuid.UUID `json:"uid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	NISN      string    `json:"nisn"`
	Class     string    `json:"class"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewStudentResponse maps a user row onto its response
func NewStudentResponse(u *models.User) StudentResponse {
	return StudentResponse{
		UID:       u.UID,
		Name:      u.Name,
		Email:     u.Email,
		NISN:      u.NISN,
		Class:     u.Class,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// NewStudentResponses maps a list of user rows
func NewStudentResponses(users []*models.User) []StudentResponse {
	out := make([]StudentResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewStudentResponse(u))
	}
	return out
}
