package models

import (
	"time"

	"github.com/google/uuid"
)

// User defines the user model based on the 'users' table
type User struct {
	UID       uuid.UUID `json:"uid" db:"uid"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	NISN      string    `json:"nisn" db:"nisn"`
	Class     string    `json:"class" db:"class"`
	Role      RoleType  `json:"role" db:"role"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Identity defines a login identity based on the 'auth_identities' table
type Identity struct {
	UID           uuid.UUID `json:"uid" db:"uid"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	DisplayName   string    `json:"displayName" db:"display_name"`
	EmailVerified bool      `json:"emailVerified" db:"email_verified"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
