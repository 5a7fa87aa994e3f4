package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/studentsync/internal/app/models"
	"github.com/yigit/studentsync/internal/app/models/dto"
	"github.com/yigit/studentsync/internal/pkg/apperrors"
	"github.com/yigit/studentsync/internal/pkg/auth"
	"github.com/yigit/studentsync/internal/pkg/credentials"
)

// MinPasswordLength is the shortest password accepted for a single student
const MinPasswordLength = 6

// StudentStore is the user-row storage the service needs
type StudentStore interface {
	ListByRole(ctx context.Context, role models.RoleType) ([]*models.User, error)
	Create(ctx context.Context, user *models.User) error
	NISNExists(ctx context.Context, nisn string, role models.RoleType) (bool, error)
}

// IdentityStore is the login identity storage the service needs
type IdentityStore interface {
	Create(ctx context.Context, identity *models.Identity) error
	Delete(ctx context.Context, uid uuid.UUID) error
}

// StudentService defines the interface for single-student operations
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.User, error)
	ListStudents(ctx context.Context) ([]*models.User, error)
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	students    StudentStore
	identities  IdentityStore
	emailDomain string
	hashCost    int
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService. A zero hashCost selects
// auth.BcryptCost.
func NewStudentService(students StudentStore, identities IdentityStore, emailDomain string, hashCost int, logger zerolog.Logger) StudentService {
	if hashCost == 0 {
		hashCost = auth.BcryptCost
	}
	if emailDomain == "" {
		emailDomain = credentials.DefaultEmailDomain
	}
	return &studentServiceImpl{
		students:    students,
		identities:  identities,
		emailDomain: emailDomain,
		hashCost:    hashCost,
		logger:      logger,
	}
}

// CreateStudent registers one student. The email is derived from name and
// NISN with the bulk import rule.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	nisn := strings.TrimSpace(req.NISN)
	class := strings.TrimSpace(req.Class)

	if name == "" || nisn == "" || class == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "name, nisn and class are required")
	}
	if len(req.Password) < MinPasswordLength {
		return nil, apperrors.ErrWeakPassword
	}

	exists, err := s.students.NISNExists(ctx, nisn, models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("error checking NISN: %w", err)
	}
	if exists {
		return nil, apperrors.ErrNISNAlreadyExists
	}

	hash, err := auth.HashPasswordWithCost(req.Password, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	now := time.Now().UTC()
	uid := uuid.New()
	email := credentials.Email(name, nisn, s.emailDomain)

	identity := &models.Identity{
		UID:          uid,
		Email:        email,
		PasswordHash: hash,
		DisplayName:  name,
		CreatedAt:    now,
	}
	if err := s.identities.Create(ctx, identity); err != nil {
		return nil, fmt.Errorf("error creating identity: %w", err)
	}

	user := &models.User{
		UID:       uid,
		Name:      name,
		Email:     email,
		NISN:      nisn,
		Class:     class,
		Role:      models.RoleStudent,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.students.Create(ctx, user); err != nil {
		if delErr := s.identities.Delete(ctx, uid); delErr != nil && !errors.Is(delErr, apperrors.ErrIdentityNotFound) {
			s.logger.Error().Err(delErr).Str("uid", uid.String()).Msg("Failed to remove identity after user insert failure")
		}
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	s.logger.Info().Str("uid", uid.String()).Str("nisn", nisn).Msg("Student created")
	return user, nil
}

// ListStudents returns all stored students
func (s *studentServiceImpl) ListStudents(ctx context.Context) ([]*models.User, error) {
	students, err := s.students.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	if students == nil {
		students = []*models.User{}
	}
	return students, nil
}
