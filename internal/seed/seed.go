// Package seed loads student records into the Postgres identity and user
// stores, replacing whatever students were there before.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/studentsync/internal/app/models"
	"github.com/yigit/studentsync/internal/pkg/apperrors"
	"github.com/yigit/studentsync/internal/pkg/auth"
)

// UserStore is the user-row storage used by the Seeder
type UserStore interface {
	ListByRole(ctx context.Context, role models.RoleType) ([]*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, uid uuid.UUID) error
}

// IdentityStore is the login identity storage used by the Seeder
type IdentityStore interface {
	Create(ctx context.Context, identity *models.Identity) error
	Delete(ctx context.Context, uid uuid.UUID) error
}

// ClearSummary reports the clearing phase
type ClearSummary struct {
	Found          int
	Deleted        int
	// IdentityErrors counts identities that could not be deleted; their
	// user rows are deleted regardless.
	IdentityErrors int
}

// Outcome is the result of creating one record
type Outcome struct {
	NISN string
	Name string
	UID  uuid.UUID
	Err  error
}

// OK reports whether the record was created
func (o Outcome) OK() bool { return o.Err == nil }

// CreateSummary reports the creation phase
type CreateSummary struct {
	Outcomes []Outcome
	Created  int
	Failed   int
}

// Report is the result of a full Run
type Report struct {
	Clear  *ClearSummary
	Create *CreateSummary
}

// Seeder replaces the stored students with a new roster
type Seeder struct {
	users      UserStore
	identities IdentityStore
	role       models.RoleType
	hashCost   int
	logger     zerolog.Logger
	now        func() time.Time
}

// Option customises a Seeder
type Option func(*Seeder)

// WithRole overrides the role cleared and assigned
func WithRole(role models.RoleType) Option {
	return func(s *Seeder) { s.role = role }
}

// WithHashCost overrides the bcrypt cost
func WithHashCost(cost int) Option {
	return func(s *Seeder) { s.hashCost = cost }
}

// NewSeeder creates a new Seeder
func NewSeeder(users UserStore, identities IdentityStore, lgr zerolog.Logger, opts ...Option) *Seeder {
	s := &Seeder{
		users:      users,
		identities: identities,
		role:       models.RoleStudent,
		hashCost:   auth.BcryptCost,
		logger:     lgr,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Clear deletes every user with the seeder's role together with its login
// identity. Identity delete failures are logged and counted; a listing or
// user-row delete failure aborts.
func (s *Seeder) Clear(ctx context.Context) (*ClearSummary, error) {
	existing, err := s.users.ListByRole(ctx, s.role)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing students: %w", err)
	}

	summary := &ClearSummary{Found: len(existing)}
	s.logger.Info().Int("found", summary.Found).Msg("Clearing existing students")

	for _, u := range existing {
		if err := s.identities.Delete(ctx, u.UID); err != nil {
			if errors.Is(err, apperrors.ErrIdentityNotFound) {
				s.logger.Warn().Str("uid", u.UID.String()).Str("nisn", u.NISN).Msg("Identity already absent")
			} else {
				summary.IdentityErrors++
				s.logger.Error().Err(err).Str("uid", u.UID.String()).Str("email", u.Email).Msg("Error deleting identity")
			}
		}

		if err := s.users.Delete(ctx, u.UID); err != nil {
			return summary, fmt.Errorf("failed to delete student %s: %w", u.UID, err)
		}
		summary.Deleted++
	}

	s.logger.Info().Int("deleted", summary.Deleted).Msg("Existing students cleared")
	return summary, nil
}

// Create stores every record in order. Failures are recorded per record and
// never stop the loop.
func (s *Seeder) Create(ctx context.Context, records []models.StudentRecord) *CreateSummary {
	summary := &CreateSummary{Outcomes: make([]Outcome, 0, len(records))}

	for _, rec := range records {
		outcome := Outcome{NISN: rec.NISN, Name: rec.Name}
		uid, err := s.createOne(ctx, rec)
		if err != nil {
			outcome.Err = err
			summary.Failed++
			s.logger.Error().Err(err).Str("nisn", rec.NISN).Str("name", rec.Name).Msg("Failed to create student")
		} else {
			outcome.UID = uid
			summary.Created++
			s.logger.Debug().Str("nisn", rec.NISN).Str("uid", uid.String()).Msg("Student created")
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	s.logger.Info().Int("created", summary.Created).Int("failed", summary.Failed).Msg("Student creation finished")
	return summary
}

func (s *Seeder) createOne(ctx context.Context, rec models.StudentRecord) (uuid.UUID, error) {
	hash, err := auth.HashPasswordWithCost(rec.Password, s.hashCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	uid := uuid.New()

	identity := &models.Identity{
		UID:           uid,
		Email:         rec.Email,
		PasswordHash:  hash,
		DisplayName:   rec.Name,
		EmailVerified: false,
		CreatedAt:     now,
	}
	if err := s.identities.Create(ctx, identity); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create identity: %w", err)
	}

	user := &models.User{
		UID:       uid,
		Name:      rec.Name,
		Email:     rec.Email,
		NISN:      rec.NISN,
		Class:     rec.Class,
		Role:      s.role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Drop the identity so a rerun does not trip over its email.
		if delErr := s.identities.Delete(ctx, uid); delErr != nil {
			err = errors.Join(err, delErr)
		}
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}

	return uid, nil
}

// Run clears the existing students and then creates records. Creation never
// starts if clearing failed.
func (s *Seeder) Run(ctx context.Context, records []models.StudentRecord) (*Report, error) {
	report := &Report{}

	cleared, err := s.Clear(ctx)
	report.Clear = cleared
	if err != nil {
		return report, err
	}

	report.Create = s.Create(ctx, records)
	return report, nil
}
