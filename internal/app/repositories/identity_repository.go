package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/yigit/studentsync/internal/app/models"
	"github.com/yigit/studentsync/internal/pkg/apperrors"
	"github.com/yigit/studentsync/internal/pkg/dberrors"
)

// IdentityRepository handles login identities in 'auth_identities'
type IdentityRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewIdentityRepository creates a new IdentityRepository
func NewIdentityRepository(db DBTX) *IdentityRepository {
	return &IdentityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores a new identity
func (r *IdentityRepository) Create(ctx context.Context, identity *models.Identity) error {
	sql, args, err := r.sb.Insert("auth_identities").
		Columns("uid", "email", "password_hash", "display_name", "email_verified", "created_at").
		Values(identity.UID, identity.Email, identity.PasswordHash, identity.DisplayName, identity.EmailVerified, identity.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create identity query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "auth_identities_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating identity: %w", err)
	}
	return nil
}

// Delete removes the identity identified by uid. A missing identity yields
// apperrors.ErrIdentityNotFound.
func (r *IdentityRepository) Delete(ctx context.Context, uid uuid.UUID) error {
	sql, args, err := r.sb.Delete("auth_identities").Where(squirrel.Eq{"uid": uid}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete identity query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting identity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrIdentityNotFound
	}
	return nil
}
