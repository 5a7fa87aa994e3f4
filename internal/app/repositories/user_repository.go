package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/yigit/studentsync/internal/app/models"
	"github.com/yigit/studentsync/internal/pkg/apperrors"
	"github.com/yigit/studentsync/internal/pkg/dberrors"
	"github.com/yigit/studentsync/internal/pkg/logger"
)

var userColumns = []string{"uid", "name", "email", "nisn", "class", "role", "is_active", "created_at", "updated_at"}

// UserRepository handles operations on the 'users' table
type UserRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *UserRepository) listByRoleQuery(role models.RoleType) (string, []interface{}, error) {
	return r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"role": string(role)}).
		OrderBy("created_at", "nisn").
		ToSql()
}

// ListByRole returns all users carrying role
func (r *UserRepository) ListByRole(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	sql, args, err := r.listByRoleQuery(role)
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("role", string(role)).Msg("Error listing users")
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		var roleStr string
		if err := rows.Scan(&u.UID, &u.Name, &u.Email, &u.NISN, &u.Class, &roleStr, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		u.Role = models.RoleType(roleStr)
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

func (r *UserRepository) createQuery(user *models.User) (string, []interface{}, error) {
	return r.sb.Insert("users").
		Columns(userColumns...).
		Values(user.UID, user.Name, user.Email, user.NISN, user.Class, string(user.Role), user.IsActive, user.CreatedAt, user.UpdatedAt).
		ToSql()
}

// Create inserts a user row
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	sql, args, err := r.createQuery(user)
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("nisn", user.NISN).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// Delete removes the user row identified by uid
func (r *UserRepository) Delete(ctx context.Context, uid uuid.UUID) error {
	sql, args, err := r.sb.Delete("users").Where(squirrel.Eq{"uid": uid}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

func (r *UserRepository) nisnExistsQuery(nisn string, role models.RoleType) (string, []interface{}, error) {
	return r.sb.Select("1").
		From("users").
		Where(squirrel.Eq{"nisn": nisn, "role": string(role)}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
}

// NISNExists checks if a user with role already carries nisn
func (r *UserRepository) NISNExists(ctx context.Context, nisn string, role models.RoleType) (bool, error) {
	sql, args, err := r.nisnExistsQuery(nisn, role)
	if err != nil {
		return false, fmt.Errorf("failed to build NISN exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking NISN existence: %w", err)
	}
	return exists, nil
}
