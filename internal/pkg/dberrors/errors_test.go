package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	assert.True(t, IsDuplicateConstraintError(dup, "users_email_key"))
	assert.True(t, IsDuplicateConstraintError(fmt.Errorf("insert: %w", dup), "users_email_key"))
	assert.False(t, IsDuplicateConstraintError(dup, "auth_identities_email_key"))
	assert.False(t, IsDuplicateConstraintError(&pgconn.PgError{Code: "23503", ConstraintName: "users_email_key"}, "users_email_key"))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), "users_email_key"))
}
