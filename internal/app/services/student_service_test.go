package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/studentsync/internal/app/models"
	"github.com/yigit/studentsync/internal/app/models/dto"
	"github.com/yigit/studentsync/internal/pkg/apperrors"
	"github.com/yigit/studentsync/internal/pkg/auth"
)

type mockStudentStore struct {
	mock.Mock
}

func (m *mockStudentStore) ListByRole(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	args := m.Called(ctx, role)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func (m *mockStudentStore) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockStudentStore) NISNExists(ctx context.Context, nisn string, role models.RoleType) (bool, error) {
	args := m.Called(ctx, nisn, role)
	return args.Bool(0), args.Error(1)
}

type mockIdentityStore struct {
	mock.Mock
}

func (m *mockIdentityStore) Create(ctx context.Context, identity *models.Identity) error {
	return m.Called(ctx, identity).Error(0)
}

func (m *mockIdentityStore) Delete(ctx context.Context, uid uuid.UUID) error {
	return m.Called(ctx, uid).Error(0)
}

func newTestService(students *mockStudentStore, identities *mockIdentityStore) StudentService {
	return NewStudentService(students, identities, "students.pppl.id", bcrypt.MinCost, zerolog.Nop())
}

func TestCreateStudent_Success(t *testing.T) {
	students := new(mockStudentStore)
	identities := new(mockIdentityStore)

	students.On("NISNExists", mock.Anything, "0141437500", models.RoleStudent).Return(false, nil)
	identities.On("Create", mock.Anything, mock.MatchedBy(func(i *models.Identity) bool {
		return i.Email == "adinda.7500@students.pppl.id" && auth.CheckPassword(i.PasswordHash, "rahasia1")
	})).Return(nil)
	students.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := newTestService(students, identities).CreateStudent(context.Background(), &dto.CreateStudentRequest{
		Name:     " Adinda Putri ",
		NISN:     "0141437500",
		Class:    "6A",
		Password: "rahasia1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Adinda Putri", user.Name)
	assert.Equal(t, "adinda.7500@students.pppl.id", user.Email)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, uuid.Nil, user.UID)
	students.AssertExpectations(t)
	identities.AssertExpectations(t)
}

func TestCreateStudent_DuplicateNISN(t *testing.T) {
	students := new(mockStudentStore)
	identities := new(mockIdentityStore)
	students.On("NISNExists", mock.Anything, "0141437500", models.RoleStudent).Return(true, nil)

	_, err := newTestService(students, identities).CreateStudent(context.Background(), &dto.CreateStudentRequest{
		Name: "Adinda", NISN: "0141437500", Class: "6A", Password: "rahasia1",
	})

	assert.ErrorIs(t, err, apperrors.ErrNISNAlreadyExists)
	identities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateStudent_WeakPassword(t *testing.T) {
	students := new(mockStudentStore)
	identities := new(mockIdentityStore)

	_, err := newTestService(students, identities).CreateStudent(context.Background(), &dto.CreateStudentRequest{
		Name: "Adinda", NISN: "0141437500", Class: "6A", Password: "abc",
	})

	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
	students.AssertNotCalled(t, "NISNExists", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateStudent_BlankFields(t *testing.T) {
	_, err := newTestService(new(mockStudentStore), new(mockIdentityStore)).CreateStudent(context.Background(), &dto.CreateStudentRequest{
		Name: "   ", NISN: "0141437500", Class: "6A", Password: "rahasia1",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateStudent_EmailConflictRemovesIdentity(t *testing.T) {
	students := new(mockStudentStore)
	identities := new(mockIdentityStore)

	students.On("NISNExists", mock.Anything, "0141437500", models.RoleStudent).Return(false, nil)
	identities.On("Create", mock.Anything, mock.Anything).Return(nil)
	students.On("Create", mock.Anything, mock.Anything).Return(apperrors.ErrEmailAlreadyExists)
	identities.On("Delete", mock.Anything, mock.Anything).Return(nil)

	_, err := newTestService(students, identities).CreateStudent(context.Background(), &dto.CreateStudentRequest{
		Name: "Adinda", NISN: "0141437500", Class: "6A", Password: "rahasia1",
	})

	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	identities.AssertNumberOfCalls(t, "Delete", 1)
}

func TestListStudents(t *testing.T) {
	students := new(mockStudentStore)
	students.On("ListByRole", mock.Anything, models.RoleStudent).Return(nil, nil).Once()

	list, err := newTestService(students, new(mockIdentityStore)).ListStudents(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	students.On("ListByRole", mock.Anything, models.RoleStudent).Return(nil, errors.New("db down")).Once()
	_, err = newTestService(students, new(mockIdentityStore)).ListStudents(context.Background())
	assert.Error(t, err)
}
