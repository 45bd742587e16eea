package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/bimbel-api/internal/dto"
	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/repository/memory"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
	"github.com/noah-isme/bimbel-api/pkg/password"
)

func newTestUserService() (*UserService, *memory.Store) {
	store := memory.New()
	return NewUserService(store, password.Bcrypt{Cost: bcrypt.MinCost}, validator.New(), zap.NewNop()), store
}

func TestUserServiceCreateHashesPassword(t *testing.T) {
	svc, store := newTestUserService()

	created, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "t2",
		Password: "teacher123",
		FullName: "Sari Dewi",
		Email:    "Sari@Bimbel.local",
		Role:     models.RoleTeacher,
	})
	require.NoError(t, err)
	assert.Nil(t, created.Student)
	assert.Equal(t, "sari@bimbel.local", created.User.Email)

	stored, err := store.GetUserByUsername(context.Background(), "t2")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "teacher123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("teacher123")))
}

func TestUserServiceCreateStudentGetsProfile(t *testing.T) {
	svc, _ := newTestUserService()
	grade := "10"
	parent := "Slamet"

	created, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "s9",
		Password: "student123",
		FullName: "Student Nine",
		Email:    "s9@bimbel.local",
		Role:     models.RoleStudent,
		Grade:    &grade,
		Profile:  &dto.StudentProfileRequest{ParentName: &parent},
	})
	require.NoError(t, err)
	require.NotNil(t, created.Student)
	assert.Equal(t, created.User.ID, created.Student.UserID)
	assert.Equal(t, "Slamet", *created.Student.ParentName)

	profile, err := svc.StudentProfile(context.Background(), created.User.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Student.ID, profile.ID)
}

func TestUserServiceCreateValidation(t *testing.T) {
	svc, _ := newTestUserService()

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{Username: "x1", Password: "secret1", FullName: "X", Email: "x@bimbel.local", Role: "parent"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "x2", Password: "secret1", FullName: "X", Email: "x@bimbel.local", Role: models.RoleTeacher,
		Profile: &dto.StudentProfileRequest{},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUserServiceCreateDuplicateUsername(t *testing.T) {
	svc, _ := newTestUserService()
	req := dto.CreateUserRequest{Username: "t2", Password: "teacher123", FullName: "Sari", Email: "sari@bimbel.local", Role: models.RoleTeacher}

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrConflict))
}

func TestUserServiceGetAndList(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	for _, req := range []dto.CreateUserRequest{
		{Username: "admin", Password: "admin123", FullName: "Admin", Email: "admin@bimbel.local", Role: models.RoleAdmin},
		{Username: "t1", Password: "teacher123", FullName: "Budi", Email: "budi@bimbel.local", Role: models.RoleTeacher},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	_, err := svc.Get(ctx, 42)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	teachers, err := svc.List(ctx, "TEACHER")
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "t1", teachers[0].Username)

	_, err = svc.List(ctx, "janitor")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.StudentProfile(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}
