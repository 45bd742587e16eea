package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bimbel-api/internal/dto"
	"github.com/noah-isme/bimbel-api/internal/models"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
)

func TestClassServiceCreateRequiresTeacher(t *testing.T) {
	store := seededStore(t)
	svc := NewClassService(store, store, nil, nil)
	ctx := context.Background()

	class, err := svc.Create(ctx, dto.CreateClassRequest{Name: "Kimia 11", Grade: "11", TeacherID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), class.ID)

	_, err = svc.Create(ctx, dto.CreateClassRequest{Name: "Kimia 12", Grade: "12", TeacherID: 3})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(ctx, dto.CreateClassRequest{Name: "Kimia 12", Grade: "12", TeacherID: 99})
	require.Error(t, err)

	_, err = svc.Create(ctx, dto.CreateClassRequest{Grade: "12", TeacherID: 2})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestClassServiceList(t *testing.T) {
	store := seededStore(t)
	svc := NewClassService(store, store, nil, nil)
	ctx := context.Background()

	all, err := svc.List(ctx, dto.ClassFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byGrade, err := svc.List(ctx, dto.ClassFilter{Grade: "11"})
	require.NoError(t, err)
	require.Len(t, byGrade, 1)
	assert.Equal(t, "Fisika 11", byGrade[0].Name)

	none, err := svc.List(ctx, dto.ClassFilter{TeacherID: 1})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = svc.Get(ctx, 99)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestClassServiceListVisible(t *testing.T) {
	store := seededStore(t)
	svc := NewClassService(store, store, nil, nil)
	ctx := context.Background()
	grade10 := "10"

	admin, err := svc.ListVisible(ctx, &models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, admin, 2)

	teacher, err := svc.ListVisible(ctx, &models.User{ID: 2, Role: models.RoleTeacher})
	require.NoError(t, err)
	assert.Len(t, teacher, 2)

	student, err := svc.ListVisible(ctx, &models.User{ID: 3, Role: models.RoleStudent, Grade: &grade10})
	require.NoError(t, err)
	require.Len(t, student, 1)
	assert.Equal(t, "Matematika 10", student[0].Name)

	gradeless, err := svc.ListVisible(ctx, &models.User{ID: 5, Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Empty(t, gradeless)
}

func TestClassServiceCanManage(t *testing.T) {
	svc := NewClassService(nil, nil, nil, nil)
	class := &models.Class{ID: 1, TeacherID: 2}

	assert.True(t, svc.CanManage(&models.User{ID: 1, Role: models.RoleAdmin}, class))
	assert.True(t, svc.CanManage(&models.User{ID: 2, Role: models.RoleTeacher}, class))
	assert.False(t, svc.CanManage(&models.User{ID: 7, Role: models.RoleTeacher}, class))
	assert.False(t, svc.CanManage(&models.User{ID: 3, Role: models.RoleStudent}, class))
	assert.False(t, svc.CanManage(nil, class))
}
