package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/bimbel-api/internal/dto"
	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/repository"
	"github.com/noah-isme/bimbel-api/internal/repository/memory"
	"github.com/noah-isme/bimbel-api/pkg/password"
)

func TestTeacherRecordsAttendanceForNewClass(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	hasher := password.Bcrypt{Cost: bcrypt.MinCost}
	require.NoError(t, repository.SeedFixtures(ctx, store, hasher.Hash))

	auth := NewAuthService(store, password.NewChain(), nil, nil, AuthConfig{})
	classes := NewClassService(store, store, nil, nil)
	attendance := NewAttendanceService(store, nil, nil)

	teacher, err := auth.Login(ctx, models.LoginRequest{Username: "t1", Password: "teacher123"})
	require.NoError(t, err)
	require.Equal(t, models.RoleTeacher, teacher.Role)

	current, err := auth.CurrentUser(ctx, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", current.FullName)

	class, err := classes.Create(ctx, dto.CreateClassRequest{Name: "Kimia 10", Grade: "10", TeacherID: current.ID})
	require.NoError(t, err)
	assert.True(t, classes.CanManage(current, class))

	students, err := store.ListUsersByRole(ctx, models.RoleStudent)
	require.NoError(t, err)
	var s1 models.User
	for _, s := range students {
		if s.Username == "s1" {
			s1 = s
		}
	}
	require.NotZero(t, s1.ID)
	profile, err := store.GetStudentByUserID(ctx, s1.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)

	record, err := attendance.Mark(ctx, dto.MarkAttendanceRequest{
		StudentID: profile.ID,
		ClassID:   class.ID,
		Date:      models.Today(),
		Status:    models.AttendanceStatusPresent,
	})
	require.NoError(t, err)

	byClass, err := attendance.ListByClass(ctx, class.ID)
	require.NoError(t, err)
	require.Len(t, byClass, 1)
	assert.Equal(t, record.ID, byClass[0].ID)
	assert.Equal(t, profile.ID, byClass[0].StudentID)
	assert.Equal(t, models.AttendanceStatusPresent, byClass[0].Status)

	visible, err := classes.ListVisible(ctx, current)
	require.NoError(t, err)
	assert.Len(t, visible, 3)
}
