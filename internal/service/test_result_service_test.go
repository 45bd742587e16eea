package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bimbel-api/internal/dto"
	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/repository/memory"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
)

// flakyResults fails every CreateTestResult after the first failAfter calls.
type flakyResults struct {
	*memory.Store
	failAfter int
	calls     int
}

func (f *flakyResults) CreateTestResult(ctx context.Context, result models.TestResult) (*models.TestResult, error) {
	f.calls++
	if f.calls > f.failAfter {
		return nil, appErrors.Persistence(errors.New("disk full"), "create_test_result")
	}
	return f.Store.CreateTestResult(ctx, result)
}

func TestTestResultServiceCreateDefaults(t *testing.T) {
	svc := NewTestResultService(profileStore(t), nil, nil)

	result, err := svc.Create(context.Background(), dto.CreateTestResultRequest{
		Name: "Kuis 1", StudentID: 1, ClassID: 1, Date: models.NewDate(2024, time.April, 2), Score: 72,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(models.DefaultMaxScore), result.MaxScore)
	assert.Equal(t, models.TestResultStatusPending, result.Status)
	assert.Equal(t, 72.0, result.Score)
}

func TestTestResultServiceUpdateIndependentFields(t *testing.T) {
	svc := NewTestResultService(profileStore(t), nil, nil)
	ctx := context.Background()

	result, err := svc.Create(ctx, dto.CreateTestResultRequest{Name: "Kuis 1", StudentID: 1, ClassID: 1, Date: models.NewDate(2024, time.April, 2)})
	require.NoError(t, err)

	graded, err := svc.Update(ctx, result.ID, dto.UpdateTestResultRequest{Score: 0, Status: models.TestResultStatusGraded})
	require.NoError(t, err)
	assert.Equal(t, models.TestResultStatusGraded, graded.Status)
	assert.Zero(t, graded.Score)

	pending, err := svc.Update(ctx, result.ID, dto.UpdateTestResultRequest{Score: 95, Status: models.TestResultStatusPending})
	require.NoError(t, err)
	assert.Equal(t, models.TestResultStatusPending, pending.Status)
	assert.Equal(t, 95.0, pending.Score)

	_, err = svc.Update(ctx, 99, dto.UpdateTestResultRequest{Status: models.TestResultStatusGraded})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, err = svc.Update(ctx, result.ID, dto.UpdateTestResultRequest{Score: -1, Status: models.TestResultStatusGraded})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTestResultServiceCreateForClass(t *testing.T) {
	store := profileStore(t)
	svc := NewTestResultService(store, nil, nil)
	ctx := context.Background()

	saved, err := svc.CreateForClass(ctx, dto.CreateClassResultsRequest{
		Name:    "UTS",
		ClassID: 1,
		Date:    models.NewDate(2024, time.May, 6),
		Status:  models.TestResultStatusGraded,
		Scores:  []dto.ClassScore{{StudentID: 1, Score: 80}, {StudentID: 2, Score: 65}},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, int64(2), saved[1].StudentID)

	listed, err := svc.ListByClass(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestTestResultServiceCreateForClassPartialFailure(t *testing.T) {
	repo := &flakyResults{Store: profileStore(t), failAfter: 2}
	svc := NewTestResultService(repo, nil, nil)
	ctx := context.Background()

	saved, err := svc.CreateForClass(ctx, dto.CreateClassResultsRequest{
		Name:    "UTS",
		ClassID: 1,
		Date:    models.NewDate(2024, time.May, 6),
		Scores:  []dto.ClassScore{{StudentID: 1, Score: 80}, {StudentID: 2, Score: 65}, {StudentID: 3, Score: 90}},
	})
	require.Error(t, err)
	assert.Len(t, saved, 2)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPersistence.Code, appErr.Code)
	assert.Equal(t, "saved 2 of 3 results", appErr.Message)

	stored, err := repo.ListTestResultsByClass(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestTestResultServiceCreateForClassValidation(t *testing.T) {
	store := profileStore(t)
	svc := NewTestResultService(store, nil, nil)
	ctx := context.Background()

	_, err := svc.CreateForClass(ctx, dto.CreateClassResultsRequest{Name: "UTS", ClassID: 1, Date: models.NewDate(2024, time.May, 6)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	// An unknown student anywhere in the list stops the batch before any write.
	saved, err := svc.CreateForClass(ctx, dto.CreateClassResultsRequest{
		Name:    "UTS",
		ClassID: 1,
		Date:    models.NewDate(2024, time.May, 6),
		Scores:  []dto.ClassScore{{StudentID: 1, Score: 80}, {StudentID: 9, Score: 65}},
	})
	require.Error(t, err)
	assert.Nil(t, saved)
	assert.Equal(t, "studentId must reference a student profile", appErrors.FromError(err).Message)

	stored, err := store.ListTestResultsByClass(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, stored)
}
