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

func TestFinanceServiceInstallmentPaidWithoutDate(t *testing.T) {
	svc := NewFinanceService(profileStore(t), nil, nil)
	ctx := context.Background()

	installment, err := svc.CreateInstallment(ctx, dto.CreateInstallmentRequest{StudentID: 1, Amount: 500000, DueDate: models.NewDate(2024, time.June, 1)})
	require.NoError(t, err)
	assert.Equal(t, models.InstallmentStatusPending, installment.Status)
	assert.Nil(t, installment.PaymentDate)

	paid, err := svc.UpdateInstallment(ctx, installment.ID, dto.UpdateInstallmentRequest{Status: models.InstallmentStatusPaid})
	require.NoError(t, err)
	assert.Equal(t, models.InstallmentStatusPaid, paid.Status)
	assert.Nil(t, paid.PaymentDate)
}

func TestFinanceServiceInstallmentPaidWithDate(t *testing.T) {
	svc := NewFinanceService(profileStore(t), nil, nil)
	ctx := context.Background()
	payDay := models.NewDate(2024, time.June, 3)

	installment, err := svc.CreateInstallment(ctx, dto.CreateInstallmentRequest{StudentID: 1, Amount: 500000, DueDate: models.NewDate(2024, time.June, 1)})
	require.NoError(t, err)

	paid, err := svc.UpdateInstallment(ctx, installment.ID, dto.UpdateInstallmentRequest{Status: models.InstallmentStatusPaid, PaymentDate: &payDay})
	require.NoError(t, err)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, payDay, *paid.PaymentDate)

	reopened, err := svc.UpdateInstallment(ctx, installment.ID, dto.UpdateInstallmentRequest{Status: models.InstallmentStatusOverdue})
	require.NoError(t, err)
	assert.Equal(t, models.InstallmentStatusOverdue, reopened.Status)
	require.NotNil(t, reopened.PaymentDate)
	assert.Equal(t, payDay, *reopened.PaymentDate)
}

func TestFinanceServiceListInstallments(t *testing.T) {
	store := seededStore(t)
	svc := NewFinanceService(store, nil, nil)
	ctx := context.Background()

	all, err := svc.ListInstallments(ctx, dto.InstallmentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	s1, err := svc.ListInstallments(ctx, dto.InstallmentFilter{StudentID: 1})
	require.NoError(t, err)
	assert.Len(t, s1, 2)

	overdue, err := svc.ListInstallments(ctx, dto.InstallmentFilter{Status: "Overdue"})
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, int64(2), overdue[0].StudentID)

	// Installments are keyed by profile, so s1's login id finds nothing.
	byLogin, err := svc.ListInstallments(ctx, dto.InstallmentFilter{StudentID: 3})
	require.NoError(t, err)
	assert.Empty(t, byLogin)

	_, err = svc.CreateInstallment(ctx, dto.CreateInstallmentRequest{StudentID: 3, Amount: 500000, DueDate: models.NewDate(2024, time.June, 1)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.ListInstallments(ctx, dto.InstallmentFilter{Status: "cancelled"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestFinanceServiceInstallmentValidation(t *testing.T) {
	svc := NewFinanceService(memory.New(), nil, nil)
	ctx := context.Background()

	_, err := svc.CreateInstallment(ctx, dto.CreateInstallmentRequest{StudentID: 1, Amount: 0, DueDate: models.NewDate(2024, time.June, 1)})
	require.Error(t, err)

	_, err = svc.UpdateInstallment(ctx, 1, dto.UpdateInstallmentRequest{Status: "refunded"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.UpdateInstallment(ctx, 1, dto.UpdateInstallmentRequest{Status: models.InstallmentStatusPaid})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestFinanceServiceTeacherPayments(t *testing.T) {
	svc := NewFinanceService(memory.New(), nil, nil)
	ctx := context.Background()

	_, err := svc.CreateTeacherPayment(ctx, dto.CreateTeacherPaymentRequest{TeacherID: 2, Amount: 1000, Month: "2024-13"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.CreateTeacherPayment(ctx, dto.CreateTeacherPaymentRequest{TeacherID: 2, Amount: 1000, Month: "2024-05", Status: "overdue"})
	require.Error(t, err)

	payment, err := svc.CreateTeacherPayment(ctx, dto.CreateTeacherPaymentRequest{TeacherID: 2, Amount: 3500000, Month: "2024-05", Description: "Honor Mei"})
	require.NoError(t, err)
	assert.Equal(t, models.TeacherPaymentStatusPending, payment.Status)

	payDay := models.NewDate(2024, time.June, 1)
	paid, err := svc.UpdateTeacherPayment(ctx, payment.ID, dto.UpdateTeacherPaymentRequest{Status: models.TeacherPaymentStatusPaid, PaymentDate: &payDay})
	require.NoError(t, err)
	assert.Equal(t, models.TeacherPaymentStatusPaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)

	mine, err := svc.ListTeacherPayments(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	others, err := svc.ListTeacherPayments(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, others)
}
