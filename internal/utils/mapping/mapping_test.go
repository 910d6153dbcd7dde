package mapping_test

import (
	"testing"

	"github.com/kennethjason07/school_management_app/internal/apperrors"
	"github.com/kennethjason07/school_management_app/internal/core/domain"
	"github.com/kennethjason07/school_management_app/internal/models"
	"github.com/kennethjason07/school_management_app/internal/utils/calendar"
	"github.com/kennethjason07/school_management_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainFeeStructure_InvalidDueDate(t *testing.T) {
	_, err := mapping.ToDomainFeeStructure(models.FeeStructure{FeeID: "fee-1", DueDate: "2025-06-31"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStorageCorruption)
}

func TestFeeStructureMapping_KeepsDueDate(t *testing.T) {
	due, ok := calendar.Parse("2025-04-10")
	require.True(t, ok)
	fee := domain.FeeStructure{FeeID: "fee-1", ClassID: "class-1", FeeType: "Tuition", Amount: decimal.NewFromInt(5000), DueDate: due}

	m := mapping.ToModelFeeStructure(fee)
	assert.Equal(t, "2025-04-10", m.DueDate)

	back, err := mapping.ToDomainFeeStructure(m)
	require.NoError(t, err)
	assert.Equal(t, fee, back)
}

func TestToDomainStudentFee_PaymentDate(t *testing.T) {
	rec, err := mapping.ToDomainStudentFee(models.StudentFee{StudentFeeID: "sf-1", Status: "unpaid"})
	require.NoError(t, err)
	assert.Nil(t, rec.PaymentDate)

	bad := "2025-07-32"
	_, err = mapping.ToDomainStudentFee(models.StudentFee{StudentFeeID: "sf-2", PaymentDate: &bad})
	assert.ErrorIs(t, err, apperrors.ErrStorageCorruption)

	good := "2025-07-31"
	rec, err = mapping.ToDomainStudentFee(models.StudentFee{StudentFeeID: "sf-3", PaymentDate: &good, Status: "paid"})
	require.NoError(t, err)
	require.NotNil(t, rec.PaymentDate)
	assert.Equal(t, good, rec.PaymentDate.String())
	assert.Equal(t, domain.StatusPaid, rec.Status)
}
