package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kennethjason07/school_management_app/internal/apperrors"
	"github.com/kennethjason07/school_management_app/internal/core/domain"
	"github.com/kennethjason07/school_management_app/internal/models"
	"github.com/kennethjason07/school_management_app/internal/repositories/memory"
	"github.com/kennethjason07/school_management_app/internal/utils/calendar"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	s.PutClass(domain.Class{ClassID: "class-1", Name: "Grade 1"})
	s.PutStudent(domain.Student{StudentID: "student-1", ClassID: "class-1", Name: "Asha"})
	s.PutStudent(domain.Student{StudentID: "student-2", ClassID: "class-1", Name: "Ravi"})
	s.PutRawFeeStructure(models.FeeStructure{
		FeeID: "fee-1", ClassID: "class-1", FeeType: "Tuition", Amount: decimal.NewFromInt(5000), DueDate: "2025-06-30",
	})
	return s
}

func delta(studentFeeID, studentID string, amount int64) domain.PaymentDelta {
	return domain.PaymentDelta{
		StudentFeeID: studentFeeID,
		StudentID:    studentID,
		FeeID:        "fee-1",
		Amount:       decimal.NewFromInt(amount),
		PaymentDate:  calendar.Date{Year: 2025, Month: time.June, Day: 1},
		OwedAmount:   decimal.NewFromInt(5000),
		UserID:       "clerk",
		At:           time.Now(),
	}
}

func TestApplyDelta_CreatesThenIncrements(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)

	rec, err := s.ApplyDelta(ctx, delta("sf-1", "student-1", 2000))
	require.NoError(t, err)
	assert.Equal(t, "sf-1", rec.StudentFeeID)
	assert.Equal(t, domain.StatusPartial, rec.Status)

	// A second delta carries a fresh id; the existing row keeps its own.
	rec, err = s.ApplyDelta(ctx, delta("sf-other", "student-1", 3000))
	require.NoError(t, err)
	assert.Equal(t, "sf-1", rec.StudentFeeID)
	assert.True(t, decimal.NewFromInt(5000).Equal(rec.AmountPaid))
	assert.Equal(t, domain.StatusPaid, rec.Status)
}

func TestApplyDelta_UnknownReferences(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)

	_, err := s.ApplyDelta(ctx, delta("sf-1", "nobody", 100))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestApplyDelta_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := newSeededStore(t)

	_, err := s.ApplyDelta(ctx, delta("sf-1", "student-1", 100))
	assert.ErrorIs(t, err, apperrors.ErrUnknownOutcome)
}

func TestApplyDelta_ConcurrentNoLostUpdates(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ApplyDelta(ctx, delta("sf-race", "student-1", 100))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rec, err := s.FindStudentFee(ctx, "student-1", "fee-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(workers*100).Equal(rec.AmountPaid), "got %s", rec.AmountPaid)
	assert.Equal(t, domain.StatusPaid, rec.Status)
}

func TestDeleteFeeStructure_BlockedByRecord(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)

	_, err := s.ApplyDelta(ctx, delta("sf-1", "student-1", 100))
	require.NoError(t, err)

	err = s.DeleteFeeStructure(ctx, "fee-1")
	assert.ErrorIs(t, err, apperrors.ErrBlocked)

	_, err = s.FindFeeStructureByID(ctx, "fee-1")
	assert.NoError(t, err)
}

func TestListFeeStructuresByClass_CorruptDueDate(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	s.PutRawFeeStructure(models.FeeStructure{
		FeeID: "fee-2", ClassID: "class-1", FeeType: "Transport", Amount: decimal.NewFromInt(800), DueDate: "2025-07-32",
	})

	_, err := s.ListFeeStructuresByClass(ctx, "class-1")
	assert.ErrorIs(t, err, apperrors.ErrStorageCorruption)

	changed, err := s.RewriteDate(ctx, domain.RawDateValue{
		Table: domain.TableFeeStructures, Field: domain.FieldDueDate, RecordID: "fee-2", Value: "2025-07-32",
	}, "2025-07-31")
	require.NoError(t, err)
	assert.True(t, changed)

	fees, err := s.ListFeeStructuresByClass(ctx, "class-1")
	require.NoError(t, err)
	require.Len(t, fees, 2)
	assert.Equal(t, "fee-1", fees[0].FeeID)
	assert.Equal(t, "2025-07-31", fees[1].DueDate.String())
}

func TestRewriteDate_StaleValueIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)

	changed, err := s.RewriteDate(ctx, domain.RawDateValue{
		Table: domain.TableFeeStructures, Field: domain.FieldDueDate, RecordID: "fee-1", Value: "2025-06-31",
	}, "2025-06-30")
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = s.RewriteDate(ctx, domain.RawDateValue{Table: "students", Field: "dob", RecordID: "x", Value: "2025-06-31"}, "2025-06-30")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
