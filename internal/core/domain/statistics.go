package domain

import "github.com/shopspring/decimal"

// FeeSnapshot is the institution-wide summary shown on dashboards. It is
// derived on demand and never persisted.
type FeeSnapshot struct {
	TotalDue            decimal.Decimal `json:"totalDue"`
	TotalPaid           decimal.Decimal `json:"totalPaid"`
	PendingStudentCount int             `json:"pendingStudentCount"`
}

// ComputeSnapshot folds over every fee item and every stored ledger record.
//
// PendingStudentCount only counts students that have at least one stored
// record still unpaid or partial; a student who has never paid anything has
// no record and is not counted.
func ComputeSnapshot(fees []FeeStructure, records []StudentFee) FeeSnapshot {
	owed := make(map[string]decimal.Decimal, len(fees))
	for _, f := range fees {
		owed[f.FeeID] = f.Amount
	}

	pending := make(map[string]struct{})
	for _, r := range records {
		status := r.Status
		if amount, ok := owed[r.FeeID]; ok {
			status = r.EffectiveStatus(amount)
		}
		if status.IsPending() {
			pending[r.StudentID] = struct{}{}
		}
	}

	return FeeSnapshot{
		TotalDue:            SumFeeAmounts(fees),
		TotalPaid:           SumAmountPaid(records),
		PendingStudentCount: len(pending),
	}
}

// StudentBalance is one student's position across their class catalog.
type StudentBalance struct {
	StudentID   string          `json:"studentID"`
	StudentName string          `json:"studentName"`
	ClassID     string          `json:"classID"`
	TotalOwed   decimal.Decimal `json:"totalOwed"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// NewStudentBalance sums the class catalog against every record of the student.
// Outstanding floors at zero; TotalPaid keeps the true amount even on overpayment.
func NewStudentBalance(student Student, fees []FeeStructure, records []StudentFee) StudentBalance {
	owed := SumFeeAmounts(fees)
	paid := SumAmountPaid(records)
	return StudentBalance{
		StudentID:   student.StudentID,
		StudentName: student.Name,
		ClassID:     student.ClassID,
		TotalOwed:   owed,
		TotalPaid:   paid,
		Outstanding: decimal.Max(owed.Sub(paid), decimal.Zero),
	}
}
