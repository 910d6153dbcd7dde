package domain

import (
	"fmt"
	"time"

	"github.com/kennethjason07/school_management_app/internal/utils/calendar"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the settlement state of one student's fee item.
type PaymentStatus string

const (
	StatusUnpaid  PaymentStatus = "unpaid"
	StatusPartial PaymentStatus = "partial"
	StatusPaid    PaymentStatus = "paid"
)

// IsValid reports whether s is one of the three known states.
func (s PaymentStatus) IsValid() bool {
	return s == StatusUnpaid || s == StatusPartial || s == StatusPaid
}

// IsPending reports whether money is still owed in this state.
func (s PaymentStatus) IsPending() bool {
	return s == StatusUnpaid || s == StatusPartial
}

// DeriveStatus maps an accumulated amount against the amount owed.
func DeriveStatus(paid, owed decimal.Decimal) PaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(owed):
		return StatusPaid
	case paid.IsPositive():
		return StatusPartial
	default:
		return StatusUnpaid
	}
}

// StudentFee is a ledger entry: one student's accumulated payments against one fee item.
// A row exists only once money has been applied.
type StudentFee struct {
	StudentFeeID string          `json:"studentFeeID"` // Primary Key (UUID); empty for virtual entries
	StudentID    string          `json:"studentID"`
	FeeID        string          `json:"feeID"`
	AmountPaid   decimal.Decimal `json:"amountPaid"`
	PaymentDate  *calendar.Date  `json:"paymentDate,omitempty"` // nil until the first payment
	Status       PaymentStatus   `json:"status"`
	AuditFields
}

// IsVirtual reports whether the entry was materialized from the catalog rather than read from storage.
func (r StudentFee) IsVirtual() bool {
	return r.StudentFeeID == ""
}

// EffectiveStatus is the status the amounts justify against the current fee
// amount. It differs from the stored Status only after the fee amount was edited.
func (r StudentFee) EffectiveStatus(owed decimal.Decimal) PaymentStatus {
	return DeriveStatus(r.AmountPaid, owed)
}

// CheckConsistency verifies the ledger invariants of a persisted entry against the fee amount.
func (r StudentFee) CheckConsistency(owed decimal.Decimal) error {
	if r.AmountPaid.IsNegative() {
		return fmt.Errorf("student fee %s has negative amount paid %s", r.StudentFeeID, r.AmountPaid)
	}
	if !r.Status.IsValid() {
		return fmt.Errorf("student fee %s has unknown status %q", r.StudentFeeID, r.Status)
	}
	if want := r.EffectiveStatus(owed); r.Status != want {
		return fmt.Errorf("student fee %s has status %s, amounts justify %s", r.StudentFeeID, r.Status, want)
	}
	return nil
}

// PaymentDelta is the single atomic ledger mutation: add Amount to the
// (StudentID, FeeID) entry, creating it with StudentFeeID if absent, and
// re-derive its status against OwedAmount in the same step.
type PaymentDelta struct {
	StudentFeeID string
	StudentID    string
	FeeID        string
	Amount       decimal.Decimal
	PaymentDate  calendar.Date
	OwedAmount   decimal.Decimal
	UserID       string
	At           time.Time
}

// LedgerEntry joins a fee item with the student's record for it. Fee items
// without a stored record carry a virtual unpaid record.
type LedgerEntry struct {
	Fee    FeeStructure  `json:"fee"`
	Record StudentFee    `json:"record"`
	Status PaymentStatus `json:"status"`
}

// Balance is what remains due on this entry, floored at zero.
func (e LedgerEntry) Balance() decimal.Decimal {
	return decimal.Max(e.Fee.Amount.Sub(e.Record.AmountPaid), decimal.Zero)
}

// JoinLedger builds one entry per fee item, outer-joined against the student's records.
func JoinLedger(studentID string, fees []FeeStructure, records []StudentFee) []LedgerEntry {
	byFee := make(map[string]StudentFee, len(records))
	for _, r := range records {
		byFee[r.FeeID] = r
	}

	entries := make([]LedgerEntry, 0, len(fees))
	for _, fee := range fees {
		rec, ok := byFee[fee.FeeID]
		if !ok {
			rec = StudentFee{
				StudentID:  studentID,
				FeeID:      fee.FeeID,
				AmountPaid: decimal.Zero,
				Status:     StatusUnpaid,
			}
		}
		entries = append(entries, LedgerEntry{
			Fee:    fee,
			Record: rec,
			Status: rec.EffectiveStatus(fee.Amount),
		})
	}
	return entries
}

// PendingEntries keeps the entries still unpaid or partially paid.
func PendingEntries(entries []LedgerEntry) []LedgerEntry {
	pending := make([]LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if e.Status.IsPending() {
			pending = append(pending, e)
		}
	}
	return pending
}

// SumAmountPaid adds up amount_paid over records.
func SumAmountPaid(records []StudentFee) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.AmountPaid)
	}
	return total
}

// StudentLedger is the full fee position of one student.
type StudentLedger struct {
	Student     Student         `json:"student"`
	Entries     []LedgerEntry   `json:"entries"`
	TotalOwed   decimal.Decimal `json:"totalOwed"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// NewStudentLedger joins the class catalog against every record of the student.
// TotalPaid covers all records, including ones whose fee item left the class catalog.
func NewStudentLedger(student Student, fees []FeeStructure, records []StudentFee) StudentLedger {
	balance := NewStudentBalance(student, fees, records)
	return StudentLedger{
		Student:     student,
		Entries:     JoinLedger(student.StudentID, fees, records),
		TotalOwed:   balance.TotalOwed,
		TotalPaid:   balance.TotalPaid,
		Outstanding: balance.Outstanding,
	}
}
