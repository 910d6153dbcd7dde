package models

import "github.com/shopspring/decimal"

// StudentFee mirrors a student_fees row.
type StudentFee struct {
	StudentFeeID string          `db:"student_fee_id"`
	StudentID    string          `db:"student_id"`
	FeeID        string          `db:"fee_id"`
	AmountPaid   decimal.Decimal `db:"amount_paid"`
	PaymentDate  *string         `db:"payment_date"` // Nullable, raw text
	Status       string          `db:"status"`
	AuditFields
}
