package models

import "github.com/shopspring/decimal"

// FeeStructure mirrors a fee_structures row. DueDate is kept as the raw
// stored text so that out-of-range values can be detected and repaired.
type FeeStructure struct {
	FeeID       string          `db:"fee_id"`
	ClassID     string          `db:"class_id"`
	FeeType     string          `db:"fee_type"`
	Amount      decimal.Decimal `db:"amount"`
	DueDate     string          `db:"due_date"`
	Description string          `db:"description"`
	AuditFields
}
