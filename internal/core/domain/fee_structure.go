package domain

import (
	"fmt"
	"strings"

	"github.com/kennethjason07/school_management_app/internal/apperrors"
	"github.com/kennethjason07/school_management_app/internal/utils/calendar"
	"github.com/shopspring/decimal"
)

// FeeStructure is one billable item of a class fee catalog (e.g. "Tuition", term 1).
type FeeStructure struct {
	FeeID       string          `json:"feeID"`   // Primary Key (UUID)
	ClassID     string          `json:"classID"` // FK -> classes.class_id
	FeeType     string          `json:"feeType"` // Free-text category
	Amount      decimal.Decimal `json:"amount"`  // Always positive
	DueDate     calendar.Date   `json:"dueDate"`
	Description string          `json:"description"`
	AuditFields
}

// Validate checks the catalog invariants: a fee type, a positive amount in whole cents and a real due date.
func (f FeeStructure) Validate() error {
	if strings.TrimSpace(f.ClassID) == "" {
		return apperrors.NewValidationError("class is required")
	}
	if strings.TrimSpace(f.FeeType) == "" {
		return apperrors.NewValidationError("fee type is required")
	}
	if !f.Amount.IsPositive() {
		return apperrors.NewValidationError("fee amount must be greater than zero")
	}
	if !HasMoneyScale(f.Amount) {
		return apperrors.NewValidationError(fmt.Sprintf("fee amount may have at most %d decimal places", MoneyScale))
	}
	if !f.DueDate.IsValid() {
		return apperrors.NewValidationError("due date must be a valid calendar date (YYYY-MM-DD)")
	}
	return nil
}

// FeeStructureUpdate carries a partial update; nil fields are left untouched.
type FeeStructureUpdate struct {
	FeeType     *string
	Amount      *decimal.Decimal
	DueDate     *calendar.Date
	Description *string
}

// IsEmpty reports whether the update changes nothing.
func (u FeeStructureUpdate) IsEmpty() bool {
	return u.FeeType == nil && u.Amount == nil && u.DueDate == nil && u.Description == nil
}

// Apply returns a copy of f with the update's non-nil fields applied.
func (u FeeStructureUpdate) Apply(f FeeStructure) FeeStructure {
	if u.FeeType != nil {
		f.FeeType = strings.TrimSpace(*u.FeeType)
	}
	if u.Amount != nil {
		f.Amount = *u.Amount
	}
	if u.DueDate != nil {
		f.DueDate = *u.DueDate
	}
	if u.Description != nil {
		f.Description = *u.Description
	}
	return f
}

// MoneyScale is the number of decimal places amounts are stored with.
const MoneyScale = 2

// HasMoneyScale reports whether amount is stored exactly, without rounding.
func HasMoneyScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(MoneyScale))
}

// SumFeeAmounts adds up the amount of every fee item.
func SumFeeAmounts(fees []FeeStructure) decimal.Decimal {
	total := decimal.Zero
	for _, f := range fees {
		total = total.Add(f.Amount)
	}
	return total
}
