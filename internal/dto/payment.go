package dto

import (
	"time"

	"github.com/kennethjason07/school_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApplyPaymentRequest defines a payment against one fee item of a student.
type ApplyPaymentRequest struct {
	FeeID       string          `json:"feeID" binding:"required"`
	Amount      decimal.Decimal `json:"amount"` // Must be > 0, checked by the service
	PaymentDate string          `json:"paymentDate" binding:"required,calendardate"`
}

// StudentFeeResponse defines the data returned for a stored ledger entry.
type StudentFeeResponse struct {
	StudentFeeID  string               `json:"studentFeeID"`
	StudentID     string               `json:"studentID"`
	FeeID         string               `json:"feeID"`
	AmountPaid    decimal.Decimal      `json:"amountPaid"`
	PaymentDate   *string              `json:"paymentDate"`
	Status        domain.PaymentStatus `json:"status"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy string               `json:"lastUpdatedBy"`
}

// ToStudentFeeResponse converts a domain.StudentFee to StudentFeeResponse DTO
func ToStudentFeeResponse(r *domain.StudentFee) StudentFeeResponse {
	var paymentDate *string
	if r.PaymentDate != nil {
		s := r.PaymentDate.String()
		paymentDate = &s
	}
	return StudentFeeResponse{
		StudentFeeID:  r.StudentFeeID,
		StudentID:     r.StudentID,
		FeeID:         r.FeeID,
		AmountPaid:    r.AmountPaid,
		PaymentDate:   paymentDate,
		Status:        r.Status,
		LastUpdatedAt: r.LastUpdatedAt,
		LastUpdatedBy: r.LastUpdatedBy,
	}
}
