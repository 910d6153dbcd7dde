package dto

import (
	"github.com/kennethjason07/school_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntryResponse is one fee item of a student with its settlement state.
type LedgerEntryResponse struct {
	FeeID        string               `json:"feeID"`
	FeeType      string               `json:"feeType"`
	Description  string               `json:"description"`
	DueDate      string               `json:"dueDate"`
	Amount       decimal.Decimal      `json:"amount"`
	StudentFeeID string               `json:"studentFeeID,omitempty"` // Empty until the first payment
	AmountPaid   decimal.Decimal      `json:"amountPaid"`
	PaymentDate  *string              `json:"paymentDate"`
	Status       domain.PaymentStatus `json:"status"`
	Balance      decimal.Decimal      `json:"balance"`
}

// StudentLedgerResponse is the full fee position of a student.
type StudentLedgerResponse struct {
	StudentID   string                `json:"studentID"`
	StudentName string                `json:"studentName"`
	ClassID     string                `json:"classID"`
	TotalOwed   decimal.Decimal       `json:"totalOwed"`
	TotalPaid   decimal.Decimal       `json:"totalPaid"`
	Outstanding decimal.Decimal       `json:"outstanding"`
	Entries     []LedgerEntryResponse `json:"entries"`
}

// StudentBalanceResponse is the balance of one student across their class catalog.
type StudentBalanceResponse struct {
	StudentID   string          `json:"studentID"`
	StudentName string          `json:"studentName"`
	ClassID     string          `json:"classID"`
	TotalOwed   decimal.Decimal `json:"totalOwed"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

func ToLedgerEntryResponse(e domain.LedgerEntry) LedgerEntryResponse {
	var paymentDate *string
	if e.Record.PaymentDate != nil {
		s := e.Record.PaymentDate.String()
		paymentDate = &s
	}
	return LedgerEntryResponse{
		FeeID:        e.Fee.FeeID,
		FeeType:      e.Fee.FeeType,
		Description:  e.Fee.Description,
		DueDate:      e.Fee.DueDate.String(),
		Amount:       e.Fee.Amount,
		StudentFeeID: e.Record.StudentFeeID,
		AmountPaid:   e.Record.AmountPaid,
		PaymentDate:  paymentDate,
		Status:       e.Status,
		Balance:      e.Balance(),
	}
}

func ToListLedgerEntryResponse(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToLedgerEntryResponse(e)
	}
	return res
}

// ToStudentLedgerResponse converts a domain.StudentLedger
func ToStudentLedgerResponse(l *domain.StudentLedger) StudentLedgerResponse {
	return StudentLedgerResponse{
		StudentID:   l.Student.StudentID,
		StudentName: l.Student.Name,
		ClassID:     l.Student.ClassID,
		TotalOwed:   l.TotalOwed,
		TotalPaid:   l.TotalPaid,
		Outstanding: l.Outstanding,
		Entries:     ToListLedgerEntryResponse(l.Entries),
	}
}

func ToStudentBalanceResponse(b domain.StudentBalance) StudentBalanceResponse {
	return StudentBalanceResponse{
		StudentID:   b.StudentID,
		StudentName: b.StudentName,
		ClassID:     b.ClassID,
		TotalOwed:   b.TotalOwed,
		TotalPaid:   b.TotalPaid,
		Outstanding: b.Outstanding,
	}
}
