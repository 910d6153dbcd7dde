package dto

import (
	"github.com/kennethjason07/school_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FeeSnapshotResponse is the institution-wide fee summary.
type FeeSnapshotResponse struct {
	TotalDue            decimal.Decimal `json:"totalDue"`
	TotalPaid           decimal.Decimal `json:"totalPaid"`
	PendingStudentCount int             `json:"pendingStudentCount"`
}

// ClassBalancesResponse lists the balance of every student of a class.
type ClassBalancesResponse struct {
	ClassID     string                   `json:"classID"`
	TotalOwed   decimal.Decimal          `json:"totalOwed"`
	TotalPaid   decimal.Decimal          `json:"totalPaid"`
	Outstanding decimal.Decimal          `json:"outstanding"`
	Students    []StudentBalanceResponse `json:"students"`
}

func ToFeeSnapshotResponse(s *domain.FeeSnapshot) FeeSnapshotResponse {
	return FeeSnapshotResponse{
		TotalDue:            s.TotalDue,
		TotalPaid:           s.TotalPaid,
		PendingStudentCount: s.PendingStudentCount,
	}
}

// ToClassBalancesResponse sums the per-student figures of a class.
func ToClassBalancesResponse(classID string, balances []domain.StudentBalance) ClassBalancesResponse {
	res := ClassBalancesResponse{
		ClassID:     classID,
		TotalOwed:   decimal.Zero,
		TotalPaid:   decimal.Zero,
		Outstanding: decimal.Zero,
		Students:    make([]StudentBalanceResponse, len(balances)),
	}
	for i, b := range balances {
		res.Students[i] = ToStudentBalanceResponse(b)
		res.TotalOwed = res.TotalOwed.Add(b.TotalOwed)
		res.TotalPaid = res.TotalPaid.Add(b.TotalPaid)
		res.Outstanding = res.Outstanding.Add(b.Outstanding)
	}
	return res
}
