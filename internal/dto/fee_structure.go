package dto

import (
	"time"

	"github.com/kennethjason07/school_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFeeStructureRequest defines the data needed to add a fee item to a class catalog.
type CreateFeeStructureRequest struct {
	FeeType     string          `json:"feeType" binding:"required"`
	Amount      decimal.Decimal `json:"amount"` // Must be > 0, checked by the service
	DueDate     string          `json:"dueDate" binding:"required,calendardate"`
	Description string          `json:"description"` // Optional
}

// UpdateFeeStructureRequest defines the fields that may be changed on a fee item.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateFeeStructureRequest struct {
	FeeType     *string          `json:"feeType"`
	Amount      *decimal.Decimal `json:"amount"`
	DueDate     *string          `json:"dueDate" binding:"omitempty,calendardate"`
	Description *string          `json:"description"`
}

// FeeStructureResponse defines the data returned for a fee item.
type FeeStructureResponse struct {
	FeeID         string          `json:"feeID"`
	ClassID       string          `json:"classID"`
	FeeType       string          `json:"feeType"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       string          `json:"dueDate"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ClassFeeCatalogResponse groups the fee items of one class.
type ClassFeeCatalogResponse struct {
	ClassID string                 `json:"classID"`
	Total   decimal.Decimal        `json:"total"`
	Items   []FeeStructureResponse `json:"items"`
}

// ToFeeStructureResponse converts a domain.FeeStructure to FeeStructureResponse DTO
func ToFeeStructureResponse(f *domain.FeeStructure) FeeStructureResponse {
	return FeeStructureResponse{
		FeeID:         f.FeeID,
		ClassID:       f.ClassID,
		FeeType:       f.FeeType,
		Amount:        f.Amount,
		DueDate:       f.DueDate.String(),
		Description:   f.Description,
		CreatedAt:     f.CreatedAt,
		CreatedBy:     f.CreatedBy,
		LastUpdatedAt: f.LastUpdatedAt,
		LastUpdatedBy: f.LastUpdatedBy,
	}
}

// ToListFeeStructureResponse converts a slice of domain.FeeStructure
func ToListFeeStructureResponse(fees []domain.FeeStructure) []FeeStructureResponse {
	res := make([]FeeStructureResponse, len(fees))
	for i := range fees {
		res[i] = ToFeeStructureResponse(&fees[i])
	}
	return res
}

// ToClassFeeCatalogResponses groups fee items by class, keeping the order in
// which each class first appears.
func ToClassFeeCatalogResponses(fees []domain.FeeStructure) []ClassFeeCatalogResponse {
	index := make(map[string]int)
	res := make([]ClassFeeCatalogResponse, 0)
	for i := range fees {
		f := &fees[i]
		pos, ok := index[f.ClassID]
		if !ok {
			pos = len(res)
			index[f.ClassID] = pos
			res = append(res, ClassFeeCatalogResponse{ClassID: f.ClassID, Total: decimal.Zero, Items: []FeeStructureResponse{}})
		}
		res[pos].Items = append(res[pos].Items, ToFeeStructureResponse(f))
		res[pos].Total = res[pos].Total.Add(f.Amount)
	}
	return res
}
