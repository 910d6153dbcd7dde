package dto

import "github.com/kennethjason07/school_management_app/internal/core/domain"

// DateRepairRequest optionally names the raw values to repair. An empty list
// scans every repairable date column.
type DateRepairRequest struct {
	Values []RawDateValueRequest `json:"values" binding:"omitempty,dive"`
}

// RawDateValueRequest is one stored date value as reported by a failed read.
type RawDateValueRequest struct {
	Table    string `json:"table" binding:"required,oneof=fee_structures student_fees"`
	Field    string `json:"field" binding:"required,oneof=due_date payment_date"`
	RecordID string `json:"recordID" binding:"required"`
	Value    string `json:"value" binding:"required"`
}

// DateRepairResponse reports how many values were inspected and how many rewritten.
type DateRepairResponse struct {
	Scanned  int `json:"scanned"`
	Repaired int `json:"repaired"`
}

// ToDomainRawDateValues converts the request values
func (r DateRepairRequest) ToDomainRawDateValues() []domain.RawDateValue {
	values := make([]domain.RawDateValue, len(r.Values))
	for i, v := range r.Values {
		values[i] = domain.RawDateValue{Table: v.Table, Field: v.Field, RecordID: v.RecordID, Value: v.Value}
	}
	return values
}
