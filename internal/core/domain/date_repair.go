package domain

// Date columns the repair routine knows how to rewrite.
const (
	TableFeeStructures = "fee_structures"
	TableStudentFees   = "student_fees"

	FieldDueDate     = "due_date"
	FieldPaymentDate = "payment_date"
)

// RawDateValue is a date column value exactly as stored, before any parsing.
type RawDateValue struct {
	Table    string `json:"table"`
	Field    string `json:"field"`
	RecordID string `json:"recordID"`
	Value    string `json:"value"`
}

// IsKnownDateColumn reports whether table.field is one of the repairable columns.
func IsKnownDateColumn(table, field string) bool {
	switch {
	case table == TableFeeStructures && field == FieldDueDate:
		return true
	case table == TableStudentFees && field == FieldPaymentDate:
		return true
	default:
		return false
	}
}

// DateRepairResult reports one repair pass. Repaired may be lower than the
// number of defects found when individual rewrites fail.
type DateRepairResult struct {
	Scanned  int `json:"scanned"`
	Repaired int `json:"repaired"`
}
