package mapping

import (
	"fmt"

	"github.com/kennethjason07/school_management_app/internal/apperrors"
	"github.com/kennethjason07/school_management_app/internal/core/domain"
	"github.com/kennethjason07/school_management_app/internal/models"
	"github.com/kennethjason07/school_management_app/internal/utils/calendar"
)

// ToModelFeeStructure converts a domain FeeStructure to a model FeeStructure
func ToModelFeeStructure(d domain.FeeStructure) models.FeeStructure {
	return models.FeeStructure{
		FeeID:       d.FeeID,
		ClassID:     d.ClassID,
		FeeType:     d.FeeType,
		Amount:      d.Amount,
		DueDate:     calendar.Format(d.DueDate),
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFeeStructure converts a model FeeStructure to a domain FeeStructure.
// A stored due date that is not a real calendar day yields ErrStorageCorruption.
func ToDomainFeeStructure(m models.FeeStructure) (domain.FeeStructure, error) {
	due, ok := calendar.Parse(m.DueDate)
	if !ok {
		return domain.FeeStructure{}, apperrors.NewAppError(apperrors.ErrStorageCorruption,
			fmt.Sprintf("fee structure %s has invalid due date %q", m.FeeID, m.DueDate), nil)
	}
	return domain.FeeStructure{
		FeeID:       m.FeeID,
		ClassID:     m.ClassID,
		FeeType:     m.FeeType,
		Amount:      m.Amount,
		DueDate:     due,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToDomainFeeStructureSlice converts model rows, failing on the first corrupt one.
func ToDomainFeeStructureSlice(ms []models.FeeStructure) ([]domain.FeeStructure, error) {
	ds := make([]domain.FeeStructure, len(ms))
	for i, m := range ms {
		d, err := ToDomainFeeStructure(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
