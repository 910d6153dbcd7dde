package mapping

import (
	"fmt"

	"github.com/kennethjason07/school_management_app/internal/apperrors"
	"github.com/kennethjason07/school_management_app/internal/core/domain"
	"github.com/kennethjason07/school_management_app/internal/models"
	"github.com/kennethjason07/school_management_app/internal/utils/calendar"
)

// ToModelStudentFee converts a domain StudentFee to a model StudentFee
func ToModelStudentFee(d domain.StudentFee) models.StudentFee {
	var paymentDate *string
	if d.PaymentDate != nil {
		s := calendar.Format(*d.PaymentDate)
		paymentDate = &s
	}
	return models.StudentFee{
		StudentFeeID: d.StudentFeeID,
		StudentID:    d.StudentID,
		FeeID:        d.FeeID,
		AmountPaid:   d.AmountPaid,
		PaymentDate:  paymentDate,
		Status:       string(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStudentFee converts a model StudentFee to a domain StudentFee.
// A stored payment date that is not a real calendar day yields ErrStorageCorruption.
func ToDomainStudentFee(m models.StudentFee) (domain.StudentFee, error) {
	var paymentDate *calendar.Date
	if m.PaymentDate != nil {
		d, ok := calendar.Parse(*m.PaymentDate)
		if !ok {
			return domain.StudentFee{}, apperrors.NewAppError(apperrors.ErrStorageCorruption,
				fmt.Sprintf("student fee %s has invalid payment date %q", m.StudentFeeID, *m.PaymentDate), nil)
		}
		paymentDate = &d
	}
	return domain.StudentFee{
		StudentFeeID: m.StudentFeeID,
		StudentID:    m.StudentID,
		FeeID:        m.FeeID,
		AmountPaid:   m.AmountPaid,
		PaymentDate:  paymentDate,
		Status:       domain.PaymentStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToDomainStudentFeeSlice converts model rows, failing on the first corrupt one.
func ToDomainStudentFeeSlice(ms []models.StudentFee) ([]domain.StudentFee, error) {
	ds := make([]domain.StudentFee, len(ms))
	for i, m := range ms {
		d, err := ToDomainStudentFee(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
