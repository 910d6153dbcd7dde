package mapping

import (
	"github.com/kennethjason07/school_management_app/internal/core/domain"
	"github.com/kennethjason07/school_management_app/internal/models"
)

func ToDomainClass(m models.Class) domain.Class {
	return domain.Class{ClassID: m.ClassID, Name: m.Name, Section: m.Section}
}

func ToDomainStudent(m models.Student) domain.Student {
	return domain.Student{
		StudentID:   m.StudentID,
		ClassID:     m.ClassID,
		Name:        m.Name,
		AdmissionNo: m.AdmissionNo,
	}
}

func ToDomainStudentSlice(ms []models.Student) []domain.Student {
	ds := make([]domain.Student, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStudent(m)
	}
	return ds
}
