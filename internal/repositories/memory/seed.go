package memory

import "github.com/kennethjason07/school_management_app/internal/core/domain"

// SeedDemoData loads one class with a few students so the memory driver can
// be exercised locally without a school roster.
func (s *Store) SeedDemoData() {
	s.PutClass(domain.Class{ClassID: "class-5a", Name: "Grade 5", Section: "A"})
	s.PutStudent(domain.Student{StudentID: "student-001", ClassID: "class-5a", Name: "Aarav Shah", AdmissionNo: "ADM-001"})
	s.PutStudent(domain.Student{StudentID: "student-002", ClassID: "class-5a", Name: "Diya Menon", AdmissionNo: "ADM-002"})
	s.PutStudent(domain.Student{StudentID: "student-003", ClassID: "class-5a", Name: "Kabir Rao", AdmissionNo: "ADM-003"})
}
