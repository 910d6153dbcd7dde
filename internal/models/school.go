package models

// Class mirrors a classes row.
type Class struct {
	ClassID string `db:"class_id"`
	Name    string `db:"name"`
	Section string `db:"section"`
}

// Student mirrors a students row.
type Student struct {
	StudentID   string `db:"student_id"`
	ClassID     string `db:"class_id"`
	Name        string `db:"name"`
	AdmissionNo string `db:"admission_no"`
}
