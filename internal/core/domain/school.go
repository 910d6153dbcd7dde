package domain

// Class is a teaching group; its fee catalog applies to every enrolled student.
// Classes are managed by the wider school system and only read here.
type Class struct {
	ClassID string `json:"classID"`
	Name    string `json:"name"`
	Section string `json:"section"`
}

// Student is read-only here as well.
type Student struct {
	StudentID   string `json:"studentID"`
	ClassID     string `json:"classID"`
	Name        string `json:"name"`
	AdmissionNo string `json:"admissionNo"`
}
