package entity

import "github.com/google/uuid"

// CourseEntry is one academic record on a student. The ID is list-scoped
// and stays stable across edits in the same form session.
type CourseEntry struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Grade   string    `json:"grade"`
	Credits float64   `json:"credits"`
}

// Student represents a student record for data transfer between layers.
// ID is assigned once at creation and never recomputed or reused;
// ExternalStudentID is the institution-issued identifier and carries no
// uniqueness guarantee.
type Student struct {
	ID                uuid.UUID     `json:"id"`
	ExternalStudentID string        `json:"external_student_id"`
	FullName          string        `json:"full_name"`
	Email             string        `json:"email"`
	Phone             string        `json:"phone,omitempty"`
	Address           string        `json:"address,omitempty"`
	EnrollmentDate    string        `json:"enrollment_date"` // YYYY-MM-DD
	ProfilePictureURL string        `json:"profile_picture_url,omitempty"`
	Courses           []CourseEntry `json:"courses"`
	AcademicNotes     string        `json:"academic_notes,omitempty"`
}

// Clone returns a deep copy so callers cannot alias the store's slice.
func (s Student) Clone() Student {
	out := s
	out.Courses = make([]CourseEntry, len(s.Courses))
	copy(out.Courses, s.Courses)
	return out
}
