package students

import (
	"github.com/google/uuid"

	"github.com/studenthub-io/studenthub/internal/entity"
)

// seedStudents returns the two illustrative records written on first-ever
// initialization, when no durable data exists yet.
func seedStudents() []entity.Student {
	return []entity.Student{
		{
			ID:                uuid.New(),
			ExternalStudentID: "S1001",
			FullName:          "Alice Wonderland",
			Email:             "alice@example.com",
			Phone:             "123-456-7890",
			Address:           "123 Fantasy Lane, Dreamland",
			EnrollmentDate:    "2023-09-01",
			ProfilePictureURL: "https://placehold.co/100x100.png",
			Courses: []entity.CourseEntry{
				{ID: uuid.New(), Name: "Introduction to Magic", Grade: "A", Credits: 3},
				{ID: uuid.New(), Name: "Advanced Potion Making", Grade: "B+", Credits: 4},
			},
			AcademicNotes: "Excels in creative subjects.",
		},
		{
			ID:                uuid.New(),
			ExternalStudentID: "S1002",
			FullName:          "Bob The Builder",
			Email:             "bob@example.com",
			Phone:             "987-654-3210",
			Address:           "456 Construction Rd, Toontown",
			EnrollmentDate:    "2022-08-15",
			ProfilePictureURL: "https://placehold.co/100x100.png",
			Courses: []entity.CourseEntry{
				{ID: uuid.New(), Name: "Engineering Basics", Grade: "A-", Credits: 4},
				{ID: uuid.New(), Name: "Project Management", Grade: "A", Credits: 3},
			},
			AcademicNotes: "Strong practical skills.",
		},
	}
}
