// Package enroll adapts extraction results into student drafts. The
// mapping is advisory: a draft still goes through the store's normal
// create validation before it becomes a persisted record.
package enroll

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studenthub-io/studenthub/internal/entity"
	"github.com/studenthub-io/studenthub/internal/llm"
)

// DraftFromTranscript maps extracted transcript fields into a new-student
// draft: studentId becomes the external id, studentName the full name, and
// each course carries over with a fresh list-scoped id. Email and the
// persisted id stay empty for the operator; the enrollment date defaults
// to today, not any date in the document.
func DraftFromTranscript(fields llm.TranscriptFields) entity.Student {
	courses := make([]entity.CourseEntry, 0, len(fields.Courses))
	for _, c := range fields.Courses {
		credits := c.Credits
		if credits < 0 {
			credits = 0
		}
		courses = append(courses, entity.CourseEntry{
			ID:      uuid.New(),
			Name:    c.Name,
			Grade:   c.Grade,
			Credits: credits,
		})
	}
	return entity.Student{
		ExternalStudentID: fields.StudentID,
		FullName:          fields.StudentName,
		Email:             "",
		EnrollmentDate:    time.Now().UTC().Format("2006-01-02"),
		Courses:           courses,
	}
}

// ParseCreditsOrZero parses a string-typed credits value from a form or
// API boundary. Unparseable or negative input becomes 0 so the numeric
// invariant never sees an invalid value.
func ParseCreditsOrZero(s string) float64 {
	// ParseFloat accepts "NaN" and "Inf"; neither is a credit value.
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
