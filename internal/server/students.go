package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studenthub-io/studenthub/internal/common"
	"github.com/studenthub-io/studenthub/internal/enroll"
	"github.com/studenthub-io/studenthub/internal/entity"
	"github.com/studenthub-io/studenthub/internal/students"
)

// courseInput carries course fields as the form submits them: credits as a
// string, parsed with a zero default at this boundary.
type courseInput struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Grade   string `json:"grade"`
	Credits string `json:"credits"`
}

type createStudentRequest struct {
	ExternalStudentID string        `json:"external_student_id"`
	FullName          string        `json:"full_name"`
	Email             string        `json:"email"`
	Phone             string        `json:"phone"`
	Address           string        `json:"address"`
	EnrollmentDate    string        `json:"enrollment_date"`
	ProfilePictureURL string        `json:"profile_picture_url"`
	Courses           []courseInput `json:"courses"`
	AcademicNotes     string        `json:"academic_notes"`
}

type updateStudentRequest struct {
	ExternalStudentID *string        `json:"external_student_id"`
	FullName          *string        `json:"full_name"`
	Email             *string        `json:"email"`
	Phone             *string        `json:"phone"`
	Address           *string        `json:"address"`
	EnrollmentDate    *string        `json:"enrollment_date"`
	ProfilePictureURL *string        `json:"profile_picture_url"`
	Courses           *[]courseInput `json:"courses"`
	AcademicNotes     *string        `json:"academic_notes"`
}

func toCourseEntries(in []courseInput) []entity.CourseEntry {
	out := make([]entity.CourseEntry, 0, len(in))
	for _, c := range in {
		id := uuid.Nil
		if parsed, err := uuid.Parse(c.ID); err == nil {
			id = parsed
		}
		out = append(out, entity.CourseEntry{
			ID:      id,
			Name:    c.Name,
			Grade:   c.Grade,
			Credits: enroll.ParseCreditsOrZero(c.Credits),
		})
	}
	return out
}

func (s *Server) listStudents(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.List(c.Request.Context()))
}

func (s *Server) getStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, common.WrapError(common.ErrInvalidInput, "id must be a UUID"))
		return
	}
	st, err := s.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) createStudent(c *gin.Context) {
	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.WrapError(common.ErrInvalidInput, err.Error()))
		return
	}
	st, err := s.store.Create(c.Request.Context(), entity.Student{
		ExternalStudentID: req.ExternalStudentID,
		FullName:          req.FullName,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		EnrollmentDate:    req.EnrollmentDate,
		ProfilePictureURL: req.ProfilePictureURL,
		Courses:           toCourseEntries(req.Courses),
		AcademicNotes:     req.AcademicNotes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

func (s *Server) updateStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, common.WrapError(common.ErrInvalidInput, "id must be a UUID"))
		return
	}
	var req updateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.WrapError(common.ErrInvalidInput, err.Error()))
		return
	}
	patch := students.StudentPatch{
		ExternalStudentID: req.ExternalStudentID,
		FullName:          req.FullName,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		EnrollmentDate:    req.EnrollmentDate,
		ProfilePictureURL: req.ProfilePictureURL,
		AcademicNotes:     req.AcademicNotes,
	}
	if req.Courses != nil {
		courses := toCourseEntries(*req.Courses)
		patch.Courses = &courses
	}
	st, err := s.store.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) deleteStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, common.WrapError(common.ErrInvalidInput, "id must be a UUID"))
		return
	}
	removed, err := s.store.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": removed})
}

func (s *Server) exportRoster(c *gin.Context) {
	data, err := s.export.ExportRosterXLSX(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="roster.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
