// Package export produces XLSX bytes for roster downloads.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/studenthub-io/studenthub/internal/students"
)

// Service is a tiny façade over the record store that renders the full
// collection as a workbook, one row per course.
type Service struct {
	store  *students.Store
	logger *slog.Logger
}

func NewService(store *students.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// ExportRosterXLSX returns an XLSX workbook (as bytes) of every student.
// Students without courses still get one row with the course cells blank.
func (s *Service) ExportRosterXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()
	roster := s.store.List(ctx)

	f := excelize.NewFile()
	const sheet = "Roster"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defaultIndex, _ := f.GetSheetIndex("Sheet1"); defaultIndex != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Full Name",
		"Student ID",
		"Email",
		"Phone",
		"Enrollment Date",
		"Course",
		"Grade",
		"Credits",
		"Notes",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	writeRow := func(values []any) {
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	for _, st := range roster {
		base := []any{st.FullName, st.ExternalStudentID, st.Email, st.Phone, st.EnrollmentDate}
		if len(st.Courses) == 0 {
			writeRow(append(base, "", "", "", st.AcademicNotes))
			continue
		}
		for _, c := range st.Courses {
			writeRow(append(base, c.Name, c.Grade, c.Credits, st.AcademicNotes))
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.roster.ok",
		"students", len(roster),
		"rows", row-2,
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
