package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/studenthub-io/studenthub/constants"
	"github.com/studenthub-io/studenthub/internal/entity"
	"github.com/studenthub-io/studenthub/internal/storage"
	"github.com/studenthub-io/studenthub/internal/students"
)

func TestExportRosterXLSX(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Put(ctx, constants.StudentsKey, []byte(`[]`)))
	store, err := students.NewStore(ctx, kv, nil)
	require.NoError(t, err)

	_, err = store.Create(ctx, entity.Student{
		ExternalStudentID: "S2002",
		FullName:          "Jane Doe",
		Email:             "jane@example.com",
		EnrollmentDate:    "2024-01-15",
		Courses: []entity.CourseEntry{
			{Name: "Calculus I", Grade: "A", Credits: 3},
			{Name: "Linear Algebra", Grade: "B+", Credits: 4},
		},
	})
	require.NoError(t, err)
	_, err = store.Create(ctx, entity.Student{
		FullName:       "No Courses Yet",
		EnrollmentDate: "2024-02-01",
	})
	require.NoError(t, err)

	data, err := NewService(store, nil).ExportRosterXLSX(ctx)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Roster")
	require.NoError(t, err)
	// Header, two course rows, one blank-course row.
	require.Len(t, rows, 4)
	assert.Equal(t, "Full Name", rows[0][0])
	assert.Equal(t, "Jane Doe", rows[1][0])
	assert.Equal(t, "Calculus I", rows[1][5])
	assert.Equal(t, "Linear Algebra", rows[2][5])
	assert.Equal(t, "No Courses Yet", rows[3][0])
}
