package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studenthub-io/studenthub/constants"
	"github.com/studenthub-io/studenthub/internal/auth"
	"github.com/studenthub-io/studenthub/internal/common"
	"github.com/studenthub-io/studenthub/internal/entity"
	"github.com/studenthub-io/studenthub/internal/export"
	"github.com/studenthub-io/studenthub/internal/llm"
	"github.com/studenthub-io/studenthub/internal/storage"
	"github.com/studenthub-io/studenthub/internal/students"
)

// stubExtractor returns canned fields or a canned error.
type stubExtractor struct {
	fields llm.TranscriptFields
	err    error
	lastIn llm.ExtractRequest
}

func (s *stubExtractor) ExtractTranscript(_ context.Context, req llm.ExtractRequest) (llm.TranscriptFields, []byte, error) {
	s.lastIn = req
	if s.err != nil {
		return llm.TranscriptFields{}, nil, s.err
	}
	return s.fields, nil, nil
}

func newTestRouter(t *testing.T, extractor llm.TranscriptExtractor) (*gin.Engine, *students.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Put(ctx, constants.StudentsKey, []byte(`[]`)))
	store, err := students.NewStore(ctx, kv, nil)
	require.NoError(t, err)

	srv := New(store, extractor, auth.NewStore(kv, nil), export.NewService(store, nil), nil)
	return srv.Router(), store
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStudentCRUDOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t, &stubExtractor{})

	w := doJSON(r, http.MethodPost, "/api/students", gin.H{
		"external_student_id": "S2002",
		"full_name":           "Jane Doe",
		"email":               "jane@example.com",
		"enrollment_date":     "2024-01-15",
		"courses": []gin.H{
			{"name": "Calculus I", "grade": "A", "credits": "3.5"},
			{"name": "Chemistry", "grade": "B", "credits": "abc"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created entity.Student
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Len(t, created.Courses, 2)
	// Credits parse at the boundary with a zero default.
	assert.Equal(t, 3.5, created.Courses[0].Credits)
	assert.Zero(t, created.Courses[1].Credits)

	w = doJSON(r, http.MethodGet, "/api/students/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPatch, "/api/students/"+created.ID.String(), gin.H{"phone": "555-0100"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated entity.Student
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "555-0100", updated.Phone)
	assert.Equal(t, "Jane Doe", updated.FullName)

	w = doJSON(r, http.MethodGet, "/api/students", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []entity.Student
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = doJSON(r, http.MethodDelete, "/api/students/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":true}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/students/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateStudentValidation(t *testing.T) {
	r, _ := newTestRouter(t, &stubExtractor{})
	w := doJSON(r, http.MethodPost, "/api/students", gin.H{"full_name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func multipartUpload(t *testing.T, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{`form-data; name="file"; filename="transcript.txt"`}
	hdr["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestExtractTranscriptEndpoint(t *testing.T) {
	stub := &stubExtractor{fields: llm.TranscriptFields{
		StudentName: "Jane Doe",
		StudentID:   "S2002",
		Courses:     []llm.CourseField{{Name: "Calculus I", Grade: "A", Credits: 3}},
	}}
	r, _ := newTestRouter(t, stub)

	body, contentType := multipartUpload(t, "text/plain", []byte("Jane Doe, ID S2002, Calculus I - A (3 credits)"))
	req := httptest.NewRequest(http.MethodPost, "/api/transcript/extract", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Fields llm.TranscriptFields `json:"fields"`
		Draft  entity.Student       `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Jane Doe", resp.Draft.FullName)
	assert.Equal(t, "S2002", resp.Draft.ExternalStudentID)
	assert.Empty(t, resp.Draft.Email)
	require.Len(t, resp.Draft.Courses, 1)

	// The handler forwarded a data URI built from the upload.
	assert.Contains(t, stub.lastIn.DocumentURI, "data:text/plain;base64,")
}

func TestExtractTranscriptRejectsUnsupportedUpload(t *testing.T) {
	stub := &stubExtractor{}
	r, _ := newTestRouter(t, stub)

	body, contentType := multipartUpload(t, "image/png", []byte{0x89, 0x50})
	req := httptest.NewRequest(http.MethodPost, "/api/transcript/extract", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// Rejected by the encoder before any backend call.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, stub.lastIn.DocumentURI)
}

func TestExtractTranscriptErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: missing courses", common.ErrSchemaViolation), http.StatusBadGateway},
		{fmt.Errorf("%w: connection refused", common.ErrBackendUnavailable), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		r, _ := newTestRouter(t, &stubExtractor{err: tc.err})
		body, contentType := multipartUpload(t, "text/plain", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/api/transcript/extract", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.status, w.Code)
	}
}

func TestAuthEndpoints(t *testing.T) {
	r, _ := newTestRouter(t, &stubExtractor{})

	w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{"username": "admin", "password": "hunter2"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/register", gin.H{"username": "admin", "password": "other"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"username": "admin", "password": "hunter2"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExportEndpoint(t *testing.T) {
	r, store := newTestRouter(t, &stubExtractor{})
	_, err := store.Create(context.Background(), entity.Student{
		FullName:       "Jane Doe",
		EnrollmentDate: "2024-01-15",
	})
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/api/export/roster", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "roster.xlsx")
	assert.NotEmpty(t, w.Body.Bytes())
}
