package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studenthub-io/studenthub/internal/common"
	"github.com/studenthub-io/studenthub/internal/encode"
	"github.com/studenthub-io/studenthub/internal/llm"
)

func completionWith(t *testing.T, content string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, nil), srv
}

func textURI(t *testing.T, text string) string {
	t.Helper()
	uri, err := encode.EncodeBytes("text/plain", []byte(text))
	require.NoError(t, err)
	return uri
}

func TestExtractTranscript(t *testing.T) {
	body := `{"studentName":"Jane Doe","studentId":"S2002","courses":[{"name":"Calculus I","grade":"A","credits":3}]}`
	c, _ := newTestClient(t, completionWith(t, body))

	uri := textURI(t, "Jane Doe, ID S2002, Calculus I - A (3 credits)")
	fields, raw, err := c.ExtractTranscript(context.Background(), llm.ExtractRequest{DocumentURI: uri})
	require.NoError(t, err)
	assert.JSONEq(t, body, string(raw))
	assert.Equal(t, "Jane Doe", fields.StudentName)
	assert.Equal(t, "S2002", fields.StudentID)
	require.Len(t, fields.Courses, 1)
	assert.Equal(t, llm.CourseField{Name: "Calculus I", Grade: "A", Credits: 3}, fields.Courses[0])
}

func TestExtractTranscriptFencedContent(t *testing.T) {
	body := "```json\n{\"studentName\":\"\",\"studentId\":\"\",\"courses\":[]}\n```"
	c, _ := newTestClient(t, completionWith(t, body))

	fields, _, err := c.ExtractTranscript(context.Background(), llm.ExtractRequest{DocumentURI: textURI(t, "blank")})
	require.NoError(t, err)
	assert.Empty(t, fields.StudentName)
	assert.Empty(t, fields.StudentID)
	assert.NotNil(t, fields.Courses)
	assert.Empty(t, fields.Courses)
}

func TestExtractTranscriptEmptyInputSkipsBackend(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, _, err := c.ExtractTranscript(context.Background(), llm.ExtractRequest{})
	require.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Zero(t, calls.Load())
}

func TestExtractTranscriptMalformedURISkipsBackend(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, _, err := c.ExtractTranscript(context.Background(), llm.ExtractRequest{DocumentURI: "not-a-data-uri"})
	require.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Zero(t, calls.Load())
}

func TestExtractTranscriptBackendDown(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, _, err := c.ExtractTranscript(context.Background(), llm.ExtractRequest{DocumentURI: textURI(t, "x")})
	require.ErrorIs(t, err, common.ErrBackendUnavailable)
}

func TestExtractTranscriptSchemaViolation(t *testing.T) {
	// Backend dropped courses and studentId: hard failure, not partial success.
	c, _ := newTestClient(t, completionWith(t, `{"studentName":"X"}`))

	_, raw, err := c.ExtractTranscript(context.Background(), llm.ExtractRequest{DocumentURI: textURI(t, "x")})
	require.ErrorIs(t, err, common.ErrSchemaViolation)
	assert.JSONEq(t, `{"studentName":"X"}`, string(raw))
}

func TestExtractTranscriptNoChoices(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, _, err := c.ExtractTranscript(context.Background(), llm.ExtractRequest{DocumentURI: textURI(t, "x")})
	require.ErrorIs(t, err, common.ErrBackendUnavailable)
}
