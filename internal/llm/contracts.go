package llm

import "context"

// CourseField is one course row as the model reports it.
type CourseField struct {
	Name    string  `json:"name"`
	Grade   string  `json:"grade"`
	Credits float64 `json:"credits"`
}

// TranscriptFields is the normalized shape we want from the LLM. Fields
// the model cannot confidently identify come back as empty strings, and
// Courses as an empty list; never null and never omitted.
type TranscriptFields struct {
	StudentName string        `json:"studentName"`
	StudentID   string        `json:"studentId"`
	Courses     []CourseField `json:"courses"`
}

// ExtractRequest carries exactly one field: the encoded transcript.
type ExtractRequest struct {
	// DocumentURI is a data:<mime>;base64,<payload> string.
	DocumentURI string
}

// TranscriptExtractor is the interface the enrollment flow depends on.
// The raw JSON content is returned alongside the parsed fields for
// diagnostics; it is populated even when validation fails.
type TranscriptExtractor interface {
	ExtractTranscript(ctx context.Context, req ExtractRequest) (TranscriptFields, []byte, error)
}
