package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studenthub-io/studenthub/internal/common"
	"github.com/studenthub-io/studenthub/internal/encode"
	"github.com/studenthub-io/studenthub/internal/llm"
)

// ExtractTranscript implements llm.TranscriptExtractor against a
// chat/completions endpoint. Text transcripts are decoded and inlined into
// the prompt; PDFs ride along as the original data URI. Every reply is
// validated against the transcript schema before it counts as success.
func (c *Client) ExtractTranscript(ctx context.Context, req llm.ExtractRequest) (llm.TranscriptFields, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	uri := strings.TrimSpace(req.DocumentURI)
	if uri == "" {
		return llm.TranscriptFields{}, nil, common.WrapError(common.ErrInvalidInput, "document URI is empty")
	}
	mimeType, payload, err := encode.ParseDataURI(uri)
	if err != nil {
		return llm.TranscriptFields{}, nil, err
	}

	c.logger.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"mime_type", mimeType,
		"payload_bytes", len(payload),
	)

	schema := llm.BuildTranscriptJSONSchema()
	inline := strings.HasPrefix(mimeType, "text/")

	var userContent any
	if inline {
		userContent = llm.BuildUserPrompt(string(payload), false)
	} else {
		userContent = []map[string]any{
			{"type": "text", "text": llm.BuildUserPrompt("", true)},
			{"type": "image_url", "image_url": map[string]any{"url": uri}},
		}
	}

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt()},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
			{"role": "user", "content": userContent},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, status, httpErr := llm.PostJSON(ctx, c.http, endpoint, body, headers, c.logger)
	if httpErr != nil {
		c.logger.Error("llm.extract.http_error",
			"req_id", rid,
			"error", httpErr, "status", status,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.TranscriptFields{}, nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, httpErr)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("llm.extract.decode_error",
			"req_id", rid,
			"error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.TranscriptFields{}, raw, fmt.Errorf("%w: decode response: %v", common.ErrBackendUnavailable, err)
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("llm.extract.no_choices",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.TranscriptFields{}, raw, fmt.Errorf("%w: no choices in response", common.ErrBackendUnavailable)
	}

	content := llm.TrimToJSONObject([]byte(cc.Choices[0].Message.Content))
	if err := llm.ValidateJSONAgainstSchema(schema, content); err != nil {
		c.logger.Error("llm.extract.schema_validation_failed",
			"req_id", rid,
			"error", err, "content", string(content),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.TranscriptFields{}, content, fmt.Errorf("%w: %v", common.ErrSchemaViolation, err)
	}

	var out llm.TranscriptFields
	if err := json.Unmarshal(content, &out); err != nil {
		c.logger.Error("llm.extract.unmarshal_failed",
			"req_id", rid,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.TranscriptFields{}, content, fmt.Errorf("%w: unmarshal fields: %v", common.ErrSchemaViolation, err)
	}
	if out.Courses == nil {
		out.Courses = []llm.CourseField{}
	}

	c.logger.Info("llm.extract.ok",
		"req_id", rid,
		"student_name", out.StudentName,
		"student_id", out.StudentID,
		"courses", len(out.Courses),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, content, nil
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
