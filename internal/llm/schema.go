package llm

// BuildTranscriptJSONSchema returns a JSON-Schema (draft 2020-12 subset) as
// a generic map. We pass this to the backend as a structured output
// constraint and also use it locally to validate every response.
//
// All keys are required: unknown name/id must be the empty string and an
// empty course list must be [], so a missing key is a schema violation,
// not a degraded success.
func BuildTranscriptJSONSchema() map[string]any {
	courseProps := map[string]any{
		"name":    map[string]any{"type": "string"},
		"grade":   map[string]any{"type": "string"},
		"credits": map[string]any{"type": "number"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"studentName": map[string]any{"type": "string"},
			"studentId":   map[string]any{"type": "string"},
			"courses": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties":           courseProps,
					"required":             []string{"name", "grade", "credits"},
				},
			},
		},
		"required": []string{"studentName", "studentId", "courses"},
	}
}
