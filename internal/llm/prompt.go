package llm

import "strings"

// BuildSystemPrompt composes the fixed extraction instruction. The shape of
// the answer is pinned separately by the JSON Schema constraint.
func BuildSystemPrompt() string {
	parts := []string{
		"You are an expert at extracting data from student transcripts.",
		"Given a student transcript, extract the following information:",
		"a list of courses, including the name, grade, and credits earned for each course;",
		"the student's ID; the student's name.",
		"Return ONLY JSON that matches the provided JSON Schema.",
		"If the student's name or ID cannot be identified confidently, use an empty string.",
		"If no courses are found, use an empty array.",
		"Never output null and never omit a key.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the transcript for the model. Text documents are
// inlined; binary documents ride along as an attached data URI, so the
// text part only carries a nudge.
func BuildUserPrompt(inlineText string, attached bool) string {
	var b strings.Builder
	b.WriteString("Extract the transcript data.\n")
	if attached {
		b.WriteString("\nNote: the transcript document is attached.\n")
		return b.String()
	}
	b.WriteString("\nHere is the transcript:\n")
	b.WriteString(strings.TrimSpace(inlineText))
	b.WriteString("\n")
	return b.String()
}
