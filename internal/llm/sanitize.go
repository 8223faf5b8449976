package llm

import (
	"bytes"
	"strings"
)

// TrimToJSONObject strips markdown code fences and surrounding chatter from
// a model reply, returning the substring from the first '{' to the last
// '}'. The result still goes through full schema validation; this only
// removes presentation noise, never repairs content.
func TrimToJSONObject(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	b := []byte(strings.TrimSpace(s))
	first := bytes.IndexByte(b, '{')
	last := bytes.LastIndexByte(b, '}')
	if first < 0 || last < first {
		return b
	}
	return b[first : last+1]
}
