package analysis

import (
	"strings"

	apperrors "readiness-service/internal/common/errors"
)

// ExtractJSONObject pulls the first complete top-level JSON object out of
// model output. Models routinely wrap JSON in markdown fences or surround it
// with prose, so the scan is bracket-balanced and string-aware rather than a
// greedy first-to-last-brace match, which breaks when prose after the object
// contains a stray brace.
func ExtractJSONObject(text string) (string, error) {
	cleaned := stripFences(text)

	start := strings.IndexByte(cleaned, '{')
	if start < 0 {
		return "", apperrors.NewMalformedUpstreamResponseError("no JSON object found in model output")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(cleaned); i++ {
		ch := cleaned[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return cleaned[start : i+1], nil
			}
		}
	}

	return "", apperrors.NewMalformedUpstreamResponseError("unbalanced JSON object in model output")
}

// stripFences removes markdown code fences (``` or ```json) so the brace scan
// does not trip over fence content.
func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.Contains(trimmed, "```") {
		return trimmed
	}

	var b strings.Builder
	for _, line := range strings.Split(trimmed, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
