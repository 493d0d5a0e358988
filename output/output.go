// Package output renders a gemini.QueryResult for the primary output
// channel. JSON keys are emitted in a fixed order (response_text,
// url_context_metadata, then grounding_metadata only when present) because
// downstream scripts diff and parse this output.
package output

import (
	"encoding/json"
	"fmt"

	"github.com/momiji-san/urlq/gemini"
)

// Mode selects the output representation.
type Mode string

const (
	// JSON serializes the full result.
	JSON Mode = "json"
	// Text emits only the response text, discarding all metadata.
	Text Mode = "text"
)

// Format renders the result in the given mode. Field order in JSON mode
// follows the declaration order of gemini.QueryResult; grounding_metadata is
// absent (not null) when the result carries none.
func Format(result gemini.QueryResult, mode Mode) (string, error) {
	switch mode {
	case Text:
		return result.ResponseText, nil
	case JSON:
		if result.URLContextMetadata == nil {
			result.URLContextMetadata = []gemini.URLMetadata{}
		}
		b, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode result: %w", err)
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unknown output mode %q", mode)
	}
}
