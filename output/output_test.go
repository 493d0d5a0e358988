package output

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/momiji-san/urlq/gemini"
)

func sampleResult() gemini.QueryResult {
	return gemini.QueryResult{
		ResponseText: "hello",
		URLContextMetadata: []gemini.URLMetadata{
			{RetrievedURL: "https://example.com", URLRetrievalStatus: gemini.StatusSuccess},
		},
	}
}

func TestFormat_TextModeEmitsOnlyResponseText(t *testing.T) {
	got, err := Format(sampleResult(), Text)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("Expected exactly 'hello', got %q", got)
	}
}

func TestFormat_JSONRoundTrip(t *testing.T) {
	result := sampleResult()
	result.GroundingMetadata = &gemini.GroundingMetadata{
		WebSearchQueries: []string{"x"},
		GroundingChunks:  []gemini.GroundingChunk{{URI: "https://w.example", Title: "W"}},
	}

	out, err := Format(result, JSON)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var parsed gemini.QueryResult
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(parsed, result) {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", parsed, result)
	}
}

func TestFormat_JSONKeyOrder(t *testing.T) {
	result := sampleResult()
	result.GroundingMetadata = &gemini.GroundingMetadata{WebSearchQueries: []string{"x"}}

	out, err := Format(result, JSON)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	textIdx := strings.Index(out, `"response_text"`)
	urlIdx := strings.Index(out, `"url_context_metadata"`)
	groundingIdx := strings.Index(out, `"grounding_metadata"`)
	if textIdx == -1 || urlIdx == -1 || groundingIdx == -1 {
		t.Fatalf("Missing expected keys in output:\n%s", out)
	}
	if !(textIdx < urlIdx && urlIdx < groundingIdx) {
		t.Errorf("Unexpected key order in output:\n%s", out)
	}
}

func TestFormat_JSONOmitsAbsentGrounding(t *testing.T) {
	out, err := Format(sampleResult(), JSON)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if strings.Contains(out, "grounding_metadata") {
		t.Errorf("Expected grounding_metadata key to be absent:\n%s", out)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if _, ok := parsed["grounding_metadata"]; ok {
		t.Error("grounding_metadata must not be present, even as null")
	}
}

func TestFormat_JSONEmptyMetadataIsArray(t *testing.T) {
	result := gemini.QueryResult{ResponseText: ""}

	out, err := Format(result, JSON)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	meta, ok := parsed["url_context_metadata"].([]any)
	if !ok {
		t.Fatalf("Expected url_context_metadata to be an array, got %T", parsed["url_context_metadata"])
	}
	if len(meta) != 0 {
		t.Errorf("Expected empty array, got %v", meta)
	}
}

func TestFormat_UnknownMode(t *testing.T) {
	if _, err := Format(sampleResult(), Mode("yaml")); err == nil {
		t.Error("Expected an error for unknown mode, got nil")
	}
}
