package gemini

import (
	"context"
	"fmt"
)

// Querier defines the interface for issuing a URL-context query against a
// generative model. Implementations must be safe for concurrent use.
type Querier interface {
	// Query sends a single prompt and returns the normalized result.
	Query(ctx context.Context, q Query) (QueryResult, error)
}

// Query describes one request. It is constructed once per invocation and
// never mutated afterwards.
type Query struct {
	// Prompt is the user prompt. URLs embedded in it are retrieved by the
	// model's URL-context tool.
	Prompt string
	// EnableSearch additionally enables the Google Search tool.
	EnableSearch bool
	// Verbose requests grounding metadata in the result.
	Verbose bool
}

// URLMetadata describes one URL the model attempted to retrieve.
type URLMetadata struct {
	RetrievedURL       string `json:"retrieved_url"`
	URLRetrievalStatus string `json:"url_retrieval_status"`
}

// GroundingChunk is one web source the model grounded its answer on.
type GroundingChunk struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// SupportSegment locates the span of response text a grounding support
// refers to.
type SupportSegment struct {
	StartIndex int32  `json:"start_index"`
	EndIndex   int32  `json:"end_index"`
	Text       string `json:"text"`
}

// GroundingSupport links a response segment to the grounding chunks that
// substantiate it. Carried through from the API as-is.
type GroundingSupport struct {
	Segment               *SupportSegment `json:"segment,omitempty"`
	GroundingChunkIndices []int32         `json:"grounding_chunk_indices"`
}

// GroundingMetadata is the search-grounding evidence attached to a reply.
// Only present when the caller requested verbose output and search was
// enabled for the query.
type GroundingMetadata struct {
	WebSearchQueries  []string           `json:"web_search_queries,omitempty"`
	GroundingChunks   []GroundingChunk   `json:"grounding_chunks,omitempty"`
	GroundingSupports []GroundingSupport `json:"grounding_supports,omitempty"`
}

// QueryResult is the stable output contract of a query. ResponseText is
// always a defined string and URLContextMetadata is always a non-nil slice,
// so callers never need to null-check either. GroundingMetadata is nil when
// not applicable.
type QueryResult struct {
	ResponseText       string             `json:"response_text"`
	URLContextMetadata []URLMetadata      `json:"url_context_metadata"`
	GroundingMetadata  *GroundingMetadata `json:"grounding_metadata,omitempty"`
}

// ValidationError reports a bad or ambiguous prompt before any network
// activity. Suggestion tells the caller how to fix the invocation.
type ValidationError struct {
	Reason     string
	Suggestion string
}

func (e *ValidationError) Error() string {
	if e.Suggestion == "" {
		return e.Reason
	}
	return e.Reason + "\n" + e.Suggestion
}

// MissingAPIKeyError is returned when no Gemini API key can be resolved.
type MissingAPIKeyError struct{}

func (e *MissingAPIKeyError) Error() string {
	return "GEMINI_API_KEY environment variable is required.\n" +
		"Set it with: export GEMINI_API_KEY='your-api-key'\n" +
		"Get an API key from: https://aistudio.google.com/app/apikey"
}

// QueryError wraps a failed remote call.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v\n"+
		"Check your API key and network connection.\n"+
		"Verify the API key is set: echo $GEMINI_API_KEY", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
