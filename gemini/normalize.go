package gemini

import (
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Retrieval statuses passed through from the API. Anything the API reports
// outside this set is remapped to StatusOther so that the output contract
// stays a closed vocabulary.
const (
	StatusUnspecified = "URL_RETRIEVAL_STATUS_UNSPECIFIED"
	StatusSuccess     = "URL_RETRIEVAL_STATUS_SUCCESS"
	StatusError       = "URL_RETRIEVAL_STATUS_ERROR"
	StatusPaywall     = "URL_RETRIEVAL_STATUS_PAYWALL"
	StatusUnsafe      = "URL_RETRIEVAL_STATUS_UNSAFE"
	StatusOther       = "URL_RETRIEVAL_STATUS_OTHER"
)

var knownStatuses = map[string]bool{
	StatusUnspecified: true,
	StatusSuccess:     true,
	StatusError:       true,
	StatusPaywall:     true,
	StatusUnsafe:      true,
}

// normalizeResponse reshapes a raw API reply into a QueryResult. It is total
// over any reply the SDK can produce: a reply with no candidates, no parts,
// or no metadata yields an empty but well-formed result, never an error.
// Only the first candidate is used; later candidates are ignored.
func normalizeResponse(resp *genai.GenerateContentResponse, verbose bool, log zerolog.Logger) QueryResult {
	result := QueryResult{
		URLContextMetadata: []URLMetadata{},
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return result
	}
	candidate := resp.Candidates[0]
	if candidate == nil {
		return result
	}

	// Parts without text (inline data, function calls) contribute empty
	// strings, so ResponseText is always defined.
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			result.ResponseText += part.Text
		}
	}

	if candidate.URLContextMetadata != nil {
		for _, um := range candidate.URLContextMetadata.URLMetadata {
			if um == nil {
				continue
			}
			status := string(um.URLRetrievalStatus)
			if !knownStatuses[status] {
				log.Debug().
					Str("url", um.RetrievedURL).
					Str("raw_status", status).
					Msg("unrecognized retrieval status")
				status = StatusOther
			}
			result.URLContextMetadata = append(result.URLContextMetadata, URLMetadata{
				RetrievedURL:       um.RetrievedURL,
				URLRetrievalStatus: status,
			})
		}
	}

	if verbose && candidate.GroundingMetadata != nil {
		if gm := normalizeGrounding(candidate.GroundingMetadata); gm != nil {
			result.GroundingMetadata = gm
		}
	}

	return result
}

// normalizeGrounding extracts search queries, source chunks, and supports.
// Returns nil when the block carries nothing, so an empty grounding block in
// the reply does not surface as an empty object in the result.
func normalizeGrounding(raw *genai.GroundingMetadata) *GroundingMetadata {
	gm := &GroundingMetadata{
		WebSearchQueries: raw.WebSearchQueries,
	}

	for _, chunk := range raw.GroundingChunks {
		if chunk == nil {
			continue
		}
		switch {
		case chunk.Web != nil:
			gm.GroundingChunks = append(gm.GroundingChunks, GroundingChunk{
				URI:   chunk.Web.URI,
				Title: chunk.Web.Title,
			})
		case chunk.RetrievedContext != nil:
			gm.GroundingChunks = append(gm.GroundingChunks, GroundingChunk{
				URI:   chunk.RetrievedContext.URI,
				Title: chunk.RetrievedContext.Title,
			})
		}
	}

	for _, support := range raw.GroundingSupports {
		if support == nil {
			continue
		}
		s := GroundingSupport{
			GroundingChunkIndices: support.GroundingChunkIndices,
		}
		if support.Segment != nil {
			s.Segment = &SupportSegment{
				StartIndex: support.Segment.StartIndex,
				EndIndex:   support.Segment.EndIndex,
				Text:       support.Segment.Text,
			}
		}
		gm.GroundingSupports = append(gm.GroundingSupports, s)
	}

	if len(gm.WebSearchQueries) == 0 && len(gm.GroundingChunks) == 0 && len(gm.GroundingSupports) == 0 {
		return nil
	}
	return gm
}
