package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/momiji-san/urlq/gemini"
	"github.com/momiji-san/urlq/output"
)

// MockQuerier is a mock implementation of the gemini.Querier interface.
type MockQuerier struct {
	QueryFunc func(ctx context.Context, q gemini.Query) (gemini.QueryResult, error)
}

func (m *MockQuerier) Query(ctx context.Context, q gemini.Query) (gemini.QueryResult, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, q)
	}
	return gemini.QueryResult{}, errors.New("QueryFunc not implemented")
}

func TestApp_Run_TextMode(t *testing.T) {
	mock := &MockQuerier{
		QueryFunc: func(ctx context.Context, q gemini.Query) (gemini.QueryResult, error) {
			if q.Prompt != "summarize https://example.com" {
				return gemini.QueryResult{}, errors.New("unexpected prompt")
			}
			return gemini.QueryResult{
				ResponseText: "hello",
				URLContextMetadata: []gemini.URLMetadata{
					{RetrievedURL: "https://example.com", URLRetrievalStatus: gemini.StatusSuccess},
				},
			}, nil
		},
	}

	application := NewApp(mock)
	out, err := application.Run(context.Background(), gemini.Query{Prompt: "summarize https://example.com"}, output.Text)

	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out != "hello" {
		t.Errorf("Expected text output 'hello' with no metadata, got %q", out)
	}
}

func TestApp_Run_JSONMode(t *testing.T) {
	mock := &MockQuerier{
		QueryFunc: func(ctx context.Context, q gemini.Query) (gemini.QueryResult, error) {
			return gemini.QueryResult{ResponseText: "hello", URLContextMetadata: []gemini.URLMetadata{}}, nil
		},
	}

	application := NewApp(mock)
	out, err := application.Run(context.Background(), gemini.Query{Prompt: "p"}, output.JSON)

	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out, `"response_text": "hello"`) {
		t.Errorf("Expected JSON output with response_text, got %q", out)
	}
}

func TestApp_Run_QueryError(t *testing.T) {
	queryErr := &gemini.QueryError{Err: errors.New("upstream failed")}
	mock := &MockQuerier{
		QueryFunc: func(ctx context.Context, q gemini.Query) (gemini.QueryResult, error) {
			return gemini.QueryResult{}, queryErr
		},
	}

	application := NewApp(mock)
	out, err := application.Run(context.Background(), gemini.Query{Prompt: "p"}, output.JSON)

	if err == nil {
		t.Fatal("Expected error from Run, got nil")
	}
	var qerr *gemini.QueryError
	if !errors.As(err, &qerr) {
		t.Errorf("Expected QueryError to propagate, got %T: %v", err, err)
	}
	if out != "" {
		t.Errorf("Expected no output on failure, got %q", out)
	}
}
