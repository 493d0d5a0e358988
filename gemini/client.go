package gemini

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured explicitly.
const DefaultModel = "gemini-2.5-flash"

// Client implements Querier using Google's Gemini API.
type Client struct {
	genai *genai.Client
	model string
	log   zerolog.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	apiKey string
	model  string
	log    zerolog.Logger
}

// WithAPIKey overrides the GEMINI_API_KEY environment variable.
func WithAPIKey(key string) Option {
	return func(o *clientOptions) { o.apiKey = key }
}

// WithModel selects the model to query instead of DefaultModel.
func WithModel(model string) Option {
	return func(o *clientOptions) { o.model = model }
}

// WithLogger sets the logger for diagnostic output.
func WithLogger(log zerolog.Logger) Option {
	return func(o *clientOptions) { o.log = log }
}

// NewClient creates a Gemini-backed client. The API key is resolved from the
// options or the GEMINI_API_KEY environment variable; if neither is set it
// returns MissingAPIKeyError without touching the network.
func NewClient(ctx context.Context, opts ...Option) (*Client, error) {
	options := clientOptions{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&options)
	}

	apiKey := options.apiKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, &MissingAPIKeyError{}
	}

	model := options.model
	if model == "" {
		model = DefaultModel
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &QueryError{Err: err}
	}

	return &Client{
		genai: gc,
		model: model,
		log:   options.log.With().Str("component", "gemini").Logger(),
	}, nil
}

// Model returns the model name the client queries.
func (c *Client) Model() string { return c.model }

// Query issues exactly one GenerateContent call with the URL-context tool
// enabled (plus Google Search when requested) and normalizes the reply.
// An empty prompt is rejected before any network activity.
func (c *Client) Query(ctx context.Context, q Query) (QueryResult, error) {
	if strings.TrimSpace(q.Prompt) == "" {
		return QueryResult{}, &ValidationError{
			Reason: "prompt cannot be empty",
			Suggestion: "Provide a prompt as argument:\n" +
				"  urlq query 'your prompt here'\n" +
				"Or read from stdin:\n" +
				"  echo 'your prompt' | urlq query --stdin",
		}
	}

	tools := []*genai.Tool{{URLContext: &genai.URLContext{}}}
	if q.EnableSearch {
		tools = append(tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
	}

	c.log.Debug().
		Str("model", c.model).
		Bool("search", q.EnableSearch).
		Msg("sending query")

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(q.Prompt), &genai.GenerateContentConfig{
		Tools: tools,
	})
	if err != nil {
		return QueryResult{}, &QueryError{Err: err}
	}

	return normalizeResponse(resp, q.Verbose, c.log), nil
}
