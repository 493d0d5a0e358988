package app

import (
	"context"
	"fmt"

	"github.com/momiji-san/urlq/gemini"
	"github.com/momiji-san/urlq/output"
)

// App encapsulates the core pipeline shared by the CLI and the Slack bot:
// query the model, then format the normalized result.
type App struct {
	querier gemini.Querier
}

// NewApp creates a new App instance.
func NewApp(q gemini.Querier) *App {
	return &App{querier: q}
}

// Run executes one query and renders the result in the requested mode.
// A failed query yields no output at all; there is no partial result.
func (a *App) Run(ctx context.Context, q gemini.Query, mode output.Mode) (string, error) {
	result, err := a.querier.Query(ctx, q)
	if err != nil {
		return "", err
	}

	out, err := output.Format(result, mode)
	if err != nil {
		return "", fmt.Errorf("failed to format result: %w", err)
	}
	return out, nil
}
