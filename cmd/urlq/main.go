package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/momiji-san/urlq/gemini"
	"github.com/momiji-san/urlq/internal/app"
	"github.com/momiji-san/urlq/internal/prompt"
	"github.com/momiji-san/urlq/output"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const version = "0.1.0"

// Exit statuses per error class, so scripts can tell failures apart.
const (
	exitValidation    = 2
	exitMissingAPIKey = 3
	exitQueryFailed   = 4
)

var (
	stdinFlag    bool
	noSearchFlag bool
	verboseFlag  bool
	textFlag     bool
	modelFlag    string
	timeoutFlag  time.Duration
)

var rootCmd = &cobra.Command{
	Use:     "urlq",
	Short:   "Query Gemini with URL context",
	Long: `urlq queries Gemini with URLs embedded in your prompts. The model
automatically retrieves the content of those URLs for analysis.

Examples:
  urlq query "Compare https://example.com/page1 and https://example.com/page2"
  echo "Analyze https://example.com/doc.pdf" | urlq query --stdin
  urlq query "Summarize https://example.com" --text`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var queryCmd = &cobra.Command{
	Use:   "query [PROMPT]",
	Short: "Query Gemini with the URL context tool",
	Long: `Query Gemini with the URL context tool. URLs can be included directly
in the prompt text; the model retrieves their content before answering.

Default output is JSON:
  {
    "response_text": "...",
    "url_context_metadata": [
      {"retrieved_url": "https://example.com", "url_retrieval_status": "URL_RETRIEVAL_STATUS_SUCCESS"}
    ],
    "grounding_metadata": {...}  // only with --verbose and search enabled
  }

With --text only the response text is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().BoolVarP(&stdinFlag, "stdin", "s", false, "read prompt from stdin for pipeline integration")
	queryCmd.Flags().BoolVar(&noSearchFlag, "no-search-tool", false, "disable the Google Search tool (URL context only)")
	queryCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "include grounding metadata and log diagnostics")
	queryCmd.Flags().BoolVarP(&textFlag, "text", "t", false, "output plain text instead of JSON")
	queryCmd.Flags().StringVarP(&modelFlag, "model", "m", "", "model to query (default $URLQ_MODEL or "+gemini.DefaultModel+")")
	queryCmd.Flags().DurationVar(&timeoutFlag, "timeout", 90*time.Second, "timeout for the entire operation")

	rootCmd.AddCommand(queryCmd)
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verboseFlag {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func runQuery(cmd *cobra.Command, args []string) error {
	log := newLogger()

	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	p, err := prompt.Resolve(arg, stdinFlag, os.Stdin, interactive)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeoutFlag)
	defer cancel()

	model := modelFlag
	if model == "" {
		model = os.Getenv("URLQ_MODEL")
	}
	client, err := gemini.NewClient(ctx, gemini.WithModel(model), gemini.WithLogger(log))
	if err != nil {
		return err
	}

	if verboseFlag {
		log.Info().Str("model", client.Model()).Msg("querying with URL context tool")
		if noSearchFlag {
			log.Info().Msg("Google Search tool disabled")
		} else {
			log.Info().Msg("Google Search tool enabled")
		}
	}

	mode := output.JSON
	if textFlag {
		mode = output.Text
	}

	out, err := app.NewApp(client).Run(ctx, gemini.Query{
		Prompt:       p,
		EnableSearch: !noSearchFlag,
		Verbose:      verboseFlag,
	}, mode)
	if err != nil {
		return err
	}

	// The formatted result is the only thing written to stdout.
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// exitCode maps the error taxonomy to distinct process exit statuses.
func exitCode(err error) int {
	var verr *gemini.ValidationError
	var merr *gemini.MissingAPIKeyError
	var qerr *gemini.QueryError
	switch {
	case errors.As(err, &verr):
		return exitValidation
	case errors.As(err, &merr):
		return exitMissingAPIKey
	case errors.As(err, &qerr):
		return exitQueryFailed
	}
	return 1
}

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}
