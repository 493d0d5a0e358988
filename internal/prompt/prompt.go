// Package prompt resolves the query prompt from its possible sources:
// a direct argument or piped stdin. Exactly one source must be used.
package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/momiji-san/urlq/gemini"
)

// Resolve picks the prompt from arg or, when useStdin is set, from in.
// interactive reports whether stdin is attached to a terminal, in which case
// --stdin cannot deliver piped data. The returned prompt is trimmed and
// guaranteed non-empty.
func Resolve(arg string, useStdin bool, in io.Reader, interactive bool) (string, error) {
	if useStdin && strings.TrimSpace(arg) != "" {
		return "", &gemini.ValidationError{
			Reason: "cannot specify both a PROMPT argument and --stdin",
			Suggestion: "Choose one:\n" +
				"  urlq query 'your prompt'\n" +
				"  echo 'your prompt' | urlq query --stdin",
		}
	}

	if useStdin {
		if interactive {
			return "", &gemini.ValidationError{
				Reason: "no input from stdin",
				Suggestion: "Pipe input to the command:\n" +
					"  echo 'your prompt' | urlq query --stdin\n" +
					"Or provide the prompt as argument:\n" +
					"  urlq query 'your prompt'",
			}
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", &gemini.ValidationError{
				Reason:     fmt.Sprintf("failed to read stdin: %v", err),
				Suggestion: "Pipe input to the command:\n  echo 'your prompt' | urlq query --stdin",
			}
		}
		p := strings.TrimSpace(string(data))
		if p == "" {
			return "", &gemini.ValidationError{
				Reason:     "stdin input is empty",
				Suggestion: "Provide non-empty input:\n  echo 'your prompt' | urlq query --stdin",
			}
		}
		return p, nil
	}

	p := strings.TrimSpace(arg)
	if p == "" {
		return "", &gemini.ValidationError{
			Reason: "PROMPT argument is required",
			Suggestion: "Provide a prompt:\n" +
				"  urlq query 'your prompt here'\n" +
				"Or read from stdin:\n" +
				"  echo 'your prompt' | urlq query --stdin",
		}
	}
	return p, nil
}
