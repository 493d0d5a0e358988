// Package slackbot exposes the query pipeline as a Slack Events API
// endpoint: mention the bot with a prompt and it replies in-thread with the
// model's answer.
package slackbot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/momiji-san/urlq/gemini"
	"github.com/momiji-san/urlq/internal/app"
	"github.com/momiji-san/urlq/output"
	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

// Handler holds dependencies for handling Slack events.
type Handler struct {
	slackClient   *slack.Client
	signingSecret string
	appCore       *app.App
	log           zerolog.Logger
}

// NewHandler creates a Handler. SLACK_BOT_TOKEN and SLACK_SIGNING_SECRET
// must be set in the environment.
func NewHandler(appCore *app.App, log zerolog.Logger) (*Handler, error) {
	botToken := os.Getenv("SLACK_BOT_TOKEN")
	signingSecret := os.Getenv("SLACK_SIGNING_SECRET")
	if botToken == "" || signingSecret == "" {
		return nil, fmt.Errorf("SLACK_BOT_TOKEN and SLACK_SIGNING_SECRET environment variables must be set")
	}

	return &Handler{
		slackClient:   slack.New(botToken),
		signingSecret: signingSecret,
		appCore:       appCore,
		log:           log.With().Str("component", "slackbot").Logger(),
	}, nil
}

// HandleEvent handles incoming HTTP requests from Slack.
func (h *Handler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	verifier, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to create secrets verifier")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to read request body")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	if _, err := verifier.Write(body); err != nil {
		h.log.Error().Err(err).Msg("failed to write body to verifier")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if err := verifier.Ensure(); err != nil {
		h.log.Warn().Err(err).Msg("request signature verification failed")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	eventsAPIEvent, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to parse event")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if eventsAPIEvent.Type == slackevents.URLVerification {
		var cr slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &cr); err != nil {
			h.log.Error().Err(err).Msg("failed to unmarshal challenge response")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(cr.Challenge))
		h.log.Info().Msg("handled URL verification challenge")
		return
	}

	if eventsAPIEvent.Type == slackevents.CallbackEvent {
		switch ev := eventsAPIEvent.InnerEvent.Data.(type) {
		case *slackevents.AppMentionEvent:
			h.log.Info().
				Str("user", ev.User).
				Str("channel", ev.Channel).
				Msg("received app mention")
			// Acknowledge immediately to prevent Slack retries; the query
			// can take longer than Slack's delivery timeout.
			w.WriteHeader(http.StatusOK)
			go h.handleAppMention(ev)
			return
		default:
			h.log.Debug().Str("type", fmt.Sprintf("%T", ev)).Msg("unhandled event type")
		}
	}

	w.WriteHeader(http.StatusOK)
}

// handleAppMention runs the mention text (minus the mention tag) as a query
// and posts the answer back in-thread.
func (h *Handler) handleAppMention(event *slackevents.AppMentionEvent) {
	p := stripMentions(event.Text)

	threadTS := event.TimeStamp
	if event.ThreadTimeStamp != "" {
		threadTS = event.ThreadTimeStamp
	}

	if p == "" {
		h.postMessage(event.Channel, threadTS,
			"Mention me with a prompt, e.g. `@urlq summarize https://example.com`")
		return
	}

	answer, err := h.appCore.Run(context.Background(), gemini.Query{
		Prompt:       p,
		EnableSearch: true,
	}, output.Text)
	if err != nil {
		h.log.Error().Err(err).Str("prompt", p).Msg("query failed")
		h.postMessage(event.Channel, threadTS, fmt.Sprintf("Query failed: %v", err))
		return
	}

	h.postMessage(event.Channel, threadTS, answer)
}

func (h *Handler) postMessage(channel, threadTS, text string) {
	_, _, err := h.slackClient.PostMessage(
		channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionTS(threadTS),
	)
	if err != nil {
		h.log.Error().Err(err).Str("channel", channel).Msg("failed to post message")
	}
}

var mentionRegex = regexp.MustCompile(`<@[A-Z0-9]+>`)

// stripMentions removes Slack mention tags so the remaining text can be used
// as the prompt.
func stripMentions(text string) string {
	return strings.TrimSpace(mentionRegex.ReplaceAllString(text, ""))
}
