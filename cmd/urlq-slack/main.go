package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/momiji-san/urlq/gemini"
	"github.com/momiji-san/urlq/internal/app"
	"github.com/momiji-san/urlq/internal/slackbot"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	client, err := gemini.NewClient(context.Background(),
		gemini.WithModel(os.Getenv("URLQ_MODEL")),
		gemini.WithLogger(log),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Gemini client")
	}

	handler, err := slackbot.NewHandler(app.NewApp(client), log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Slack handler")
	}

	http.HandleFunc("/slack/events", handler.HandleEvent)
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("starting urlq Slack bot server")
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
