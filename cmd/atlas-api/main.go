// README: API entry point; loads config, wires the planner pipeline, starts the HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"atlas/internal/config"
	httptransport "atlas/internal/http"
	"atlas/internal/llm"
	"atlas/internal/logging"
	"atlas/internal/modules/budget"
	"atlas/internal/modules/review"
	"atlas/internal/modules/schedule"
	"atlas/internal/modules/scout"
	"atlas/internal/places"
	"atlas/internal/planner"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := logging.New("info")
		boot.Fatal().Err(err).Msg("loading config")
	}
	log := logging.New(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, cleanup, err := newProvider(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing model provider")
	}
	defer cleanup()

	var enricher planner.Enricher
	if cfg.Places.APIKey != "" {
		placesSvc, err := places.NewService(cfg.Places.APIKey, log)
		if err != nil {
			log.Fatal().Err(err).Msg("initializing places client")
		}
		enricher = placesSvc
	}

	p := planner.New(provider, cfg.LLM.Temperature,
		scout.NewService(provider, log), enricher,
		budget.NewService(log), schedule.NewService(log), review.NewService(provider, log), log)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: httptransport.NewRouter(p, provider, log),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.HTTP.Addr).Str("provider", cfg.LLM.Provider).Str("model", cfg.LLM.Model).Msg("listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// newProvider builds the configured model backend. The cleanup func is a no-op
// for Ollama and closes the client connection for Gemini.
func newProvider(ctx context.Context, cfg config.Config, log zerolog.Logger) (llm.Provider, func(), error) {
	switch cfg.LLM.Provider {
	case "gemini":
		if cfg.LLM.GeminiKey == "" {
			log.Fatal().Msg("GEMINI_API_KEY is required when ATLAS_LLM_PROVIDER=gemini")
		}
		gp, err := llm.NewGeminiProvider(ctx, cfg.LLM.GeminiKey)
		if err != nil {
			return nil, nil, err
		}
		return gp, gp.Close, nil
	default:
		op := llm.NewOllamaProvider(cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.EmbedModel,
			time.Duration(cfg.LLM.TimeoutSeconds)*time.Second)
		return op, func() {}, nil
	}
}
