package main

import (
	"context"
	"testing"

	"atlas/internal/config"
	"atlas/internal/llm"
	"atlas/internal/logging"
)

func TestNewProviderDefaultsToOllama(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.LLM.Provider = "ollama"
	log := logging.New("error")

	provider, cleanup, err := newProvider(context.Background(), cfg, log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cleanup()

	if _, ok := provider.(*llm.OllamaProvider); !ok {
		t.Errorf("provider = %T, want *llm.OllamaProvider", provider)
	}
}

func TestNewProviderUnknownNameFallsBackToOllama(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.LLM.Provider = "something-else"
	log := logging.New("error")

	provider, cleanup, err := newProvider(context.Background(), cfg, log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cleanup()

	if _, ok := provider.(*llm.OllamaProvider); !ok {
		t.Errorf("provider = %T, want *llm.OllamaProvider", provider)
	}
}
