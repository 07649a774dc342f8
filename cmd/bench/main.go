// README: Smoke-check runner for a deployed API; executes HTTP checks and prints results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	bench := NewRunner(cfg)
	results := bench.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, skipped := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case "PASS":
			pass++
		case "FAIL":
			fail++
		case "SKIP":
			skipped++
		}
	}
	fmt.Printf("PASS=%d FAIL=%d SKIP=%d\n", pass, fail, skipped)

	if fail > 0 {
		os.Exit(1)
	}
}

type Config struct {
	BaseURL     string
	OllamaURL   string
	Timeout     time.Duration
	Concurrency int
	Duration    time.Duration
	SkipPlan    bool
}

func loadConfig() Config {
	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", envOrDefault("ATLAS_BENCH_BASE_URL", "http://localhost:8080"), "API base URL")
	flag.StringVar(&cfg.OllamaURL, "ollama-url", envOrDefault("OLLAMA_BASE_URL", "http://localhost:11434"), "Ollama base URL")
	flag.DurationVar(&cfg.Timeout, "timeout", envOrDefaultDuration("ATLAS_BENCH_TIMEOUT", 10*time.Minute), "Total timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", envOrDefaultInt("ATLAS_BENCH_CONCURRENCY", 10), "Concurrency for the health perf check")
	flag.DurationVar(&cfg.Duration, "duration", envOrDefaultDuration("ATLAS_BENCH_DURATION", 5*time.Second), "Duration for the health perf check")
	flag.BoolVar(&cfg.SkipPlan, "skip-plan", envOrDefaultBool("ATLAS_BENCH_SKIP_PLAN", false), "Skip checks that call the model")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.OllamaURL = strings.TrimRight(cfg.OllamaURL, "/")
	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(v)
		return v == "1" || v == "true" || v == "yes"
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		_, _ = fmt.Sscanf(v, "%d", &n)
		if n > 0 {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
