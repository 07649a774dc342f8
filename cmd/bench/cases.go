// README: Smoke-check cases; HTTP checks against the API and the Ollama endpoint.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Minute},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Ollama reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				body, status, err := r.get(ctx, r.cfg.OllamaURL+"/api/tags")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d", status)}
				}
				var tags struct {
					Models []struct {
						Name string `json:"name"`
					} `json:"models"`
				}
				if err := json.Unmarshal(body, &tags); err != nil {
					return Result{Status: "FAIL", Note: "unexpected tags payload"}
				}
				return Result{Status: "PASS", Latency: time.Since(start), Note: fmt.Sprintf("%d models", len(tags.Models))}
			},
		},
		{
			Name: "API: health",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				_, status, err := r.get(ctx, base+"/health")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d", status)}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "API: plan rejects empty destination",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				status, _, err := r.postJSON(ctx, base+"/api/trips/plan", map[string]any{
					"destination": "", "days": 3,
				})
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusBadRequest {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d, want 400", status)}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "API: plan rejects non-positive days",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				status, _, err := r.postJSON(ctx, base+"/api/trips/plan", map[string]any{
					"destination": "Paris", "days": 0,
				})
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusBadRequest {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d, want 400", status)}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "API: plan end to end",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.cfg.SkipPlan {
					return Result{Status: "SKIP", Note: "model calls disabled"}
				}
				start := time.Now()
				status, body, err := r.postJSON(ctx, base+"/api/trips/plan", map[string]any{
					"destination": "Paris",
					"days":        2,
					"interests":   []string{"food", "museums"},
				})
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d: %s", status, truncate(body))}
				}
				var resp struct {
					Itinerary string `json:"itinerary"`
				}
				if err := json.Unmarshal([]byte(body), &resp); err != nil || strings.TrimSpace(resp.Itinerary) == "" {
					return Result{Status: "FAIL", Note: "empty itinerary"}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "Perf: health under concurrency",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				deadline := start.Add(r.cfg.Duration)
				var total, failed int64
				var wg sync.WaitGroup
				for i := 0; i < r.cfg.Concurrency; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						for time.Now().Before(deadline) && ctx.Err() == nil {
							atomic.AddInt64(&total, 1)
							_, status, err := r.get(ctx, base+"/health")
							if err != nil || status != http.StatusOK {
								atomic.AddInt64(&failed, 1)
							}
						}
					}()
				}
				wg.Wait()
				if failed > 0 {
					return Result{Status: "FAIL", Note: fmt.Sprintf("%d/%d requests failed", failed, total)}
				}
				return Result{Status: "PASS", Latency: time.Since(start), Note: fmt.Sprintf("%d requests", total)}
			},
		},
	}
}

func (r *Runner) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return body, resp.StatusCode, nil
}

func (r *Runner) postJSON(ctx context.Context, url string, payload any) (int, string, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return 0, "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body), nil
}

func truncate(s string) string {
	if len(s) > 120 {
		return s[:120] + "..."
	}
	return s
}
