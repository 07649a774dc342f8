package trip

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name: "valid request",
			req:  Request{Destination: "Paris", Days: 3, Interests: []string{"food", "museums"}},
		},
		{
			name:    "empty destination",
			req:     Request{Destination: "", Days: 3},
			wantErr: ErrEmptyDestination,
		},
		{
			name:    "whitespace destination",
			req:     Request{Destination: "   ", Days: 3},
			wantErr: ErrEmptyDestination,
		},
		{
			name:    "zero days",
			req:     Request{Destination: "Rome", Days: 0},
			wantErr: ErrInvalidDuration,
		},
		{
			name:    "negative days",
			req:     Request{Destination: "Rome", Days: -2},
			wantErr: ErrInvalidDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildPrompt_EmbedsDestinationAndDuration(t *testing.T) {
	req := Request{Destination: "Paris", Days: 3, Interests: []string{"food", "museums"}}

	prompt, err := BuildPrompt(req)
	if err != nil {
		t.Fatalf("BuildPrompt failed: %v", err)
	}
	if prompt == "" {
		t.Fatal("expected non-empty prompt")
	}
	if !strings.Contains(prompt, "Paris") {
		t.Error("prompt should contain the destination")
	}
	if !strings.Contains(prompt, "3") {
		t.Error("prompt should contain the day count")
	}
	if !strings.Contains(prompt, "food, museums") {
		t.Error("prompt should list the interests")
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	req := Request{Destination: "Kyoto", Days: 5, Interests: []string{"temples"}}

	a, err := BuildPrompt(req)
	if err != nil {
		t.Fatalf("BuildPrompt failed: %v", err)
	}
	b, err := BuildPrompt(req)
	if err != nil {
		t.Fatalf("BuildPrompt failed: %v", err)
	}
	if a != b {
		t.Error("same request must produce the same prompt")
	}
}

func TestBuildPrompt_SkipsBlankInterests(t *testing.T) {
	req := Request{Destination: "Lisbon", Days: 2, Interests: []string{" ", ""}}

	prompt, err := BuildPrompt(req)
	if err != nil {
		t.Fatalf("BuildPrompt failed: %v", err)
	}
	if strings.Contains(prompt, "interested in") {
		t.Error("blank interests should not produce an interests line")
	}
}

func TestBuildPrompt_RejectsInvalidInput(t *testing.T) {
	if _, err := BuildPrompt(Request{Destination: "", Days: 3}); !errors.Is(err, ErrEmptyDestination) {
		t.Errorf("expected ErrEmptyDestination, got %v", err)
	}
	if _, err := BuildPrompt(Request{Destination: "Oslo", Days: 0}); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration, got %v", err)
	}
}
