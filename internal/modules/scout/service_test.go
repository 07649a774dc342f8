package scout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"atlas/internal/llm"
)

// stubProvider returns canned text for Generate; other methods are unused here.
type stubProvider struct {
	text string
	err  error
}

func (s *stubProvider) Generate(_ context.Context, _ llm.GenerateRequest) (string, error) {
	return s.text, s.err
}
func (s *stubProvider) Embed(_ context.Context, _, _ string) ([]float32, error) { return nil, nil }
func (s *stubProvider) ListModels(_ context.Context) ([]string, error)          { return nil, nil }
func (s *stubProvider) HealthCheck(_ context.Context) error                     { return nil }

func testService(text string, err error) *Service {
	return NewService(&stubProvider{text: text, err: err}, zerolog.Nop())
}

func TestGenerateAttractions_ParsesCleanArray(t *testing.T) {
	resp := `[
		{"name": "Louvre", "short_description": "World famous museum", "approx_price_per_person": 17, "tags": ["museum"], "reason_for_user": "You like art"},
		{"name": "Jardin du Luxembourg", "short_description": "Large public garden", "approx_price_per_person": 0, "tags": ["park", "free"], "reason_for_user": "Quiet walks"}
	]`
	svc := testService(resp, nil)

	got, err := svc.GenerateAttractions(context.Background(), Request{City: "Paris", People: 2, Budget: 500})
	if err != nil {
		t.Fatalf("GenerateAttractions failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 attractions, got %d", len(got))
	}
	if got[0].Name != "Louvre" || got[0].ApproxPricePerPerson != 17 {
		t.Errorf("unexpected first attraction: %+v", got[0])
	}
}

func TestGenerateAttractions_CoercesStringPricesAndDefaults(t *testing.T) {
	resp := `[
		{"name": "Boat tour", "approx_price_per_person": "about 12.50 EUR"},
		{"short_description": "nameless entry", "approx_price_per_person": null}
	]`
	svc := testService(resp, nil)

	got, err := svc.GenerateAttractions(context.Background(), Request{City: "Porto"})
	if err != nil {
		t.Fatalf("GenerateAttractions failed: %v", err)
	}
	if got[0].ApproxPricePerPerson != 12.50 {
		t.Errorf("expected coerced price 12.50, got %v", got[0].ApproxPricePerPerson)
	}
	if !strings.Contains(got[1].Name, "Porto") {
		t.Errorf("nameless entry should get a placeholder name, got %q", got[1].Name)
	}
	if got[1].ApproxPricePerPerson != 15.0 {
		t.Errorf("missing price should default to 15, got %v", got[1].ApproxPricePerPerson)
	}
	if len(got[1].Tags) == 0 {
		t.Error("missing tags should default")
	}
}

func TestGenerateAttractions_ObjectWrappedArray(t *testing.T) {
	resp := `{"attractions": [{"name": "Alfama district", "tags": ["walking"]}]}`
	svc := testService(resp, nil)

	got, err := svc.GenerateAttractions(context.Background(), Request{City: "Lisbon"})
	if err != nil {
		t.Fatalf("GenerateAttractions failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Alfama district" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestGenerateAttractions_UnparseableResponse(t *testing.T) {
	svc := testService("I'm sorry, I can't produce JSON today.", nil)

	if _, err := svc.GenerateAttractions(context.Background(), Request{City: "Oslo"}); err == nil {
		t.Fatal("expected error for unparseable response")
	}
}

func TestGenerateAttractions_ProviderErrorPropagates(t *testing.T) {
	svc := testService("", llm.ErrEndpointUnavailable)

	_, err := svc.GenerateAttractions(context.Background(), Request{City: "Oslo"})
	if !errors.Is(err, llm.ErrEndpointUnavailable) {
		t.Errorf("expected wrapped ErrEndpointUnavailable, got %v", err)
	}
}

func TestGenerateAttractions_CapsAtTen(t *testing.T) {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < 14; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"name": "Spot"}`)
	}
	b.WriteString("]")
	svc := testService(b.String(), nil)

	got, err := svc.GenerateAttractions(context.Background(), Request{City: "Rome"})
	if err != nil {
		t.Fatalf("GenerateAttractions failed: %v", err)
	}
	if len(got) != maxAttractions {
		t.Errorf("expected cap at %d, got %d", maxAttractions, len(got))
	}
}

func TestFallback_CoversAllSlots(t *testing.T) {
	svc := testService("", nil)

	got := svc.Fallback("Rome")
	if len(got) < 3 {
		t.Fatalf("fallback should provide at least 3 attractions, got %d", len(got))
	}
	for _, a := range got {
		if !strings.Contains(a.Name, "Rome") {
			t.Errorf("fallback attraction %q should reference the city", a.Name)
		}
	}
}

func TestPreferenceRequirements(t *testing.T) {
	reqs := preferenceRequirements("Loves hiking in forests, not cultural stuff, wants local food")
	if !strings.Contains(reqs, "MUST INCLUDE") {
		t.Error("hiking preference should demand outdoor attractions")
	}
	if !strings.Contains(reqs, "MUST AVOID") {
		t.Error("anti-cultural preference should exclude museums")
	}
	if !strings.Contains(reqs, "local food") {
		t.Error("food preference should be carried through")
	}

	if got := preferenceRequirements("nothing special"); got != "" {
		t.Errorf("neutral profile should produce no requirements, got %q", got)
	}
}
