package budget

import (
	"testing"

	"github.com/rs/zerolog"

	"atlas/internal/modules/scout"
)

func intPtr(v int) *int { return &v }

func TestEstimatePrice(t *testing.T) {
	s := NewService(zerolog.Nop())

	tests := []struct {
		name string
		attr scout.Attraction
		want float64
	}{
		{
			name: "declared price wins",
			attr: scout.Attraction{ApproxPricePerPerson: 17, Tags: []string{"museum"}},
			want: 17,
		},
		{
			name: "free tag means free",
			attr: scout.Attraction{Tags: []string{"park", "free"}},
			want: 0,
		},
		{
			name: "google price level 3",
			attr: scout.Attraction{GooglePriceLevel: intPtr(3), Tags: []string{"food"}},
			want: 40,
		},
		{
			name: "museum tag default",
			attr: scout.Attraction{Tags: []string{"museum"}},
			want: 15,
		},
		{
			name: "landmark tag default",
			attr: scout.Attraction{Tags: []string{"viewpoint"}},
			want: 20,
		},
		{
			name: "generic default",
			attr: scout.Attraction{Tags: []string{"shopping"}},
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.EstimatePrice(tt.attr); got != tt.want {
				t.Errorf("EstimatePrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterByBudget_CheapestFirstWithinBudget(t *testing.T) {
	s := NewService(zerolog.Nop())

	attractions := []scout.Attraction{
		{Name: "Opera", ApproxPricePerPerson: 80, Tags: []string{"music"}},
		{Name: "Museum", ApproxPricePerPerson: 15, Tags: []string{"museum"}},
		{Name: "Park", Tags: []string{"park", "free"}},
		{Name: "Tower", ApproxPricePerPerson: 25, Tags: []string{"landmark"}},
	}

	// 2 people, 100 EUR: park (0) + museum (30) + tower (50) = 80; opera (160) busts it.
	got := s.FilterByBudget(attractions, 100, 2, 2)

	if len(got) != 3 {
		t.Fatalf("expected 3 selected, got %d", len(got))
	}
	if got[0].Name != "Park" || got[1].Name != "Museum" || got[2].Name != "Tower" {
		t.Errorf("unexpected selection order: %v, %v, %v", got[0].Name, got[1].Name, got[2].Name)
	}
	if *got[1].FinalPriceEstimate != 30 {
		t.Errorf("museum group price should be 30, got %v", *got[1].FinalPriceEstimate)
	}
}

func TestFilterByBudget_CapsAtThreePerDay(t *testing.T) {
	s := NewService(zerolog.Nop())

	var attractions []scout.Attraction
	for i := 0; i < 10; i++ {
		attractions = append(attractions, scout.Attraction{Name: "Spot", Tags: []string{"free"}})
	}

	got := s.FilterByBudget(attractions, 1000, 2, 1)
	if len(got) != 6 {
		t.Errorf("2 days should cap at 6 attractions, got %d", len(got))
	}
}

func TestFilterByBudget_FreeAttractionsAlwaysFit(t *testing.T) {
	s := NewService(zerolog.Nop())

	attractions := []scout.Attraction{
		{Name: "Pricey", ApproxPricePerPerson: 500, Tags: []string{"tour"}},
		{Name: "Garden", Tags: []string{"park", "free"}},
	}

	got := s.FilterByBudget(attractions, 10, 1, 1)
	if len(got) != 1 || got[0].Name != "Garden" {
		t.Errorf("expected only the free attraction, got %+v", got)
	}
}

func TestFilterByBudget_DoesNotMutateInput(t *testing.T) {
	s := NewService(zerolog.Nop())

	attractions := []scout.Attraction{{Name: "Museum", ApproxPricePerPerson: 15}}
	s.FilterByBudget(attractions, 100, 1, 2)

	if attractions[0].FinalPriceEstimate != nil {
		t.Error("input slice should not be mutated")
	}
}

func TestSummarize(t *testing.T) {
	s := NewService(zerolog.Nop())

	p1, p2 := 30.0, 50.0
	attractions := []scout.Attraction{
		{Name: "a", FinalPriceEstimate: &p1},
		{Name: "b", FinalPriceEstimate: &p2},
	}

	sum := s.Summarize(attractions, 200, 2)
	if sum.TotalCost != 80 {
		t.Errorf("TotalCost = %v, want 80", sum.TotalCost)
	}
	if sum.RemainingBudget != 120 {
		t.Errorf("RemainingBudget = %v, want 120", sum.RemainingBudget)
	}
	if sum.CostPerPerson != 40 {
		t.Errorf("CostPerPerson = %v, want 40", sum.CostPerPerson)
	}
	if sum.UtilizationPct != 40 {
		t.Errorf("UtilizationPct = %v, want 40", sum.UtilizationPct)
	}
	if sum.Attractions != 2 {
		t.Errorf("Attractions = %v, want 2", sum.Attractions)
	}
}

func TestSummarize_ZeroBudgetAndPeople(t *testing.T) {
	s := NewService(zerolog.Nop())

	sum := s.Summarize(nil, 0, 0)
	if sum.UtilizationPct != 0 || sum.CostPerPerson != 0 {
		t.Errorf("zero inputs should not divide by zero: %+v", sum)
	}
}
