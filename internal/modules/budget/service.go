// README: Budget service filters attractions so the whole group stays within budget.
package budget

import (
	"sort"

	"github.com/rs/zerolog"

	"atlas/internal/modules/scout"
)

// attractionsPerDay is the scheduling density the filter plans for.
const attractionsPerDay = 3

// priceLevelEUR maps Google price levels (0-4) to rough EUR per person.
var priceLevelEUR = map[int]float64{0: 0, 1: 10, 2: 20, 3: 40, 4: 60}

type Service struct {
	log zerolog.Logger
}

func NewService(log zerolog.Logger) *Service {
	return &Service{log: log}
}

// Summary aggregates the cost picture of a selected attraction set.
type Summary struct {
	TotalCost       float64 `json:"total_cost"`
	RemainingBudget float64 `json:"remaining_budget"`
	CostPerPerson   float64 `json:"cost_per_person"`
	UtilizationPct  float64 `json:"budget_utilization"`
	Attractions     int     `json:"number_of_attractions"`
}

// EstimatePrice returns the per-person price for an attraction.
// Declared prices win; otherwise the Google price level, then tag heuristics.
func (s *Service) EstimatePrice(a scout.Attraction) float64 {
	if a.ApproxPricePerPerson > 0 {
		return a.ApproxPricePerPerson
	}
	if a.HasTag("free") || a.HasTag("park") || a.HasTag("outdoor") {
		return 0
	}
	if a.GooglePriceLevel != nil {
		if eur, ok := priceLevelEUR[*a.GooglePriceLevel]; ok {
			return eur
		}
		return 20
	}
	switch {
	case a.HasTag("museum") || a.HasTag("gallery"):
		return 15
	case a.HasTag("landmark") || a.HasTag("viewpoint"):
		return 20
	default:
		return 10
	}
}

// FilterByBudget selects cheapest-first attractions whose group cost fits the
// total budget, capped at attractionsPerDay*days entries. Free attractions are
// always admissible while the cap allows. Each returned attraction carries its
// FinalPriceEstimate for the whole group.
func (s *Service) FilterByBudget(attractions []scout.Attraction, totalBudget float64, days, people int) []scout.Attraction {
	if people <= 0 {
		people = 1
	}
	maxCount := days * attractionsPerDay

	priced := make([]scout.Attraction, len(attractions))
	copy(priced, attractions)
	for i := range priced {
		groupPrice := s.EstimatePrice(priced[i]) * float64(people)
		priced[i].FinalPriceEstimate = &groupPrice
	}

	sort.SliceStable(priced, func(i, j int) bool {
		return *priced[i].FinalPriceEstimate < *priced[j].FinalPriceEstimate
	})

	var selected []scout.Attraction
	totalCost := 0.0
	for _, a := range priced {
		if len(selected) >= maxCount {
			break
		}
		cost := *a.FinalPriceEstimate
		if totalCost+cost <= totalBudget || cost == 0 {
			selected = append(selected, a)
			totalCost += cost
		}
	}

	s.log.Debug().
		Int("input", len(attractions)).
		Int("selected", len(selected)).
		Float64("total_cost", totalCost).
		Float64("budget", totalBudget).
		Msg("budget filter applied")

	return selected
}

// Summarize computes the final cost summary for a selected set.
func (s *Service) Summarize(attractions []scout.Attraction, totalBudget float64, people int) Summary {
	totalCost := 0.0
	for _, a := range attractions {
		if a.FinalPriceEstimate != nil {
			totalCost += *a.FinalPriceEstimate
		}
	}

	sum := Summary{
		TotalCost:       totalCost,
		RemainingBudget: totalBudget - totalCost,
		Attractions:     len(attractions),
	}
	if people > 0 {
		sum.CostPerPerson = totalCost / float64(people)
	}
	if totalBudget > 0 {
		sum.UtilizationPct = totalCost / totalBudget * 100
	}
	return sum
}
