// README: Evaluation agent scoring finished itineraries against the user profile.
package review

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"atlas/internal/llm"
	"atlas/internal/modules/profile"
	"atlas/internal/modules/schedule"
)

const reviewTemperature = 0.3

type Service struct {
	provider llm.Provider
	log      zerolog.Logger
}

func NewService(provider llm.Provider, log zerolog.Logger) *Service {
	return &Service{provider: provider, log: log}
}

// Evaluate asks the model to score the itinerary. Any failure degrades to the
// neutral fallback so evaluation never blocks plan delivery.
func (s *Service) Evaluate(ctx context.Context, prof profile.TravelProfile, itin schedule.Itinerary) Scores {
	prompt := buildReviewPrompt(prof, itin)

	raw, err := s.provider.Generate(ctx, llm.GenerateRequest{Prompt: prompt, Temperature: reviewTemperature})
	if err != nil {
		s.log.Warn().Err(err).Msg("evaluation failed, using neutral scores")
		return Fallback()
	}

	var scores Scores
	if err := llm.DecodeObject(raw, &scores); err != nil {
		s.log.Warn().Err(err).Msg("evaluation response unparseable, using neutral scores")
		return Fallback()
	}
	return clampScores(scores)
}

// Fallback returns neutral mid-scale scores.
func Fallback() Scores {
	return Scores{
		InterestMatch:             3,
		BudgetRealism:             3,
		Logistics:                 3,
		SuitabilityForConstraints: 3,
		Comment:                   "Automatic evaluation unavailable, using neutral scores.",
	}
}

func buildReviewPrompt(prof profile.TravelProfile, itin schedule.Itinerary) string {
	itinJSON, err := json.MarshalIndent(itin, "", "  ")
	if err != nil {
		itinJSON = []byte("{}")
	}

	var b strings.Builder
	b.WriteString("You are a strict travel-plan reviewer.\n\n")
	fmt.Fprintf(&b, "User profile:\n%s\n", prof.RefinedProfile)
	fmt.Fprintf(&b, "Destination: %s\n", prof.ChosenCity)
	fmt.Fprintf(&b, "Budget: %.0f EUR for %d people\n", prof.Constraints.Budget, prof.Constraints.People)
	if prof.Constraints.WithChildren != nil && *prof.Constraints.WithChildren {
		b.WriteString("Travelling with children.\n")
	}
	if prof.Constraints.WithDisabled != nil && *prof.Constraints.WithDisabled {
		b.WriteString("Accessibility needs must be respected.\n")
	}
	fmt.Fprintf(&b, "\nItinerary to review:\n%s\n\n", itinJSON)
	b.WriteString("Score the itinerary from 1 (poor) to 5 (excellent) on each dimension.\n")
	b.WriteString("Return ONLY valid JSON:\n")
	b.WriteString(`{
  "interest_match": 1-5,
  "budget_realism": 1-5,
  "logistics": 1-5,
  "suitability_for_constraints": 1-5,
  "comment": "one or two sentences"
}
`)
	return b.String()
}

func clampScores(s Scores) Scores {
	s.InterestMatch = clamp(s.InterestMatch)
	s.BudgetRealism = clamp(s.BudgetRealism)
	s.Logistics = clamp(s.Logistics)
	s.SuitabilityForConstraints = clamp(s.SuitabilityForConstraints)
	if s.Comment == "" {
		s.Comment = "No reviewer comment provided."
	}
	return s
}

// clamp forces a score into [1,5]. A zero value means the model omitted the
// key entirely, which gets the neutral score instead of the floor.
func clamp(v int) int {
	switch {
	case v == 0:
		return 3
	case v < 1:
		return 1
	case v > 5:
		return 5
	}
	return v
}
