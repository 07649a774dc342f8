// README: Planner orchestrating the prompt pipeline and the guided itinerary flow.
package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"atlas/internal/llm"
	"atlas/internal/modules/budget"
	"atlas/internal/modules/profile"
	"atlas/internal/modules/review"
	"atlas/internal/modules/schedule"
	"atlas/internal/modules/scout"
	"atlas/internal/modules/trip"
)

// Enricher augments scouted attractions with external place data.
// A nil Enricher disables enrichment.
type Enricher interface {
	Enrich(ctx context.Context, city string, attractions []scout.Attraction) []scout.Attraction
}

// Result bundles everything the guided flow produced.
type Result struct {
	City        string             `json:"city"`
	Profile     string             `json:"profile"`
	Attractions []scout.Attraction `json:"attractions"`
	Selected    []scout.Attraction `json:"selected"`
	Budget      budget.Summary     `json:"budget"`
	Itinerary   schedule.Itinerary `json:"itinerary"`
	Metrics     schedule.Metrics   `json:"metrics"`
	Scores      review.Scores      `json:"scores"`
}

// Planner wires the pipeline stages together.
type Planner struct {
	provider    llm.Provider
	temperature float64
	scout       *scout.Service
	enricher    Enricher
	budget      *budget.Service
	schedule    *schedule.Service
	review      *review.Service
	log         zerolog.Logger
}

func New(provider llm.Provider, temperature float64, scoutSvc *scout.Service, enricher Enricher,
	budgetSvc *budget.Service, scheduleSvc *schedule.Service, reviewSvc *review.Service, log zerolog.Logger) *Planner {
	return &Planner{
		provider:    provider,
		temperature: temperature,
		scout:       scoutSvc,
		enricher:    enricher,
		budget:      budgetSvc,
		schedule:    scheduleSvc,
		review:      reviewSvc,
		log:         log,
	}
}

// Plan validates the request, builds the itinerary prompt, and returns the
// model's answer verbatim.
func (p *Planner) Plan(ctx context.Context, req trip.Request) (string, error) {
	prompt, err := trip.BuildPrompt(req)
	if err != nil {
		return "", err
	}

	p.log.Info().Str("destination", req.Destination).Int("days", req.Days).Msg("requesting itinerary")
	text, err := p.provider.Generate(ctx, llm.GenerateRequest{Prompt: prompt, Temperature: p.temperature})
	if err != nil {
		return "", fmt.Errorf("generating itinerary: %w", err)
	}
	return text, nil
}

// BuildItinerary runs the full guided pipeline for a finalized travel profile:
// scout attractions, enrich with place data, filter to the budget, schedule
// into day slots, and score the result.
func (p *Planner) BuildItinerary(ctx context.Context, prof profile.TravelProfile, days int) (*Result, error) {
	if days <= 0 {
		return nil, trip.ErrInvalidDuration
	}
	city := prof.ChosenCity
	people := prof.Constraints.People
	if people <= 0 {
		people = 1
	}

	req := scout.Request{
		City:         city,
		Profile:      prof.RefinedProfile,
		WithChildren: boolFrom(prof.Constraints.WithChildren),
		WithDisabled: boolFrom(prof.Constraints.WithDisabled),
		Budget:       prof.Constraints.Budget,
		People:       people,
	}

	attractions, err := p.scout.GenerateAttractions(ctx, req)
	if err != nil {
		if errors.Is(err, llm.ErrEndpointUnavailable) || errors.Is(err, llm.ErrModelNotFound) {
			return nil, err
		}
		p.log.Warn().Err(err).Msg("attraction scouting failed, using generic fallback")
		attractions = p.scout.Fallback(city)
	}

	if p.enricher != nil {
		attractions = p.enricher.Enrich(ctx, city, attractions)
	}

	selected := p.budget.FilterByBudget(attractions, prof.Constraints.Budget, days, people)
	summary := p.budget.Summarize(selected, prof.Constraints.Budget, people)

	itinerary := p.schedule.Build(selected, days)
	metrics := p.schedule.Measure(itinerary)

	scores := p.review.Evaluate(ctx, prof, itinerary)

	return &Result{
		City:        city,
		Profile:     prof.RefinedProfile,
		Attractions: attractions,
		Selected:    selected,
		Budget:      summary,
		Itinerary:   itinerary,
		Metrics:     metrics,
		Scores:      scores,
	}, nil
}

// Guidance turns a pipeline error into an actionable hint for the user.
func Guidance(err error) string {
	switch {
	case errors.Is(err, llm.ErrEndpointUnavailable):
		return "Could not reach the Ollama endpoint. Make sure Ollama is running (`ollama serve`) and that OLLAMA_BASE_URL points at it."
	case errors.Is(err, llm.ErrModelNotFound):
		return "The configured model is not available on the Ollama endpoint. Pull it first, e.g. `ollama pull llama3`, or set OLLAMA_MODEL to a model you have."
	case errors.Is(err, llm.ErrEmptyResponse):
		return "The model returned an empty answer. Try again, or switch to a different model via OLLAMA_MODEL."
	case errors.Is(err, trip.ErrEmptyDestination), errors.Is(err, trip.ErrInvalidDuration):
		return "Check the trip details: the destination must not be empty and the duration must be a positive number of days."
	}
	return ""
}

func boolFrom(b *bool) bool {
	return b != nil && *b
}
