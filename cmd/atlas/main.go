// README: Interactive CLI; quick one-shot planning or the guided multi-step flow.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"atlas/internal/config"
	"atlas/internal/llm"
	"atlas/internal/logging"
	"atlas/internal/modules/budget"
	"atlas/internal/modules/profile"
	"atlas/internal/modules/review"
	"atlas/internal/modules/schedule"
	"atlas/internal/modules/scout"
	"atlas/internal/modules/trip"
	"atlas/internal/places"
	"atlas/internal/planner"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Log.Level)

	provider := llm.NewOllamaProvider(cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.EmbedModel,
		time.Duration(cfg.LLM.TimeoutSeconds)*time.Second)

	var enricher planner.Enricher
	if cfg.Places.APIKey != "" {
		placesSvc, err := places.NewService(cfg.Places.APIKey, log)
		if err != nil {
			log.Warn().Err(err).Msg("places client unavailable, continuing without enrichment")
		} else {
			enricher = placesSvc
		}
	}

	p := planner.New(provider, cfg.LLM.Temperature,
		scout.NewService(provider, log), enricher,
		budget.NewService(log), schedule.NewService(log), review.NewService(provider, log), log)
	profileSvc := profile.NewService(provider, cfg.LLM.EmbedModel,
		cfg.Trip.SimilarityThreshold, cfg.Trip.MaxDialogueTurns, log)

	in := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	fmt.Println("Atlas travel planner")
	mode := ask(in, "Mode [quick/guided]", "quick")

	if strings.EqualFold(mode, "guided") {
		runGuided(ctx, in, cfg, p, profileSvc, log)
		return
	}
	runQuick(ctx, in, cfg, p)
}

// runQuick asks for the trip basics, sends one prompt, and prints the model's
// answer exactly as received.
func runQuick(ctx context.Context, in *bufio.Scanner, cfg config.Config, p *planner.Planner) {
	destination := ask(in, "Destination", "")
	days := askInt(in, "Number of days", cfg.Trip.DefaultDays)
	interests := splitCSV(ask(in, "Interests (comma separated)", ""))

	fmt.Println("\nPlanning your trip...")
	itinerary, err := p.Plan(ctx, trip.Request{Destination: destination, Days: days, Interests: interests})
	if err != nil {
		fail(err)
	}
	fmt.Println()
	fmt.Println(itinerary)
}

// runGuided runs the refinement dialogue and the full pipeline.
func runGuided(ctx context.Context, in *bufio.Scanner, cfg config.Config, p *planner.Planner, profileSvc *profile.Service, log zerolog.Logger) {
	budgetEUR := askFloat(in, "Total budget in EUR", cfg.Trip.DefaultBudget)
	people := askInt(in, "Number of people", cfg.Trip.DefaultPeople)
	days := askInt(in, "Number of days", cfg.Trip.DefaultDays)

	state := profile.NewState()
	fmt.Println("\nTell me about the trip you have in mind (interests, pace, constraints).")
	msg := ask(in, "You", "")

	var final profile.TurnResponse
	for {
		profileSvc.UpdateState(ctx, state, msg)
		resp := profileSvc.ProcessTurn(ctx, state, msg, budgetEUR, people, days)

		if resp.Action == profile.ActionFinalize || state.Turns >= profileSvc.MaxTurns() {
			final = resp
			break
		}
		fmt.Println("\n" + resp.Question)
		msg = ask(in, "You", "")
	}

	prof := profileSvc.FinalProfile(state, final)
	fmt.Printf("\nDestination: %s\nProfile: %s\n\nBuilding the itinerary...\n", prof.ChosenCity, prof.RefinedProfile)

	result, err := p.BuildItinerary(ctx, prof, days)
	if err != nil {
		fail(err)
	}
	printResult(result)
}

func printResult(r *planner.Result) {
	fmt.Printf("\n=== %d-day itinerary for %s ===\n", len(r.Itinerary.Days), r.City)
	for i, day := range r.Itinerary.Days {
		fmt.Printf("\nDay %d\n", i+1)
		printSlot("Morning", day.Morning)
		printSlot("Afternoon", day.Afternoon)
		printSlot("Evening", day.Evening)
	}

	fmt.Printf("\nBudget: %.2f EUR estimated, %.2f EUR remaining (%d attractions)\n",
		r.Budget.TotalCost, r.Budget.RemainingBudget, r.Budget.Attractions)
	fmt.Printf("Review: interest %d/5, budget %d/5, logistics %d/5, constraints %d/5 (overall %.1f)\n",
		r.Scores.InterestMatch, r.Scores.BudgetRealism, r.Scores.Logistics,
		r.Scores.SuitabilityForConstraints, r.Scores.Overall())
	if r.Scores.Comment != "" {
		fmt.Println("Reviewer:", r.Scores.Comment)
	}
}

func printSlot(label string, attractions []scout.Attraction) {
	if len(attractions) == 0 {
		return
	}
	fmt.Printf("  %s:\n", label)
	for _, a := range attractions {
		line := "    - " + a.Name
		if a.FinalPriceEstimate != nil && *a.FinalPriceEstimate > 0 {
			line += fmt.Sprintf(" (~%.0f EUR)", *a.FinalPriceEstimate)
		}
		fmt.Println(line)
		if a.ShortDescription != "" {
			fmt.Println("      " + a.ShortDescription)
		}
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "\nerror:", err)
	if hint := planner.Guidance(err); hint != "" {
		fmt.Fprintln(os.Stderr, hint)
	}
	os.Exit(1)
}

func ask(in *bufio.Scanner, prompt, def string) string {
	if def != "" {
		fmt.Printf("%s [%s]: ", prompt, def)
	} else {
		fmt.Printf("%s: ", prompt)
	}
	if !in.Scan() {
		return def
	}
	if v := strings.TrimSpace(in.Text()); v != "" {
		return v
	}
	return def
}

func askInt(in *bufio.Scanner, prompt string, def int) int {
	v := ask(in, prompt, strconv.Itoa(def))
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return n
	}
	return def
}

func askFloat(in *bufio.Scanner, prompt string, def float64) float64 {
	v := ask(in, prompt, strconv.FormatFloat(def, 'f', -1, 64))
	if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 {
		return n
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
