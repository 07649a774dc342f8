package scout

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"atlas/internal/llm"
)

// maxAttractions caps how many candidates one scout call returns.
const maxAttractions = 10

// scoutTemperature is deliberately high: variety matters more than determinism here.
const scoutTemperature = 0.8

type Service struct {
	provider llm.Provider
	log      zerolog.Logger
}

func NewService(provider llm.Provider, log zerolog.Logger) *Service {
	return &Service{provider: provider, log: log}
}

// rawAttraction decodes leniently: models frequently emit prices as strings.
type rawAttraction struct {
	Name                 string   `json:"name"`
	ShortDescription     string   `json:"short_description"`
	ApproxPricePerPerson any      `json:"approx_price_per_person"`
	Tags                 []string `json:"tags"`
	ReasonForUser        string   `json:"reason_for_user"`
}

// GenerateAttractions asks the model for candidate attractions in req.City and
// normalizes whatever comes back. A response with no parseable entries is an error;
// callers decide whether to fall back.
func (s *Service) GenerateAttractions(ctx context.Context, req Request) ([]Attraction, error) {
	prompt := buildScoutPrompt(req)

	raw, err := s.provider.Generate(ctx, llm.GenerateRequest{Prompt: prompt, Temperature: scoutTemperature})
	if err != nil {
		return nil, fmt.Errorf("scout generation: %w", err)
	}

	var entries []rawAttraction
	if err := llm.DecodeArray(raw, &entries); err != nil {
		// Some models wrap the array in an object; retry on the first nested array.
		var wrapper map[string][]rawAttraction
		if llm.DecodeObject(raw, &wrapper) == nil {
			for _, v := range wrapper {
				entries = v
				break
			}
		}
		if len(entries) == 0 {
			return nil, fmt.Errorf("scout response unparseable: %w", err)
		}
	}

	attractions := normalize(entries, req.City)
	s.log.Debug().Int("parsed", len(entries)).Int("kept", len(attractions)).Str("city", req.City).Msg("scouted attractions")

	if len(attractions) > maxAttractions {
		attractions = attractions[:maxAttractions]
	}
	return attractions, nil
}

// Fallback returns a generic attraction set for cities where generation failed.
func (s *Service) Fallback(city string) []Attraction {
	mk := func(name, desc string, price float64, tags ...string) Attraction {
		return Attraction{
			Name:                 name,
			ShortDescription:     desc,
			ApproxPricePerPerson: price,
			Tags:                 tags,
			ReasonForUser:        fmt.Sprintf("A reliable choice for any visit to %s", city),
		}
	}
	return []Attraction{
		mk(fmt.Sprintf("%s Old Town walking tour", city), "Guided walk through the historic centre", 15, "walking", "historical"),
		mk(fmt.Sprintf("%s Central Market", city), "Local produce, street food and crafts", 0, "food", "market", "free"),
		mk(fmt.Sprintf("%s City Museum", city), "The main museum covering local history and art", 12, "museum", "historical"),
		mk(fmt.Sprintf("%s Riverside Park", city), "Green space for a relaxed stroll", 0, "outdoor", "park", "free"),
		mk(fmt.Sprintf("%s Panoramic Viewpoint", city), "The classic view over the city", 8, "viewpoint", "landmark"),
		mk(fmt.Sprintf("Evening food tour of %s", city), "Sample the signature local dishes", 35, "food", "evening"),
	}
}

func buildScoutPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("You are a travel planning assistant.\n")
	fmt.Fprintf(&b, "The user wants a trip to %s.\n\n", req.City)
	fmt.Fprintf(&b, "USER'S ACTUAL PREFERENCES:\n%s\n\n", req.Profile)

	if reqs := preferenceRequirements(req.Profile); reqs != "" {
		fmt.Fprintf(&b, "SPECIFIC USER REQUIREMENTS:\n%s\n\n", reqs)
	}

	b.WriteString("CONSTRAINTS:\n")
	fmt.Fprintf(&b, "- With children: %t\n", req.WithChildren)
	fmt.Fprintf(&b, "- With disabled traveler: %t\n", req.WithDisabled)
	fmt.Fprintf(&b, "- Budget (entire trip, group): %.0f EUR\n", req.Budget)
	fmt.Fprintf(&b, "- People: %d\n\n", req.People)

	b.WriteString("CRITICAL: Match attractions to the user's ACTUAL preferences.\n")
	fmt.Fprintf(&b, "Propose EXACTLY %d candidate attractions in %s that match the user's interests and constraints.\n\n", maxAttractions, req.City)
	b.WriteString("For each attraction, output an object with:\n")
	b.WriteString("- name\n- short_description\n- approx_price_per_person (number in EUR)\n")
	b.WriteString("- tags: an array of strings\n- reason_for_user: one sentence explaining why this matches the profile.\n\n")
	fmt.Fprintf(&b, "Return ONLY a JSON array of EXACTLY %d objects (no extra text).\n", maxAttractions)
	return b.String()
}

// preferenceRequirements turns free-text profile hints into hard instructions,
// so the model does not drift back to generic sightseeing.
func preferenceRequirements(profile string) string {
	p := strings.ToLower(profile)
	var reqs []string

	if strings.Contains(p, "hiking") || strings.Contains(p, "forest") || strings.Contains(p, "park") {
		reqs = append(reqs, "- MUST INCLUDE: hiking trails, forests, parks, outdoor nature areas")
	}
	switch {
	case strings.Contains(p, "not cultural") || strings.Contains(p, "no cultural") || strings.Contains(p, "not historical"):
		reqs = append(reqs, "- MUST AVOID: museums, historical sites, cultural attractions")
	case strings.Contains(p, "cultural") || strings.Contains(p, "museum") || strings.Contains(p, "historical"):
		reqs = append(reqs, "- SHOULD INCLUDE: cultural and historical attractions")
	}
	switch {
	case strings.Contains(p, "relaxed") || strings.Contains(p, "slow"):
		reqs = append(reqs, "- PREFER: relaxed pace activities, not crowded or touristy")
	case strings.Contains(p, "fast") || strings.Contains(p, "busy"):
		reqs = append(reqs, "- PREFER: active, fast-paced experiences")
	}
	if strings.Contains(p, "food") || strings.Contains(p, "cuisine") {
		reqs = append(reqs, "- INCLUDE: local food experiences, restaurants, markets")
	}
	return strings.Join(reqs, "\n")
}

var numberRe = regexp.MustCompile(`\d+(\.\d+)?`)

// normalize fills defaults for missing fields and coerces sloppy prices.
// Entries without any name still get a positional placeholder, matching the
// most forgiving interpretation of model output.
func normalize(entries []rawAttraction, city string) []Attraction {
	out := make([]Attraction, 0, len(entries))
	for i, e := range entries {
		a := Attraction{
			Name:             strings.TrimSpace(e.Name),
			ShortDescription: strings.TrimSpace(e.ShortDescription),
			Tags:             e.Tags,
			ReasonForUser:    strings.TrimSpace(e.ReasonForUser),
		}
		if a.Name == "" {
			a.Name = fmt.Sprintf("Attraction %d in %s", i+1, city)
		}
		if a.ShortDescription == "" {
			a.ShortDescription = fmt.Sprintf("Popular attraction in %s", city)
		}
		if len(a.Tags) == 0 {
			a.Tags = []string{"sightseeing"}
		}
		if a.ReasonForUser == "" {
			a.ReasonForUser = fmt.Sprintf("Recommended attraction in %s", city)
		}
		a.ApproxPricePerPerson = coercePrice(e.ApproxPricePerPerson)
		out = append(out, a)
	}
	return out
}

// coercePrice accepts numbers, numeric strings, and strings with embedded
// numbers ("about 12 EUR"). Anything else defaults to a mid-range ticket.
func coercePrice(v any) float64 {
	const defaultPrice = 15.0
	switch p := v.(type) {
	case float64:
		if p < 0 {
			return defaultPrice
		}
		return p
	case string:
		if m := numberRe.FindString(p); m != "" {
			var f float64
			if _, err := fmt.Sscanf(m, "%f", &f); err == nil {
				return f
			}
		}
		return defaultPrice
	default:
		return defaultPrice
	}
}
