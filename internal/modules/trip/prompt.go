package trip

import (
	"fmt"
	"strings"
)

// BuildPrompt deterministically renders the itinerary prompt for a valid request.
// Pure function: same request, same prompt.
func BuildPrompt(r Request) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("You are a travel planning assistant.\n")
	fmt.Fprintf(&b, "Plan a day-by-day itinerary for a %d-day trip to %s.\n", r.Days, strings.TrimSpace(r.Destination))

	if interests := cleanInterests(r.Interests); len(interests) > 0 {
		fmt.Fprintf(&b, "The traveler is particularly interested in: %s.\n", strings.Join(interests, ", "))
	}

	b.WriteString("For each day, list morning, afternoon and evening activities, each with a one-line description.\n")
	fmt.Fprintf(&b, "Label the days \"Day 1\" through \"Day %d\" and keep the plan realistic for the destination.\n", r.Days)

	return b.String(), nil
}

// cleanInterests drops blank tags and trims the rest, preserving order.
func cleanInterests(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
