package profile

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"atlas/internal/llm"
)

// defaultCity is used when the dialogue finalizes without a city choice.
const defaultCity = "Rome"

const dialogueTemperature = 0.7

var sentenceRe = regexp.MustCompile(`[.!?]\s+`)

// slotLabels describe each slot; their embeddings anchor the classifier.
var slotLabels = map[string]string{
	SlotActivities:  "Preferred activities or attractions like hiking, parks, nightlife, beaches, museums.",
	SlotPace:        "Preferred travel pace like relaxed, slow, or packed schedule.",
	SlotBudget:      "Mentions budget, cheap or expensive, price range, cost.",
	SlotConstraints: "Mentions children, accessibility, mobility limitations, disabilities.",
	SlotFood:        "Mentions restaurants, food, cuisine preferences.",
	SlotOther:       "Other preferences not covered above.",
}

type Service struct {
	provider     llm.Provider
	embedModel   string
	simThreshold float64
	maxTurns     int
	log          zerolog.Logger

	labelEmbeddings map[string][]float32
}

func NewService(provider llm.Provider, embedModel string, simThreshold float64, maxTurns int, log zerolog.Logger) *Service {
	return &Service{
		provider:     provider,
		embedModel:   embedModel,
		simThreshold: simThreshold,
		maxTurns:     maxTurns,
		log:          log,
	}
}

// MaxTurns is the hard cap on clarifying questions.
func (s *Service) MaxTurns() int { return s.maxTurns }

// UpdateState folds a user message into the preference state. Sentences are
// classified into slots by embedding similarity; a sentence close enough to an
// existing snippet of the same slot replaces it instead of piling up.
// When embeddings are unavailable the text still lands in the "other" slot, so
// the dialogue keeps working without a local embedding model.
func (s *Service) UpdateState(ctx context.Context, state *State, userMsg string) {
	sentences := splitSentences(userMsg)
	if len(sentences) == 0 {
		return
	}

	labels, labelErr := s.slotEmbeddings(ctx)

	for _, sentence := range sentences {
		slot := SlotOther
		var emb []float32

		if labelErr == nil {
			vec, err := s.provider.Embed(ctx, s.embedModel, sentence)
			if err != nil {
				s.log.Warn().Err(err).Msg("embedding unavailable, classifying as other")
			} else {
				emb = vec
				slot = classify(vec, labels)
			}
		}

		if emb != nil {
			if best := bestMatch(state.Snippets, slot, emb); best != nil &&
				cosine(emb, best.Embedding) > s.simThreshold {
				best.Text = sentence
				best.Embedding = emb
				continue
			}
		}
		state.Snippets = append(state.Snippets, Snippet{Text: sentence, Embedding: emb, Slot: slot})
	}

	rebuildSlots(state)
	state.Turns++
}

// ProcessTurn runs one dialogue step and returns the validated model decision.
func (s *Service) ProcessTurn(ctx context.Context, state *State, lastUserMsg string, budget float64, people, days int) TurnResponse {
	prompt := s.dialoguePrompt(state, lastUserMsg, budget, people, days)

	raw, err := s.provider.Generate(ctx, llm.GenerateRequest{Prompt: prompt, Temperature: dialogueTemperature})
	if err != nil {
		s.log.Warn().Err(err).Msg("dialogue turn failed, using fallback question")
		return s.fallbackTurn(budget, people)
	}

	var resp TurnResponse
	if err := llm.DecodeObject(raw, &resp); err != nil {
		s.log.Warn().Err(err).Msg("dialogue response unparseable, using fallback question")
		return s.fallbackTurn(budget, people)
	}
	return validateTurn(resp, budget, people)
}

// FinalProfile assembles the travel profile from the dialogue outcome.
func (s *Service) FinalProfile(state *State, resp TurnResponse) TravelProfile {
	city := resp.ChosenCity
	if city == "" {
		city = defaultCity
	}
	return TravelProfile{
		RefinedProfile: resp.RefinedProfile,
		ChosenCity:     city,
		Constraints:    resp.Constraints,
		TravelStyle:    resp.TravelStyle,
		Slots:          state.Slots,
	}
}

// Summary renders the slot contents for prompts and display.
func (s *Service) Summary(state *State) string {
	lines := make([]string, 0, 5)
	for _, sl := range []struct{ slot, label string }{
		{SlotActivities, "Activities"},
		{SlotPace, "Pace"},
		{SlotFood, "Food"},
		{SlotConstraints, "Constraints"},
		{SlotBudget, "Budget"},
	} {
		value := state.Slots[sl.slot]
		if value == "" {
			value = "not specified yet"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", sl.label, value))
	}
	return strings.Join(lines, "\n")
}

func (s *Service) dialoguePrompt(state *State, lastUserMsg string, budget float64, people, days int) string {
	var b strings.Builder
	b.WriteString("You are the interest-refinement and city-matchmaker agent in a travel planning system.\n\n")
	fmt.Fprintf(&b, "We are interviewing a user to plan a %d-day city trip in Europe for %d people with a total budget of %.0f EUR.\n\n", days, people, budget)
	b.WriteString("CRITICAL INFORMATION ALREADY COLLECTED (do NOT ask about these):\n")
	fmt.Fprintf(&b, "- Total budget: %.0f EUR\n- Number of people: %d\n- Trip duration: %d days\n\n", budget, people, days)
	fmt.Fprintf(&b, "CURRENT SEMANTIC PROFILE (built from all previous messages):\n%s\n\n", s.Summary(state))
	fmt.Fprintf(&b, "Most recent user message:\n\"\"\"%s\"\"\"\n\n", lastUserMsg)
	b.WriteString("Your tasks:\n")
	b.WriteString("1. Focus on understanding interests, preferences, pace, food, and constraints.\n")
	b.WriteString("2. If there is enough information, recommend ONE European city and finalize.\n")
	b.WriteString("3. If not, ask ONE clarifying question.\n\n")
	b.WriteString("Return ONLY valid JSON with this structure:\n")
	fmt.Fprintf(&b, `{
  "action": "ask_question" or "finalize",
  "question": "string (if action is ask_question, else empty)",
  "refined_profile": "short natural language summary",
  "chosen_city": "string or null",
  "constraints": {
    "with_children": true/false/null,
    "with_disabled": true/false/null,
    "budget": %.0f,
    "people": %d
  },
  "travel_style": "slow"/"medium"/"fast"/null
}
`, budget, people)
	fmt.Fprintf(&b, "\nMaximum %d questions total, so be efficient. Return ONLY the JSON object, no additional text.\n", s.maxTurns)
	return b.String()
}

func (s *Service) fallbackTurn(budget float64, people int) TurnResponse {
	return validateTurn(TurnResponse{
		Action:   ActionAskQuestion,
		Question: "What type of activities or attractions interest you most?",
	}, budget, people)
}

// validateTurn repairs model output so downstream code never sees junk.
func validateTurn(resp TurnResponse, budget float64, people int) TurnResponse {
	if resp.Action != ActionAskQuestion && resp.Action != ActionFinalize {
		resp.Action = ActionAskQuestion
	}
	if resp.RefinedProfile == "" {
		resp.RefinedProfile = "User preferences not fully specified"
	}
	if resp.Constraints.Budget <= 0 {
		resp.Constraints.Budget = budget
	}
	if resp.Constraints.People <= 0 {
		resp.Constraints.People = people
	}
	return resp
}

// slotEmbeddings lazily computes and caches the slot label anchors.
func (s *Service) slotEmbeddings(ctx context.Context) (map[string][]float32, error) {
	if s.labelEmbeddings != nil {
		return s.labelEmbeddings, nil
	}
	labels := make(map[string][]float32, len(slotLabels))
	for slot, label := range slotLabels {
		vec, err := s.provider.Embed(ctx, s.embedModel, label)
		if err != nil {
			return nil, fmt.Errorf("slot label embedding: %w", err)
		}
		labels[slot] = vec
	}
	s.labelEmbeddings = labels
	return labels, nil
}

func splitSentences(text string) []string {
	parts := sentenceRe.Split(strings.TrimSpace(text), -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func classify(emb []float32, labels map[string][]float32) string {
	bestSlot, bestScore := SlotOther, math.Inf(-1)
	for slot, labelEmb := range labels {
		if score := cosine(emb, labelEmb); score > bestScore {
			bestScore, bestSlot = score, slot
		}
	}
	return bestSlot
}

func bestMatch(snippets []Snippet, slot string, emb []float32) *Snippet {
	var best *Snippet
	bestSim := math.Inf(-1)
	for i := range snippets {
		if snippets[i].Slot != slot || snippets[i].Embedding == nil {
			continue
		}
		if sim := cosine(emb, snippets[i].Embedding); sim > bestSim {
			bestSim, best = sim, &snippets[i]
		}
	}
	return best
}

func rebuildSlots(state *State) {
	for k := range state.Slots {
		state.Slots[k] = ""
	}
	for _, sn := range state.Snippets {
		if state.Slots[sn.Slot] != "" {
			state.Slots[sn.Slot] += " "
		}
		state.Slots[sn.Slot] += sn.Text
	}
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return -1
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return -1
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
