// README: Preference state and travel profile models for the refinement dialogue.
package profile

// Dialogue turn actions returned by the model.
const (
	ActionAskQuestion = "ask_question"
	ActionFinalize    = "finalize"
)

// Slot names for classified preference snippets.
const (
	SlotActivities  = "activities"
	SlotPace        = "pace"
	SlotBudget      = "budget"
	SlotConstraints = "constraints"
	SlotFood        = "food"
	SlotOther       = "other"
)

// Snippet is one user sentence with its embedding and assigned slot.
type Snippet struct {
	Text      string
	Embedding []float32
	Slot      string
}

// State accumulates user preferences across dialogue turns.
type State struct {
	Snippets []Snippet
	Slots    map[string]string
	Turns    int
}

// NewState returns an empty preference state with all slots initialised.
func NewState() *State {
	return &State{
		Slots: map[string]string{
			SlotActivities:  "",
			SlotPace:        "",
			SlotBudget:      "",
			SlotConstraints: "",
			SlotFood:        "",
			SlotOther:       "",
		},
	}
}

// Constraints are the hard trip parameters carried through the pipeline.
type Constraints struct {
	WithChildren *bool   `json:"with_children"`
	WithDisabled *bool   `json:"with_disabled"`
	Budget       float64 `json:"budget"`
	People       int     `json:"people"`
}

// TravelProfile is the finalized output of the refinement dialogue.
type TravelProfile struct {
	RefinedProfile string            `json:"refined_profile"`
	ChosenCity     string            `json:"chosen_city"`
	Constraints    Constraints       `json:"constraints"`
	TravelStyle    string            `json:"travel_style,omitempty"`
	Slots          map[string]string `json:"semantic_profile_slots,omitempty"`
}

// TurnResponse is the structured model output for one dialogue step.
type TurnResponse struct {
	Action         string      `json:"action"`
	Question       string      `json:"question"`
	RefinedProfile string      `json:"refined_profile"`
	ChosenCity     string      `json:"chosen_city"`
	Constraints    Constraints `json:"constraints"`
	TravelStyle    string      `json:"travel_style"`
}
