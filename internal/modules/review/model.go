// README: Itinerary evaluation scores model.
package review

// Scores is the structured quality assessment of a finished itinerary.
// Each dimension is scored 1 (poor) to 5 (excellent).
type Scores struct {
	InterestMatch             int    `json:"interest_match"`
	BudgetRealism             int    `json:"budget_realism"`
	Logistics                 int    `json:"logistics"`
	SuitabilityForConstraints int    `json:"suitability_for_constraints"`
	Comment                   string `json:"comment"`
}

// Overall is the mean of the four dimension scores.
func (s Scores) Overall() float64 {
	return float64(s.InterestMatch+s.BudgetRealism+s.Logistics+s.SuitabilityForConstraints) / 4.0
}
