// README: Attraction model shared by the scout, places, budget, and schedule modules.
package scout

// Attraction is one candidate activity proposed for the chosen city.
// The Google* fields are filled in by the places enrichment step and stay nil
// when enrichment is disabled or fails for the entry.
type Attraction struct {
	Name                 string   `json:"name"`
	ShortDescription     string   `json:"short_description"`
	ApproxPricePerPerson float64  `json:"approx_price_per_person"`
	Tags                 []string `json:"tags"`
	ReasonForUser        string   `json:"reason_for_user"`

	GooglePlaceID          string   `json:"google_place_id,omitempty"`
	GooglePriceLevel       *int     `json:"google_price_level,omitempty"`
	GoogleRating           *float64 `json:"google_rating,omitempty"`
	GoogleUserRatingsTotal *int     `json:"google_user_ratings_total,omitempty"`
	Location               *LatLng  `json:"location,omitempty"`

	// FinalPriceEstimate is the whole-group price set by the budget filter.
	FinalPriceEstimate *float64 `json:"final_price_estimate,omitempty"`
}

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// HasTag reports whether the attraction carries the given tag.
func (a Attraction) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Request describes what the scout should look for.
type Request struct {
	City         string
	Profile      string
	WithChildren bool
	WithDisabled bool
	Budget       float64
	People       int
}
