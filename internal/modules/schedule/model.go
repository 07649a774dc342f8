// README: Itinerary structures for the day/slot schedule.
package schedule

import "atlas/internal/modules/scout"

// DayPlan holds the attractions assigned to one day, split into time slots.
type DayPlan struct {
	Morning   []scout.Attraction `json:"morning"`
	Afternoon []scout.Attraction `json:"afternoon"`
	Evening   []scout.Attraction `json:"evening"`
}

// Itinerary is the complete multi-day plan. Days[0] is day 1.
type Itinerary struct {
	Days []DayPlan `json:"days"`
}

// Metrics describes how attractions are distributed across the itinerary.
type Metrics struct {
	Total        int     `json:"total_attractions"`
	Morning      int     `json:"morning_attractions"`
	Afternoon    int     `json:"afternoon_attractions"`
	Evening      int     `json:"evening_attractions"`
	PerDay       float64 `json:"attractions_per_day"`
	BalanceScore float64 `json:"balance_score"`
}

func (d DayPlan) count() int {
	return len(d.Morning) + len(d.Afternoon) + len(d.Evening)
}
