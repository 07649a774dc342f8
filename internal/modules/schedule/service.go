package schedule

import (
	"math"

	"github.com/rs/zerolog"

	"atlas/internal/modules/scout"
)

type Service struct {
	log zerolog.Logger
}

func NewService(log zerolog.Logger) *Service {
	return &Service{log: log}
}

// slotsOf returns addressable slot slices of a day in fill order.
func slotsOf(d *DayPlan) []*[]scout.Attraction {
	return []*[]scout.Attraction{&d.Morning, &d.Afternoon, &d.Evening}
}

// Build distributes attractions over the requested number of days.
// First pass fills each day's morning/afternoon/evening in order; leftovers are
// then balanced into the least-loaded slot of each day round-robin.
func (s *Service) Build(attractions []scout.Attraction, days int) Itinerary {
	if days <= 0 {
		days = 1
	}
	it := Itinerary{Days: make([]DayPlan, days)}
	if len(attractions) == 0 {
		return it
	}

	idx := 0
	for d := 0; d < days && idx < len(attractions); d++ {
		for _, slot := range slotsOf(&it.Days[d]) {
			if idx >= len(attractions) {
				break
			}
			*slot = append(*slot, attractions[idx])
			idx++
		}
	}

	// Overflow: one slot per day is already taken, spread the rest evenly.
	day := 0
	for ; idx < len(attractions); idx++ {
		leastLoaded := s.leastLoadedSlot(&it.Days[day])
		*leastLoaded = append(*leastLoaded, attractions[idx])
		day = (day + 1) % days
	}

	s.log.Debug().Int("attractions", len(attractions)).Int("days", days).Msg("itinerary built")
	return it
}

func (s *Service) leastLoadedSlot(d *DayPlan) *[]scout.Attraction {
	slots := slotsOf(d)
	best := slots[0]
	for _, slot := range slots[1:] {
		if len(*slot) < len(*best) {
			best = slot
		}
	}
	return best
}

// Measure computes distribution metrics for an itinerary.
// BalanceScore is 100 for a perfectly even slot split and bottoms out around
// 56 when everything piles into one slot.
func (s *Service) Measure(it Itinerary) Metrics {
	var m Metrics
	for _, d := range it.Days {
		m.Morning += len(d.Morning)
		m.Afternoon += len(d.Afternoon)
		m.Evening += len(d.Evening)
	}
	m.Total = m.Morning + m.Afternoon + m.Evening
	if len(it.Days) > 0 {
		m.PerDay = float64(m.Total) / float64(len(it.Days))
	}
	m.BalanceScore = balanceScore(m.Morning, m.Afternoon, m.Evening)
	return m
}

func balanceScore(morning, afternoon, evening int) float64 {
	total := morning + afternoon + evening
	if total == 0 {
		return 0
	}
	ideal := float64(total) / 3
	deviation := (math.Abs(float64(morning)-ideal) +
		math.Abs(float64(afternoon)-ideal) +
		math.Abs(float64(evening)-ideal)) / 3
	return 100 * (1 - deviation/float64(total))
}
