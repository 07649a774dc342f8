package schedule

import (
	"fmt"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"atlas/internal/modules/scout"
)

func makeAttractions(n int) []scout.Attraction {
	out := make([]scout.Attraction, n)
	for i := range out {
		out[i] = scout.Attraction{Name: fmt.Sprintf("Spot %d", i+1)}
	}
	return out
}

func TestBuild_FillsSlotsInOrder(t *testing.T) {
	s := NewService(zerolog.Nop())

	it := s.Build(makeAttractions(4), 2)

	if len(it.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(it.Days))
	}
	d1 := it.Days[0]
	if len(d1.Morning) != 1 || d1.Morning[0].Name != "Spot 1" {
		t.Errorf("day 1 morning: %+v", d1.Morning)
	}
	if len(d1.Afternoon) != 1 || d1.Afternoon[0].Name != "Spot 2" {
		t.Errorf("day 1 afternoon: %+v", d1.Afternoon)
	}
	if len(d1.Evening) != 1 || d1.Evening[0].Name != "Spot 3" {
		t.Errorf("day 1 evening: %+v", d1.Evening)
	}
	if len(it.Days[1].Morning) != 1 || it.Days[1].Morning[0].Name != "Spot 4" {
		t.Errorf("day 2 morning: %+v", it.Days[1].Morning)
	}
}

func TestBuild_OverflowBalancesAcrossDays(t *testing.T) {
	s := NewService(zerolog.Nop())

	// 2 days * 3 slots = 6 direct placements; 2 overflow.
	it := s.Build(makeAttractions(8), 2)

	total := 0
	for _, d := range it.Days {
		total += d.count()
	}
	if total != 8 {
		t.Fatalf("all 8 attractions must be scheduled, got %d", total)
	}
	if it.Days[0].count() != 4 || it.Days[1].count() != 4 {
		t.Errorf("overflow should spread evenly: day1=%d day2=%d", it.Days[0].count(), it.Days[1].count())
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	s := NewService(zerolog.Nop())

	it := s.Build(nil, 3)
	if len(it.Days) != 3 {
		t.Fatalf("expected 3 empty days, got %d", len(it.Days))
	}
	for i, d := range it.Days {
		if d.count() != 0 {
			t.Errorf("day %d should be empty", i+1)
		}
	}
}

func TestBuild_NonPositiveDaysDefaultsToOne(t *testing.T) {
	s := NewService(zerolog.Nop())

	it := s.Build(makeAttractions(2), 0)
	if len(it.Days) != 1 {
		t.Errorf("expected 1 day fallback, got %d", len(it.Days))
	}
}

func TestMeasure(t *testing.T) {
	s := NewService(zerolog.Nop())

	it := s.Build(makeAttractions(6), 2)
	m := s.Measure(it)

	if m.Total != 6 {
		t.Errorf("Total = %d, want 6", m.Total)
	}
	if m.Morning != 2 || m.Afternoon != 2 || m.Evening != 2 {
		t.Errorf("slot counts = %d/%d/%d, want 2/2/2", m.Morning, m.Afternoon, m.Evening)
	}
	if m.PerDay != 3 {
		t.Errorf("PerDay = %v, want 3", m.PerDay)
	}
	if m.BalanceScore != 100 {
		t.Errorf("even split should score 100, got %v", m.BalanceScore)
	}
}

func TestMeasure_EmptyItineraryScoresZero(t *testing.T) {
	s := NewService(zerolog.Nop())

	m := s.Measure(Itinerary{Days: make([]DayPlan, 2)})
	if m.BalanceScore != 0 {
		t.Errorf("empty itinerary balance should be 0, got %v", m.BalanceScore)
	}
}

func TestBalanceScore_SkewedDistribution(t *testing.T) {
	even := balanceScore(2, 2, 2)
	skewed := balanceScore(6, 0, 0)
	if skewed >= even {
		t.Errorf("skewed balance (%v) should score below even (%v)", skewed, even)
	}
}

func TestBalanceScore_SingleSlotFloor(t *testing.T) {
	// All attractions in one slot: deviation/total is 4/9 regardless of count,
	// so the score floors at 100*5/9 rather than 0.
	floor := 100.0 * 5 / 9
	for _, n := range []int{1, 3, 9} {
		got := balanceScore(n, 0, 0)
		if math.Abs(got-floor) > 1e-9 {
			t.Errorf("balanceScore(%d,0,0) = %v, want %v", n, got, floor)
		}
	}
}
