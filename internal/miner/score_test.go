package miner

import (
	"errors"
	"math"
	"testing"

	"github.com/blackwell-systems/basketlift/internal/basket"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScore_Scenario(t *testing.T) {
	counts := Aggregate(scenarioIndex(), 0, 0)

	rule, err := Score(basket.NewPair("A", "B"), counts)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	if !almostEqual(rule.Support, 2.0/3.0) {
		t.Errorf("expected support 2/3, got %v", rule.Support)
	}
	if !almostEqual(rule.Confidence, 2.0/3.0) {
		t.Errorf("expected confidence(A→B) 2/3, got %v", rule.Confidence)
	}
	if !almostEqual(rule.ConfidenceReverse, 1.0) {
		t.Errorf("expected confidence(B→A) 1.0, got %v", rule.ConfidenceReverse)
	}
	// lift = (2 * 3) / (3 * 2) = 1.0 via the closed form, not a chained
	// division by the order total.
	if !almostEqual(rule.Lift, 1.0) {
		t.Errorf("expected lift 1.0, got %v", rule.Lift)
	}
}

func TestScore_ConfidenceRelation(t *testing.T) {
	// confidence(a→b) = support / (SingleCount[a] / TotalOrders)
	counts := Aggregate(scenarioIndex(), 0, 0)

	for pair := range counts.Pairs {
		rule, err := Score(pair, counts)
		if err != nil {
			t.Fatalf("Score(%v) failed: %v", pair, err)
		}
		want := rule.Support / (float64(counts.Singles[pair.A]) / float64(counts.Orders))
		if !almostEqual(rule.Confidence, want) {
			t.Errorf("pair %v: confidence %v violates support relation %v", pair, rule.Confidence, want)
		}
	}
}

func TestScore_LiftSymmetry(t *testing.T) {
	// Lift must not depend on which item is treated as the antecedent. The
	// closed form is symmetric by construction; assert it against the
	// manually swapped computation.
	counts := Aggregate(scenarioIndex(), 0, 0)

	for pair := range counts.Pairs {
		rule, err := Score(pair, counts)
		if err != nil {
			t.Fatalf("Score(%v) failed: %v", pair, err)
		}
		swapped := float64(counts.Pairs[pair]) * float64(counts.Orders) /
			(float64(counts.Singles[pair.B]) * float64(counts.Singles[pair.A]))
		if !almostEqual(rule.Lift, swapped) {
			t.Errorf("pair %v: lift %v not symmetric (%v)", pair, rule.Lift, swapped)
		}
	}
}

func TestScore_EmptyDataset(t *testing.T) {
	counts := Counts{
		Pairs:   map[basket.Pair]int{},
		Singles: map[string]int{},
		Orders:  0,
	}

	_, err := Score(basket.NewPair("A", "B"), counts)
	if !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestScore_InconsistentCount(t *testing.T) {
	// A pair referencing an item with no single count must not produce an
	// infinite or NaN score.
	counts := Counts{
		Pairs:   map[basket.Pair]int{basket.NewPair("A", "B"): 1},
		Singles: map[string]int{"A": 1}, // B missing
		Orders:  2,
	}

	_, err := Score(basket.NewPair("A", "B"), counts)
	if !errors.Is(err, ErrInconsistentCount) {
		t.Errorf("expected ErrInconsistentCount, got %v", err)
	}
}

func TestScoreAll_SkipsInconsistentPairs(t *testing.T) {
	counts := Counts{
		Pairs: map[basket.Pair]int{
			basket.NewPair("A", "B"): 1,
			basket.NewPair("A", "X"): 1, // X has no single count
		},
		Singles: map[string]int{"A": 2, "B": 1},
		Orders:  2,
	}

	rules, skipped, err := ScoreAll(counts)
	if err != nil {
		t.Fatalf("ScoreAll failed: %v", err)
	}
	if len(rules) != 1 {
		t.Errorf("expected 1 scored rule, got %d", len(rules))
	}
	if skipped != 1 {
		t.Errorf("expected 1 skipped rule, got %d", skipped)
	}
}

func TestScoreAll_EmptyDataset(t *testing.T) {
	_, _, err := ScoreAll(Counts{Orders: 0})
	if !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
}
