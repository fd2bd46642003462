package miner

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/basketlift/internal/basket"
)

var (
	// ErrEmptyDataset is returned when scoring is attempted over zero
	// orders. Support and confidence are undefined without a denominator.
	ErrEmptyDataset = errors.New("empty dataset: no orders to score")

	// ErrInconsistentCount is returned when a pair references an item with
	// a zero single-order count. It indicates the pair and single counters
	// were built from different basket sets; the scorer refuses to emit an
	// infinity or NaN as a valid score.
	ErrInconsistentCount = errors.New("inconsistent count: pair references item with zero single count")
)

// Score derives support, confidence (both directions) and lift for one
// canonical pair from the aggregated counters.
//
// Lift uses the closed form
//
//	lift = (pairOrders * totalOrders) / (singleA * singleB)
//
// which is the textbook observed/expected ratio. 1.0 means the two items
// co-occur exactly as often as independence predicts.
func Score(p basket.Pair, c Counts) (ScoredRule, error) {
	if c.Orders == 0 {
		return ScoredRule{}, ErrEmptyDataset
	}

	singleA := c.Singles[p.A]
	singleB := c.Singles[p.B]
	if singleA == 0 || singleB == 0 {
		return ScoredRule{}, fmt.Errorf("pair (%s, %s): %w", p.A, p.B, ErrInconsistentCount)
	}

	pairOrders := c.Pairs[p]
	total := float64(c.Orders)

	return ScoredRule{
		Product1:          p.A,
		Product2:          p.B,
		Support:           float64(pairOrders) / total,
		Confidence:        float64(pairOrders) / float64(singleA),
		ConfidenceReverse: float64(pairOrders) / float64(singleB),
		Lift:              float64(pairOrders) * total / (float64(singleA) * float64(singleB)),
	}, nil
}

// ScoreAll scores every aggregated pair. Pairs whose counts are
// inconsistent are skipped and tallied in the returned skip count rather
// than aborting the run.
func ScoreAll(c Counts) ([]ScoredRule, int, error) {
	if c.Orders == 0 {
		return nil, 0, ErrEmptyDataset
	}

	rules := make([]ScoredRule, 0, len(c.Pairs))
	skipped := 0
	for pair := range c.Pairs {
		rule, err := Score(pair, c)
		if err != nil {
			if errors.Is(err, ErrInconsistentCount) {
				skipped++
				continue
			}
			return nil, skipped, err
		}
		rules = append(rules, rule)
	}

	return rules, skipped, nil
}
