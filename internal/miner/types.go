package miner

import "github.com/blackwell-systems/basketlift/internal/basket"

// Counts holds the aggregated co-occurrence counters for one input
// snapshot. Pairs counts the distinct orders containing both items of a
// pair; Singles counts the distinct orders containing each item; Orders is
// the total distinct-order count. All counters are monotonic non-negative
// integers built in a single pass; there is no decrement.
type Counts struct {
	Pairs   map[basket.Pair]int
	Singles map[string]int
	Orders  int
}

// ScoredRule is one scored association rule for a canonical item pair.
// Confidence is the a→b direction (Product1 as antecedent), the default
// reported direction; ConfidenceReverse is b→a. Lift is symmetric.
type ScoredRule struct {
	Product1          string
	Product2          string
	Support           float64
	Confidence        float64
	ConfidenceReverse float64
	Lift              float64
}

// PairCount is the raw co-occurrence view: a pair and the number of
// distinct orders containing it.
type PairCount struct {
	Pair   basket.Pair
	Orders int
}

// Result is the output of a full mining run.
type Result struct {
	Rules       []ScoredRule
	TotalOrders int
	TotalItems  int
	TotalRows   int
	// Skipped counts rules dropped because their single counts were
	// inconsistent with the pair counts. Always zero when both counters
	// come from the same aggregation pass; tracked defensively.
	Skipped int
}

// DatasetStats summarizes the loaded transaction snapshot.
type DatasetStats struct {
	Orders        int
	DistinctItems int
	Rows          int
	MinBasket     int
	MaxBasket     int
	MeanBasket    float64
	SizeHistogram map[int]int
}
