package store

import "time"

// TransactionRow is one (order, item) membership fact from the point-of-sale
// log. An (OrderID, ItemID) combination may repeat upstream (quantity > 1 is
// sometimes exported as repeated rows); the mining layer collapses duplicates
// with set semantics.
type TransactionRow struct {
	OrderID  string
	ItemID   string
	Category string
	Quantity int
}

// Run records one saved mining run: the thresholds it was computed with and
// when. The rules themselves live in run_rules. Saved runs are derived
// reports; the authoritative input is always the transactions table.
type Run struct {
	ID            string
	CreatedAt     time.Time
	MinSupport    float64
	MinConfidence float64
	MinLift       float64
	MinBasket     int
	MaxBasket     int
	RuleCount     int
}

// RunRule is one scored association rule persisted with a run.
type RunRule struct {
	RunID      string
	Product1   string
	Product2   string
	Support    float64
	Confidence float64
	Lift       float64
}
