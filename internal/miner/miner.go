// Package miner aggregates per-order baskets into pair co-occurrence
// counts and scores each pair with the support/confidence/lift triad.
package miner

import (
	"fmt"
	"sort"

	"github.com/blackwell-systems/basketlift/internal/basket"
	"github.com/blackwell-systems/basketlift/internal/config"
	"github.com/blackwell-systems/basketlift/internal/store"
)

// Miner computes association rules and co-occurrence views over the
// transaction store. It holds no state between calls: every operation
// recomputes from the current store snapshot.
type Miner struct {
	store *store.Store
}

// New creates a new Miner instance with the given store.
func New(store *store.Store) *Miner {
	return &Miner{store: store}
}

// Mine runs the full pipeline: load rows, build the order index, aggregate
// pair and single counts, score every pair, then filter and rank by the
// given thresholds. Thresholds are validated before any computation.
// Returns ErrEmptyDataset when the store holds no orders.
func (m *Miner) Mine(t config.Thresholds, limit int) (*Result, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	rows, err := m.store.TransactionRows()
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	idx := basket.Build(rows)
	if idx.Orders() == 0 {
		return nil, ErrEmptyDataset
	}

	counts := Aggregate(idx, t.MinBasketSize, t.MaxBasketSize)

	rules, skipped, err := ScoreAll(counts)
	if err != nil {
		return nil, err
	}

	items := make(map[string]struct{})
	for _, row := range rows {
		items[row.ItemID] = struct{}{}
	}

	return &Result{
		Rules:       FilterAndRank(rules, t, limit),
		TotalOrders: counts.Orders,
		TotalItems:  len(items),
		TotalRows:   len(rows),
		Skipped:     skipped,
	}, nil
}

// PairCounts returns the raw pair co-occurrence counts over all orders,
// sorted by order count descending then canonical pair, along with the
// total order count. The basket-size window applies as in Mine.
func (m *Miner) PairCounts(minSize, maxSize int) ([]PairCount, int, error) {
	rows, err := m.store.TransactionRows()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load transactions: %w", err)
	}

	return pairCounts(basket.Build(rows), minSize, maxSize)
}

// CategoryPairCounts returns co-occurrence counts over category pairs.
// Same algorithm as PairCounts with category as the grouping key; no
// support/confidence/lift is derived for this view. Basket-size filtering
// does not apply: every order with two or more distinct categories counts.
func (m *Miner) CategoryPairCounts() ([]PairCount, int, error) {
	rows, err := m.store.TransactionRows()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load transactions: %w", err)
	}

	return pairCounts(basket.BuildByCategory(rows), 0, 0)
}

func pairCounts(idx *basket.Index, minSize, maxSize int) ([]PairCount, int, error) {
	counts := Aggregate(idx, minSize, maxSize)

	out := make([]PairCount, 0, len(counts.Pairs))
	for pair, n := range counts.Pairs {
		out = append(out, PairCount{Pair: pair, Orders: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Orders != out[j].Orders {
			return out[i].Orders > out[j].Orders
		}
		return out[i].Pair.Less(out[j].Pair)
	})

	return out, counts.Orders, nil
}

// Stats summarizes the loaded snapshot: order and item counts and the
// basket-size distribution.
func (m *Miner) Stats() (*DatasetStats, error) {
	rows, err := m.store.TransactionRows()
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	idx := basket.Build(rows)
	hist := idx.SizeHistogram()

	stats := &DatasetStats{
		Orders:        idx.Orders(),
		Rows:          len(rows),
		SizeHistogram: hist,
	}

	items := make(map[string]struct{})
	for _, row := range rows {
		items[row.ItemID] = struct{}{}
	}
	stats.DistinctItems = len(items)

	if stats.Orders == 0 {
		return stats, nil
	}

	totalItems := 0
	first := true
	for size, orders := range hist {
		totalItems += size * orders
		if first || size < stats.MinBasket {
			stats.MinBasket = size
		}
		if first || size > stats.MaxBasket {
			stats.MaxBasket = size
		}
		first = false
	}
	stats.MeanBasket = float64(totalItems) / float64(stats.Orders)

	return stats, nil
}
