package miner

import "github.com/blackwell-systems/basketlift/internal/basket"

// Aggregate reduces an order index into pair and single-item counters.
// For every order, each pair of distinct items increments its counter once,
// and each distinct item increments its counter once. Orders are counted,
// not raw rows, so duplicate upstream rows cannot double count.
//
// The basket-size window [minSize, maxSize] applies to pair enumeration
// only: single counts cover every basket, since they are the denominator
// for confidence and lift over the whole order history. maxSize <= 0 means
// unbounded.
func Aggregate(idx *basket.Index, minSize, maxSize int) Counts {
	counts := Counts{
		Pairs:   make(map[basket.Pair]int),
		Singles: make(map[string]int),
		Orders:  idx.Orders(),
	}

	idx.Each(func(orderID string, items []string) {
		for _, item := range items {
			counts.Singles[item]++
		}
		for _, pair := range basket.Enumerate(items, minSize, maxSize) {
			counts.Pairs[pair]++
		}
	})

	return counts
}
