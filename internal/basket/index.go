// Package basket groups raw transaction rows into per-order baskets and
// enumerates the item pairs each basket contains. It is the pure
// combinatorial core of basketlift: no I/O, no global state.
package basket

import (
	"sort"

	"github.com/blackwell-systems/basketlift/internal/store"
)

// Index maps each order to the set of distinct items it contains.
// Duplicate (order, item) rows in the input collapse to a single membership
// fact; an order's quantity of an item never affects pair counts.
type Index struct {
	baskets map[string][]string
}

// Build groups transaction rows by order id. Each basket is the sorted set
// of distinct item ids in that order. Empty input yields an empty index.
func Build(rows []store.TransactionRow) *Index {
	sets := make(map[string]map[string]struct{})
	for _, row := range rows {
		items, ok := sets[row.OrderID]
		if !ok {
			items = make(map[string]struct{})
			sets[row.OrderID] = items
		}
		items[row.ItemID] = struct{}{}
	}

	baskets := make(map[string][]string, len(sets))
	for orderID, items := range sets {
		basket := make([]string, 0, len(items))
		for item := range items {
			basket = append(basket, item)
		}
		sort.Strings(basket)
		baskets[orderID] = basket
	}

	return &Index{baskets: baskets}
}

// BuildByCategory groups transaction rows by order id, keyed on category
// instead of item id. Rows with an empty category are skipped. Used by the
// category-pair variant, which counts co-occurring categories per order.
func BuildByCategory(rows []store.TransactionRow) *Index {
	keyed := make([]store.TransactionRow, 0, len(rows))
	for _, row := range rows {
		if row.Category == "" {
			continue
		}
		keyed = append(keyed, store.TransactionRow{
			OrderID: row.OrderID,
			ItemID:  row.Category,
		})
	}
	return Build(keyed)
}

// Orders returns the number of distinct orders in the index.
func (idx *Index) Orders() int {
	return len(idx.baskets)
}

// Basket returns the sorted distinct items of one order, or nil if the
// order is unknown. Callers must not mutate the returned slice.
func (idx *Index) Basket(orderID string) []string {
	return idx.baskets[orderID]
}

// Each calls fn for every (order, basket) in the index. Iteration order is
// unspecified.
func (idx *Index) Each(fn func(orderID string, items []string)) {
	for orderID, items := range idx.baskets {
		fn(orderID, items)
	}
}

// SizeHistogram returns a map from distinct-item count to the number of
// orders with that basket size.
func (idx *Index) SizeHistogram() map[int]int {
	hist := make(map[int]int)
	for _, items := range idx.baskets {
		hist[len(items)]++
	}
	return hist
}
