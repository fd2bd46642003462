package basket

// Pair is an unordered pair of distinct item ids in canonical form: A is
// always lexicographically smaller than B, so (a,b) and (b,a) map to the
// same key. A two-field key avoids the collision ambiguity of concatenating
// ids into a single string.
type Pair struct {
	A string
	B string
}

// NewPair canonicalizes two item ids into a Pair. The two ids must differ;
// callers enumerate pairs of distinct items only.
func NewPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Less orders pairs lexicographically by (A, B), giving ranked output a
// deterministic tie-break.
func (p Pair) Less(q Pair) bool {
	if p.A != q.A {
		return p.A < q.A
	}
	return p.B < q.B
}

// Enumerate generates every unordered pair of distinct items in a basket,
// canonicalized A < B. Baskets whose distinct-item count falls outside
// [minSize, maxSize] yield no pairs; maxSize <= 0 means unbounded. For a
// basket of n distinct items within the window the result holds exactly
// n(n-1)/2 pairs.
func Enumerate(items []string, minSize, maxSize int) []Pair {
	n := len(items)
	if n < 2 || n < minSize {
		return nil
	}
	if maxSize > 0 && n > maxSize {
		return nil
	}

	pairs := make([]Pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, NewPair(items[i], items[j]))
		}
	}
	return pairs
}
