package miner

import (
	"sort"

	"github.com/blackwell-systems/basketlift/internal/config"
)

// FilterAndRank keeps rules meeting every threshold and returns them
// ranked. Support and confidence thresholds are inclusive (>=); the lift
// threshold is strict (>), so lift exactly 1.0 (statistical independence)
// does not pass the default MinLift of 1.0.
//
// Ranking is support descending, ties broken by lift descending, then by
// canonical pair ascending for determinism. When limit > 0 the ranked
// result is truncated to the top limit rules; truncation happens after
// filtering and sorting so a top-N view reflects the full ranked set.
// The input slice is never mutated.
func FilterAndRank(rules []ScoredRule, t config.Thresholds, limit int) []ScoredRule {
	kept := make([]ScoredRule, 0, len(rules))
	for _, rule := range rules {
		if rule.Support >= t.MinSupport &&
			rule.Confidence >= t.MinConfidence &&
			rule.Lift > t.MinLift {
			kept = append(kept, rule)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Support != kept[j].Support {
			return kept[i].Support > kept[j].Support
		}
		if kept[i].Lift != kept[j].Lift {
			return kept[i].Lift > kept[j].Lift
		}
		if kept[i].Product1 != kept[j].Product1 {
			return kept[i].Product1 < kept[j].Product1
		}
		return kept[i].Product2 < kept[j].Product2
	})

	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}

	return kept
}
