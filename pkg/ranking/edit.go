package ranking

import "github.com/google/uuid"

// Swap is a pair of 1-based positions to exchange.
type Swap struct {
	I int `json:"i"`
	J int `json:"j"`
}

// MergeOrderedGroups flattens groups that are already ordered internally.
// Groups are visited in priority order, an id seen before is skipped and the
// result is cut at topN.
func MergeOrderedGroups(groups map[FineTier][]uuid.UUID, priority []FineTier, topN int) []uuid.UUID {
	result := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]struct{})

	for _, tier := range priority {
		for _, id := range groups[tier] {
			if len(result) >= topN {
				return result
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			result = append(result, id)
		}
	}
	return result
}

// ApplySwaps returns a copy of order with every in-range swap applied in turn.
// Pairs pointing outside the list are ignored.
func ApplySwaps(order []uuid.UUID, swaps []Swap) []uuid.UUID {
	result := make([]uuid.UUID, len(order))
	copy(result, order)

	for _, s := range swaps {
		i, j := s.I-1, s.J-1
		if i < 0 || j < 0 || i >= len(result) || j >= len(result) {
			continue
		}
		result[i], result[j] = result[j], result[i]
	}
	return result
}

// Ranked pairs an id with its 1-based position.
type Ranked struct {
	Id   uuid.UUID
	Rank int
}

func Number(order []uuid.UUID) []Ranked {
	ranked := make([]Ranked, len(order))
	for i, id := range order {
		ranked[i] = Ranked{Id: id, Rank: i + 1}
	}
	return ranked
}
