package ranking

import "github.com/google/uuid"

// DefaultTopN is the size of the final list when nothing else is configured.
const DefaultTopN = 50

// NextUnanswered scans ids from cursor and returns the index of the first id
// without an answer, or -1 when every id from cursor on is answered.
func NextUnanswered[T any](ids []uuid.UUID, answers map[uuid.UUID]T, cursor int) int {
	if cursor < 0 {
		cursor = 0
	}
	for i := cursor; i < len(ids); i++ {
		if _, ok := answers[ids[i]]; !ok {
			return i
		}
	}
	return -1
}

// SelectCandidates picks the fine-round pool from the coarse answers.
//
// Excellent and good games are kept in sequence order; bad and unanswered
// games are dropped. When there are more excellent games than topN the good
// bucket is excluded entirely.
func SelectCandidates(sequence []uuid.UUID, answers map[uuid.UUID]CoarseTier, topN int) []uuid.UUID {
	if topN < 0 {
		topN = 0
	}
	excellent := make([]uuid.UUID, 0)
	good := make([]uuid.UUID, 0)

	for _, id := range sequence {
		tier, ok := answers[id]
		if !ok {
			continue
		}
		switch tier {
		case CoarseExcellent:
			excellent = append(excellent, id)
		case CoarseGood:
			good = append(good, id)
		}
	}

	if len(excellent) > topN {
		return excellent[:topN]
	}

	pool := append(excellent, good...)
	return truncate(pool, topN)
}

// BuildFinalOrder groups the pool into super_cool, cool and excellent buckets
// (unanswered candidates fall into DefaultFineTier) and concatenates them.
func BuildFinalOrder(pool []uuid.UUID, answers map[uuid.UUID]FineTier, topN int) []uuid.UUID {
	buckets := make(map[FineTier][]uuid.UUID, len(FinalPriority))
	for _, id := range pool {
		tier, ok := answers[id]
		if !ok {
			tier = DefaultFineTier
		}
		buckets[tier] = append(buckets[tier], id)
	}

	ordered := make([]uuid.UUID, 0, len(pool))
	for _, tier := range FinalPriority {
		ordered = append(ordered, buckets[tier]...)
	}
	return truncate(ordered, topN)
}

func truncate(ids []uuid.UUID, n int) []uuid.UUID {
	if n < 0 {
		n = 0
	}
	if len(ids) > n {
		return ids[:n]
	}
	return ids
}
