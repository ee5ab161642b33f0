package ranking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIds(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids
}

func TestParseTiers(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "bad", input: "bad"},
		{name: "good", input: "good"},
		{name: "excellent", input: "excellent"},
		{name: "fine label", input: "super_cool", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "wrong case", input: "Good", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, err := ParseCoarseTier(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, CoarseTier(tt.input), tier)
		})
	}

	fine, err := ParseFineTier("super_cool")
	require.NoError(t, err)
	assert.Equal(t, FineSuperCool, fine)

	_, err = ParseFineTier("good")
	assert.Error(t, err)
}

func TestNextUnanswered(t *testing.T) {
	ids := newIds(4)
	answers := map[uuid.UUID]CoarseTier{ids[0]: CoarseGood, ids[2]: CoarseBad}

	assert.Equal(t, 1, NextUnanswered(ids, answers, 0))
	assert.Equal(t, 1, NextUnanswered(ids, answers, 1))
	assert.Equal(t, 3, NextUnanswered(ids, answers, 2))
	assert.Equal(t, -1, NextUnanswered(ids, answers, 4))
	assert.Equal(t, 1, NextUnanswered(ids, answers, -3))
}

func TestSelectCandidates_ExcellentSurplusDropsGood(t *testing.T) {
	ids := newIds(60)
	answers := make(map[uuid.UUID]CoarseTier)
	for i, id := range ids {
		if i%10 == 9 {
			answers[id] = CoarseGood
			continue
		}
		answers[id] = CoarseExcellent
	}

	pool := SelectCandidates(ids, answers, 50)

	require.Len(t, pool, 50)
	for _, id := range pool {
		assert.Equal(t, CoarseExcellent, answers[id])
	}
}

func TestSelectCandidates_BlendsExcellentThenGood(t *testing.T) {
	ids := newIds(90)
	answers := make(map[uuid.UUID]CoarseTier)
	var excellent, good []uuid.UUID
	for i, id := range ids {
		// excellent games are spread through the sequence
		if i%9 == 0 {
			answers[id] = CoarseExcellent
			excellent = append(excellent, id)
			continue
		}
		answers[id] = CoarseGood
		good = append(good, id)
	}
	require.Len(t, excellent, 10)
	require.Len(t, good, 80)

	pool := SelectCandidates(ids, answers, 50)

	require.Len(t, pool, 50)
	assert.Equal(t, excellent, pool[:10])
	assert.Equal(t, good[:40], pool[10:])
}

func TestSelectCandidates_DropsBadAndUnanswered(t *testing.T) {
	ids := newIds(3)
	answers := map[uuid.UUID]CoarseTier{ids[0]: CoarseExcellent, ids[1]: CoarseBad}

	assert.Equal(t, []uuid.UUID{ids[0]}, SelectCandidates(ids, answers, 50))
	assert.Empty(t, SelectCandidates(ids, map[uuid.UUID]CoarseTier{}, 50))
}

func TestBuildFinalOrder_Priority(t *testing.T) {
	ids := newIds(6)
	answers := map[uuid.UUID]FineTier{
		ids[0]: FineCool,
		ids[1]: FineExcellent,
		ids[2]: FineSuperCool,
		ids[3]: FineCool,
		ids[4]: FineSuperCool,
		ids[5]: FineExcellent,
	}

	got := BuildFinalOrder(ids, answers, 50)

	want := []uuid.UUID{ids[2], ids[4], ids[0], ids[3], ids[1], ids[5]}
	assert.Equal(t, want, got)
}

func TestBuildFinalOrder_UnansweredFallsBackToExcellent(t *testing.T) {
	ids := newIds(3)
	answers := map[uuid.UUID]FineTier{ids[1]: FineCool}

	got := BuildFinalOrder(ids, answers, 50)

	assert.Equal(t, []uuid.UUID{ids[1], ids[0], ids[2]}, got)
}

func TestBuildFinalOrder_Truncates(t *testing.T) {
	ids := newIds(5)
	answers := map[uuid.UUID]FineTier{ids[4]: FineSuperCool}

	got := BuildFinalOrder(ids, answers, 2)

	assert.Equal(t, []uuid.UUID{ids[4], ids[0]}, got)
}

func TestMergeOrderedGroups(t *testing.T) {
	ids := newIds(5)
	groups := map[FineTier][]uuid.UUID{
		FineExcellent: {ids[4]},
		FineSuperCool: {ids[1], ids[0]},
		FineCool:      {ids[3], ids[0], ids[2]},
	}

	t.Run("priority and duplicates", func(t *testing.T) {
		got := MergeOrderedGroups(groups, FinalPriority, 50)
		assert.Equal(t, []uuid.UUID{ids[1], ids[0], ids[3], ids[2], ids[4]}, got)
	})

	t.Run("truncates", func(t *testing.T) {
		got := MergeOrderedGroups(groups, FinalPriority, 3)
		assert.Equal(t, []uuid.UUID{ids[1], ids[0], ids[3]}, got)
	})

	t.Run("missing group", func(t *testing.T) {
		got := MergeOrderedGroups(map[FineTier][]uuid.UUID{FineCool: {ids[2]}}, FinalPriority, 50)
		assert.Equal(t, []uuid.UUID{ids[2]}, got)
	})
}

func TestApplySwaps(t *testing.T) {
	ids := newIds(3)

	tests := []struct {
		name  string
		swaps []Swap
		want  []uuid.UUID
	}{
		{name: "zero index ignored", swaps: []Swap{{0, 5}}, want: ids},
		{name: "past end ignored", swaps: []Swap{{1, 4}}, want: ids},
		{name: "single swap", swaps: []Swap{{1, 3}}, want: []uuid.UUID{ids[2], ids[1], ids[0]}},
		{name: "sequential swaps", swaps: []Swap{{1, 2}, {2, 3}}, want: []uuid.UUID{ids[1], ids[2], ids[0]}},
		{name: "same position", swaps: []Swap{{2, 2}}, want: ids},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := append([]uuid.UUID(nil), ids...)
			got := ApplySwaps(ids, tt.swaps)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, original, ids)
		})
	}
}

func TestNumber(t *testing.T) {
	ids := newIds(4)

	ranked := Number(ids)

	require.Len(t, ranked, 4)
	for i, r := range ranked {
		assert.Equal(t, ids[i], r.Id)
		assert.Equal(t, i+1, r.Rank)
	}
}
