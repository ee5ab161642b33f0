package ranking

import "fmt"

// CoarseTier is the first-round label, ascending desirability.
type CoarseTier string

const (
	CoarseBad       CoarseTier = "bad"
	CoarseGood      CoarseTier = "good"
	CoarseExcellent CoarseTier = "excellent"
)

// FineTier is the second-round label. Note that FineExcellent is the weakest
// of the three in this round even though it shares its value with CoarseExcellent.
type FineTier string

const (
	FineCool      FineTier = "cool"
	FineSuperCool FineTier = "super_cool"
	FineExcellent FineTier = "excellent"
)

// DefaultFineTier is assigned to a candidate that reached the fine round but
// was never answered there.
const DefaultFineTier = FineExcellent

// FinalPriority is the bucket order of the final list, strongest first.
var FinalPriority = []FineTier{FineSuperCool, FineCool, FineExcellent}

func ParseCoarseTier(s string) (CoarseTier, error) {
	switch t := CoarseTier(s); t {
	case CoarseBad, CoarseGood, CoarseExcellent:
		return t, nil
	}
	return "", fmt.Errorf("unknown coarse tier %q", s)
}

func ParseFineTier(s string) (FineTier, error) {
	switch t := FineTier(s); t {
	case FineCool, FineSuperCool, FineExcellent:
		return t, nil
	}
	return "", fmt.Errorf("unknown fine tier %q", s)
}
