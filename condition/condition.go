package condition

import (
	"cmp"
	"math"
	"slices"
)

// Precedence bounds for Ordered conditions. Lower values are evaluated first.
const (
	HighestPrecedence = math.MinInt32
	LowestPrecedence  = math.MaxInt32
)

// Condition decides whether a configuration unit matches the container.
type Condition interface {
	MatchOutcome(ctx Context, md Metadata) Outcome
}

// Func adapts a plain function to a Condition.
type Func func(ctx Context, md Metadata) Outcome

func (f Func) MatchOutcome(ctx Context, md Metadata) Outcome {
	return f(ctx, md)
}

// Ordered is implemented by conditions that need a fixed evaluation position.
type Ordered interface {
	Order() int
}

// OrderOf returns the order of c, LowestPrecedence if it is not Ordered.
func OrderOf(c Condition) int {
	if o, ok := c.(Ordered); ok {
		return o.Order()
	}
	return LowestPrecedence
}

// Sort returns a copy of conditions ordered by OrderOf. Conditions with equal
// order keep their relative position.
func Sort(conditions []Condition) []Condition {
	sorted := slices.Clone(conditions)
	slices.SortStableFunc(sorted, func(a, b Condition) int {
		return cmp.Compare(OrderOf(a), OrderOf(b))
	})
	return sorted
}
