package roll

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Faultbox/tavern-dice/internal/dice"
)

// Result is a finalized roll.
type Result struct {
	Total  int
	ByType map[dice.Type][]int // ascending per type
	// Critical and Fumble are set when the roll was a single d20 showing 20
	// or 1.
	Critical bool
	Fumble   bool
}

func newResult(values map[dice.Type][]int) Result {
	r := Result{ByType: make(map[dice.Type][]int, len(values))}
	count := 0
	for t, vs := range values {
		sorted := slices.Clone(vs)
		slices.Sort(sorted)
		r.ByType[t] = sorted
		for _, v := range sorted {
			r.Total += v
		}
		count += len(sorted)
	}

	if d20 := r.ByType[dice.D20]; count == 1 && len(d20) == 1 {
		r.Critical = d20[0] == 20
		r.Fumble = d20[0] == 1
	}
	return r
}

// Count returns the number of dice in the result.
func (r Result) Count() int {
	n := 0
	for _, vs := range r.ByType {
		n += len(vs)
	}
	return n
}

// String renders the breakdown as "d6: [1, 3] d20: [5]" in canonical type
// order.
func (r Result) String() string {
	var parts []string
	for _, t := range dice.AllTypes {
		vs, ok := r.ByType[t]
		if !ok || len(vs) == 0 {
			continue
		}
		nums := make([]string, len(vs))
		for i, v := range vs {
			nums[i] = strconv.Itoa(v)
		}
		parts = append(parts, fmt.Sprintf("%s: [%s]", t, strings.Join(nums, ", ")))
	}
	return strings.Join(parts, " ")
}
