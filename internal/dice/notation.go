package dice

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxPerType caps how many dice of one type a notation string may request.
const MaxPerType = 20

var notationPattern = regexp.MustCompile(`(\d+)d(\d+)`)

// Counts is a requested number of dice per type.
type Counts map[Type]int

// Total returns the number of dice requested across all types.
func (c Counts) Total() int {
	total := 0
	for _, t := range AllTypes {
		if n := c[t]; n > 0 {
			total += n
		}
	}
	return total
}

// String renders the counts as "2d6+1d100" in canonical type order. Empty
// counts render as "".
func (c Counts) String() string {
	var parts []string
	for _, t := range AllTypes {
		if n := c[t]; n > 0 {
			parts = append(parts, strconv.Itoa(n)+t.String())
		}
	}
	return strings.Join(parts, "+")
}

// ParseNotation reads terms like "2d6+1d20+3d100". Terms for unsupported
// side counts are ignored, repeated terms add up, and each type is capped at
// MaxPerType.
func ParseNotation(s string) Counts {
	counts := make(Counts)
	for _, m := range notationPattern.FindAllStringSubmatch(s, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		t, err := ParseType("d" + m[2])
		if err != nil {
			continue
		}
		counts[t] = min(MaxPerType, counts[t]+n)
	}
	return counts
}
