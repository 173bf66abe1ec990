package dice

import "strconv"

// CanonicalValues returns the value labels printed on a die of type t.
// The percentile die carries tens ("00" .. "90").
func CanonicalValues(t Type) []string {
	if t == D100 {
		values := make([]string, 10)
		for i := range values {
			values[i] = strconv.Itoa(i) + "0"
		}
		return values
	}

	n := t.Sides()
	values := make([]string, n)
	for i := range values {
		values[i] = strconv.Itoa(i + 1)
	}
	return values
}

// Labels assigns a label to each of faceCount geometric faces by cycling
// through the canonical values. When the geometry has more faces than the
// die has values, some labels repeat.
func Labels(t Type, faceCount int) []string {
	values := CanonicalValues(t)
	if len(values) == 0 || faceCount <= 0 {
		return nil
	}
	labels := make([]string, faceCount)
	for i := range labels {
		labels[i] = values[i%len(values)]
	}
	return labels
}
