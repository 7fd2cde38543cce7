package remap

import (
	"strconv"
	"strings"
)

// Comparison is a single (operator, threshold) test.
type Comparison struct {
	Op        Op
	Threshold float64
}

func (c Comparison) String() string {
	return c.Op.String() + strconv.FormatFloat(c.Threshold, 'g', -1, 64)
}

// Predicate is the conjunction of its comparisons. An empty predicate matches everything.
type Predicate []Comparison

func (p Predicate) Match(v float64) bool {
	for _, c := range p {
		if !c.Op.Compare(v, c.Threshold) {
			return false
		}
	}
	return true
}

// Mask evaluates the predicate on every element of a.
// Later comparisons are skipped where an earlier one already failed.
func (p Predicate) Mask(a []float64) []bool {
	m := make([]bool, len(a))
	for i, v := range a {
		m[i] = p.Match(v)
	}
	return m
}

func (p Predicate) String() string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = c.String()
	}
	return strings.Join(parts, "+")
}
