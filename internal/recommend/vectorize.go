// Package recommend turns logged entries into per-item effect vectors, ranks
// them against a desired effect profile and summarises logging habits.
//
// Every function here is pure: callers pass a complete entry snapshot and
// receive fresh values, so nothing is cached across store mutations.
package recommend

import (
	"strainlog/internal/effects"
	"strainlog/models"
)

// VectorSet maps item names to their averaged effect vectors. Enumeration
// follows the order in which each item was first seen in the input, which is
// what Rank uses to break score ties.
type VectorSet struct {
	names   []string
	vectors map[string][]float64
}

// Len returns the number of distinct items.
func (s VectorSet) Len() int {
	return len(s.names)
}

// Names returns item names in first-seen order.
func (s VectorSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Vector returns a copy of the averaged vector for name.
func (s VectorSet) Vector(name string) ([]float64, bool) {
	v, ok := s.vectors[name]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out, true
}

// Each calls fn for every item in first-seen order.
func (s VectorSet) Each(fn func(name string, vector []float64)) {
	for _, name := range s.names {
		fn(name, s.vectors[name])
	}
}

// Vectorize averages each item's ratings label by label. Labels missing from
// an entry count as zero; keys outside the effect catalogue are ignored.
func Vectorize(entries []models.Entry) VectorSet {
	set := VectorSet{vectors: make(map[string][]float64)}
	counts := make(map[string]int)

	for _, entry := range entries {
		sums, ok := set.vectors[entry.ItemName]
		if !ok {
			sums = make([]float64, effects.Count)
			set.vectors[entry.ItemName] = sums
			set.names = append(set.names, entry.ItemName)
		}
		for i := 0; i < effects.Count; i++ {
			sums[i] += float64(entry.Rating(effects.Label(i)))
		}
		counts[entry.ItemName]++
	}

	for name, sums := range set.vectors {
		n := float64(counts[name])
		for i := range sums {
			sums[i] /= n
		}
	}

	return set
}
