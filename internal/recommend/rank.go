package recommend

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"strainlog/internal/effects"
)

// DefaultTopN is the number of matches the dashboard asks for.
const DefaultTopN = 3

var (
	// ErrDimensionMismatch is returned when a query does not carry one value per effect label.
	ErrDimensionMismatch = errors.New("recommend: query dimension mismatch")
	// ErrNegativeLimit is returned when a negative result count is requested.
	ErrNegativeLimit = errors.New("recommend: negative result limit")
)

// Match is one ranked item.
type Match struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Percent renders the score as a whole-number match percentage.
func (m Match) Percent() int {
	return int(math.Round(m.Score * 100))
}

// CosineSimilarity returns dot(a, b) / (|a| * |b|). A zero-magnitude operand
// yields 0 so the function stays total over all-zero vectors. Vectors of
// different lengths are not comparable and also score 0; Rank rejects them
// before they get here.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores every item against query and returns at most topN matches,
// best first. Equal scores keep the VectorSet's first-seen order.
func Rank(vectors VectorSet, query []int, topN int) ([]Match, error) {
	if len(query) != effects.Count {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrDimensionMismatch, len(query), effects.Count)
	}
	if topN < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeLimit, topN)
	}

	q := make([]float64, len(query))
	for i, v := range query {
		q[i] = float64(v)
	}

	matches := make([]Match, 0, vectors.Len())
	vectors.Each(func(name string, vector []float64) {
		matches = append(matches, Match{Name: name, Score: CosineSimilarity(vector, q)})
	})

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > topN {
		matches = matches[:topN]
	}
	return matches, nil
}

// QueryFromRatings builds a query vector from a label keyed mapping. Unknown
// labels are rejected so a typo never silently becomes a zero slider.
func QueryFromRatings(ratings map[string]int) ([]int, error) {
	query := make([]int, effects.Count)
	for label, value := range ratings {
		canonical, ok := effects.Resolve(label)
		if !ok {
			return nil, fmt.Errorf("recommend: unknown effect %q", label)
		}
		idx, _ := effects.Index(canonical)
		query[idx] = value
	}
	return query, nil
}
