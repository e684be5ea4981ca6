package effects

import "strings"

// Count is the fixed dimensionality of every effect vector.
const Count = 12

const (
	// MinRating is the lowest intensity a slider can record.
	MinRating = 0
	// MaxRating is the highest intensity a slider can record.
	MaxRating = 10
	// DefaultPotency is the potency slider position for a fresh log form.
	DefaultPotency = 5
)

// labels is the canonical effect order shared by logged ratings and query vectors.
var labels = [Count]string{
	"Relaxed",
	"Creative",
	"Anxious",
	"Sleepy",
	"Euphoric",
	"Focused",
	"Pain Relief",
	"Appetite Boost",
	"Giggly",
	"Dry Mouth",
	"Paranoia",
	"Couch-locked",
}

var defaultCompounds = []string{
	"Limonene",
	"Myrcene",
	"Pinene",
	"Caryophyllene",
	"Linalool",
	"Humulene",
	"Terpinolene",
	"Ocimene",
}

var index = func() map[string]int {
	m := make(map[string]int, Count)
	for i, label := range labels {
		m[label] = i
	}
	return m
}()

// Labels returns the effect labels in canonical order.
func Labels() []string {
	out := make([]string, Count)
	copy(out, labels[:])
	return out
}

// Label returns the label at position i in the canonical order.
func Label(i int) string {
	return labels[i]
}

// Index reports the canonical position of label.
func Index(label string) (int, bool) {
	i, ok := index[label]
	return i, ok
}

// Valid reports whether label belongs to the effect catalogue.
func Valid(label string) bool {
	_, ok := index[label]
	return ok
}

// Resolve maps a loosely formatted label ("pain relief", " couch-locked ")
// onto its canonical spelling.
func Resolve(label string) (string, bool) {
	trimmed := strings.TrimSpace(label)
	if _, ok := index[trimmed]; ok {
		return trimmed, true
	}
	for _, candidate := range labels {
		if strings.EqualFold(candidate, trimmed) {
			return candidate, true
		}
	}
	return "", false
}

// DefaultCompounds returns the built-in compound list restored on a full clear.
func DefaultCompounds() []string {
	out := make([]string, len(defaultCompounds))
	copy(out, defaultCompounds)
	return out
}

// InRange reports whether value is a legal slider intensity.
func InRange(value int) bool {
	return value >= MinRating && value <= MaxRating
}
