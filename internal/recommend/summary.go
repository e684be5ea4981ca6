package recommend

import (
	"bytes"
	"sort"

	"github.com/goccy/go-json"

	"strainlog/internal/effects"
	"strainlog/models"
)

// Label is an optional summary value. The zero Label is absent.
type Label struct {
	Value string
	Valid bool
}

// Some wraps a present label.
func Some(value string) Label {
	return Label{Value: value, Valid: true}
}

// String renders the label, or a dash placeholder when absent.
func (l Label) String() string {
	if !l.Valid {
		return "—"
	}
	return l.Value
}

// MarshalJSON encodes an absent label as null.
func (l Label) MarshalJSON() ([]byte, error) {
	if !l.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(l.Value)
}

// UnmarshalJSON decodes null as an absent label.
func (l *Label) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = Label{}
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*l = Some(value)
	return nil
}

// Summary holds the favourite item, compound and effect across a log history.
type Summary struct {
	TopItem     Label `json:"topItem"`
	TopCompound Label `json:"topCompound"`
	TopEffect   Label `json:"topEffect"`
}

// tally accumulates totals per key while remembering first-seen order.
type tally struct {
	order  []string
	totals map[string]int
}

func newTally() *tally {
	return &tally{totals: make(map[string]int)}
}

func (t *tally) add(key string, amount int) {
	if _, ok := t.totals[key]; !ok {
		t.order = append(t.order, key)
	}
	t.totals[key] += amount
}

// leader returns the key with the highest total; the earliest seen key wins ties.
func (t *tally) leader() Label {
	var (
		best  Label
		score int
	)
	for _, key := range t.order {
		if total := t.totals[key]; !best.Valid || total > score {
			best = Some(key)
			score = total
		}
	}
	return best
}

// Summarize reports the most logged item, the most frequent compound and the
// effect with the highest summed rating. Fields are absent when nothing
// qualifies, for instance on an empty history.
func Summarize(entries []models.Entry) Summary {
	items := newTally()
	compounds := newTally()
	ratings := newTally()

	for _, entry := range entries {
		items.add(entry.ItemName, 1)
		for _, compound := range entry.Compounds {
			compounds.add(compound, 1)
		}
		for i := 0; i < effects.Count; i++ {
			label := effects.Label(i)
			if value, ok := entry.EffectRatings[label]; ok {
				ratings.add(label, value)
			}
		}
	}

	return Summary{
		TopItem:     items.leader(),
		TopCompound: compounds.leader(),
		TopEffect:   ratings.leader(),
	}
}

// TopEffects lists the entry's strongest effects with a rating above zero,
// strongest first, at most n of them. Equal ratings keep catalogue order.
func TopEffects(entry models.Entry, n int) []string {
	type rated struct {
		label string
		value int
	}
	present := make([]rated, 0, effects.Count)
	for i := 0; i < effects.Count; i++ {
		label := effects.Label(i)
		if value := entry.Rating(label); value > 0 {
			present = append(present, rated{label: label, value: value})
		}
	}

	sort.SliceStable(present, func(i, j int) bool {
		return present[i].value > present[j].value
	})

	if n >= 0 && len(present) > n {
		present = present[:n]
	}
	out := make([]string, 0, len(present))
	for _, r := range present {
		out = append(out, r.label)
	}
	return out
}
