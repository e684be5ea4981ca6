package effects

import "testing"

func TestLabelsCanonicalOrder(t *testing.T) {
	t.Parallel()

	got := Labels()
	if len(got) != Count {
		t.Fatalf("Labels() returned %d labels, want %d", len(got), Count)
	}
	if got[0] != "Relaxed" || got[Count-1] != "Couch-locked" {
		t.Fatalf("unexpected label order: %v", got)
	}
	for i, label := range got {
		idx, ok := Index(label)
		if !ok || idx != i {
			t.Fatalf("Index(%q) = %d, %t; want %d, true", label, idx, ok, i)
		}
		if Label(i) != label {
			t.Fatalf("Label(%d) = %q, want %q", i, Label(i), label)
		}
	}
}

func TestLabelsReturnsCopy(t *testing.T) {
	t.Parallel()

	got := Labels()
	got[0] = "Mutated"
	if Label(0) != "Relaxed" {
		t.Fatalf("mutating Labels() result changed the catalogue")
	}

	compounds := DefaultCompounds()
	compounds[0] = "Mutated"
	if DefaultCompounds()[0] != "Limonene" {
		t.Fatalf("mutating DefaultCompounds() result changed the defaults")
	}
}

func TestDefaultCompounds(t *testing.T) {
	t.Parallel()

	if got := len(DefaultCompounds()); got != 8 {
		t.Fatalf("expected 8 default compounds, got %d", got)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  string
		ok    bool
	}{
		{"exact", "Pain Relief", "Pain Relief", true},
		{"case insensitive", "pain relief", "Pain Relief", true},
		{"trims whitespace", "  Couch-locked ", "Couch-locked", true},
		{"unknown", "Hungry", "", false},
		{"blank", "  ", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Resolve(tt.value)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("Resolve(%q) = %q, %t; want %q, %t", tt.value, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestInRange(t *testing.T) {
	t.Parallel()

	for _, v := range []int{0, 5, 10} {
		if !InRange(v) {
			t.Fatalf("InRange(%d) = false, want true", v)
		}
	}
	for _, v := range []int{-1, 11} {
		if InRange(v) {
			t.Fatalf("InRange(%d) = true, want false", v)
		}
	}
	if Valid("Hungry") {
		t.Fatal("expected unknown label to be invalid")
	}
}
