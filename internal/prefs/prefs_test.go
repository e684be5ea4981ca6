package prefs

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"strainlog/internal/config"
	"strainlog/internal/effects"
	"strainlog/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(config.PrefsConfig{InMemory: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestFreshStoreDefaults(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	items, err := s.Items(ctx)
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("Items() = %v, want empty", items)
	}

	compounds, err := s.Compounds(ctx)
	if err != nil {
		t.Fatalf("Compounds() error = %v", err)
	}
	if !reflect.DeepEqual(compounds, effects.DefaultCompounds()) {
		t.Fatalf("Compounds() = %v, want defaults", compounds)
	}

	theme, err := s.Theme(ctx)
	if err != nil || theme != models.DefaultTheme {
		t.Fatalf("Theme() = %q, %v; want %q", theme, err, models.DefaultTheme)
	}
}

func TestRememberItemAppendsOnce(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	for _, tc := range []struct {
		name  string
		added bool
	}{
		{"Blue Dream", true},
		{"  Blue Dream ", false},
		{"OG Kush", true},
	} {
		added, err := s.RememberItem(ctx, tc.name)
		if err != nil {
			t.Fatalf("RememberItem(%q) error = %v", tc.name, err)
		}
		if added != tc.added {
			t.Fatalf("RememberItem(%q) added = %t, want %t", tc.name, added, tc.added)
		}
	}

	items, _ := s.Items(ctx)
	if !reflect.DeepEqual(items, []string{"Blue Dream", "OG Kush"}) {
		t.Fatalf("Items() = %v", items)
	}
}

func TestRememberCompoundExtendsDefaults(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	added, err := s.RememberCompound(ctx, "Myrcene")
	if err != nil || added {
		t.Fatalf("RememberCompound(Myrcene) = %t, %v; want false, nil", added, err)
	}
	added, err = s.RememberCompound(ctx, "Bisabolol")
	if err != nil || !added {
		t.Fatalf("RememberCompound(Bisabolol) = %t, %v; want true, nil", added, err)
	}

	compounds, _ := s.Compounds(ctx)
	want := append(effects.DefaultCompounds(), "Bisabolol")
	if !reflect.DeepEqual(compounds, want) {
		t.Fatalf("Compounds() = %v, want %v", compounds, want)
	}
}

func TestRememberRejectsBlank(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	if _, err := s.RememberItem(context.Background(), "   "); !errors.Is(err, ErrBlankName) {
		t.Fatalf("RememberItem(blank) error = %v, want ErrBlankName", err)
	}
	if _, err := s.RememberCompound(context.Background(), ""); !errors.Is(err, ErrBlankName) {
		t.Fatalf("RememberCompound(blank) error = %v, want ErrBlankName", err)
	}
}

func TestReplaceAndReset(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Replace(ctx, []string{"A", "A", " B "}, nil); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	items, _ := s.Items(ctx)
	if !reflect.DeepEqual(items, []string{"A", "B"}) {
		t.Fatalf("Items() = %v, want [A B]", items)
	}
	compounds, _ := s.Compounds(ctx)
	if !reflect.DeepEqual(compounds, effects.DefaultCompounds()) {
		t.Fatalf("nil compounds must leave the list untouched, got %v", compounds)
	}

	if err := s.Replace(ctx, nil, []string{"Pinene"}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	compounds, _ = s.Compounds(ctx)
	if !reflect.DeepEqual(compounds, []string{"Pinene"}) {
		t.Fatalf("Compounds() = %v, want [Pinene]", compounds)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	items, _ = s.Items(ctx)
	compounds, _ = s.Compounds(ctx)
	if len(items) != 0 || !reflect.DeepEqual(compounds, effects.DefaultCompounds()) {
		t.Fatalf("after Reset items = %v compounds = %v", items, compounds)
	}
}

func TestThemeRoundTrip(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SetTheme(ctx, "Meadow"); err != nil {
		t.Fatalf("SetTheme() error = %v", err)
	}
	if got, _ := s.Theme(ctx); got != models.ThemeMeadow {
		t.Fatalf("Theme() = %q, want %q", got, models.ThemeMeadow)
	}
	if err := s.SetTheme(ctx, "neon"); err != nil {
		t.Fatalf("SetTheme() error = %v", err)
	}
	if got, _ := s.Theme(ctx); got != models.DefaultTheme {
		t.Fatalf("Theme() = %q, want default", got)
	}
}

func TestOpenOnDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(config.PrefsConfig{Path: dir})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := s.RememberItem(ctx, "Durban Poison"); err != nil {
		t.Fatalf("RememberItem() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(config.PrefsConfig{Path: dir})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	items, _ := reopened.Items(ctx)
	if !reflect.DeepEqual(items, []string{"Durban Poison"}) {
		t.Fatalf("Items() after reopen = %v", items)
	}
}
