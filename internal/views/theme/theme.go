package theme

import "strainlog/models"

// Option represents a selectable theme exposed to the UI.
type Option struct {
	Value string
	Label string
}

// Palette contains resolved styling primitives for the dashboard shell.
type Palette struct {
	Key          string
	BodyClass    string
	ShellClass   string
	PanelClass   string
	BorderClass  string
	AccentClass  string
	MutedClass   string
	SliderAccent string
}

// DefaultKey defines the fallback theme when no preference exists.
const DefaultKey = models.DefaultTheme

var catalogue = map[string]Palette{
	models.ThemeDusk: {
		Key:          models.ThemeDusk,
		BodyClass:    "min-h-screen bg-slate-950 text-slate-100",
		ShellClass:   "log-shell dark",
		PanelClass:   "rounded-xl bg-slate-900/80 p-6",
		BorderClass:  "border border-slate-800",
		AccentClass:  "text-emerald-300",
		MutedClass:   "text-slate-400",
		SliderAccent: "#6ee7b7",
	},
	models.ThemeDaylight: {
		Key:          models.ThemeDaylight,
		BodyClass:    "min-h-screen bg-stone-50 text-stone-900",
		ShellClass:   "log-shell light",
		PanelClass:   "rounded-xl bg-white p-6 shadow",
		BorderClass:  "border border-stone-200",
		AccentClass:  "text-emerald-700",
		MutedClass:   "text-stone-500",
		SliderAccent: "#047857",
	},
	models.ThemeMeadow: {
		Key:          models.ThemeMeadow,
		BodyClass:    "min-h-screen bg-emerald-950 text-emerald-50",
		ShellClass:   "log-shell meadow",
		PanelClass:   "rounded-xl bg-emerald-900/70 p-6",
		BorderClass:  "border border-emerald-800",
		AccentClass:  "text-lime-300",
		MutedClass:   "text-emerald-300",
		SliderAccent: "#bef264",
	},
}

var options = []Option{
	{Value: models.ThemeDusk, Label: "Dusk (Dark)"},
	{Value: models.ThemeDaylight, Label: "Daylight (Light)"},
	{Value: models.ThemeMeadow, Label: "Meadow (Green)"},
}

// Resolve returns the registered palette for the provided key.
func Resolve(key string) Palette {
	return catalogue[models.NormalizeTheme(key)]
}

// Options exposes the available theme selections for rendering in a form control.
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}
