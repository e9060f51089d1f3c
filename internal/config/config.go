package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/celltagger/internal/grid"
	"github.com/example/celltagger/internal/label"
	"github.com/example/celltagger/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme string

	CellSize     int
	DefaultLabel label.Label
	CellOpacity  float64
	BorderWidth  int

	PointerInitial int
	PointerMin     int
	PointerMax     int
	PointerDelta   int
	RadiusMargin   float64

	Notify Notify
	Themes map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	g := grid.DefaultOptions()
	return &Config{
		Theme:          "", // Empty allows fallback to Env/Default
		CellSize:       g.CellSize,
		DefaultLabel:   g.DefaultLabel,
		CellOpacity:    0.5,
		BorderWidth:    1,
		PointerInitial: g.PointerInitial,
		PointerMin:     g.PointerMin,
		PointerMax:     g.PointerMax,
		PointerDelta:   20,
		RadiusMargin:   g.RadiusMargin,
		Themes:         make(map[string]*theme.Theme),
	}
}

// GridOptions converts the grid related settings.
func (c *Config) GridOptions() grid.Options {
	o := grid.DefaultOptions()
	o.CellSize = c.CellSize
	o.DefaultLabel = c.DefaultLabel
	o.PointerInitial = c.PointerInitial
	o.PointerMin = c.PointerMin
	o.PointerMax = c.PointerMax
	o.RadiusMargin = c.RadiusMargin
	return o
}

// ResolveTheme returns the theme named name, preferring [theme.NAME]
// sections of the configuration over the theme loader.
func (c *Config) ResolveTheme(name string, l *theme.Loader) (*theme.Theme, error) {
	if t, ok := c.Themes[name]; ok {
		return t, nil
	}
	return l.Load(name)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	fmt.Fprintf(&sb, "cell_size = %d\n", c.CellSize)
	fmt.Fprintf(&sb, "default_label = %s\n", c.DefaultLabel)
	fmt.Fprintf(&sb, "cell_opacity = %g\n", c.CellOpacity)
	fmt.Fprintf(&sb, "border_width = %d\n", c.BorderWidth)
	fmt.Fprintf(&sb, "pointer_initial = %d\n", c.PointerInitial)
	fmt.Fprintf(&sb, "pointer_min = %d\n", c.PointerMin)
	fmt.Fprintf(&sb, "pointer_max = %d\n", c.PointerMax)
	fmt.Fprintf(&sb, "pointer_delta = %d\n", c.PointerDelta)
	fmt.Fprintf(&sb, "radius_margin = %g\n", c.RadiusMargin)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
