// Package plugin defines the chart plugin lifecycle and the per-chart state
// registries plugins keep between hooks.
package plugin

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/akasprzok/chartkit/internal/chart"
)

// Plugin reacts to chart lifecycle hooks.
//
// OnBeforeUpdate runs whenever chart data or options change, OnAfterDraw
// runs after datasets are drawn on the canvas, OnAfterEvent runs for pointer
// and key events and returns true when the chart must be redrawn, and
// OnBeforeDestroy runs once when the chart goes away.
type Plugin interface {
	ID() string
	OnBeforeUpdate(c *chart.Model)
	OnAfterDraw(c *chart.Model, lc *linechart.Model)
	OnAfterEvent(c *chart.Model, ev Event) bool
	OnBeforeDestroy(c *chart.Model)
}

// ChartLookup resolves live charts by id.
type ChartLookup interface {
	Chart(id string) (*chart.Model, bool)
}

// EventKind is the kind of interaction delivered to plugins.
type EventKind int

const (
	EventMove EventKind = iota
	EventPress
	EventRelease
	EventLeave
	EventKey
)

func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventPress:
		return "press"
	case EventRelease:
		return "release"
	case EventLeave:
		return "leave"
	case EventKey:
		return "key"
	default:
		return "unknown"
	}
}

// Modifiers holds the modifier keys held during an event.
type Modifiers struct {
	Shift bool
	Alt   bool
	Ctrl  bool
}

// Event is a pointer or key interaction in chart pixel coordinates.
type Event struct {
	Kind        EventKind
	Point       chart.Point
	InChartArea bool
	Modifiers   Modifiers
	// Zone is the marked region under the pointer, if any.
	Zone string
	// Key is set for EventKey.
	Key string
}

// ModifierKey is a key that must be held for a plugin to react to an event.
type ModifierKey string

const (
	ModifierNone  ModifierKey = ""
	ModifierShift ModifierKey = "shift"
	ModifierAlt   ModifierKey = "alt"
	ModifierCtrl  ModifierKey = "ctrl"
)

// ParseModifierKey parses a modifier name, case-insensitively. An empty
// name is ModifierNone.
func ParseModifierKey(s string) (ModifierKey, error) {
	switch k := ModifierKey(strings.ToLower(strings.TrimSpace(s))); k {
	case ModifierNone, ModifierShift, ModifierAlt, ModifierCtrl:
		return k, nil
	default:
		return ModifierNone, fmt.Errorf("unknown modifier key %q", s)
	}
}

// Pressed reports whether the modifier is satisfied by mods.
// ModifierNone is always satisfied.
func (k ModifierKey) Pressed(mods Modifiers) bool {
	switch k {
	case ModifierShift:
		return mods.Shift
	case ModifierAlt:
		return mods.Alt
	case ModifierCtrl:
		return mods.Ctrl
	default:
		return true
	}
}
