package tui

import (
	"testing"

	"github.com/theirongolddev/pflow/internal/tui/components"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	a := newTestApp(t)
	n := len(components.Tabs)
	for active := 0; active < n; active++ {
		a.activeTab = active
		pos := 0

		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w + 1 // separator
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("active=%d: x past the last tab -> %d, want -1", active, got)
		}
	}
}

func TestTabWidthsForInactiveSettings(t *testing.T) {
	settings := components.Tabs[components.TabSettings]
	if got, want := components.TabVisualWidth(settings, false), len("Settings")+2+3; got != want {
		t.Fatalf("inactive Settings width = %d, want %d", got, want)
	}
	if got, want := components.TabVisualWidth(settings, true), len("Settings")+2; got != want {
		t.Fatalf("active Settings width = %d, want %d", got, want)
	}
}
