package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// sizedModel returns a ready model loaded with the sample trace
func sizedModel(t *testing.T) Model {
	t.Helper()
	m := NewModel("", false)
	m.events = ParseStream(strings.NewReader(sampleTrace))

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)
	if !m.ready {
		t.Fatal("Model not ready after window size")
	}
	return m
}

func press(t *testing.T, m Model, r rune) Model {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return updated.(Model)
}

// TestFilterCycle verifies f walks through every mode and wraps around
func TestFilterCycle(t *testing.T) {
	m := sizedModel(t)

	seen := make(map[string]bool)
	for i := 0; i < int(filterCount); i++ {
		seen[m.filter.String()] = true
		m = press(t, m, 'f')
	}

	if len(seen) != int(filterCount) {
		t.Fatalf("Expected %d distinct filter modes, saw %d: %v", filterCount, len(seen), seen)
	}
	if m.filter != filterAll {
		t.Fatalf("Expected the cycle to wrap back to all, got %s", m.filter)
	}
}

// TestFilterAdmits verifies each mode admits exactly its verb
func TestFilterAdmits(t *testing.T) {
	cases := []struct {
		filter filterMode
		verb   string
	}{
		{filterAlloc, verbAlloc},
		{filterAllocZeroed, verbAllocZeroed},
		{filterRealloc, verbRealloc},
		{filterDealloc, verbDealloc},
		{filterWarn, verbWarn},
	}
	allVerbs := []string{verbAlloc, verbAllocZeroed, verbRealloc, verbDealloc, verbWarn}

	for _, tc := range cases {
		for _, v := range allVerbs {
			got := tc.filter.admits(Event{Verb: v})
			if got != (v == tc.verb) {
				t.Fatalf("Filter %s / verb %s: admits=%v", tc.filter, v, got)
			}
		}
	}
	for _, v := range allVerbs {
		if !filterAll.admits(Event{Verb: v}) {
			t.Fatalf("filterAll rejected %s", v)
		}
	}
}

// TestFilterNarrowsView verifies a narrowed filter drops other verbs
func TestFilterNarrowsView(t *testing.T) {
	m := sizedModel(t)
	if got := len(m.shownEvents()); got != 5 {
		t.Fatalf("Expected all 5 events shown, got %d", got)
	}

	m.filter = filterRealloc
	shown := m.shownEvents()
	if len(shown) != 1 || shown[0].Verb != verbRealloc {
		t.Fatalf("Expected exactly the realloc event, got %+v", shown)
	}

	m.filter = filterWarn
	shown = m.shownEvents()
	if len(shown) != 1 || shown[0].Note != "large allocation" {
		t.Fatalf("Expected exactly the warning, got %+v", shown)
	}
}

// TestStacksToggle verifies s hides and restores backtraces
func TestStacksToggle(t *testing.T) {
	m := sizedModel(t)
	m.refreshContent()
	if !strings.Contains(m.viewport.View(), "main.fill") {
		t.Fatal("Expected backtraces visible by default")
	}

	m = press(t, m, 's')
	if m.stacks {
		t.Fatal("Expected stacks off after toggle")
	}
	if strings.Contains(m.viewport.View(), "main.fill") {
		t.Fatal("Backtrace still rendered after toggle")
	}

	m = press(t, m, 's')
	if !strings.Contains(m.viewport.View(), "main.fill") {
		t.Fatal("Backtrace missing after second toggle")
	}
}

// TestFollowDisabledInDemoMode verifies F is inert without a file to tail
func TestFollowDisabledInDemoMode(t *testing.T) {
	m := sizedModel(t)
	m = press(t, m, 'F')
	if m.follow {
		t.Fatal("Follow mode must stay off in demo mode")
	}
}

// TestQuitKey verifies q produces the quit command
func TestQuitKey(t *testing.T) {
	m := sizedModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("Expected a command from q")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("Expected tea.QuitMsg from q")
	}
}

// TestDemoEvents verifies the built-in workload narrates a full lifecycle
func TestDemoEvents(t *testing.T) {
	events := demoEvents()
	if len(events) == 0 {
		t.Fatal("Expected demo events")
	}

	verbsSeen := make(map[string]bool)
	for _, ev := range events {
		verbsSeen[ev.Verb] = true
		if len(ev.Stack) == 0 {
			t.Fatalf("Demo event without a backtrace: %+v", ev)
		}
	}
	for _, want := range []string{verbAlloc, verbAllocZeroed, verbRealloc, verbDealloc} {
		if !verbsSeen[want] {
			t.Fatalf("Demo stream missing %s events: %v", want, verbsSeen)
		}
	}
}

// TestLoadedMsgReplacesEvents verifies reloads swap the event list
func TestLoadedMsgReplacesEvents(t *testing.T) {
	m := sizedModel(t)

	fresh := ParseStream(strings.NewReader("dealloc [address=0xff, size=8, align=1] at:\nmain.x\n\t/a.go:1\n"))
	updated, _ := m.Update(loadedMsg{events: fresh})
	m = updated.(Model)

	if len(m.events) != 1 || m.events[0].Verb != verbDealloc {
		t.Fatalf("Expected the reloaded single event, got %+v", m.events)
	}
}
