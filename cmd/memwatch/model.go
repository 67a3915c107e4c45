package main

import (
	"bytes"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/memtrace/mem"
	"github.com/joshuapare/memtrace/mem/trace"
)

// followInterval is how often follow mode re-reads the trace file.
const followInterval = 500 * time.Millisecond

// filterMode selects which events the viewer shows.
type filterMode int

const (
	filterAll filterMode = iota
	filterAlloc
	filterAllocZeroed
	filterRealloc
	filterDealloc
	filterWarn
	filterCount // number of modes, for cycling
)

// String names the filter for the status bar.
func (f filterMode) String() string {
	switch f {
	case filterAlloc:
		return "alloc"
	case filterAllocZeroed:
		return "alloc_zeroed"
	case filterRealloc:
		return "realloc"
	case filterDealloc:
		return "dealloc"
	case filterWarn:
		return "warnings"
	default:
		return "all"
	}
}

// admits reports whether an event passes the filter.
func (f filterMode) admits(ev Event) bool {
	switch f {
	case filterAlloc:
		return ev.Verb == verbAlloc
	case filterAllocZeroed:
		return ev.Verb == verbAllocZeroed
	case filterRealloc:
		return ev.Verb == verbRealloc
	case filterDealloc:
		return ev.Verb == verbDealloc
	case filterWarn:
		return ev.Verb == verbWarn
	default:
		return true
	}
}

// Model is the main application model
type Model struct {
	tracePath string // empty in demo mode
	events    []Event

	filter filterMode
	stacks bool
	follow bool

	viewport viewport.Model
	keys     KeyMap

	width  int
	height int
	ready  bool

	err error
}

// loadedMsg delivers a (re)parsed event stream.
type loadedMsg struct {
	events []Event
	err    error
}

// tickMsg drives follow-mode reloads.
type tickMsg time.Time

// NewModel creates a new TUI model. An empty tracePath selects the built-in
// demo workload.
func NewModel(tracePath string, follow bool) Model {
	return Model{
		tracePath: tracePath,
		stacks:    true,
		follow:    follow && tracePath != "",
		viewport:  viewport.New(0, 0),
		keys:      DefaultKeyMap(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadTrace(m.tracePath)}
	if m.follow {
		cmds = append(cmds, followTick())
	}
	return tea.Batch(cmds...)
}

// loadTrace parses the trace file, or narrates the demo workload when no
// file was given.
func loadTrace(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return loadedMsg{events: demoEvents()}
		}
		f, err := os.Open(path)
		if err != nil {
			return loadedMsg{err: err}
		}
		defer f.Close()
		return loadedMsg{events: ParseStream(f)}
	}
}

// followTick schedules the next follow-mode reload.
func followTick() tea.Cmd {
	return tea.Tick(followInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// demoEvents runs a short scripted workload through a traced Go-heap
// allocator and parses its own narration, so the viewer has something to
// show without a capture file.
func demoEvents() []Event {
	var buf bytes.Buffer
	a := trace.New(mem.NewGo(), &trace.Options{Output: &buf, Logging: true})

	small := mem.Layout{Size: 16, Align: 8}
	addr, err := a.Allocate(small)
	if err != nil {
		return nil
	}
	table, _ := a.AllocateZeroed(mem.Layout{Size: 256, Align: 16})
	grown, _ := a.Reallocate(addr, small, 64)
	scratch, _ := a.Allocate(mem.Layout{Size: 1024, Align: 8})

	if scratch != 0 {
		a.Deallocate(scratch, mem.Layout{Size: 1024, Align: 8})
	}
	if grown != 0 {
		grown, _ = a.Reallocate(grown, mem.Layout{Size: 64, Align: 8}, 512)
	}
	if table != 0 {
		a.Deallocate(table, mem.Layout{Size: 256, Align: 16})
	}
	if grown != 0 {
		a.Deallocate(grown, mem.Layout{Size: 512, Align: 8})
	}

	return ParseStream(&buf)
}

// shownEvents applies the current filter.
func (m *Model) shownEvents() []Event {
	if m.filter == filterAll {
		return m.events
	}
	shown := make([]Event, 0, len(m.events))
	for _, ev := range m.events {
		if m.filter.admits(ev) {
			shown = append(shown, ev)
		}
	}
	return shown
}
