package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.sizeViewport()
		m.refreshContent()
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		grew := len(msg.events) > len(m.events)
		m.events = msg.events
		m.refreshContent()
		if m.follow && grew {
			m.viewport.GotoBottom()
		}
		return m, nil

	case tickMsg:
		if !m.follow || m.tracePath == "" {
			return m, nil
		}
		return m, tea.Batch(loadTrace(m.tracePath), followTick())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Filter):
			m.filter = (m.filter + 1) % filterCount
			m.refreshContent()
			m.viewport.GotoTop()
			return m, nil

		case key.Matches(msg, m.keys.Stacks):
			m.stacks = !m.stacks
			m.refreshContent()
			return m, nil

		case key.Matches(msg, m.keys.Follow):
			if m.tracePath == "" {
				return m, nil // nothing to tail in demo mode
			}
			m.follow = !m.follow
			if m.follow {
				m.viewport.GotoBottom()
				return m, tea.Batch(loadTrace(m.tracePath), followTick())
			}
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			return m, loadTrace(m.tracePath)

		case key.Matches(msg, m.keys.Home):
			m.viewport.GotoTop()
			return m, nil

		case key.Matches(msg, m.keys.End):
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	// Everything else (arrows, page keys, mouse wheel) scrolls the viewport.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// sizeViewport fits the viewport between the header, the pane border, and
// the status bar.
func (m *Model) sizeViewport() {
	headerHeight := 1 // title and source share one line
	statusHeight := 1
	chromeHeight := 2 // pane border top + bottom
	chromeWidth := 4  // pane border + padding

	m.viewport.Width = max(m.width-chromeWidth, 0)
	m.viewport.Height = max(m.height-headerHeight-statusHeight-chromeHeight, 0)
}
