package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.ready {
		return "Loading trace..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		paneStyle.Render(m.viewport.View()),
		m.renderStatus(),
	)
}

// renderHeader renders the title line and the trace source
func (m Model) renderHeader() string {
	source := m.tracePath
	if source == "" {
		source = "(built-in demo workload)"
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		headerStyle.Render("Memory Trace Viewer"),
		lipgloss.NewStyle().Render("  "),
		pathStyle.Render(fmt.Sprintf("Trace: %s", source)),
	)
}

// renderStatus renders the status bar: filter state, toggles, counts, and
// the short help
func (m Model) renderStatus() string {
	shown := len(m.shownEvents())

	parts := []string{
		fmt.Sprintf("filter: %s", statusCountStyle.Render(m.filter.String())),
		fmt.Sprintf("events: %s/%s",
			statusCountStyle.Render(strconv.Itoa(shown)),
			statusCountStyle.Render(strconv.Itoa(len(m.events)))),
	}
	if m.stacks {
		parts = append(parts, "backtraces: on")
	} else {
		parts = append(parts, "backtraces: off")
	}
	if m.follow {
		parts = append(parts, statusCountStyle.Render("following"))
	}

	var help []string
	for _, b := range m.keys.ShortHelp() {
		help = append(help, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}
	parts = append(parts, helpStyle.Render(strings.Join(help, " • ")))

	return statusStyle.Render(strings.Join(parts, "  |  "))
}

// refreshContent re-renders the event list into the viewport.
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	shown := m.shownEvents()
	if len(shown) == 0 {
		m.viewport.SetContent(seqStyle.Render("No events match the current filter."))
		return
	}

	var b strings.Builder
	for _, ev := range shown {
		m.renderEvent(&b, ev)
	}
	m.viewport.SetContent(strings.TrimRight(b.String(), "\n"))
}

// renderEvent writes one styled event, with its backtrace when enabled.
func (m *Model) renderEvent(b *strings.Builder, ev Event) {
	b.WriteString(seqStyle.Render(fmt.Sprintf("%5d ", ev.Seq)))

	if ev.Verb == verbWarn {
		b.WriteString(warnTextStyle.Render(ev.Note))
	} else {
		b.WriteString(verbStyle(ev.Verb).Render(ev.Verb))
		b.WriteString(" ")
		if ev.Verb == verbRealloc {
			b.WriteString(renderBlock(ev.OldAddr, ev.OldSize, ev.OldAlign))
			b.WriteString(" to ")
		}
		b.WriteString(renderBlock(ev.Addr, ev.Size, ev.Align))
	}
	b.WriteString("\n")

	if !m.stacks {
		return
	}
	for _, f := range ev.Stack {
		b.WriteString("        ")
		b.WriteString(frameFuncStyle.Render(f.Func))
		b.WriteString("\n            ")
		b.WriteString(frameLocStyle.Render(fmt.Sprintf("%s:%d", f.File, f.Line)))
		b.WriteString("\n")
	}
}

// renderBlock renders a styled block descriptor
func renderBlock(addr uint64, size, align int) string {
	return fmt.Sprintf("[address=%s, size=%d, align=%d]",
		addrStyle.Render(fmt.Sprintf("0x%x", addr)), size, align)
}
