package tui

import (
	"fmt"
	"strconv"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	w := max(20, m.width)
	lines := make([]string, 0, m.height)

	title := m.styles.title.Render("numlist") + " " + m.styles.muted.Render(m.serverURL)
	lines = append(lines, fitLine(title, w))
	lines = append(lines, fitLine(m.input.View(), w))

	if m.showHelp {
		lines = append(lines, fitLine(m.styles.header.Render("help  (? or esc to close)"), w))
		lines = append(lines, m.helpLines(w)...)
	} else {
		lines = append(lines, fitLine(m.styles.header.Render(m.columnHeader()), w))
		lines = append(lines, m.rowLines(w)...)
	}

	lines = append(lines, fitLine(m.statusLine(), w))
	lines = append(lines, fitLine(m.help.View(m.keys), w))
	return strings.Join(lines, "\n")
}

func (m appModel) columnHeader() string {
	return "sel value"
}

// rowLines renders exactly visibleRows lines so the footer stays put.
func (m appModel) rowLines(w int) []string {
	h := m.visibleRows()
	out := make([]string, 0, h)
	for i := m.offset; i < len(m.state.items) && len(out) < h; i++ {
		out = append(out, m.renderRow(i, w))
	}
	if len(m.state.items) == 0 && len(out) < h {
		switch m.state.status {
		case statusLoading:
			out = append(out, m.styles.muted.Render("loading…"))
		default:
			out = append(out, m.styles.muted.Render("no items"))
		}
	}
	for len(out) < h {
		out = append(out, "")
	}
	return out
}

func (m appModel) renderRow(i, w int) string {
	it := m.state.items[i]
	box := "[ ]"
	if m.state.isSelected(it.ID) {
		box = "[x]"
	}
	line := box + " " + strconv.FormatInt(it.Value, 10)

	from, over, dragging := m.dragIndices()
	if dragging && i == from {
		line += "  ⇅"
	}
	line = padCut(line, w)

	switch {
	case dragging && i == over && over != from:
		return m.styles.dropPoint.Render(line)
	case dragging && i == from:
		return m.styles.dragging.Render(line)
	case i == m.cursor:
		return m.styles.cursor.Render(line)
	case m.state.isSelected(it.ID):
		return m.styles.checked.Render(line)
	default:
		return m.styles.row.Render(line)
	}
}

func (m appModel) dragIndices() (from, over int, ok bool) {
	switch {
	case m.kbd.active:
		return m.kbd.from, m.kbd.over, true
	case m.ptr.active:
		return m.ptr.from, m.ptr.over, true
	default:
		return -1, -1, false
	}
}

func (m appModel) helpLines(w int) []string {
	h := m.visibleRows()
	all := strings.Split(renderMarkdown(helpMarkdown(), w), "\n")
	start := min(m.helpOffset, max(0, len(all)-1))
	out := make([]string, 0, h)
	for i := start; i < len(all) && len(out) < h; i++ {
		out = append(out, fitLine(all[i], w))
	}
	for len(out) < h {
		out = append(out, "")
	}
	return out
}

func (m appModel) statusLine() string {
	s := m.state
	var parts []string
	if s.status == statusLoading {
		parts = append(parts, m.spinner.View()+" loading page "+strconv.Itoa(s.page))
	}
	parts = append(parts, fmt.Sprintf("%d of %d loaded", len(s.items), s.total))
	parts = append(parts, fmt.Sprintf("%d selected", len(s.selected)))
	if s.pending > 0 {
		parts = append(parts, fmt.Sprintf("saving %d", s.pending))
	}
	if from, over, ok := m.dragIndices(); ok {
		parts = append(parts, fmt.Sprintf("moving row %d to %d", from+1, over+1))
	}
	line := m.styles.muted.Render(strings.Join(parts, " · "))
	if s.lastErr != "" {
		line += " " + m.styles.err.Render("error: "+s.lastErr)
	}
	return line
}

// padCut pads or truncates plain text to exactly w cells.
func padCut(s string, w int) string {
	sw := xansi.StringWidth(s)
	if sw < w {
		return s + strings.Repeat(" ", w-sw)
	}
	if sw > w {
		return xansi.Cut(s, 0, w)
	}
	return s
}

// fitLine truncates styled text to w cells without padding.
func fitLine(s string, w int) string {
	if xansi.StringWidth(s) <= w {
		return s
	}
	return xansi.Truncate(s, w, "…")
}
