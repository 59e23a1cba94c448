package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/trickstertwo/xtail"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)

	commandBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("234")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Bold(true)

	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	prodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	devStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	levelStyles = map[xtail.Color]lipgloss.Style{
		xtail.ColorGray:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		xtail.ColorWhite:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		xtail.ColorYellow:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		xtail.ColorLightRed: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		xtail.ColorRed:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

func styleFor(e xtail.Entry) lipgloss.Style {
	if s, ok := levelStyles[e.Color()]; ok {
		return s
	}
	return faintStyle
}

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	panelHeight := m.height - 2 // status bar + command bar
	if panelHeight < 6 {
		panelHeight = 6
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderPanel(m.width, panelHeight),
		m.renderStatusBar(),
		m.renderCommandBar(),
	)
}

func (m Model) renderPanel(width, height int) string {
	innerHeight := height - 2 // border
	if innerHeight < 4 {
		innerHeight = 4
	}
	innerWidth := width - 4 // border + padding
	if innerWidth < 20 {
		innerWidth = 20
	}

	// Title and separator above the entries, scroll indicator below.
	availableLines := innerHeight - 3
	if availableLines < 1 {
		availableLines = 1
	}

	vis := m.visible()
	cursor := m.cursor
	if m.follow {
		cursor = len(vis) - 1
	}
	if cursor > len(vis)-1 {
		cursor = len(vis) - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	offset := offsetFor(cursor, len(vis), availableLines)

	end := offset + availableLines
	if end > len(vis) {
		end = len(vis)
	}

	var body strings.Builder
	for i := offset; i < end; i++ {
		line := vis[i].Detail()
		if len(line) > innerWidth {
			line = line[:innerWidth-3] + "..."
		}
		st := styleFor(vis[i])
		if i == cursor {
			st = selectedStyle
		}
		body.WriteString(st.Render(line))
		body.WriteByte('\n')
	}

	// Keep the panel height stable when there are few entries.
	for i := end - offset; i < availableLines; i++ {
		body.WriteByte('\n')
	}

	body.WriteString(faintStyle.
		Align(lipgloss.Right).
		Width(innerWidth).
		Render(m.scrollIndicator(offset, len(vis), availableLines)))

	title := fmt.Sprintf("%s (%d/%d)", m.title, len(vis), len(m.entries))
	panel := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Width(innerWidth).Align(lipgloss.Center).Render(title),
		strings.Repeat("─", innerWidth),
		body.String(),
	)

	return panelStyle.
		Width(width - 2).      // width minus border
		Height(innerHeight).   // height minus border
		Render(panel)
}

// offsetFor keeps the cursor inside a window of the given size, pinned to
// the tail when the cursor sits on the last entry.
func offsetFor(cursor, total, window int) int {
	if total <= window {
		return 0
	}
	off := cursor - window + 1
	if off < 0 {
		off = 0
	}
	if max := total - window; off > max {
		off = max
	}
	return off
}

func (m Model) scrollIndicator(offset, total, window int) string {
	if total <= window {
		return "[All]"
	}
	maxScroll := total - window
	pct := float64(offset) / float64(maxScroll) * 100
	return fmt.Sprintf("[%d-%d/%d %.0f%%]", offset+1, offset+window, total, pct)
}

func (m Model) renderStatusBar() string {
	if m.errorMsg != "" {
		return statusBarStyle.Width(m.width).Render(alertStyle.Render(m.errorMsg))
	}
	if m.statusMsg != "" {
		return statusBarStyle.Width(m.width).Render(m.statusMsg)
	}

	mode := devStyle.Render("DEV")
	if m.lg.ProductionMode() {
		mode = prodStyle.Render("PROD")
	}
	left := mode + faintStyle.Render("  level>="+m.minLevel.String())
	if m.query != "" {
		left += faintStyle.Render("  /"+m.query)
	}

	right := "following"
	if !m.follow {
		right = "scrolling"
	}

	// Pad safely to avoid negative repeat counts on narrow windows.
	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if spacing < 1 {
		spacing = 1
	}
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", spacing) + right)
}

func (m Model) renderCommandBar() string {
	if m.searching {
		return commandBarStyle.Width(m.width).Render(m.search.View())
	}
	return commandBarStyle.Width(m.width).Render(
		"↑/↓ scroll, g=top, G=bottom, f/1-5 filter, /=search, y/Y=copy, c=clear, p=production, q=quit")
}
