// Package console is an interactive terminal viewer for a Logger.
//
// It polls the logger's history snapshot on a fixed tick and renders the
// entries with per-severity colors, scrollback with auto-follow, a severity
// floor, and substring search. The console consumes only the public logger
// surface; it holds no private hooks into the core.
package console

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/trickstertwo/xtail"
)

// Options configure a console Model.
type Options struct {
	// Logger to view. Defaults to the process-wide logger, which panics
	// when unset.
	Logger *xtail.Logger

	// Title shown on the log panel. Defaults to "xtail".
	Title string

	// PollEvery is the history refresh interval. Defaults to 250ms.
	PollEvery time.Duration
}

type tickMsg time.Time

// Model is a bubbletea model over a live logger history.
type Model struct {
	lg        *xtail.Logger
	title     string
	pollEvery time.Duration

	entries []xtail.Entry // latest snapshot, oldest first

	minLevel  xtail.Level
	query     string // committed search filter
	search    textinput.Model
	searching bool

	cursor int  // index into the visible entries
	follow bool // pin the cursor to the newest entry

	width  int
	height int

	statusMsg string
	errorMsg  string
}

// New builds a console over opts.Logger.
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = xtail.L()
	}
	if opts.Title == "" {
		opts.Title = "xtail"
	}
	if opts.PollEvery <= 0 {
		opts.PollEvery = 250 * time.Millisecond
	}

	ti := textinput.New()
	ti.Placeholder = "substring"
	ti.Prompt = "/"
	ti.CharLimit = 64
	ti.Width = 32

	return Model{
		lg:        opts.Logger,
		title:     opts.Title,
		pollEvery: opts.PollEvery,
		entries:   opts.Logger.History(),
		minLevel:  xtail.LevelDebug,
		search:    ti,
		follow:    true,
	}
}

// Run drives the console in the alternate screen until the user quits.
func Run(opts Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithAltScreen()).Run()
	return err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.pollEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.entries = m.lg.History()
		m = m.clampCursor()
		return m, m.tick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	m.statusMsg = ""
	m.errorMsg = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		m.follow = false
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if n := len(m.visible()); m.cursor < n-1 {
			m.cursor++
		}
		if m.cursor >= len(m.visible())-1 {
			m.follow = true
		}

	case "g":
		m.follow = false
		m.cursor = 0

	case "G":
		m.follow = true
		m = m.clampCursor()

	case "f":
		if m.minLevel >= xtail.LevelFatal {
			m.minLevel = xtail.LevelDebug
		} else {
			m.minLevel++
		}
		m.statusMsg = "showing " + m.minLevel.String() + " and above"
		m = m.clampCursor()

	case "1", "2", "3", "4", "5":
		m.minLevel = xtail.Level(msg.String()[0] - '1')
		m.statusMsg = "showing " + m.minLevel.String() + " and above"
		m = m.clampCursor()

	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case "esc":
		if m.query != "" {
			m.query = ""
			m.search.SetValue("")
			m.statusMsg = "search cleared"
			m = m.clampCursor()
		}

	case "c":
		m.lg.Clear()
		m.entries = nil
		m.cursor = 0
		m.follow = true
		m.statusMsg = "history cleared"

	case "y":
		m = m.copySelected()

	case "Y":
		m = m.copyVisible()

	case "p":
		on := !m.lg.ProductionMode()
		m.lg.SetProduction(on)
		if on {
			m.statusMsg = "production mode on"
		} else {
			m.statusMsg = "production mode off"
		}
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.query)
		return m, nil

	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.query = m.search.Value()
		if m.query == "" {
			m.statusMsg = "search cleared"
		} else {
			m.statusMsg = fmt.Sprintf("filtering on %q", m.query)
		}
		m = m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// visible applies the severity floor and the search filter to the snapshot.
func (m Model) visible() []xtail.Entry {
	if m.minLevel == xtail.LevelDebug && m.query == "" {
		return m.entries
	}
	q := strings.ToLower(m.query)
	out := make([]xtail.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		if !e.Level.Visible(m.minLevel) {
			continue
		}
		if q != "" && !entryMatches(e, q) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func entryMatches(e xtail.Entry, q string) bool {
	return strings.Contains(strings.ToLower(e.Message), q) ||
		strings.Contains(strings.ToLower(e.CallerClass), q) ||
		strings.Contains(strings.ToLower(e.CallerMethod), q)
}

func (m Model) clampCursor() Model {
	n := len(m.visible())
	if m.follow || m.cursor > n-1 {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

func (m Model) copySelected() Model {
	vis := m.visible()
	if len(vis) == 0 {
		m.errorMsg = "nothing to copy"
		return m
	}
	i := m.cursor
	if i > len(vis)-1 {
		i = len(vis) - 1
	}
	if err := clipboard.WriteAll(vis[i].Detail()); err != nil {
		m.errorMsg = "clipboard: " + err.Error()
		return m
	}
	m.statusMsg = "copied 1 entry"
	return m
}

func (m Model) copyVisible() Model {
	vis := m.visible()
	if len(vis) == 0 {
		m.errorMsg = "nothing to copy"
		return m
	}
	var sb strings.Builder
	for _, e := range vis {
		sb.WriteString(e.Detail())
		sb.WriteByte('\n')
	}
	if err := clipboard.WriteAll(sb.String()); err != nil {
		m.errorMsg = "clipboard: " + err.Error()
		return m
	}
	m.statusMsg = fmt.Sprintf("copied %d entries", len(vis))
	return m
}
