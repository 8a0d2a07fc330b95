// Package tui is an interactive browser for all-in records: a list of
// confrontations with a detail pane for the selected hand.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/railbird/railbird/internal/ev"
)

// Model is the Bubble Tea model for the record browser.
type Model struct {
	batch    *ev.Batch
	selected int

	detail      viewport.Model
	width       int
	height      int
	initialized bool
	quitting    bool
}

// NewModel builds a browser over a batch of records.
func NewModel(batch *ev.Batch) Model {
	return Model{batch: batch}
}

// Run starts the browser and blocks until the user quits.
func Run(batch *ev.Batch) error {
	_, err := tea.NewProgram(NewModel(batch), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		detailHeight := m.height - m.listHeight() - 2
		if detailHeight < 3 {
			detailHeight = 3
		}
		if !m.initialized {
			m.detail = viewport.New(m.width, detailHeight)
			m.initialized = true
		} else {
			m.detail.Width = m.width
			m.detail.Height = detailHeight
		}
		m.detail.SetContent(m.detailContent())

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.detail.SetContent(m.detailContent())
			}
		case "down", "j":
			if m.selected < len(m.batch.Records)-1 {
				m.selected++
				m.detail.SetContent(m.detailContent())
			}
		default:
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// listHeight bounds the record list so the detail pane keeps room.
func (m Model) listHeight() int {
	h := len(m.batch.Records)
	if max := m.height / 2; h > max && max > 0 {
		h = max
	}
	return h
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if len(m.batch.Records) == 0 {
		return infoStyle.Render("no all-in confrontations to browse (press q to quit)")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf(" All-ins: %d records, %d skipped ",
		len(m.batch.Records), len(m.batch.Skipped))))
	b.WriteString("\n")

	// Keep the selection visible within the list window.
	height := m.listHeight()
	if height == 0 {
		height = len(m.batch.Records)
	}
	start := 0
	if m.selected >= height {
		start = m.selected - height + 1
	}
	for i := start; i < len(m.batch.Records) && i < start+height; i++ {
		line := m.listLine(m.batch.Records[i])
		if i == m.selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.initialized {
		b.WriteString("\n")
		b.WriteString(m.detail.View())
	}
	b.WriteString("\n")
	b.WriteString(infoStyle.Render("up/down select, q quit"))
	return b.String()
}

func (m Model) listLine(record *ev.Record) string {
	players := make([]string, len(record.Results))
	for i, result := range record.Results {
		players[i] = fmt.Sprintf("%s (%s)", result.Player, result.Hole)
	}
	return fmt.Sprintf("hand #%d  %s  pot %d  %s",
		record.HandNumber, record.Street, record.Pot, strings.Join(players, " vs "))
}

func (m Model) detailContent() string {
	if m.selected >= len(m.batch.Records) {
		return ""
	}
	record := m.batch.Records[m.selected]

	var b strings.Builder
	board := make([]string, len(record.Board))
	for i, card := range record.Board {
		board[i] = card.String()
	}
	fmt.Fprintf(&b, "hand #%d (%s), all-in on the %s, board %s\n",
		record.HandNumber, record.HandID, record.Street, strings.Join(board, " "))
	fmt.Fprintf(&b, "pot %d over %d enumerated runouts\n\n", record.Pot, record.Deals)

	for _, result := range record.Results {
		luck := winStyle
		if result.Luck < 0 {
			luck = lossStyle
		}
		fmt.Fprintf(&b, "%-24s %s  invested %d  EV %+.1f  actual %+d  %s\n",
			result.Player, result.Hole, result.Invested, result.EV, result.Actual,
			luck.Render(fmt.Sprintf("luck %+.1f", result.Luck)))
	}
	return b.String()
}
