package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/hypersonic/store"
)

const playInterval = 200 * time.Millisecond

type model struct {
	path    string
	rows    []store.TickRow
	idx     int
	playing bool
}

func newModel(path string, rows []store.TickRow) model {
	return model{path: path, rows: rows}
}

type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(playInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "right", "l", "n":
			m.step(1)
		case "left", "h", "p":
			m.step(-1)
		case "g", "home":
			m.idx = 0
		case "G", "end":
			m.idx = len(m.rows) - 1
		case " ":
			m.playing = !m.playing
			if m.playing {
				return m, tickCmd()
			}
		}
	case TickMsg:
		if !m.playing {
			return m, nil
		}
		if m.idx >= len(m.rows)-1 {
			m.playing = false
			return m, nil
		}
		m.idx++
		return m, tickCmd()
	}
	return m, nil
}

func (m *model) step(d int) {
	m.idx += d
	if m.idx < 0 {
		m.idx = 0
	}
	if m.idx > len(m.rows)-1 {
		m.idx = len(m.rows) - 1
	}
}

func (m model) View() string {
	row := m.rows[m.idx]

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", m.path)
	fmt.Fprintf(&b, "Tick %d (%d/%d)  %s\n\n", row.Tick, m.idx+1, len(m.rows), row.SessionID)

	for _, line := range row.Rows {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "\nCharacter: %d,%d\n", row.CharRow, row.CharCol)
	fmt.Fprintf(&b, "Action:    %s -> %d,%d\n", row.Action, row.TargetRow, row.TargetCol)
	fmt.Fprintf(&b, "Mode:      %s\n", row.Mode)
	fmt.Fprintf(&b, "Range:     %d  Devices: %d/%d\n", row.Range, row.Available, row.Capacity)
	fmt.Fprintf(&b, "Decided in %s\n", time.Duration(row.ElapsedMicros)*time.Microsecond)

	state := "paused"
	if m.playing {
		state = "playing"
	}
	fmt.Fprintf(&b, "\n[%s] left/right step, space play, g/G first/last, q quit.\n", state)
	return b.String()
}
