package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// chrome is the height taken by the title, cards, tabs and help.
const chrome = 16

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetWidth(msg.Width - 2)
		m.table.SetHeight(max(5, msg.Height-chrome))
		return m, nil

	case PlanCalculatedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		if m.plan != nil {
			m.previous = m.plan
		}
		m.plan = msg.Plan
		m.seed = msg.Plan.Seed
		m.refreshTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		m.refreshTable()
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.refreshTable()
		return m, nil

	case key.Matches(msg, m.keys.Reroll):
		m.seed = 0
		return m.recalculate()

	case key.Matches(msg, m.keys.Deterministic):
		m.deterministic = !m.deterministic
		return m.recalculate()
	}

	// Let the table handle other keys
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) recalculate() (tea.Model, tea.Cmd) {
	m.gen++
	m.loading = true
	return m, m.calculateCmd()
}
