// Package tui is the interactive plan viewer.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/wealthpath/internal/calculation"
	"github.com/rgehrsitz/wealthpath/internal/domain"
)

// Model represents the entire application state
type Model struct {
	// Terminal dimensions
	width  int
	height int

	// Inputs and engine
	source string
	inputs domain.CalculatorInputs
	engine *calculation.CalculationEngine

	// Current run settings; seed zero asks the engine for a fresh one
	seed          int64
	deterministic bool
	gen           int

	plan     *domain.RetirementPlan
	previous *domain.RetirementPlan

	tab   Tab
	table table.Model
	keys  keyMap
	help  help.Model

	// Error state
	err error

	// Loading state
	loading bool
}

// NewModel creates a viewer for one household. source labels the title bar,
// usually the input file path.
func NewModel(engine *calculation.CalculationEngine, inputs domain.CalculatorInputs, source string, opts calculation.Options) Model {
	t := table.New(table.WithFocused(true), table.WithHeight(12))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	t.SetStyles(styles)

	return Model{
		width:         100,
		height:        32,
		source:        source,
		inputs:        inputs,
		engine:        engine,
		seed:          opts.Seed,
		deterministic: opts.Deterministic,
		table:         t,
		keys:          defaultKeyMap(),
		help:          help.New(),
		loading:       true,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return m.calculateCmd()
}

// Plan returns the plan on screen, nil before the first calculation.
func (m Model) Plan() *domain.RetirementPlan { return m.plan }

// Tab returns the selected table.
func (m Model) Tab() Tab { return m.tab }

// calculateCmd returns a command that runs the engine with the current settings
func (m Model) calculateCmd() tea.Cmd {
	engine, inputs, gen := m.engine, m.inputs, m.gen
	opts := calculation.Options{Seed: m.seed, Deterministic: m.deterministic}
	return func() tea.Msg {
		plan, err := engine.CalculateRetirementPlan(inputs, opts)
		if err != nil {
			return PlanCalculatedMsg{Gen: gen, Err: err}
		}
		return PlanCalculatedMsg{Gen: gen, Plan: &plan}
	}
}

// Run starts the full-screen program and blocks until it exits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
