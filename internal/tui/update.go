package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/passrefund/internal/validation"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case CalculationCompleteMsg:
		return m.applyCalculation(msg), nil
	}

	if m.currentScene == SceneForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	switch m.currentScene {
	case SceneForm:
		if key.Matches(msg, keys.Submit) {
			return m.submit()
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case SceneResult:
		switch {
		case key.Matches(msg, keys.Back):
			return m, navigate(SceneForm)
		case key.Matches(msg, keys.Compare):
			m.showCompare = !m.showCompare && m.comparison != nil
			return m, nil
		case key.Matches(msg, keys.Help):
			return m, navigate(SceneHelp)
		case msg.String() == "q":
			return m, tea.Quit
		}

	case SceneHelp:
		if key.Matches(msg, keys.Back, keys.Help) {
			return m, navigate(m.previousScene)
		}
	}
	return m, nil
}

// submit parses the form and starts the calculation
func (m Model) submit() (tea.Model, tea.Cmd) {
	in, err := m.form.Parse()
	if err != nil {
		var errs validation.Errors
		if errors.As(err, &errs) {
			m.form.SetErrors(errs)
		}
		return m, nil
	}
	m.form.SetErrors(nil)
	m.calculating = true
	m.lastInput = in
	return m, calculateCmd(in, m.form.Kind())
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}
