package tui

import (
	"github.com/rgehrsitz/passrefund/internal/compare"
	"github.com/rgehrsitz/passrefund/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneResult
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Input"
	case SceneResult:
		return "Result"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// CalculationCompleteMsg carries the outcome of a submitted form
type CalculationCompleteMsg struct {
	Kind       domain.RefundKind
	Result     *domain.RefundResult
	Comparison *compare.RuleComparison
	Err        error
}
