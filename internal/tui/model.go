package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/passrefund/internal/calculation"
	"github.com/rgehrsitz/passrefund/internal/clock"
	"github.com/rgehrsitz/passrefund/internal/compare"
	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/rgehrsitz/passrefund/internal/validation"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	form *FormModel

	// Last calculation
	kind        domain.RefundKind
	result      *domain.RefundResult
	comparison  *compare.RuleComparison
	showCompare bool
	lastInput   domain.RegularRefundInput
	calculating bool

	// Error state for failures that are not field validation
	err error
}

// NewModel creates a new application model. The refund date field starts
// at today's date according to clk.
func NewModel(clk clock.Clock) Model {
	if clk == nil {
		clk = clock.System{}
	}
	return Model{
		currentScene: SceneForm,
		form:         NewFormModel(clock.Today(clk)),
		width:        80,
		height:       24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return m.form.setFocus(focusFirstInput + fieldStartDate)
}

// calculateCmd returns a command that computes the refund for in under
// the given rule, together with the rule comparison for the same pass.
func calculateCmd(in domain.RegularRefundInput, kind domain.RefundKind) tea.Cmd {
	return func() tea.Msg {
		var (
			result *domain.RefundResult
			err    error
		)
		if kind == domain.KindSectionChange {
			result, err = calculation.ComputeSectionChangeRefund(in.SectionChange())
		} else {
			result, err = calculation.ComputeRegularRefund(in)
		}
		if err != nil {
			return CalculationCompleteMsg{Kind: kind, Err: err}
		}

		msg := CalculationCompleteMsg{Kind: kind, Result: result}
		// Section change inputs carry no fares, so only regular inputs are compared.
		if kind == domain.KindRegular {
			if rc, cerr := compare.NewCompareEngine().Compare(context.Background(), in); cerr == nil {
				msg.Comparison = rc
			}
		}
		return msg
	}
}

// applyCalculation stores a finished calculation and moves to the result
// scene, or keeps the form open with the validation failures.
func (m Model) applyCalculation(msg CalculationCompleteMsg) Model {
	m.calculating = false
	if msg.Err != nil {
		var errs validation.Errors
		if errors.As(msg.Err, &errs) {
			m.form.SetErrors(errs)
			m.err = nil
		} else {
			m.err = msg.Err
		}
		m.currentScene = SceneForm
		return m
	}

	m.form.SetErrors(nil)
	m.err = nil
	m.kind = msg.Kind
	m.result = msg.Result
	m.comparison = msg.Comparison
	m.showCompare = false
	m.previousScene = m.currentScene
	m.currentScene = SceneResult
	return m
}
