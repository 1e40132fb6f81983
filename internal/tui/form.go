package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/passrefund/internal/dateutil"
	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/rgehrsitz/passrefund/internal/validation"
)

// Text field positions
const (
	fieldStartDate = iota
	fieldRefundDate
	fieldPurchasePrice
	fieldOneWayFare
	fieldOneMonthFare
	fieldThreeMonthFare
	fieldCount
)

// Focus positions before the text fields
const (
	focusKind = iota
	focusTier
	focusFirstInput
)

type fieldSpec struct {
	name        string
	label       string
	placeholder string
}

var fieldSpecs = [fieldCount]fieldSpec{
	{validation.FieldStartDate, "Start date", "YYYY-MM-DD"},
	{validation.FieldRefundDate, "Refund date", "YYYY-MM-DD"},
	{validation.FieldPurchasePrice, "Purchase price", "e.g. 45000"},
	{validation.FieldOneWayFare, "One-way fare", "e.g. 500"},
	{validation.FieldOneMonthFare, "One-month fare", "e.g. 16000"},
	{validation.FieldThreeMonthFare, "Three-month fare", "6-month passes only"},
}

var kinds = []domain.RefundKind{domain.KindRegular, domain.KindSectionChange}

// FormModel is the refund input form
type FormModel struct {
	inputs [fieldCount]textinput.Model
	kind   int
	tier   int
	focus  int
	errs   validation.Errors
}

// NewFormModel creates an empty form with the refund date preset to today
func NewFormModel(today time.Time) *FormModel {
	f := &FormModel{tier: 1}
	for i, spec := range fieldSpecs {
		ti := textinput.New()
		ti.Placeholder = spec.placeholder
		ti.CharLimit = 12
		ti.Width = 20
		ti.Prompt = ""
		f.inputs[i] = ti
	}
	f.inputs[fieldRefundDate].SetValue(dateutil.Format(today))
	return f
}

// Kind is the selected refund rule
func (f *FormModel) Kind() domain.RefundKind {
	return kinds[f.kind]
}

// Tier is the selected pass tier
func (f *FormModel) Tier() domain.PassTier {
	return domain.AllTiers[f.tier]
}

// SetErrors records validation failures to show next to their fields
func (f *FormModel) SetErrors(errs validation.Errors) {
	f.errs = errs
}

// visible reports whether the text field at i applies to the current selection
func (f *FormModel) visible(i int) bool {
	switch i {
	case fieldOneWayFare, fieldOneMonthFare:
		return f.Kind() == domain.KindRegular
	case fieldThreeMonthFare:
		return f.Kind() == domain.KindRegular && f.Tier() == domain.TierSixMonth
	}
	return true
}

// focusOrder lists the focus positions currently reachable
func (f *FormModel) focusOrder() []int {
	order := []int{focusKind, focusTier}
	for i := 0; i < fieldCount; i++ {
		if f.visible(i) {
			order = append(order, focusFirstInput+i)
		}
	}
	return order
}

func (f *FormModel) moveFocus(delta int) tea.Cmd {
	order := f.focusOrder()
	pos := 0
	for i, v := range order {
		if v == f.focus {
			pos = i
		}
	}
	pos = (pos + delta + len(order)) % len(order)
	return f.setFocus(order[pos])
}

func (f *FormModel) setFocus(focus int) tea.Cmd {
	f.focus = focus
	var cmd tea.Cmd
	for i := range f.inputs {
		if focusFirstInput+i == focus {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

// Update handles key presses while the form is shown. Enter is handled by
// the parent model.
func (f *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Next):
			return f, f.moveFocus(1)
		case key.Matches(msg, keys.Prev):
			return f, f.moveFocus(-1)
		case key.Matches(msg, keys.Left, keys.Right) && f.focus < focusFirstInput:
			delta := 1
			if key.Matches(msg, keys.Left) {
				delta = -1
			}
			f.cycleOption(delta)
			return f, nil
		}
	}

	if f.focus >= focusFirstInput {
		i := f.focus - focusFirstInput
		var cmd tea.Cmd
		f.inputs[i], cmd = f.inputs[i].Update(msg)
		return f, cmd
	}
	return f, nil
}

func (f *FormModel) cycleOption(delta int) {
	switch f.focus {
	case focusKind:
		f.kind = (f.kind + delta + len(kinds)) % len(kinds)
	case focusTier:
		f.tier = (f.tier + delta + len(domain.AllTiers)) % len(domain.AllTiers)
	}
}

// Parse reads the form into a refund input. Fields that do not apply to
// the selected rule are not read.
func (f *FormModel) Parse() (domain.RegularRefundInput, error) {
	var p validation.FormParser
	value := func(i int) string { return f.inputs[i].Value() }

	in := domain.RegularRefundInput{
		Tier:          f.Tier(),
		StartDate:     p.Date(validation.FieldStartDate, "start date", value(fieldStartDate)),
		RefundDate:    p.Date(validation.FieldRefundDate, "refund date", value(fieldRefundDate)),
		PurchasePrice: p.Amount(validation.FieldPurchasePrice, "purchase price", value(fieldPurchasePrice)),
	}
	if f.Kind() == domain.KindRegular {
		in.OneWayFare = p.Amount(validation.FieldOneWayFare, "one-way fare", value(fieldOneWayFare))
		in.OneMonthFare = p.Amount(validation.FieldOneMonthFare, "one-month fare", value(fieldOneMonthFare))
		if f.Tier() == domain.TierSixMonth {
			in.ThreeMonthFare = p.OptionalAmount(validation.FieldThreeMonthFare, "three-month fare", value(fieldThreeMonthFare))
		}
	}
	return in, p.Err()
}

// View renders the form
func (f *FormModel) View() string {
	var sb strings.Builder

	sb.WriteString(f.renderOptions(focusKind, "Refund type", []string{"Regular", "Section change"}, f.kind))
	tierNames := make([]string, len(domain.AllTiers))
	for i, t := range domain.AllTiers {
		tierNames[i] = t.String()
	}
	sb.WriteString(f.renderOptions(focusTier, "Pass tier", tierNames, f.tier))
	sb.WriteString("\n")

	for i, spec := range fieldSpecs {
		if !f.visible(i) {
			continue
		}
		label := LabelStyle.Render(spec.label)
		if f.focus == focusFirstInput+i {
			label = FocusedLabelStyle.Render(spec.label)
		}
		sb.WriteString(label + f.inputs[i].View() + "\n")
		for _, e := range f.errs {
			if e.Field == spec.name {
				sb.WriteString(ErrorStyle.Render(fmt.Sprintf("  %s %s", e.Code(), e.Message)) + "\n")
			}
		}
	}

	for _, e := range f.errs {
		if e.Field == validation.FieldTier {
			sb.WriteString("\n" + ErrorStyle.Render(e.Error()))
		}
	}

	return sb.String()
}

func (f *FormModel) renderOptions(focus int, label string, options []string, selected int) string {
	labelStyle := LabelStyle
	if f.focus == focus {
		labelStyle = FocusedLabelStyle
	}
	rendered := make([]string, len(options))
	for i, o := range options {
		if i == selected {
			rendered[i] = SelectedOptionStyle.Render(o)
		} else {
			rendered[i] = OptionStyle.Render(o)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), strings.Join(rendered, "  ")) + "\n"
}
