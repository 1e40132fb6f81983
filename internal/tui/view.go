package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/passrefund/internal/compare"
	"github.com/rgehrsitz/passrefund/internal/dateutil"
	"github.com/rgehrsitz/passrefund/internal/domain"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneForm:
		content = m.renderForm()
	case SceneResult:
		content = m.renderResult()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Commuter Pass Refund Calculator")
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(m.currentScene.String()))
}

func (m Model) renderStatusBar() string {
	var shortcuts []string
	switch m.currentScene {
	case SceneForm:
		shortcuts = []string{
			formatShortcut("tab", "next"),
			formatShortcut("←/→", "change option"),
			formatShortcut("enter", "calculate"),
			formatShortcut("ctrl+c", "quit"),
		}
	case SceneResult:
		shortcuts = []string{
			formatShortcut("esc", "edit"),
			formatShortcut("c", "compare rules"),
			formatShortcut("?", "help"),
			formatShortcut("q", "quit"),
		}
	default:
		shortcuts = []string{formatShortcut("esc", "back")}
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderForm() string {
	body := m.form.View()
	if m.calculating {
		body += "\n" + SubtitleStyle.Render("Calculating...")
	}
	if m.err != nil {
		body += "\n" + ErrorStyle.Render("Error: "+m.err.Error())
	}
	return BorderStyle.Render(body)
}

func (m Model) renderResult() string {
	if m.result == nil {
		return BorderStyle.Render("No calculation yet")
	}
	if m.showCompare && m.comparison != nil {
		return BorderStyle.Render(renderComparison(m.comparison))
	}

	r := m.result
	var sb strings.Builder

	sb.WriteString(SubtitleStyle.Render("BASIC INFORMATION") + "\n")
	sb.WriteString(fmt.Sprintf("%s%s\n", LabelStyle.Render("Refund type"), kindLabel(m.kind)))
	sb.WriteString(fmt.Sprintf("%s%s\n", LabelStyle.Render("Pass"), m.lastInput.Tier))
	sb.WriteString(fmt.Sprintf("%s%s to %s\n", LabelStyle.Render("Period"),
		dateutil.Format(m.lastInput.StartDate), dateutil.Format(m.lastInput.RefundDate)))
	sb.WriteString(fmt.Sprintf("%s%s\n\n", LabelStyle.Render("Purchase price"), domain.FormatYen(m.lastInput.PurchasePrice)))

	sb.WriteString(SubtitleStyle.Render("CALCULATION") + "\n")
	sb.WriteString(r.Breakdown.AppliedRule + "\n")
	for _, step := range r.Breakdown.Steps {
		sb.WriteString(StepStyle.Render(step) + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString(SubtitleStyle.Render("RESULT") + "\n")
	sb.WriteString(fmt.Sprintf("%s%s\n", LabelStyle.Render("Used amount"), domain.FormatYen(r.UsedAmount)))
	sb.WriteString(fmt.Sprintf("%s%s\n", LabelStyle.Render("Processing fee"), domain.FormatYen(r.ProcessingFee)))
	amount := AmountStyle.Render(domain.FormatYen(r.RefundAmount))
	if !r.IsRefundable() {
		amount = NoRefundStyle.Render(domain.FormatYen(r.RefundAmount) + " (no refund)")
	}
	sb.WriteString(fmt.Sprintf("%s%s", LabelStyle.Render("Refund amount"), amount))

	return BorderStyle.Render(sb.String())
}

func renderComparison(rc *compare.RuleComparison) string {
	return (&compare.TableFormatter{}).Format(rc)
}

func kindLabel(kind domain.RefundKind) string {
	if kind == domain.KindSectionChange {
		return "Section change"
	}
	return "Regular"
}

func (m Model) renderHelp() string {
	helpText := `Commuter Pass Refund Calculator

INPUT FORM:
  tab/↓      Next field
  shift+tab  Previous field
  ←/→        Change refund type or pass tier
  enter      Calculate

RESULT:
  c          Compare regular and section change refunds
  esc        Edit the input
  ?          Show this help
  q/Ctrl+C   Quit

RULES:
  Within 7 days of the start date the used portion is billed at the
  round-trip fare per day. After that, regular refunds bill whole used
  months and section change refunds bill ten-day periods at the daily
  fare. A processing fee of ¥220 is always deducted.`

	return BorderStyle.Render(helpText)
}
