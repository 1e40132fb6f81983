package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/passrefund/internal/domain"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []CaseTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if questions
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Timing templates
	registry.Register(Template{
		Name:        "one_week_later",
		Description: "Refund the pass one week later",
		Transforms:  []CaseTransform{&ShiftRefundDate{Days: 7}},
	})

	registry.Register(Template{
		Name:        "one_month_later",
		Description: "Refund the pass one month later",
		Transforms:  []CaseTransform{&ShiftRefundDate{Months: 1}},
	})

	registry.Register(Template{
		Name:        "grace_period_end",
		Description: "Refund on the last day billed at the round-trip day rate",
		Transforms:  []CaseTransform{&RefundOnDay{Day: domain.GracePeriodDays}},
	})

	registry.Register(Template{
		Name:        "first_decade_end",
		Description: "Refund on the last day of the first ten-day decade",
		Transforms:  []CaseTransform{&RefundOnDay{Day: domain.DecadeDays}},
	})

	// Rule templates
	registry.Register(Template{
		Name:        "route_change",
		Description: "Refund under the section change rule",
		Transforms:  []CaseTransform{&SetKind{Kind: domain.KindSectionChange}},
	})

	registry.Register(Template{
		Name:        "regular_cancellation",
		Description: "Refund under the regular cancellation rule",
		Transforms:  []CaseTransform{&SetKind{Kind: domain.KindRegular}},
	})

	return registry
}

// ApplyTemplate applies a template to a base case
func ApplyTemplate(base *domain.RefundCase, template Template) (*domain.RefundCase, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// Resolve collects the transforms of the named templates followed by the
// transforms described by specs, in that order.
func Resolve(templates *TemplateRegistry, transforms *TransformRegistry, templateNames, specs []string) ([]CaseTransform, error) {
	var out []CaseTransform
	for _, name := range templateNames {
		t, ok := templates.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown template: %s (available: %s)", name, strings.Join(templates.List(), ", "))
		}
		out = append(out, t.Transforms...)
	}
	for _, spec := range specs {
		t, err := transforms.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func isRuleTemplate(t Template) bool {
	if len(t.Transforms) != 1 {
		return false
	}
	_, ok := t.Transforms[0].(*SetKind)
	return ok
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{
		"Timing": {},
		"Rule":   {},
	}
	for _, name := range registry.List() {
		template := registry.templates[name]
		if isRuleTemplate(template) {
			categories["Rule"] = append(categories["Rule"], template)
		} else {
			categories["Timing"] = append(categories["Timing"], template)
		}
	}

	for _, category := range []string{"Timing", "Rule"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-24s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  passrefund batch cases.yaml --template one_week_later\n")
	sb.WriteString("  passrefund batch cases.yaml --transform shift_refund_date:months=1,days=3\n")

	return sb.String()
}
