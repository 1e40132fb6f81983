package transform

import (
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/passrefund/internal/dateutil"
	"github.com/rgehrsitz/passrefund/internal/domain"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()

	template := Template{
		Name:        "test_template",
		Description: "A test template",
		Transforms:  []CaseTransform{},
	}
	registry.Register(template)

	retrieved, ok := registry.Get("test_template")
	if !ok {
		t.Fatal("Expected to find template")
	}
	if retrieved.Name != template.Name {
		t.Errorf("Expected name %s, got %s", template.Name, retrieved.Name)
	}

	if _, ok := registry.Get("TEST_TEMPLATE"); !ok {
		t.Error("Expected case-insensitive lookup to work")
	}

	if _, ok := registry.Get("nonexistent"); ok {
		t.Error("Expected not to find nonexistent template")
	}
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	expected := []string{
		"first_decade_end",
		"grace_period_end",
		"one_month_later",
		"one_week_later",
		"regular_cancellation",
		"route_change",
	}
	names := registry.List()
	if strings.Join(names, ",") != strings.Join(expected, ",") {
		t.Errorf("Expected templates %v, got %v", expected, names)
	}
}

func TestApplyTemplate(t *testing.T) {
	registry := CreateBuiltInTemplates()

	tests := []struct {
		template   string
		wantRefund time.Time
		wantKind   domain.RefundKind
	}{
		{"one_week_later", dateutil.Date(2025, time.July, 11), domain.KindRegular},
		{"one_month_later", dateutil.Date(2025, time.August, 4), domain.KindRegular},
		{"grace_period_end", dateutil.Date(2025, time.June, 11), domain.KindRegular},
		{"first_decade_end", dateutil.Date(2025, time.June, 14), domain.KindRegular},
		{"route_change", dateutil.Date(2025, time.July, 4), domain.KindSectionChange},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			template, ok := registry.Get(tt.template)
			if !ok {
				t.Fatalf("Template %s not found", tt.template)
			}

			result, err := ApplyTemplate(createTestCase(), template)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !result.RefundDate.Equal(tt.wantRefund) {
				t.Errorf("Expected refund date %s, got %s", dateutil.Format(tt.wantRefund), dateutil.Format(result.RefundDate))
			}
			if result.Kind != tt.wantKind {
				t.Errorf("Expected kind %s, got %s", tt.wantKind, result.Kind)
			}
		})
	}
}

func TestParseTemplateList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"one_week_later", []string{"one_week_later"}},
		{"one_week_later, route_change,,", []string{"one_week_later", "route_change"}},
	}

	for _, tt := range tests {
		got := ParseTemplateList(tt.input)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("ParseTemplateList(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	templates := CreateBuiltInTemplates()
	transforms := NewTransformRegistry()

	resolved, err := Resolve(templates, transforms, []string{"route_change"}, []string{"shift_refund_date:days=7"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("Expected 2 transforms, got %d", len(resolved))
	}
	if resolved[0].Name() != "set_kind" || resolved[1].Name() != "shift_refund_date" {
		t.Errorf("Unexpected order: %s, %s", resolved[0].Name(), resolved[1].Name())
	}

	if _, err := Resolve(templates, transforms, []string{"next_year"}, nil); err == nil {
		t.Error("Expected error for unknown template")
	}
	if _, err := Resolve(templates, transforms, nil, []string{"bogus"}); err == nil {
		t.Error("Expected error for malformed spec")
	}
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())

	for _, want := range []string{"Available Templates:", "Timing:", "Rule:", "route_change", "one_week_later", "Usage:"} {
		if !strings.Contains(help, want) {
			t.Errorf("Expected help to contain %q", want)
		}
	}

	if got := GetTemplateHelp(NewTemplateRegistry()); got != "No templates registered" {
		t.Errorf("Unexpected help for empty registry: %q", got)
	}
}
