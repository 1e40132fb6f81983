package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/passrefund/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of refund case files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a YAML case file
func (ip *InputParser) LoadFromFile(filename string) (*domain.CaseFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and structurally validates case file content
func (ip *InputParser) Parse(data []byte) (*domain.CaseFile, error) {
	var file domain.CaseFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateCaseFile(&file); err != nil {
		return nil, fmt.Errorf("case file validation failed: %w", err)
	}

	return &file, nil
}

// ValidateCaseFile checks the shape of a case file. Field-level refund rules
// are applied per case when the case is computed, so one bad case does not
// hide the results of the others.
func (ip *InputParser) ValidateCaseFile(file *domain.CaseFile) error {
	if len(file.Cases) == 0 {
		return fmt.Errorf("no cases provided")
	}

	seen := make(map[string]int, len(file.Cases))
	for i := range file.Cases {
		c := &file.Cases[i]
		if err := ip.validateCase(c); err != nil {
			return fmt.Errorf("case %d (%s) validation failed: %w", i, c.Name, err)
		}
		if prev, dup := seen[c.Name]; dup {
			return fmt.Errorf("case %d duplicates the name %q of case %d", i, c.Name, prev)
		}
		seen[c.Name] = i
	}
	return nil
}

func (ip *InputParser) validateCase(c *domain.RefundCase) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}

	switch c.Kind {
	case "":
		c.Kind = domain.KindRegular
	case domain.KindRegular, domain.KindSectionChange:
	default:
		return fmt.Errorf("kind must be %q or %q, got %q", domain.KindRegular, domain.KindSectionChange, c.Kind)
	}

	if c.Expected != nil && c.Expected.RefundAmount.IsNegative() {
		return fmt.Errorf("expected refund amount cannot be negative")
	}
	return nil
}
