package output

import (
	"sort"
	"strings"

	"github.com/rgehrsitz/passrefund/internal/batch"
	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders refund results and batch reports in one output format.
type Formatter interface {
	Name() string
	FormatResult(result *domain.RefundResult) ([]byte, error)
	FormatReport(report *batch.Report) ([]byte, error)
}

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"json":    JSONFormatter{},
	"csv":     CSVFormatter{},
	"html":    HTMLFormatter{},
}

var formatAliases = map[string]string{
	"text":    "console",
	"table":   "console",
	"verbose": "console",
}

// GetFormatterByName returns the formatter registered under name or one of
// its aliases, or nil when there is none.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormats lists the registered formatter names
func AvailableFormats() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted alternative names
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// FormatCurrency renders a yen amount for reports
func FormatCurrency(amount decimal.Decimal) string {
	return domain.FormatYen(amount)
}
