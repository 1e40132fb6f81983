package output

import (
	"encoding/json"

	"github.com/rgehrsitz/passrefund/internal/batch"
	"github.com/rgehrsitz/passrefund/internal/domain"
)

// JSONFormatter renders indented JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) FormatResult(result *domain.RefundResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

func (j JSONFormatter) FormatReport(report *batch.Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
