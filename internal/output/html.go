package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"github.com/rgehrsitz/passrefund/internal/batch"
	"github.com/rgehrsitz/passrefund/internal/domain"
)

// HTMLFormatter produces a standalone HTML page.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
}).Parse(htmlTemplateSource))

type htmlView struct {
	Title       string
	ID          string
	GeneratedAt time.Time
	Entries     []batch.Entry
	Summary     *batch.Summary
}

func (h HTMLFormatter) FormatResult(result *domain.RefundResult) ([]byte, error) {
	return h.render(htmlView{
		Title:   "Pass Refund",
		Entries: []batch.Entry{{Kind: result.Kind, Status: batch.StatusOK, Result: result}},
	})
}

func (h HTMLFormatter) FormatReport(report *batch.Report) ([]byte, error) {
	return h.render(htmlView{
		Title:       "Pass Refund Batch Report",
		ID:          report.ID.String(),
		GeneratedAt: report.GeneratedAt,
		Entries:     report.Entries,
		Summary:     &report.Summary,
	})
}

func (h HTMLFormatter) render(view htmlView) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
