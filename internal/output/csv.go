package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/passrefund/internal/batch"
	"github.com/rgehrsitz/passrefund/internal/domain"
)

// CSVFormatter renders one row per result.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

var csvHeader = []string{"Case", "Kind", "Status", "RefundAmount", "UsedAmount", "ProcessingFee", "Method", "ElapsedDays", "Errors"}

func (c CSVFormatter) FormatResult(result *domain.RefundResult) ([]byte, error) {
	return writeCSV([][]string{resultRow("", string(batch.StatusOK), result)})
}

func (c CSVFormatter) FormatReport(report *batch.Report) ([]byte, error) {
	rows := make([][]string, 0, len(report.Entries))
	for _, e := range report.Entries {
		if e.Result != nil {
			rows = append(rows, resultRow(e.Name, string(e.Status), e.Result))
			continue
		}
		msg := e.Error
		if len(e.Errors) > 0 {
			msg = e.Errors.Error()
		}
		rows = append(rows, []string{e.Name, string(e.Kind), string(e.Status), "", "", "", "", "", msg})
	}
	return writeCSV(rows)
}

func resultRow(name, status string, r *domain.RefundResult) []string {
	return []string{
		name,
		string(r.Kind),
		status,
		r.RefundAmount.StringFixed(0),
		r.UsedAmount.StringFixed(0),
		r.ProcessingFee.StringFixed(0),
		string(r.Breakdown.Method),
		strconv.Itoa(r.Breakdown.ElapsedDays),
		"",
	}
}

func writeCSV(rows [][]string) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
