// Package exporter writes assessment results as CSV or XLSX reports.
package exporter

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/shell-assess/internal/model"
)

// reportColumns defines the ordered output columns shared by both formats.
var reportColumns = []string{
	"Account ID",
	"Account Name",
	"Website",
	"Parent ID",
	"Parent Name",
	"Bad Domain",
	"Bad Domain Explanation",
	"Has Shell",
	"Customer Consistency",
	"Customer Consistency Explanation",
	"Customer-Shell Coherence",
	"Customer-Shell Coherence Explanation",
	"Address Consistent",
	"Address Explanation",
	"AI Confidence",
	"AI Explanation",
}

// ExportCSV writes the assessments as a CSV report.
func ExportCSV(w io.Writer, assessments []model.Assessment) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(reportColumns); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, a := range assessments {
		if err := cw.Write(buildRow(a)); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush")
	}
	return nil
}

// buildRow flattens one assessment into the report column layout. Flags
// that were never computed render as blank cells rather than zeros.
func buildRow(a model.Assessment) []string {
	f := a.Flags
	row := []string{
		a.Account.ID,
		a.Account.Name,
		a.Account.Website,
		a.Account.ParentID,
		a.Account.ParentName,
		strconv.FormatBool(f.BadDomain.IsBad),
		f.BadDomain.Explanation,
	}

	row = append(row, optBool(f.HasShell))
	row = append(row, optScore(f.CustomerConsistency)...)
	row = append(row, optScore(f.CustomerShellCoherence)...)

	if f.AddressConsistency != nil {
		row = append(row, strconv.FormatBool(f.AddressConsistency.IsConsistent), f.AddressConsistency.Explanation)
	} else {
		row = append(row, "", "")
	}

	if a.AI != nil && a.AI.Success {
		row = append(row, strconv.Itoa(a.AI.ConfidenceScore), strings.Join(a.AI.ExplanationBullets, "; "))
	} else if a.AI != nil {
		row = append(row, "", a.AI.Error)
	} else {
		row = append(row, "", "")
	}
	return row
}

func optBool(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func optScore(s *model.ScoreFlag) []string {
	if s == nil {
		return []string{"", ""}
	}
	return []string{strconv.Itoa(s.Score), s.Explanation}
}
