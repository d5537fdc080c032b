package exporter

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/shell-assess/internal/model"
)

// ExportXLSX writes the assessments as a styled workbook: a Results sheet
// with one row per account and a Summary sheet with aggregate counts.
func ExportXLSX(path string, assessments []model.Assessment) error {
	f, err := buildWorkbook(assessments)
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save workbook")
	}
	return nil
}

// ExportXLSXWriter streams the workbook to w, for HTTP downloads.
func ExportXLSXWriter(w io.Writer, assessments []model.Assessment) error {
	f, err := buildWorkbook(assessments)
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}

func buildWorkbook(assessments []model.Assessment) (*xlsx.File, error) {
	f := xlsx.NewFile()

	results, err := f.AddSheet("Results")
	if err != nil {
		return nil, eris.Wrap(err, "export: add results sheet")
	}

	headerStyle := xlsx.NewStyle()
	headerStyle.Font.Bold = true
	headerStyle.Fill = *xlsx.NewFill("solid", "FFD9E1F2", "FF000000")
	headerStyle.ApplyFill = true
	headerStyle.ApplyFont = true

	hr := results.AddRow()
	for _, col := range reportColumns {
		cell := hr.AddCell()
		cell.SetString(col)
		cell.SetStyle(headerStyle)
	}

	for _, a := range assessments {
		row := results.AddRow()
		for _, v := range buildRow(a) {
			row.AddCell().SetString(v)
		}
	}

	if err := addSummarySheet(f, assessments); err != nil {
		return nil, err
	}
	return f, nil
}

func addSummarySheet(f *xlsx.File, assessments []model.Assessment) error {
	summary, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}

	var badDomains, shellLinked, addrMismatch, aiScored int
	for _, a := range assessments {
		if a.Flags.BadDomain.IsBad {
			badDomains++
		}
		if a.Flags.ShellLinked() {
			shellLinked++
		}
		if ac := a.Flags.AddressConsistency; ac != nil && !ac.IsConsistent {
			addrMismatch++
		}
		if a.AI != nil && a.AI.Success {
			aiScored++
		}
	}

	rows := [][2]string{
		{"Accounts assessed", fmt.Sprintf("%d", len(assessments))},
		{"Bad domains", fmt.Sprintf("%d", badDomains)},
		{"Shell-linked", fmt.Sprintf("%d", shellLinked)},
		{"Address mismatches", fmt.Sprintf("%d", addrMismatch)},
		{"AI scored", fmt.Sprintf("%d", aiScored)},
	}
	for _, r := range rows {
		row := summary.AddRow()
		row.AddCell().SetString(r[0])
		row.AddCell().SetString(r[1])
	}
	return nil
}
