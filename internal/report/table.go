// Package report turns a scan result into a table for the terminal, the
// clipboard or the /report endpoint.
package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"cert-checker/internal/entity"
	"cert-checker/internal/i18n"
)

type Table struct {
	Header []string
	Rows   [][]string
}

// Build lists result entries in order. An error entry puts its message in the
// expiry column and N/A everywhere else.
func Build(result *entity.ScanResult, view i18n.View) Table {
	t := Table{Header: append([]string(nil), view.Columns...)}
	if result == nil {
		return t
	}

	for _, e := range result.Entries {
		switch v := e.(type) {
		case entity.ExpiringCertificate:
			t.Rows = append(t.Rows, []string{
				v.FileName,
				v.Expiry.String(),
				strconv.Itoa(v.DaysLeft),
				v.Issuer.String(),
				v.Subject.String(),
				v.SerialNumber,
			})
		case entity.ErrorEntry:
			t.Rows = append(t.Rows, []string{
				v.FileName,
				v.Message,
				entity.Unknown,
				entity.Unknown,
				entity.Unknown,
				entity.Unknown,
			})
		}
	}
	return t
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// TSV joins fields with tabs and lines with \n, header first. Tabs and line
// breaks inside a field become spaces so every line splits back into the same fields.
func (t Table) TSV() string {
	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, tsvLine(t.Header))
	for _, row := range t.Rows {
		lines = append(lines, tsvLine(row))
	}
	return strings.Join(lines, "\n")
}

var fieldCleaner = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

func tsvLine(fields []string) string {
	clean := make([]string, len(fields))
	for i, f := range fields {
		clean[i] = fieldCleaner.Replace(f)
	}
	return strings.Join(clean, "\t")
}

// Render draws the table with box borders.
func (t Table) Render(w io.Writer) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
	})
	tw.AppendBulk(t.Rows)
	tw.Render()
}
