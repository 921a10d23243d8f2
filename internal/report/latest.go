package report

import (
	"cert-checker/internal/entity"
	"cert-checker/internal/i18n"
)

// ResultStore is satisfied by usecase.CertScanService.
type ResultStore interface {
	Last() *entity.ScanResult
}

// Latest serves the most recent scan as TSV in a fixed language.
type Latest struct {
	Store ResultStore
	Lang  i18n.Lang
}

// ReportTSV returns false until the first scan has completed.
func (l Latest) ReportTSV() (string, bool) {
	result := l.Store.Last()
	if result == nil {
		return "", false
	}
	state := i18n.NewState(l.Lang).Scanning(result.Folder, result.Threshold).Done(len(result.Certificates()))
	return Build(result, i18n.Render(state)).TSV(), true
}
