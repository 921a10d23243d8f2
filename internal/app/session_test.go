package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cert-checker/internal/entity"
	"cert-checker/internal/i18n"
	"cert-checker/internal/infrastructure/log"
	"cert-checker/internal/prompt"
	"cert-checker/internal/report"
)

type fakeScanner struct {
	result *entity.ScanResult
	err    error
	calls  []entity.ScanConfig
}

func (f *fakeScanner) Scan(_ context.Context, cfg entity.ScanConfig) (*entity.ScanResult, error) {
	f.calls = append(f.calls, cfg)
	return f.result, f.err
}

type recordingSink struct {
	texts []string
	err   error
}

func (r *recordingSink) WriteText(text string) error {
	if r.err != nil {
		return r.err
	}
	r.texts = append(r.texts, text)
	return nil
}

func sampleResult() *entity.ScanResult {
	notAfter := time.Date(2026, 10, 31, 12, 0, 0, 0, time.UTC)
	return &entity.ScanResult{
		Folder:    "/certs",
		Threshold: 20,
		Entries: []entity.ScanEntry{
			entity.ExpiringCertificate{
				CertificateRecord: entity.CertificateRecord{
					FileName:     "web.pem",
					Expiry:       entity.DateOf(notAfter),
					NotAfter:     notAfter,
					Issuer:       entity.NameOf("Test CA"),
					Subject:      entity.NameOf("web.example.com"),
					SerialNumber: "0A1B",
				},
				DaysLeft: 15,
			},
			entity.ErrorEntry{FileName: "junk.cer", Message: "not PEM nor DER", Type: entity.ErrTypePEM},
		},
	}
}

func scanConfig(folder string) entity.ScanConfig {
	return entity.ScanConfig{FolderPath: folder, DayThreshold: 20, Policy: entity.PolicyUpcoming}
}

func TestSession_Scan(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&fakeScanner{result: sampleResult()}, i18n.English, &out, log.Discard())

	require.NoError(t, s.Scan(context.Background(), scanConfig("/certs")))

	text := out.String()
	assert.Contains(t, text, "Scanning certificates in /certs...")
	assert.Contains(t, text, "web.example.com")
	assert.Contains(t, text, "junk.cer")
	assert.Contains(t, text, "Done. Found 1 certificates expiring in the next 20 days.")
	assert.Equal(t, i18n.PhaseDone, s.State().Phase)
}

func TestSession_ScanFailure(t *testing.T) {
	var out bytes.Buffer
	scanErr := entity.ConfigError("folder does not exist")
	s := NewSession(&fakeScanner{err: scanErr}, i18n.English, &out, log.Discard())

	err := s.Scan(context.Background(), scanConfig("/missing"))
	assert.ErrorIs(t, err, scanErr)
	assert.Equal(t, i18n.PhaseFailed, s.State().Phase)
	assert.Contains(t, out.String(), "Error during scan: folder does not exist")
	assert.True(t, s.Table().Empty())
}

func TestSession_ToggleLanguageRerenders(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&fakeScanner{result: sampleResult()}, i18n.Russian, &out, log.Discard())
	require.NoError(t, s.Scan(context.Background(), scanConfig("/certs")))
	assert.Equal(t, "Имя файла", s.Table().Header[0])

	out.Reset()
	s.ToggleLanguage()

	assert.Equal(t, i18n.English, s.State().Lang)
	assert.Equal(t, "File Name", s.Table().Header[0])
	assert.Contains(t, out.String(), "Done. Found 1 certificates")
}

func TestSession_Export(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&fakeScanner{result: sampleResult()}, i18n.English, &out, log.Discard())
	require.NoError(t, s.Scan(context.Background(), scanConfig("/certs")))

	sink := &recordingSink{}
	require.NoError(t, s.Export(sink))
	require.Len(t, sink.texts, 1)

	lines := strings.Split(sink.texts[0], "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "web.pem\t2026-10-31\t15\tTest CA\tweb.example.com\t0A1B", lines[1])
	assert.Equal(t, "junk.cer\tnot PEM nor DER\tN/A\tN/A\tN/A\tN/A", lines[2])
	assert.Contains(t, out.String(), "Data copied to clipboard!")
}

func TestSession_ExportErrors(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&fakeScanner{result: &entity.ScanResult{}}, i18n.English, &out, log.Discard())

	assert.ErrorIs(t, s.Export(&recordingSink{}), report.ErrNoData)
	assert.Contains(t, out.String(), "No data to copy!")

	require.NoError(t, s.Scan(context.Background(), scanConfig("/certs")))
	s.result = sampleResult()
	sinkErr := errors.New("xclip not found")
	assert.ErrorIs(t, s.Export(&recordingSink{err: sinkErr}), sinkErr)
}

func TestSession_Interact(t *testing.T) {
	dir := t.TempDir()
	scanner := &fakeScanner{result: sampleResult()}
	var out bytes.Buffer
	s := NewSession(scanner, i18n.English, &out, log.Discard())

	input := strings.Join([]string{
		dir,  // folder
		"20", // threshold
		"c",  // copy
		"l",  // switch to Russian
		"s",  // search again
		"",   // keep folder
		"7",  // new threshold
		"q",
	}, "\n") + "\n"
	sink := &recordingSink{}

	err := s.Interact(context.Background(), prompt.New(strings.NewReader(input), &out), scanConfig(""), sink)
	require.NoError(t, err)

	require.Len(t, scanner.calls, 2)
	assert.Equal(t, dir, scanner.calls[0].FolderPath)
	assert.Equal(t, 20, scanner.calls[0].DayThreshold)
	assert.Equal(t, dir, scanner.calls[1].FolderPath)
	assert.Equal(t, 7, scanner.calls[1].DayThreshold)
	assert.Len(t, sink.texts, 1)
	assert.Equal(t, i18n.Russian, s.State().Lang)
	assert.Contains(t, out.String(), "Certificate Checker")
}

func TestSession_InteractEndOfInput(t *testing.T) {
	scanner := &fakeScanner{result: sampleResult()}
	s := NewSession(scanner, i18n.English, &bytes.Buffer{}, log.Discard())

	err := s.Interact(context.Background(), prompt.New(strings.NewReader(""), &bytes.Buffer{}), scanConfig(""), &recordingSink{})
	assert.NoError(t, err)
	assert.Empty(t, scanner.calls)
}

func TestSession_InteractInvalidFolder(t *testing.T) {
	scanner := &fakeScanner{result: sampleResult()}
	s := NewSession(scanner, i18n.English, &bytes.Buffer{}, log.Discard())

	in := strings.NewReader("/no/such/dir\n/no/such/dir\n/no/such/dir\n")
	err := s.Interact(context.Background(), prompt.New(in, &bytes.Buffer{}), scanConfig(""), &recordingSink{})

	var cfgErr entity.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Empty(t, scanner.calls)
}
