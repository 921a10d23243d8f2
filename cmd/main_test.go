package main

import (
	"bytes"
	"errors"
	"math/big"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"cert-checker/internal/config"
	"cert-checker/internal/testutils"
)

func certFolder(t *testing.T) string {
	t.Helper()

	now := time.Now()
	dir := t.TempDir()
	testutils.WriteFile(t, dir, "soon.pem", testutils.PEM(testutils.GenerateCert(t, testutils.CertOptions{
		CommonName: "soon.example.com",
		IssuerCN:   "Test CA",
		Serial:     big.NewInt(0xBEEF),
		NotAfter:   testutils.ExpiringIn(now, 10),
	})))
	testutils.WriteFile(t, dir, "later.cer", testutils.GenerateCert(t, testutils.CertOptions{
		CommonName: "later.example.com",
		NotAfter:   testutils.ExpiringIn(now, 200),
	}))
	testutils.WriteFile(t, dir, "broken.crt", []byte("garbage"))
	return dir
}

func run(t *testing.T, interactive bool, input string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := newApp(&cliApp{
		in:          strings.NewReader(input),
		out:         &stdout,
		errOut:      &stderr,
		interactive: interactive,
	})
	argv := append([]string{"cert-checker", "--env-file", filepath.Join(t.TempDir(), ".env")}, args...)
	err := app.Run(argv)
	return stdout.String(), stderr.String(), err
}

func TestCommands(t *testing.T) {
	app := newApp(&cliApp{})

	names := make([]string, len(app.Commands))
	for i, cmd := range app.Commands {
		names[i] = cmd.Name
	}
	assert.Equal(t, []string{"scan", "watch"}, names)
	assert.NotNil(t, app.Action)
}

func TestScan_TSV(t *testing.T) {
	dir := certFolder(t)

	stdout, _, err := run(t, false, "", "--lang", "en", "--folder", dir, "--days", "30", "--tsv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "File Name\tExpiry Date\tDays Left\tIssuer\tSubject\tSerial Number", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "broken.crt\t"), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], "\tN/A\tN/A\tN/A\tN/A"), lines[1])

	fields := strings.Split(lines[2], "\t")
	require.Len(t, fields, 6)
	assert.Equal(t, "soon.pem", fields[0])
	assert.Equal(t, "10", fields[2])
	assert.Equal(t, "Test CA", fields[3])
	assert.Equal(t, "soon.example.com", fields[4])
	assert.Equal(t, "BEEF", fields[5])
}

func TestScan_TableInRussian(t *testing.T) {
	dir := certFolder(t)

	stdout, _, err := run(t, false, "", "scan", "--lang", "ru", "-f", dir, "-d", "365")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Имя файла")
	assert.Contains(t, stdout, "later.example.com")
	assert.Contains(t, stdout, "Готово. Найдено 2 сертификатов")
}

func TestScan_ConfigErrors(t *testing.T) {
	dir := certFolder(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing folder", []string{"scan", "--days", "10"}},
		{"folder does not exist", []string{"scan", "--folder", filepath.Join(dir, "nope")}},
		{"threshold too big", []string{"scan", "--folder", dir, "--days", "400"}},
		{"threshold zero", []string{"scan", "--folder", dir, "--days", "0"}},
		{"unsupported language", []string{"scan", "--folder", dir, "--lang", "de"}},
		{"bad log level", []string{"scan", "--folder", dir, "--log-level", "loud"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := run(t, false, "", tc.args...)
			require.Error(t, err)
			assert.Equal(t, exitConfig, exitCode(err))
		})
	}
}

func TestScan_Interactive(t *testing.T) {
	dir := certFolder(t)

	stdout, _, err := run(t, true, dir+"\n30\nl\nq\n", "--lang", "en")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Certificate Checker")
	assert.Contains(t, stdout, "Done. Found 1 certificates expiring in the next 30 days.")
	assert.Contains(t, stdout, "Готово. Найдено 1 сертификатов")
}

func TestLoadConfig_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("CERTCHECK_DAY_THRESHOLD", "90")
	t.Setenv("CERTCHECK_LOG_LEVEL", "debug")

	var cfg *config.Config
	app := &cli.App{
		Flags: append(append([]cli.Flag{}, globalFlags...), scanFlags...),
		Action: func(cCtx *cli.Context) error {
			var err error
			cfg, err = loadConfig(cCtx)
			return err
		},
	}

	require.NoError(t, app.Run([]string{"x", "--days", "10", "--lang", "en_US.UTF-8", "--include-expired"}))
	assert.Equal(t, 10, cfg.DayThreshold)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "en", cfg.Language)
	assert.True(t, cfg.IncludeExpired)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitFailure, exitCode(errors.New("boom")))
	assert.Equal(t, exitConfig, exitCode(cli.Exit("bad", exitConfig)))
}

func TestWatch_ConfigErrors(t *testing.T) {
	_, _, err := run(t, false, "", "watch", "--folder", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, exitConfig, exitCode(err))

	_, _, err = run(t, false, "", "watch", "--folder", t.TempDir(), "--interval", "-1s")
	require.Error(t, err)
	assert.Equal(t, exitConfig, exitCode(err))
}
