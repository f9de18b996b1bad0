package services

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"quotation-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSoffice writes an executable stand-in for the LibreOffice binary.
func fakeSoffice(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "soffice")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func pdfTestConfig(t *testing.T, sofficePath string, timeoutSeconds int) config.AppConfig {
	t.Helper()
	cfg := testAppConfig(t)
	cfg.ConvertTimeoutSeconds = timeoutSeconds
	if sofficePath != "" {
		cfg.SofficePaths = []string{sofficePath}
	}
	return cfg
}

func sampleDocx(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "GW-Q-20260815-0001.docx")
	require.NoError(t, os.WriteFile(path, []byte("docx"), 0o644))
	return path
}

func TestConvertMissingLibreOffice(t *testing.T) {
	if _, err := exec.LookPath("soffice"); err == nil {
		t.Skip("soffice is on PATH")
	}

	cfg := pdfTestConfig(t, filepath.Join(t.TempDir(), "missing"), 30)
	generator := NewPdfGenerator(cfg)

	_, err := generator.Convert(context.Background(), sampleDocx(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not installed")
}

func TestConvertCommandFailure(t *testing.T) {
	soffice := fakeSoffice(t, `echo "conversion blew up" >&2; exit 1`)
	cfg := pdfTestConfig(t, soffice, 30)
	generator := NewPdfGenerator(cfg)

	_, err := generator.Convert(context.Background(), sampleDocx(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conversion blew up")
}

func TestConvertTimeout(t *testing.T) {
	soffice := fakeSoffice(t, `sleep 5`)
	cfg := pdfTestConfig(t, soffice, 1)
	generator := NewPdfGenerator(cfg)

	_, err := generator.Convert(context.Background(), sampleDocx(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestConvertOutputMissing(t *testing.T) {
	soffice := fakeSoffice(t, `exit 0`)
	cfg := pdfTestConfig(t, soffice, 30)
	generator := NewPdfGenerator(cfg)

	_, err := generator.Convert(context.Background(), sampleDocx(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not created")
}

func TestConvertSuccess(t *testing.T) {
	// Last two args are the outdir and the input path; mimic LibreOffice by
	// dropping a PDF named after the input into the outdir.
	script := `
outdir=""
input=""
while [ $# -gt 0 ]; do
  case "$1" in
    --outdir) outdir="$2"; shift 2 ;;
    --headless|--convert-to|pdf) shift ;;
    *) input="$1"; shift ;;
  esac
done
base=$(basename "$input" .docx)
echo pdf > "$outdir/$base.pdf"
`
	soffice := fakeSoffice(t, script)
	cfg := pdfTestConfig(t, soffice, 30)
	generator := NewPdfGenerator(cfg)

	docxPath := sampleDocx(t)
	pdfPath, err := generator.Convert(context.Background(), docxPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "pdf", "GW-Q-20260815-0001.pdf"), pdfPath)
	_, statErr := os.Stat(pdfPath)
	assert.NoError(t, statErr)
}
