package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"quotation-backend/config"

	"go.uber.org/zap"
)

// PdfGenerator converts generated DOCX documents to PDF through a headless
// LibreOffice run. Conversion is best effort: callers treat a failure here as
// non-fatal and fall back to the DOCX artifact.
type PdfGenerator struct {
	cfg    config.AppConfig
	logger *zap.Logger
}

func NewPdfGenerator(cfg config.AppConfig) *PdfGenerator {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PdfGenerator{cfg: cfg, logger: logger}
}

// findSoffice returns the first LibreOffice binary that exists, checking the
// configured candidate paths before PATH lookup.
func (p *PdfGenerator) findSoffice() (string, bool) {
	for _, candidate := range p.cfg.SofficePaths {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	if path, err := exec.LookPath("soffice"); err == nil {
		return path, true
	}
	return "", false
}

// Convert runs LibreOffice on docxPath and returns the path of the produced
// PDF under <outputDir>/pdf. The run is bounded by the configured timeout.
func (p *PdfGenerator) Convert(ctx context.Context, docxPath string) (string, error) {
	soffice, ok := p.findSoffice()
	if !ok {
		return "", errors.New("LibreOffice is not installed or not found in the configured paths")
	}

	outputDir := filepath.Join(p.cfg.OutputDir, "pdf")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create PDF output directory: %w", err)
	}

	timeout := time.Duration(p.cfg.ConvertTimeoutSeconds) * time.Second
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, soffice,
		"--headless", "--convert-to", "pdf", "--outdir", outputDir, docxPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if runCtx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("PDF conversion timed out after %s", timeout)
	}
	if err != nil {
		return "", fmt.Errorf("PDF conversion failed: %s", strings.TrimSpace(stderr.String()))
	}

	base := strings.TrimSuffix(filepath.Base(docxPath), filepath.Ext(docxPath))
	pdfPath := filepath.Join(outputDir, base+".pdf")
	if _, statErr := os.Stat(pdfPath); statErr != nil {
		return "", errors.New("PDF conversion finished but the output file was not created")
	}

	p.logger.Info("Quotation PDF generated", zap.String("path", pdfPath))
	return pdfPath, nil
}
