package config

import (
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AppConfig carries every tunable the quotation core depends on. It is built
// once at startup and passed into the pricing calculator, the document
// generator and the PDF converter explicitly, never read from globals.
type AppConfig struct {
	// GSTRate is the tax rate applied to location subtotals (0.18 = 18%).
	GSTRate decimal.Decimal

	// TemplatePath is the local DOCX template used for generation.
	TemplatePath string
	// TemplateURL, when set, is fetched before generation with TemplatePath
	// as the fallback on any fetch failure.
	TemplateURL string
	// TemplateCacheDir holds templates downloaded from TemplateURL.
	TemplateCacheDir string

	// OutputDir is the root for generated artifacts; docx files land in
	// <OutputDir>/docx and pdf files in <OutputDir>/pdf.
	OutputDir string

	// SofficePaths are the candidate LibreOffice locations tried in order
	// before falling back to resolving "soffice" through PATH.
	SofficePaths []string
	// ConvertTimeoutSeconds bounds a single LibreOffice conversion run.
	ConvertTimeoutSeconds int

	// OrganisationName appears in email subjects and bodies.
	OrganisationName string
	// DefaultFromEmail is the sender used when a quotation's creator has no
	// email address configured.
	DefaultFromEmail string

	// ArtifactRetentionDays controls the scheduled cleanup of generated
	// docx/pdf files. Zero disables the purge.
	ArtifactRetentionDays int
}

// LoadAppConfig reads the application configuration from the environment,
// applying the documented defaults.
func LoadAppConfig() AppConfig {
	cfg := AppConfig{
		GSTRate:          decimal.NewFromFloat(0.18),
		TemplatePath:     GetEnvOrDefault("QUOTATION_TEMPLATE_PATH", "./templates/quotation_template.docx"),
		TemplateURL:      GetEnv("QUOTATION_TEMPLATE_URL"),
		TemplateCacheDir: GetEnvOrDefault("QUOTATION_TEMPLATE_CACHE_DIR", "./public/templates"),
		OutputDir:        GetEnvOrDefault("QUOTATION_OUTPUT_DIR", "./public/quotations"),
		SofficePaths: []string{
			"/usr/bin/soffice",
			"/usr/local/bin/soffice",
			"/opt/libreoffice/program/soffice",
		},
		ConvertTimeoutSeconds: 30,
		OrganisationName:      GetEnvOrDefault("ORGANISATION_NAME", "Godamwale"),
		DefaultFromEmail:      GetEnv("DEFAULT_FROM_EMAIL"),
		ArtifactRetentionDays: 90,
	}

	if raw := GetEnv("GST_RATE"); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err != nil || rate.IsNegative() {
			Logger.Warn("Invalid GST_RATE, keeping default 0.18", zap.String("provided", raw))
		} else {
			cfg.GSTRate = rate
		}
	}

	if raw := GetEnv("ARTIFACT_RETENTION_DAYS"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			Logger.Warn("Invalid ARTIFACT_RETENTION_DAYS, keeping default", zap.String("provided", raw))
		} else {
			cfg.ArtifactRetentionDays = days
		}
	}

	return cfg
}
