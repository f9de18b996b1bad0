package controllers

import (
	"errors"
	"path/filepath"

	"quotation-backend/config"
	"quotation-backend/db/models"
	"quotation-backend/quotations/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DownloadQuotationDocx regenerates the DOCX from the current template and
// data and streams it back. Regenerating on every download keeps the document
// consistent with later edits instead of serving a stale artifact.
func (qc *QuotationController) DownloadQuotationDocx(c *fiber.Ctx) error {
	quotation, err := qc.QuotationRepo.GetQuotationByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return quotationNotFound(c)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load quotation",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	docxPath, err := qc.generateDocx(c, quotation)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate quotation document",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	qc.Audit.LogAction(quotation.ID, models.QuotationDownloaded, requestUserID(c), services.GetClientIP(c), nil,
		map[string]interface{}{"format": "docx"})

	return c.Download(docxPath, filepath.Base(docxPath))
}

// DownloadQuotationPdf converts the freshly generated DOCX through
// LibreOffice and streams the PDF.
func (qc *QuotationController) DownloadQuotationPdf(c *fiber.Ctx) error {
	quotation, err := qc.QuotationRepo.GetQuotationByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return quotationNotFound(c)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load quotation",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	docxPath, err := qc.generateDocx(c, quotation)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate quotation document",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	pdfPath, err := qc.Pdf.Convert(c.Context(), docxPath)
	if err != nil {
		config.Logger.Error("PDF conversion failed",
			zap.String("quotation_id", quotation.ID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to convert quotation to PDF",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	qc.Audit.LogAction(quotation.ID, models.QuotationPdfGenerated, requestUserID(c), services.GetClientIP(c), nil,
		map[string]interface{}{"path": pdfPath})
	qc.Audit.LogAction(quotation.ID, models.QuotationDownloaded, requestUserID(c), services.GetClientIP(c), nil,
		map[string]interface{}{"format": "pdf"})

	return c.Download(pdfPath, filepath.Base(pdfPath))
}

func (qc *QuotationController) generateDocx(c *fiber.Ctx, quotation *models.Quotation) (string, error) {
	templatePath, err := qc.Template.ResolveTemplate(c.Context())
	if err != nil {
		return "", err
	}

	generator := services.NewDocxGenerator(*quotation, qc.Cfg)
	docxPath, err := generator.Generate(templatePath)
	if err != nil {
		return "", err
	}

	qc.Audit.LogAction(quotation.ID, models.QuotationDocxGenerated, requestUserID(c), services.GetClientIP(c), nil,
		map[string]interface{}{"path": docxPath})
	return docxPath, nil
}
