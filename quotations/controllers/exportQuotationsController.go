package controllers

import (
	"time"

	"quotation-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ExportQuotations streams the quotation register as an XLSX workbook,
// honouring the same filters as the listing endpoint.
func (qc *QuotationController) ExportQuotations(c *fiber.Ctx) error {
	filters := map[string]string{
		"search":    c.Query("search"),
		"status":    c.Query("status"),
		"client_id": c.Query("client_id"),
	}

	quotations, _, err := qc.QuotationRepo.GetFilteredQuotations(10000, 0, filters)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load quotations for export",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	for i := range quotations {
		if full, err := qc.QuotationRepo.GetQuotationByID(quotations[i].ID.String()); err == nil {
			quotations[i] = *full
		}
	}

	buf, err := qc.Export.QuotationRegister(quotations)
	if err != nil {
		config.Logger.Error("Failed to render quotation export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to render quotation export",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	filename := "quotations_" + time.Now().Format("20060102_150405") + ".xlsx"
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
