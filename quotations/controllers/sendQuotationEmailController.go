package controllers

import (
	"errors"
	"strings"

	"quotation-backend/config"
	"quotation-backend/db/models"
	"quotation-backend/quotations/requests"
	"quotation-backend/quotations/services"
	"quotation-backend/quotations/tasks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SendQuotationEmail mails the quotation documents to the client. With
// deferred=true the send goes through the task queue and the request returns
// as soon as the job is enqueued.
func (qc *QuotationController) SendQuotationEmail(c *fiber.Ctx) error {
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

	var req requests.SendEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	if !req.AttachDocx && !req.AttachPdf {
		req.AttachDocx = true
	}

	var docxPath, pdfPath string
	docxPath, err = qc.generateDocx(c, quotation)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate quotation document",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	if req.AttachPdf {
		pdfPath, err = qc.Pdf.Convert(c.Context(), docxPath)
		if err != nil {
			config.Logger.Warn("PDF conversion failed, sending without PDF attachment",
				zap.String("quotation_id", quotation.ID.String()), zap.Error(err))
			req.AttachPdf = false
			pdfPath = ""
		}
	}

	if req.Deferred {
		if qc.AsynqClient == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"message": "Deferred sending is not available",
				"data":    nil,
				"error":   "task queue not configured",
			})
		}
		task, err := tasks.NewQuotationEmailTask(tasks.QuotationEmailPayload{
			QuotationID: quotation.ID.String(),
			Recipients:  req.Recipients,
			CC:          req.CC,
			Message:     req.Message,
			AttachDocx:  req.AttachDocx,
			AttachPdf:   req.AttachPdf,
			DocxPath:    docxPath,
			PdfPath:     pdfPath,
			UserID:      requestUserID(c),
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to build email task",
				"data":    nil,
				"error":   err.Error(),
			})
		}
		info, err := qc.AsynqClient.Enqueue(task)
		if err != nil {
			config.Logger.Error("Failed to enqueue quotation email",
				zap.String("quotation_id", quotation.ID.String()), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to enqueue quotation email",
				"data":    nil,
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"message": "Quotation email queued",
			"data":    fiber.Map{"task_id": info.ID},
			"error":   nil,
		})
	}

	email := services.QuotationEmail{
		Recipients: req.Recipients,
		CC:         req.CC,
		Message:    req.Message,
		AttachDocx: req.AttachDocx,
		AttachPdf:  req.AttachPdf,
	}
	if err := qc.Email.SendQuotation(*quotation, email, docxPath, pdfPath); err != nil {
		status := fiber.StatusInternalServerError
		if strings.Contains(err.Error(), "no sender address") || strings.Contains(err.Error(), "no recipients") {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"message": "Failed to send quotation email",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	qc.Audit.LogAction(quotation.ID, models.QuotationEmailSent, requestUserID(c), services.GetClientIP(c), nil,
		map[string]interface{}{"recipients": req.Recipients, "cc": req.CC})

	if quotation.Status == models.DraftQuotation {
		if updated, err := qc.QuotationRepo.UpdateStatus(quotation.ID, models.SentQuotation); err == nil {
			qc.Audit.LogAction(quotation.ID, models.QuotationStatusChanged, requestUserID(c), services.GetClientIP(c),
				map[string]services.FieldChange{
					"status": {Old: string(models.DraftQuotation), New: string(models.SentQuotation)},
				}, nil)
			quotation = updated
		}
	}

	return c.JSON(fiber.Map{
		"message": "Quotation email sent successfully",
		"data":    quotation,
		"error":   nil,
	})
}
