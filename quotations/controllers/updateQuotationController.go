package controllers

import (
	"errors"

	"quotation-backend/config"
	"quotation-backend/db/models"
	"quotation-backend/quotations/requests"
	"quotation-backend/quotations/services"
	"quotation-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (qc *QuotationController) UpdateQuotation(c *fiber.Ctx) error {
	id := c.Params("id")

	existing, err := qc.QuotationRepo.GetQuotationByID(id)
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

	var req requests.UpdateQuotationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	updated, validationError := services.ValidateUpdateQuotation(existing, &req)
	if validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: " + validationError,
			"data":    nil,
			"error":   validationError,
		})
	}

	if updated.ClientID != existing.ClientID {
		client, err := qc.ClientRepo.GetClientByID(updated.ClientID.String())
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation error: client does not exist",
				"data":    nil,
				"error":   "client does not exist",
			})
		}
		if !client.IsActive {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation error: client is inactive",
				"data":    nil,
				"error":   "client is inactive",
			})
		}
	}

	saved, err := qc.QuotationRepo.UpdateQuotation(updated)
	if err != nil {
		config.Logger.Error("Failed to update quotation", zap.String("quotation_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update quotation",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	changes := qc.Audit.TrackChanges(*existing, *saved)
	qc.Audit.LogAction(saved.ID, models.QuotationModified, requestUserID(c), services.GetClientIP(c), changes, nil)

	if err := qc.BleveRepo.UpdateQuotation(*saved); err != nil {
		config.Logger.Warn("Quotation updated but search re-indexing failed",
			zap.String("quotation_id", id), zap.Error(err))
	}
	utils.InvalidateCacheAsync("quotations")

	return c.JSON(fiber.Map{
		"message": "Quotation updated successfully",
		"data":    saved,
		"error":   nil,
	})
}

func (qc *QuotationController) UpdateQuotationStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var req requests.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	status, validationError := services.ValidateStatus(req.Status)
	if validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: " + validationError,
			"data":    nil,
			"error":   validationError,
		})
	}

	existing, err := qc.QuotationRepo.GetQuotationByID(id)
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

	if existing.Status == status {
		return c.JSON(fiber.Map{
			"message": "Quotation already in requested status",
			"data":    existing,
			"error":   nil,
		})
	}

	quotationID, err := uuid.Parse(id)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid quotation id",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	saved, err := qc.QuotationRepo.UpdateStatus(quotationID, status)
	if err != nil {
		config.Logger.Error("Failed to update quotation status", zap.String("quotation_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update quotation status",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	qc.Audit.LogAction(saved.ID, models.QuotationStatusChanged, requestUserID(c), services.GetClientIP(c),
		map[string]services.FieldChange{
			"status": {Old: string(existing.Status), New: string(status)},
		}, nil)

	if err := qc.BleveRepo.UpdateQuotation(*saved); err != nil {
		config.Logger.Warn("Quotation status changed but search re-indexing failed",
			zap.String("quotation_id", id), zap.Error(err))
	}
	utils.InvalidateCacheAsync("quotations")

	return c.JSON(fiber.Map{
		"message": "Quotation status updated successfully",
		"data":    saved,
		"error":   nil,
	})
}

func quotationNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "Quotation not found",
		"data":    nil,
		"error":   "quotation not found",
	})
}
