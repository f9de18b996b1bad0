package controllers

import (
	"errors"
	"strings"

	"quotation-backend/config"
	"quotation-backend/db/models"
	"quotation-backend/quotations/requests"
	"quotation-backend/quotations/services"
	"quotation-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (qc *QuotationController) CreateQuotation(c *fiber.Ctx) error {
	var req requests.CreateQuotationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	quotation, validationError := services.ValidateCreateQuotation(&req)
	if validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: " + validationError,
			"data":    nil,
			"error":   validationError,
		})
	}

	client, err := qc.ClientRepo.GetClientByID(quotation.ClientID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation error: client does not exist",
				"data":    nil,
				"error":   "client does not exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to verify client",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	if !client.IsActive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: client is inactive",
			"data":    nil,
			"error":   "client is inactive",
		})
	}

	if userID := requestUserID(c); userID != nil {
		quotation.CreatedBy = userID
	}
	if userEmail := requestUserEmail(c); userEmail != nil {
		quotation.CreatedByEmail = userEmail
	}

	created, err := qc.QuotationRepo.CreateQuotation(quotation)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Quotation number already exists",
				"data":    nil,
				"error":   err.Error(),
			})
		}
		config.Logger.Error("Failed to create quotation", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create quotation",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	qc.Audit.LogAction(created.ID, models.QuotationCreated, created.CreatedBy, services.GetClientIP(c), nil,
		map[string]interface{}{"quotation_number": created.QuotationNumber})

	full, err := qc.QuotationRepo.GetQuotationByID(created.ID.String())
	if err != nil {
		full = created
	}
	if err := qc.BleveRepo.IndexSingleQuotation(*full); err != nil {
		config.Logger.Warn("Quotation created but search indexing failed",
			zap.String("quotation_id", created.ID.String()), zap.Error(err))
	}
	utils.InvalidateCacheAsync("quotations")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Quotation created successfully",
		"data":    full,
		"error":   nil,
	})
}

// requestUserID reads the acting user from headers until an auth layer
// exists in front of this API.
func requestUserID(c *fiber.Ctx) *string {
	if v := c.Get("X-User-Id"); v != "" {
		return &v
	}
	return nil
}

func requestUserEmail(c *fiber.Ctx) *string {
	if v := c.Get("X-User-Email"); v != "" {
		return &v
	}
	return nil
}
