package controllers

import (
	"errors"

	"quotation-backend/clients/services"
	"quotation-backend/config"
	"quotation-backend/db/models"
	quotation_services "quotation-backend/quotations/services"
	"quotation-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (cc *ClientController) UpdateClient(c *fiber.Ctx) error {
	id := c.Params("id")

	existing, err := cc.ClientRepo.GetClientByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Client not found",
				"data":    nil,
				"error":   "client not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load client",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	updated := *existing
	if err := c.BodyParser(&updated); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	updated.ID = existing.ID
	updated.IsActive = existing.IsActive

	if validationError := services.ValidateClient(&updated); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: " + validationError,
			"data":    nil,
			"error":   validationError,
		})
	}
	if validationError := services.ValidateUniqueEmail(updated.Email, id, cc.ClientRepo); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: " + validationError,
			"data":    nil,
			"error":   validationError,
		})
	}

	saved, err := cc.ClientRepo.UpdateClient(&updated)
	if err != nil {
		config.Logger.Error("Failed to update client", zap.String("client_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update client",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if changes := cc.Audit.TrackChanges(*existing, *saved); len(changes) > 0 {
		cc.Audit.LogAction(saved.ID, models.ClientModified, nil, quotation_services.GetClientIP(c), changes)
	}

	if err := cc.BleveRepo.UpdateClient(*saved); err != nil {
		config.Logger.Warn("Client updated but search re-indexing failed",
			zap.String("client_id", id), zap.Error(err))
	}
	utils.InvalidateCacheAsync("clients")

	return c.JSON(fiber.Map{
		"message": "Client updated successfully",
		"data":    saved,
		"error":   nil,
	})
}
