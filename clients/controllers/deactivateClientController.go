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

// DeactivateClient flips the client inactive instead of deleting the row.
// Quotations keep their client reference either way; a client with history
// simply stops appearing in active listings.
func (cc *ClientController) DeactivateClient(c *fiber.Ctx) error {
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

	if !existing.IsActive {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Client is already inactive",
			"data":    existing,
			"error":   "client already inactive",
		})
	}

	updated, err := cc.ClientRepo.SetActive(id, false)
	if err != nil {
		config.Logger.Error("Failed to deactivate client", zap.String("client_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to deactivate client",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	cc.Audit.LogAction(updated.ID, models.ClientStatusChanged, nil, quotation_services.GetClientIP(c),
		map[string]services.FieldChange{"is_active": {Old: true, New: false}})

	if err := cc.BleveRepo.UpdateClient(*updated); err != nil {
		config.Logger.Warn("Client deactivated but search re-indexing failed",
			zap.String("client_id", id), zap.Error(err))
	}
	utils.InvalidateCacheAsync("clients")

	return c.JSON(fiber.Map{
		"message": "Client deactivated successfully",
		"data":    updated,
		"error":   nil,
	})
}

func (cc *ClientController) ReactivateClient(c *fiber.Ctx) error {
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

	if existing.IsActive {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Client is already active",
			"data":    existing,
			"error":   "client already active",
		})
	}

	updated, err := cc.ClientRepo.SetActive(id, true)
	if err != nil {
		config.Logger.Error("Failed to reactivate client", zap.String("client_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to reactivate client",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	cc.Audit.LogAction(updated.ID, models.ClientStatusChanged, nil, quotation_services.GetClientIP(c),
		map[string]services.FieldChange{"is_active": {Old: false, New: true}})

	if err := cc.BleveRepo.UpdateClient(*updated); err != nil {
		config.Logger.Warn("Client reactivated but search re-indexing failed",
			zap.String("client_id", id), zap.Error(err))
	}
	utils.InvalidateCacheAsync("clients")

	return c.JSON(fiber.Map{
		"message": "Client reactivated successfully",
		"data":    updated,
		"error":   nil,
	})
}
