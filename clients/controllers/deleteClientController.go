package controllers

import (
	"errors"

	"quotation-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DeleteClient hard-deletes a client only while no quotation references it.
// Once quotations exist the record must survive for their history, so the
// request is rejected and deactivation suggested instead.
func (cc *ClientController) DeleteClient(c *fiber.Ctx) error {
	id := c.Params("id")

	client, err := cc.ClientRepo.GetClientByID(id)
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

	hasQuotations, err := cc.ClientRepo.HasQuotations(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to check client quotations",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	if hasQuotations {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Client has quotations and cannot be deleted; deactivate it instead",
			"data":    nil,
			"error":   "client has quotations",
		})
	}

	if err := cc.ClientRepo.DeleteClient(id); err != nil {
		config.Logger.Error("Failed to delete client", zap.String("client_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete client",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if err := cc.BleveRepo.DeleteClient(client.ID.String()); err != nil {
		config.Logger.Warn("Client deleted but search index removal failed",
			zap.String("client_id", id), zap.Error(err))
	}

	return c.JSON(fiber.Map{
		"message": "Client deleted successfully",
		"data":    nil,
		"error":   nil,
	})
}
