package controllers

import (
	"quotation-backend/clients/services"
	"quotation-backend/config"
	"quotation-backend/db/models"
	quotation_services "quotation-backend/quotations/services"
	"quotation-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (cc *ClientController) CreateClient(c *fiber.Ctx) error {
	var client models.Client
	if err := c.BodyParser(&client); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if validationError := services.ValidateClient(&client); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: " + validationError,
			"data":    nil,
			"error":   validationError,
		})
	}
	if validationError := services.ValidateUniqueEmail(client.Email, "", cc.ClientRepo); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: " + validationError,
			"data":    nil,
			"error":   validationError,
		})
	}

	client.IsActive = true
	created, err := cc.ClientRepo.CreateClient(&client)
	if err != nil {
		config.Logger.Error("Failed to create client", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create client",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	cc.Audit.LogAction(created.ID, models.ClientCreated, nil, quotation_services.GetClientIP(c), nil)

	if err := cc.BleveRepo.IndexSingleClient(*created); err != nil {
		config.Logger.Warn("Client created but search indexing failed",
			zap.String("client_id", created.ID.String()), zap.Error(err))
	}
	utils.InvalidateCacheAsync("clients")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Client created successfully",
		"data":    created,
		"error":   nil,
	})
}
