package controllers

import (
	"encoding/json"
	"errors"

	"quotation-backend/utils"
	"quotation-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func (cc *ClientController) GetClientByID(c *fiber.Ctx) error {
	client, err := cc.ClientRepo.GetClientByID(c.Params("id"))
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
	return c.JSON(fiber.Map{
		"message": "Client retrieved successfully",
		"data":    client,
		"error":   nil,
	})
}

func (cc *ClientController) GetFilteredClients(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid pagination parameters",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	cacheKey := utils.ListCacheKey("clients", params.Filters, params.Page, params.PageSize)
	if cached, ok := utils.GetCachedList(cacheKey); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(cached)
	}

	offset := (params.Page - 1) * params.PageSize
	clients, total, err := cc.ClientRepo.GetFilteredClients(params.PageSize, offset, params.Filters)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load clients",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	response := fiber.Map{
		"message": "Clients retrieved successfully",
		"data":    pagination.NewPaginatedResponse(c, clients, total, params),
		"error":   nil,
	}
	if payload, err := json.Marshal(response); err == nil {
		utils.CacheList(cacheKey, payload)
	}
	return c.JSON(response)
}

func (cc *ClientController) GetClientAuditLogs(c *fiber.Ctx) error {
	logs, err := cc.ClientRepo.GetAuditLogs(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load client audit logs",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Audit logs retrieved successfully",
		"data":    logs,
		"error":   nil,
	})
}
