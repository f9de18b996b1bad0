package controllers

import (
	"encoding/json"
	"errors"

	"quotation-backend/internal/pricing"
	"quotation-backend/utils"
	"quotation-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func (qc *QuotationController) GetQuotationByID(c *fiber.Ctx) error {
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

	calc := pricing.NewCalculator(qc.Cfg.GSTRate)
	totals := calc.QuotationTotals(*quotation)

	return c.JSON(fiber.Map{
		"message": "Quotation retrieved successfully",
		"data": fiber.Map{
			"quotation": quotation,
			"totals": fiber.Map{
				"subtotal":    totals.Subtotal.StringFixed(2),
				"gst":         totals.GST.StringFixed(2),
				"grand_total": totals.GrandTotal.StringFixed(2),
			},
		},
		"error": nil,
	})
}

func (qc *QuotationController) GetFilteredQuotations(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid pagination parameters",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	cacheKey := utils.ListCacheKey("quotations", params.Filters, params.Page, params.PageSize)
	if cached, ok := utils.GetCachedList(cacheKey); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(cached)
	}

	offset := (params.Page - 1) * params.PageSize
	quotations, total, err := qc.QuotationRepo.GetFilteredQuotations(params.PageSize, offset, params.Filters)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load quotations",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	response := fiber.Map{
		"message": "Quotations retrieved successfully",
		"data":    pagination.NewPaginatedResponse(c, quotations, total, params),
		"error":   nil,
	}
	if payload, err := json.Marshal(response); err == nil {
		utils.CacheList(cacheKey, payload)
	}
	return c.JSON(response)
}

func (qc *QuotationController) GetQuotationAuditLogs(c *fiber.Ctx) error {
	logs, err := qc.QuotationRepo.GetAuditLogs(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load quotation audit logs",
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
