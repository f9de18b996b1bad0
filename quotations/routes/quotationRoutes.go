package routes

import (
	"quotation-backend/middleware"
	"quotation-backend/quotations/controllers"

	"github.com/gofiber/fiber/v2"
)

func InitQuotationRoutes(app *fiber.App, controller *controllers.QuotationController) {
	api := app.Group("/api/v1/quotations")

	api.Post("/", controller.CreateQuotation)
	api.Get("/", controller.GetFilteredQuotations)
	api.Get("/export", controller.ExportQuotations)
	api.Get("/:id", controller.GetQuotationByID)
	api.Put("/:id", controller.UpdateQuotation)
	api.Patch("/:id/status", controller.UpdateQuotationStatus)
	api.Get("/:id/audit-logs", controller.GetQuotationAuditLogs)

	// Document generation runs LibreOffice; keep it behind a per-IP limit.
	generate := api.Group("/", middleware.RateLimiter(1, 5))
	generate.Get("/:id/download/docx", controller.DownloadQuotationDocx)
	generate.Get("/:id/download/pdf", controller.DownloadQuotationPdf)
	generate.Post("/:id/send-email", controller.SendQuotationEmail)
}
