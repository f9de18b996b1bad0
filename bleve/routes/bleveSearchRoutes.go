package routes

import (
	"quotation-backend/bleve/controllers"

	"github.com/gofiber/fiber/v2"
)

func InitBleveRoutes(app *fiber.App, controller *controllers.SearchController) {
	api := app.Group("/api/v1/search")

	api.Get("/quotations", controller.SearchQuotationsController)
	api.Get("/clients", controller.SearchClientsController)
}
