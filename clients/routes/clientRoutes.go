package routes

import (
	"quotation-backend/clients/controllers"

	"github.com/gofiber/fiber/v2"
)

func InitClientRoutes(app *fiber.App, controller *controllers.ClientController) {
	api := app.Group("/api/v1/clients")

	api.Post("/", controller.CreateClient)
	api.Get("/", controller.GetFilteredClients)
	api.Get("/:id", controller.GetClientByID)
	api.Put("/:id", controller.UpdateClient)
	api.Delete("/:id", controller.DeleteClient)
	api.Post("/:id/deactivate", controller.DeactivateClient)
	api.Post("/:id/reactivate", controller.ReactivateClient)
	api.Get("/:id/audit-logs", controller.GetClientAuditLogs)
}
