package documentRoutes

import (
	documentController "ledgerline/controllers/document"
	"ledgerline/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDocumentRoutes(router fiber.Router, ctrl *documentController.DocumentController, db *gorm.DB) {
	documentGroup := router.Group("/documents", middleware.Protect(db))

	documentGroup.Post("/", ctrl.Upload)
	documentGroup.Get("/", ctrl.List)
}
