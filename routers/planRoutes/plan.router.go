package planRoutes

import (
	planController "ledgerline/controllers/plan"
	"ledgerline/middleware"
	"ledgerline/models"
	planValidator "ledgerline/validators/plan"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPlanRoutes(router fiber.Router, ctrl *planController.PlanController, db *gorm.DB) {
	planGroup := router.Group("/plans")

	planGroup.Get("/", ctrl.List)
	planGroup.Get("/:id", ctrl.Get)

	// Catalog mutations are admin only
	planGroup.Post("/", middleware.Protect(db), middleware.RequireRoles(models.RoleAdmin), planValidator.Create(), ctrl.Create)
	planGroup.Put("/:id", middleware.Protect(db), middleware.RequireRoles(models.RoleAdmin), planValidator.Update(), ctrl.Update)
	planGroup.Delete("/:id", middleware.Protect(db), middleware.RequireRoles(models.RoleAdmin), ctrl.Delete)
}
