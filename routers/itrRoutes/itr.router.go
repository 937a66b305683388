package itrRoutes

import (
	itrController "ledgerline/controllers/itr"
	"ledgerline/middleware"
	"ledgerline/models"
	itrValidator "ledgerline/validators/itr"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupITRRoutes(router fiber.Router, ctrl *itrController.ITRController, db *gorm.DB) {
	itrGroup := router.Group("/itr", middleware.Protect(db))

	itrGroup.Post("/", itrValidator.Submit(), ctrl.Submit)
	itrGroup.Get("/", ctrl.MyForms)

	itrGroup.Get("/all", middleware.RequireRoles(models.RoleAdmin, models.RoleCA), ctrl.ListAll)
	itrGroup.Put("/:id/status", middleware.RequireRoles(models.RoleAdmin, models.RoleCA), itrValidator.UpdateStatus(), ctrl.UpdateStatus)
	itrGroup.Put("/:id/assign", middleware.RequireRoles(models.RoleAdmin), itrValidator.Assign(), ctrl.Assign)
}
