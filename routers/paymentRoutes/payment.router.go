package paymentRoutes

import (
	paymentController "ledgerline/controllers/payment"
	"ledgerline/middleware"
	paymentValidator "ledgerline/validators/payment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPaymentRoutes(router fiber.Router, ctrl *paymentController.PaymentController, db *gorm.DB) {
	paymentGroup := router.Group("/payments", middleware.Protect(db))

	paymentGroup.Post("/create-intent", paymentValidator.CreateIntent(), ctrl.CreateIntent)
	paymentGroup.Post("/confirm", paymentValidator.Confirm(), ctrl.Confirm)
	paymentGroup.Get("/check-status", ctrl.CheckStatus)
	paymentGroup.Get("/my-orders", ctrl.MyOrders)
}
