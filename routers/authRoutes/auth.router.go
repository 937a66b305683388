package authRoutes

import (
	authController "ledgerline/controllers/auth"
	"ledgerline/middleware"
	"ledgerline/models"
	authValidator "ledgerline/validators/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(router fiber.Router, ctrl *authController.AuthController, db *gorm.DB) {
	authGroup := router.Group("/auth")

	authGroup.Post("/register", authValidator.Register(), ctrl.Register)
	authGroup.Post("/login", authValidator.Login(), ctrl.Login)
	authGroup.Post("/verify-otp", authValidator.VerifyOTP(), ctrl.VerifyOTP)
	authGroup.Post("/resend-otp", authValidator.ResendOTP(), ctrl.ResendOTP)

	// Mobile verification requires a bearer token from the email flow first
	authGroup.Post("/send-mobile-otp", middleware.Protect(db), authValidator.SendMobileOTP(), ctrl.SendMobileOTP)
	authGroup.Post("/verify-mobile-otp", middleware.Protect(db), authValidator.VerifyMobileOTP(), ctrl.VerifyMobileOTP)

	authGroup.Get("/me", middleware.Protect(db), ctrl.Me)
	authGroup.Get("/users", middleware.Protect(db), middleware.RequireRoles(models.RoleAdmin), ctrl.ListUsers)
}
