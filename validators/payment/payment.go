package paymentValidator

import (
	paymentController "ledgerline/controllers/payment"
	"ledgerline/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateIntent validator middleware. Note there is no amount field: the
// server prices the intent from the stored plan.
func CreateIntent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(paymentController.CreateIntentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.PlanID == 0 {
			errors["planId"] = "Plan ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateIntent", reqData)
		return c.Next()
	}
}

// Confirm validator middleware
func Confirm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(paymentController.ConfirmRequest)
		if err := c.BodyParser(reqData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.PaymentIntentID == "" {
			errors["paymentIntentId"] = "Payment Intent ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedConfirm", reqData)
		return c.Next()
	}
}
