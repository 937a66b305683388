package itrValidator

import (
	itrController "ledgerline/controllers/itr"
	"ledgerline/middleware"
	"ledgerline/models"

	"github.com/gofiber/fiber/v2"
)

// Submit validator middleware
func Submit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(itrController.SubmitRequest)
		if err := c.BodyParser(reqData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.PurchaseID == 0 {
			errors["purchaseId"] = "Purchase ID is required!"
		}
		if !models.ValidFormType(models.FormType(reqData.FormType)) {
			errors["formType"] = "Invalid form type!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmitITR", reqData)
		return c.Next()
	}
}

// UpdateStatus validator middleware
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(itrController.UpdateStatusRequest)
		if err := c.BodyParser(reqData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if !models.ValidITRStatus(models.ITRStatus(reqData.Status)) {
			errors["status"] = "Invalid ITR status!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateStatus", reqData)
		return c.Next()
	}
}

// Assign validator middleware
func Assign() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(itrController.AssignRequest)
		if err := c.BodyParser(reqData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.CaID == 0 {
			errors["caId"] = "CA ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssign", reqData)
		return c.Next()
	}
}
