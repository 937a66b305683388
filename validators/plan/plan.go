package planValidator

import (
	planController "ledgerline/controllers/plan"
	"ledgerline/middleware"
	"ledgerline/models"

	"github.com/gofiber/fiber/v2"
)

// Create validator middleware
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(planController.PlanRequest)
		if err := c.BodyParser(reqData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.Name == "" {
			errors["name"] = "Plan name is required!"
		}
		if reqData.Price == nil {
			errors["price"] = "Plan price is required!"
		}
		if !models.ValidPlanType(models.PlanType(reqData.Type)) {
			errors["type"] = "Type must be one of Basic, Premium, Business!"
		}
		if !models.ValidFormType(models.FormType(reqData.FormType)) {
			errors["formType"] = "Invalid form type!"
		}
		if len(reqData.Features) == 0 {
			errors["features"] = "At least one feature is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreatePlan", reqData)
		return c.Next()
	}
}

// Update validator middleware. All fields optional; whatever is present
// must still be well-formed.
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(planController.PlanRequest)
		if err := c.BodyParser(reqData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.Type != "" && !models.ValidPlanType(models.PlanType(reqData.Type)) {
			errors["type"] = "Type must be one of Basic, Premium, Business!"
		}
		if reqData.FormType != "" && !models.ValidFormType(models.FormType(reqData.FormType)) {
			errors["formType"] = "Invalid form type!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdatePlan", reqData)
		return c.Next()
	}
}
