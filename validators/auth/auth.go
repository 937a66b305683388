package authValidator

import (
	"regexp"
	"strings"

	authController "ledgerline/controllers/auth"
	"ledgerline/middleware"
	"ledgerline/models"

	"github.com/gofiber/fiber/v2"
)

// Helper to validate email format
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// Helper to validate mobile number format
func isValidMobile(mobile string) bool {
	re := regexp.MustCompile(`^\d{10}$`)
	return re.MatchString(mobile)
}

// Helper to validate OTP format
func isValidOTP(otp string) bool {
	re := regexp.MustCompile(`^\d{6}$`)
	return re.MatchString(otp)
}

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(authController.RegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		}

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		if reqData.Mobile != "" && !isValidMobile(reqData.Mobile) {
			errors["mobile"] = "Invalid mobile number!"
		}

		if len(strings.TrimSpace(reqData.Password)) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}

		// Self-service registration can create user or ca accounts; admin
		// accounts are seeded out of band.
		if reqData.Role != "" && reqData.Role != models.RoleUser && reqData.Role != models.RoleCA {
			errors["role"] = "Invalid role!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(authController.LoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.Email == "" {
			errors["email"] = "Please provide email/mobile!"
		} else if !isValidEmail(reqData.Email) && !isValidMobile(reqData.Email) {
			errors["email"] = "Invalid email or mobile number!"
		}

		if reqData.Password == "" {
			errors["password"] = "Please provide a password!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

// VerifyOTP validates OTP request data
func VerifyOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(authController.VerifyOTPRequest)
		if err := c.BodyParser(reqData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		if !isValidOTP(reqData.OTP) {
			errors["otp"] = "OTP must be a 6-digit code!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVerifyOTP", reqData)
		return c.Next()
	}
}

// ResendOTP validator middleware
func ResendOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(authController.ResendOTPRequest)
		if err := c.BodyParser(reqData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedResendOTP", reqData)
		return c.Next()
	}
}

// SendMobileOTP validator middleware
func SendMobileOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(authController.SendMobileOTPRequest)
		if err := c.BodyParser(reqData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.Mobile != "" && !isValidMobile(reqData.Mobile) {
			errors["mobile"] = "Invalid mobile number!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSendMobileOTP", reqData)
		return c.Next()
	}
}

// VerifyMobileOTP validator middleware
func VerifyMobileOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(authController.VerifyMobileOTPRequest)
		if err := c.BodyParser(reqData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if !isValidOTP(reqData.OTP) {
			errors["otp"] = "OTP must be a 6-digit code!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVerifyMobileOTP", reqData)
		return c.Next()
	}
}
