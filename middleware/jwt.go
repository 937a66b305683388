package middleware

import (
	"fmt"
	"strings"
	"time"

	"ledgerline/config"
	"ledgerline/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// GenerateJWT generates a signed bearer token for the user
func GenerateJWT(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// Protect returns a middleware that checks for a valid bearer token and
// loads the current user. Role and verification flags are always read
// back from the database, never from token claims.
func Protect(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authorized, no token")
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid Authorization header format")
		}

		tokenString := authHeader[len("Bearer "):]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(config.AppConfig.JWTKey), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["userId"] == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token payload")
		}

		userID := uint(claims["userId"].(float64))

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "User belonging to this token no longer exists")
		}

		c.Locals("userId", user.ID)
		c.Locals("user", &user)

		return c.Next()
	}
}

// RequireRoles returns a middleware that rejects users whose role is not
// in the allowed set. Must run after Protect.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authorized")
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return fiber.NewError(fiber.StatusForbidden,
			fmt.Sprintf("User role %s is not authorized to access this route", user.Role))
	}
}

// CurrentUser returns the user loaded by Protect.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

func JsonResponse(c *fiber.Ctx, statusCode int, success bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation failed!",
		"errors":  errors,
	})
}
