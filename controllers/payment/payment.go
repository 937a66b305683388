package paymentController

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"ledgerline/gateway"
	"ledgerline/middleware"
	"ledgerline/models"
	"ledgerline/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PaymentController struct {
	db      *gorm.DB
	gateway gateway.PaymentGateway
	mailer  utils.Mailer
}

func NewPaymentController(db *gorm.DB, gw gateway.PaymentGateway, mailer utils.Mailer) *PaymentController {
	return &PaymentController{db: db, gateway: gw, mailer: mailer}
}

// CreateIntent asks the gateway for a charge intent priced from the stored
// plan. The client-supplied body never carries an amount; the plan row is
// the only price authority. Nothing is persisted at this step.
func (p *PaymentController) CreateIntent(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	reqData, ok := c.Locals("validatedCreateIntent").(*CreateIntentRequest)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request data!")
	}

	var plan models.Plan
	if err := p.db.First(&plan, reqData.PlanID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Plan not found")
	}

	// Rupees to paise
	amount := int64(plan.Price) * 100

	intent, err := p.gateway.CreateIntent(amount, "inr", map[string]string{
		"planId": strconv.FormatUint(uint64(plan.ID), 10),
		"userId": strconv.FormatUint(uint64(user.ID), 10),
	})
	if err != nil {
		log.Printf("Payment gateway error for plan %d: %v", plan.ID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Payment gateway error: "+err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":         true,
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
	})
}

// Confirm verifies the intent with the gateway and records the purchase.
// Duplicate calls with the same intent id are idempotent successes: the
// lookup catches the common case and the unique index on payment_id
// catches the race.
func (p *PaymentController) Confirm(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	reqData, ok := c.Locals("validatedConfirm").(*ConfirmRequest)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request data!")
	}

	var existing models.Purchase
	if err := p.db.Where("payment_id = ?", reqData.PaymentIntentID).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":    true,
			"message":    "Payment already processed",
			"purchaseId": existing.ID,
		})
	}

	intent, err := p.gateway.RetrieveIntent(reqData.PaymentIntentID)
	if err != nil {
		log.Printf("Payment confirmation failed for %s: %v", reqData.PaymentIntentID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Payment confirmation failed: "+err.Error())
	}

	if intent.Status != "succeeded" {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Payment not successful. Status: %s", intent.Status))
	}

	planID := reqData.PlanID
	if planID == 0 {
		// Fall back to the plan recorded on the intent at creation time
		if v, err := strconv.ParseUint(intent.Metadata["planId"], 10, 64); err == nil {
			planID = uint(v)
		}
	}
	if planID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Plan ID is required")
	}

	purchase := models.Purchase{
		UserID:        user.ID,
		PlanID:        planID,
		PaymentID:     reqData.PaymentIntentID,
		PaymentStatus: models.PaymentStatusCompleted,
		FormUnlocked:  true,
		PurchaseDate:  time.Now(),
	}

	if err := p.db.Create(&purchase).Error; err != nil {
		// A concurrent confirm may have won the unique index; report that
		// purchase rather than an error.
		if p.db.Where("payment_id = ?", reqData.PaymentIntentID).First(&existing).Error == nil {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"success":    true,
				"message":    "Payment already processed",
				"purchaseId": existing.ID,
			})
		}
		log.Printf("Error saving purchase for %s: %v", reqData.PaymentIntentID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record purchase")
	}

	if err := p.mailer.SendPaymentConfirmationEmail(user.Email, purchase.ID); err != nil {
		log.Printf("Error sending payment confirmation to %s: %v", user.Email, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"message":    "Payment confirmed successfully",
		"purchaseId": purchase.ID,
	})
}

// CheckStatus reports whether the caller holds an unconsumed completed
// purchase for the plan. A completed purchase with a filing against it
// counts as consumed.
func (p *PaymentController) CheckStatus(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	planID := c.QueryInt("planId")
	if planID <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Plan ID is required")
	}

	var purchase models.Purchase
	err := p.db.Where("user_id = ? AND plan_id = ? AND payment_status = ?",
		user.ID, planID, models.PaymentStatusCompleted).
		Order("created_at DESC").
		First(&purchase).Error
	if err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":       true,
			"hasActivePlan": false,
		})
	}

	var itr models.ITRForm
	if err := p.db.Where("purchase_id = ?", purchase.ID).First(&itr).Error; err == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":       true,
			"hasActivePlan": false,
			"isFiled":       true,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":       true,
		"hasActivePlan": true,
		"purchaseId":    purchase.ID,
		"isFiled":       false,
	})
}

// MyOrders lists the caller's purchases with the derived filing status
// attached to each.
func (p *PaymentController) MyOrders(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var purchases []models.Purchase
	if err := p.db.Where("user_id = ?", user.ID).
		Preload("Plan").
		Order("created_at DESC").
		Find(&purchases).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch orders")
	}

	orders := make([]orderResponse, 0, len(purchases))
	for _, purchase := range purchases {
		order := orderResponse{Purchase: purchase, ItrStatus: "Pending Filing"}

		if purchase.FormUnlocked {
			var itr models.ITRForm
			if err := p.db.Where("purchase_id = ?", purchase.ID).First(&itr).Error; err == nil {
				order.ItrStatus = string(itr.Status)
				order.ItrID = &itr.ID
				if itr.SubmittedAt != nil {
					order.SubmittedAt = itr.SubmittedAt
				} else {
					order.SubmittedAt = &itr.CreatedAt
				}
			}
		}

		orders = append(orders, order)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(orders),
		"data":    orders,
	})
}

type orderResponse struct {
	models.Purchase
	ItrStatus   string     `json:"itrStatus"`
	ItrID       *uint      `json:"itrId"`
	SubmittedAt *time.Time `json:"submittedAt"`
}

// Request shapes filled in by the payment validators.

type CreateIntentRequest struct {
	PlanID uint `json:"planId"`
}

type ConfirmRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	PlanID          uint   `json:"planId"`
}
