package itrController

import (
	"encoding/json"
	"log"
	"time"

	"ledgerline/middleware"
	"ledgerline/models"
	"ledgerline/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ITRController struct {
	db     *gorm.DB
	mailer utils.Mailer
}

func NewITRController(db *gorm.DB, mailer utils.Mailer) *ITRController {
	return &ITRController{db: db, mailer: mailer}
}

// Submit creates the filing that consumes a purchase. The purchase must
// belong to the caller, be paid, and be unlocked; a purchase can only ever
// back one filing.
func (i *ITRController) Submit(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	reqData, ok := c.Locals("validatedSubmitITR").(*SubmitRequest)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request data!")
	}

	var purchase models.Purchase
	err := i.db.Where("id = ? AND user_id = ? AND payment_status = ? AND form_unlocked = ?",
		reqData.PurchaseID, user.ID, models.PaymentStatusCompleted, true).
		First(&purchase).Error
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No valid purchase found for this form submission")
	}

	var existing models.ITRForm
	if err := i.db.Where("purchase_id = ?", purchase.ID).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "ITR already submitted for this purchase")
	}

	now := time.Now()
	itr := models.ITRForm{
		UserID:        user.ID,
		PurchaseID:    purchase.ID,
		FormType:      models.FormType(reqData.FormType),
		PersonalInfo:  datatypes.JSON(reqData.PersonalInfo),
		IncomeDetails: datatypes.JSON(reqData.IncomeDetails),
		Status:        models.ITRStatusPending,
		SubmittedAt:   &now,
	}

	if err := i.db.Create(&itr).Error; err != nil {
		// The unique index on purchase_id closes the read-before-write race.
		if i.db.Where("purchase_id = ?", purchase.ID).First(&existing).Error == nil {
			return fiber.NewError(fiber.StatusBadRequest, "ITR already submitted for this purchase")
		}
		log.Printf("Error saving ITR form: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to submit ITR form")
	}

	// Claim the referenced documents. Only the caller's own unclaimed
	// uploads are eligible; anything else is silently skipped.
	if len(reqData.UploadedDocs) > 0 {
		if err := i.db.Model(&models.Document{}).
			Where("id IN ? AND user_id = ? AND form_id IS NULL", reqData.UploadedDocs, user.ID).
			Update("form_id", itr.ID).Error; err != nil {
			log.Printf("Error attaching documents to ITR %d: %v", itr.ID, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "ITR submitted.", itr)
}

// MyForms lists the caller's filings with related data resolved for
// display.
func (i *ITRController) MyForms(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var itrs []models.ITRForm
	if err := i.db.Where("user_id = ?", user.ID).
		Preload("Documents").
		Preload("Purchase.Plan").
		Find(&itrs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch ITR forms")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(itrs),
		"data":    itrs,
	})
}

// ListAll is the reviewer view: admins see everything, CAs only what is
// assigned to them.
func (i *ITRController) ListAll(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var itrs []models.ITRForm
	if err := i.db.Scopes(reviewScope(user)).
		Preload("User").
		Preload("Documents").
		Preload("Purchase.Plan").
		Find(&itrs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch ITR forms")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(itrs),
		"data":    itrs,
	})
}

// UpdateStatus moves a filing through the review workflow and notifies the
// owner. Notification failures are logged, never returned.
func (i *ITRController) UpdateStatus(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	reqData, ok := c.Locals("validatedUpdateStatus").(*UpdateStatusRequest)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request data!")
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ITR id")
	}

	var itr models.ITRForm
	if err := i.db.First(&itr, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "ITR Form not found")
	}

	if !canMutate(user, &itr) {
		return fiber.NewError(fiber.StatusForbidden, "Not authorized to update this ITR")
	}

	itr.Status = models.ITRStatus(reqData.Status)
	if err := i.db.Save(&itr).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update ITR status")
	}

	var owner models.User
	if err := i.db.First(&owner, itr.UserID).Error; err == nil {
		if err := i.mailer.SendITRStatusEmail(owner.Email, reqData.Status, reqData.Remarks); err != nil {
			log.Printf("Error sending status email to %s: %v", owner.Email, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "ITR status updated.", itr)
}

// Assign hands a filing to a reviewer and forces it into review. Admin
// only (enforced by the route).
func (i *ITRController) Assign(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAssign").(*AssignRequest)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request data!")
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ITR id")
	}

	var itr models.ITRForm
	if err := i.db.First(&itr, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "ITR Form not found")
	}

	var reviewer models.User
	if err := i.db.Where("id = ? AND role IN ?",
		reqData.CaID, []string{models.RoleCA, models.RoleAdmin}).
		First(&reviewer).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Reviewer not found or not authorized to review")
	}

	itr.CaAssignedID = &reviewer.ID
	itr.Status = models.ITRStatusReviewing
	if err := i.db.Save(&itr).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to assign reviewer")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviewer assigned.", itr)
}

// Request shapes filled in by the ITR validators.

type SubmitRequest struct {
	PurchaseID    uint            `json:"purchaseId"`
	FormType      string          `json:"formType"`
	PersonalInfo  json.RawMessage `json:"personalInfo"`
	IncomeDetails json.RawMessage `json:"incomeDetails"`
	UploadedDocs  []uint          `json:"uploadedDocs"`
}

type UpdateStatusRequest struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks"`
}

type AssignRequest struct {
	CaID uint `json:"caId"`
}
