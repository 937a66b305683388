package planController

import (
	"encoding/json"
	"fmt"

	"ledgerline/middleware"
	"ledgerline/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PlanController struct {
	db *gorm.DB
}

func NewPlanController(db *gorm.DB) *PlanController {
	return &PlanController{db: db}
}

// List returns the active catalog. Public.
func (p *PlanController) List(c *fiber.Ctx) error {
	var plans []models.Plan
	if err := p.db.Where("is_active = ?", true).Find(&plans).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch plans")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(plans),
		"data":    plans,
	})
}

// Get returns a single plan, active or not. Public.
func (p *PlanController) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid plan id")
	}

	var plan models.Plan
	if err := p.db.First(&plan, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Plan not found with id of %d", id))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plan fetched.", plan)
}

// Create adds a catalog entry. Admin only.
func (p *PlanController) Create(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreatePlan").(*PlanRequest)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request data!")
	}

	features, err := json.Marshal(reqData.Features)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid features list")
	}

	plan := models.Plan{
		Name:     reqData.Name,
		Price:    *reqData.Price,
		Type:     models.PlanType(reqData.Type),
		FormType: models.FormType(reqData.FormType),
		Features: datatypes.JSON(features),
		IsActive: true,
	}
	if reqData.IsActive != nil {
		plan.IsActive = *reqData.IsActive
	}

	if err := p.db.Create(&plan).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create plan")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Plan created.", plan)
}

// Update applies a partial update. Admin only.
func (p *PlanController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid plan id")
	}

	reqData, ok := c.Locals("validatedUpdatePlan").(*PlanRequest)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request data!")
	}

	var plan models.Plan
	if err := p.db.First(&plan, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Plan not found with id of %d", id))
	}

	if reqData.Name != "" {
		plan.Name = reqData.Name
	}
	if reqData.Price != nil {
		plan.Price = *reqData.Price
	}
	if reqData.Type != "" {
		plan.Type = models.PlanType(reqData.Type)
	}
	if reqData.FormType != "" {
		plan.FormType = models.FormType(reqData.FormType)
	}
	if reqData.Features != nil {
		features, err := json.Marshal(reqData.Features)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid features list")
		}
		plan.Features = datatypes.JSON(features)
	}
	if reqData.IsActive != nil {
		plan.IsActive = *reqData.IsActive
	}

	if err := p.db.Save(&plan).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update plan")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plan updated.", plan)
}

// Delete soft-deletes a plan. Admin only.
func (p *PlanController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid plan id")
	}

	var plan models.Plan
	if err := p.db.First(&plan, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Plan not found with id of %d", id))
	}

	if err := p.db.Delete(&plan).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete plan")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plan deleted.", nil)
}

// PlanRequest is filled by the plan validators. Price and IsActive are
// pointers so a partial update can tell "absent" from zero.
type PlanRequest struct {
	Name     string   `json:"name"`
	Price    *uint    `json:"price"`
	Type     string   `json:"type"`
	FormType string   `json:"formType"`
	Features []string `json:"features"`
	IsActive *bool    `json:"isActive"`
}
