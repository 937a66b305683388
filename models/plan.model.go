package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlanType defines the catalog category of a plan
type PlanType string

const (
	PlanTypeBasic    PlanType = "Basic"
	PlanTypePremium  PlanType = "Premium"
	PlanTypeBusiness PlanType = "Business"
)

// FormType defines which filing a plan entitles the buyer to
type FormType string

const (
	FormTypeITR1  FormType = "ITR1"
	FormTypeITR2  FormType = "ITR2"
	FormTypeITR3  FormType = "ITR3"
	FormTypeITR4  FormType = "ITR4"
	FormTypeGST   FormType = "GST"
	FormTypeOther FormType = "OTHER"
)

// Plan is an admin-managed catalog entry. Price is in whole rupees; the
// payment gateway receives it converted to paise.
type Plan struct {
	gorm.Model
	Name     string         `gorm:"not null" json:"name"`
	Price    uint           `gorm:"not null" json:"price"`
	Type     PlanType       `gorm:"type:varchar(20);not null" json:"type"`
	FormType FormType       `gorm:"type:varchar(10);not null" json:"formType"`
	Features datatypes.JSON `json:"features"`
	IsActive bool           `gorm:"default:true" json:"isActive"`
}

// ValidPlanType reports whether t is a known catalog category.
func ValidPlanType(t PlanType) bool {
	switch t {
	case PlanTypeBasic, PlanTypePremium, PlanTypeBusiness:
		return true
	}
	return false
}

// ValidFormType reports whether f is a known filing form.
func ValidFormType(f FormType) bool {
	switch f {
	case FormTypeITR1, FormTypeITR2, FormTypeITR3, FormTypeITR4, FormTypeGST, FormTypeOther:
		return true
	}
	return false
}
