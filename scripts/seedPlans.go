package main

import (
	"encoding/json"
	"log"

	"ledgerline/config"
	"ledgerline/database"
	"ledgerline/models"

	"gorm.io/datatypes"
)

type seedPlan struct {
	Name     string
	Price    uint
	Features []string
	Type     models.PlanType
	FormType models.FormType
}

var plans = []seedPlan{
	{"Salary (Basic) ITR", 799, []string{"ITR-1", "Salary Income", "Standard Deductions"}, models.PlanTypeBasic, models.FormTypeITR1},
	{"Salary (Premium)", 1499, []string{"ITR-2", "Multiple Income Sources", "House Property"}, models.PlanTypePremium, models.FormTypeITR2},
	{"Capital Gain", 2999, []string{"LTCG & STCG", "Stock Market Gains", "Property Sales"}, models.PlanTypePremium, models.FormTypeITR2},
	{"Foreign/NRI Income", 3499, []string{"NRI Tax Filing", "Foreign Income", "DTAA Benefits"}, models.PlanTypePremium, models.FormTypeITR2},

	{"Business & Profession", 2999, []string{"ITR-3/ITR-4", "Business Income", "Professional Income"}, models.PlanTypeBusiness, models.FormTypeITR3},
	{"F&O Trading", 2499, []string{"F&O Trading Income", "Speculative Income", "Loss Carry Forward"}, models.PlanTypeBusiness, models.FormTypeITR3},
	{"House Property", 1999, []string{"Rental Income", "Property Tax Deductions", "Home Loan Interest"}, models.PlanTypeBusiness, models.FormTypeITR2},
	{"Crypto Trading", 3999, []string{"Crypto Trading Income", "VDA Classification", "TDS Compliance"}, models.PlanTypeBusiness, models.FormTypeITR2},
	{"HUF Filing", 2499, []string{"HUF Income", "Family Business", "Property Income"}, models.PlanTypeBusiness, models.FormTypeITR3},

	{"GST Registration", 1499, []string{"Online GST Registration", "Document Preparation", "GSTIN Certificate"}, models.PlanTypeBusiness, models.FormTypeOther},
	{"HUF Registration", 2999, []string{"HUF Deed Preparation", "PAN Application", "Legal Documentation"}, models.PlanTypeBusiness, models.FormTypeOther},
	{"Company Registration", 6999, []string{"ROC Filing", "Certificate of Incorporation", "Digital Signatures"}, models.PlanTypeBusiness, models.FormTypeOther},
	{"LLP Registration", 4999, []string{"LLP Agreement", "ROC Registration", "Compliance Setup"}, models.PlanTypeBusiness, models.FormTypeOther},

	{"GST Filing", 999, []string{"GSTR-1 Filing", "GSTR-3B Filing", "Input Tax Credit"}, models.PlanTypeBusiness, models.FormTypeGST},
	{"TDS Filing", 1499, []string{"TDS Return Filing", "Certificate Generation", "Compliance Tracking"}, models.PlanTypeBusiness, models.FormTypeOther},
	{"PF & ESIC", 1999, []string{"PF Registration", "ESIC Registration", "Monthly Returns"}, models.PlanTypeBusiness, models.FormTypeOther},
}

func main() {
	config.LoadConfig()

	db, err := database.Connect(config.AppConfig)
	if err != nil {
		log.Fatalf("Database startup failed: %v", err)
	}

	// Clear existing catalog, including soft-deleted rows
	if err := db.Unscoped().Where("1 = 1").Delete(&models.Plan{}).Error; err != nil {
		log.Fatalf("Failed to clear plans: %v", err)
	}
	log.Println("Plans cleared...")

	for _, p := range plans {
		features, err := json.Marshal(p.Features)
		if err != nil {
			log.Fatalf("Failed to encode features for %s: %v", p.Name, err)
		}

		plan := models.Plan{
			Name:     p.Name,
			Price:    p.Price,
			Type:     p.Type,
			FormType: p.FormType,
			Features: datatypes.JSON(features),
			IsActive: true,
		}
		if err := db.Create(&plan).Error; err != nil {
			log.Fatalf("Failed to insert plan %s: %v", p.Name, err)
		}
	}

	log.Printf("Plans imported! (%d)", len(plans))
}
