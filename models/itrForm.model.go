package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ITRStatus defines the review state of a filing
type ITRStatus string

const (
	ITRStatusPending   ITRStatus = "Pending"
	ITRStatusReviewing ITRStatus = "CA Reviewing"
	ITRStatusFiled     ITRStatus = "Filed"
	ITRStatusCompleted ITRStatus = "Completed"
	ITRStatusRejected  ITRStatus = "Rejected"
)

// ValidITRStatus reports whether s is a known review state.
func ValidITRStatus(s ITRStatus) bool {
	switch s {
	case ITRStatusPending, ITRStatusReviewing, ITRStatusFiled, ITRStatusCompleted, ITRStatusRejected:
		return true
	}
	return false
}

// ITRForm is the filing work item. PurchaseID is uniquely indexed: one
// filing consumes exactly one purchase.
type ITRForm struct {
	gorm.Model
	UserID     uint `gorm:"not null;index" json:"userId"`
	PurchaseID uint `gorm:"uniqueIndex;not null" json:"purchaseId"`

	FormType      FormType       `gorm:"type:varchar(10);not null" json:"formType"`
	PersonalInfo  datatypes.JSON `json:"personalInfo"`
	IncomeDetails datatypes.JSON `json:"incomeDetails"`

	Status       ITRStatus  `gorm:"type:varchar(20);default:'Pending'" json:"status"`
	CaAssignedID *uint      `gorm:"index" json:"caAssigned,omitempty"`
	SubmittedAt  *time.Time `json:"submittedAt,omitempty"`

	Documents []Document `gorm:"foreignKey:FormID" json:"uploadedDocs,omitempty"`
	User      User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Purchase  Purchase   `gorm:"foreignKey:PurchaseID" json:"purchase,omitempty"`
}
