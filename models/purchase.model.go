package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentStatus defines the settlement state of a purchase
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
	PaymentStatusRefunded  PaymentStatus = "Refunded"
)

// Purchase links a user to a plan through a gateway payment reference.
// PaymentID carries a unique index so a duplicate confirm can never
// produce a second row even if two requests race past the lookup.
type Purchase struct {
	gorm.Model
	UserID        uint          `gorm:"not null;index" json:"userId"`
	PlanID        uint          `gorm:"not null;index" json:"planId"`
	PaymentID     string        `gorm:"type:varchar(100);uniqueIndex;not null" json:"paymentId"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);default:'Pending'" json:"paymentStatus"`
	FormUnlocked  bool          `gorm:"default:false" json:"formUnlocked"`
	PurchaseDate  time.Time     `json:"purchaseDate"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Plan Plan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}
