package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleCA    = "ca"
	RoleAdmin = "admin"
)

type User struct {
	gorm.Model
	Name   string `gorm:"default:''" json:"name"`
	Email  string `gorm:"unique;not null" json:"email"`
	Mobile string `gorm:"default:''" json:"mobile"`
	Role   string `gorm:"default:'user'" json:"role"` // user, ca, admin

	Password string `gorm:"not null" json:"-"`

	IsEmailVerified  bool `gorm:"default:false" json:"isEmailVerified"`
	IsMobileVerified bool `gorm:"default:false" json:"isMobileVerified"`

	// Transient OTP state, one pair per channel. Cleared on successful
	// verification so a code can never be replayed.
	OTP                string     `gorm:"size:6" json:"-"`
	OTPExpiresAt       *time.Time `json:"-"`
	MobileOTP          string     `gorm:"size:6" json:"-"`
	MobileOTPExpiresAt *time.Time `json:"-"`

	Purchases []Purchase `gorm:"foreignKey:UserID" json:"purchases,omitempty"`
}
