package models

import (
	"gorm.io/gorm"
)

// Document is uploaded file metadata. FormID stays NULL until a filing
// claims the document on submission.
type Document struct {
	gorm.Model
	UserID   uint   `gorm:"not null;index" json:"userId"`
	FormID   *uint  `gorm:"index" json:"formId,omitempty"`
	FileURL  string `gorm:"not null" json:"fileUrl"`
	FileName string `json:"fileName"`
	FileType string `gorm:"not null" json:"fileType"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
