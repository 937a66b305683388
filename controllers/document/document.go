package documentController

import (
	"io"
	"log"
	"strings"

	"ledgerline/middleware"
	"ledgerline/models"
	"ledgerline/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxUploadSize = 5 * 1024 * 1024 // 5MB

type DocumentController struct {
	db   *gorm.DB
	blob storage.BlobStore
}

func NewDocumentController(db *gorm.DB, blob storage.BlobStore) *DocumentController {
	return &DocumentController{db: db, blob: blob}
}

// Upload accepts a single multipart file. Type and size are rejected
// locally before any storage call; the Document row is only written once
// the blob is stored and public, so a bridge failure leaves no record.
func (d *DocumentController) Upload(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Please upload a file")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "application/pdf" && !strings.HasPrefix(contentType, "image/") {
		return fiber.NewError(fiber.StatusBadRequest, "Not an image or PDF! Please upload only images or PDF.")
	}

	if fileHeader.Size > maxUploadSize {
		return fiber.NewError(fiber.StatusBadRequest, "File too large. Maximum size is 5MB.")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to read uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to read uploaded file")
	}

	objectName := uuid.NewString() + "_" + fileHeader.Filename

	if err := d.blob.Put(objectName, contentType, data); err != nil {
		log.Printf("Blob upload failed for %s: %v", objectName, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Something went wrong with file upload")
	}
	if err := d.blob.MakePublic(objectName); err != nil {
		log.Printf("Failed to make %s public: %v", objectName, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Something went wrong with file upload")
	}

	document := models.Document{
		UserID:   user.ID,
		FileURL:  d.blob.PublicURL(objectName),
		FileName: fileHeader.Filename,
		FileType: contentType,
	}

	if err := d.db.Create(&document).Error; err != nil {
		log.Printf("Error saving document record: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save document")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Document uploaded.", document)
}

// List returns the caller's documents.
func (d *DocumentController) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var documents []models.Document
	if err := d.db.Where("user_id = ?", user.ID).Find(&documents).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch documents")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(documents),
		"data":    documents,
	})
}
