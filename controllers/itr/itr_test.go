package itrController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ledgerline/config"
	itrController "ledgerline/controllers/itr"
	"ledgerline/database"
	"ledgerline/middleware"
	"ledgerline/models"
	"ledgerline/routers/itrRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type recordingMailer struct {
	statusEmails []string
}

func (m *recordingMailer) SendOTPEmail(email, otp string) error { return nil }

func (m *recordingMailer) SendPaymentConfirmationEmail(email string, purchaseID uint) error {
	return nil
}

func (m *recordingMailer) SendITRStatusEmail(email, status, remarks string) error {
	m.statusEmails = append(m.statusEmails, email+":"+status)
	return nil
}

func setupITRApp(t *testing.T) (*fiber.App, *gorm.DB, *recordingMailer) {
	t.Helper()
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	mailer := &recordingMailer{}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	api := app.Group("/api/v1")
	itrRoutes.SetupITRRoutes(api, itrController.NewITRController(db, mailer), db)

	return app, db, mailer
}

func createUser(t *testing.T, db *gorm.DB, email, role string) (*models.User, string) {
	t.Helper()
	user := models.User{
		Name:            "Test User",
		Email:           email,
		Password:        "hashed-not-used",
		Role:            role,
		IsEmailVerified: true,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID)
	require.NoError(t, err)
	return &user, token
}

func createPaidPurchase(t *testing.T, db *gorm.DB, userID uint) *models.Purchase {
	t.Helper()
	plan := models.Plan{
		Name: "Salary Basic", Price: 799,
		Type: models.PlanTypeBasic, FormType: models.FormTypeITR1,
		Features: []byte(`["Salary income"]`), IsActive: true,
	}
	require.NoError(t, db.Create(&plan).Error)

	purchase := models.Purchase{
		UserID:        userID,
		PlanID:        plan.ID,
		PaymentID:     fmt.Sprintf("pi_itr_%d_%d", userID, time.Now().UnixNano()),
		PaymentStatus: models.PaymentStatusCompleted,
		FormUnlocked:  true,
		PurchaseDate:  time.Now(),
	}
	require.NoError(t, db.Create(&purchase).Error)
	return &purchase
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	parsed := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", string(raw))
	}
	return resp, parsed
}

func TestSubmitConsumesPurchaseOnce(t *testing.T) {
	app, db, _ := setupITRApp(t)
	user, token := createUser(t, db, "filer@x.com", models.RoleUser)
	purchase := createPaidPurchase(t, db, user.ID)

	payload := map[string]interface{}{
		"purchaseId":    purchase.ID,
		"formType":      "ITR1",
		"personalInfo":  map[string]interface{}{"pan": "ABCDE1234F"},
		"incomeDetails": map[string]interface{}{"salary": 1200000},
	}

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/itr", token, payload)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, string(models.ITRStatusPending), data["status"])
	assert.NotNil(t, data["submittedAt"])

	// Same purchase again is a conflict, not a second filing
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/itr", token, payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.ITRForm{}).Where("purchase_id = ?", purchase.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitRejectsForeignOrUnpaidPurchase(t *testing.T) {
	app, db, _ := setupITRApp(t)
	owner, _ := createUser(t, db, "owner@x.com", models.RoleUser)
	_, intruderToken := createUser(t, db, "intruder@x.com", models.RoleUser)
	purchase := createPaidPurchase(t, db, owner.ID)

	// Someone else's purchase
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/itr", intruderToken, map[string]interface{}{
		"purchaseId": purchase.ID,
		"formType":   "ITR1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Owner's own purchase but still pending payment
	pending := models.Purchase{
		UserID: owner.ID, PlanID: purchase.PlanID, PaymentID: "pi_pending",
		PaymentStatus: models.PaymentStatusPending, FormUnlocked: false, PurchaseDate: time.Now(),
	}
	require.NoError(t, db.Create(&pending).Error)

	ownerToken, err := middleware.GenerateJWT(owner.ID)
	require.NoError(t, err)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/itr", ownerToken, map[string]interface{}{
		"purchaseId": pending.ID,
		"formType":   "ITR1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmitClaimsOnlyOwnUnclaimedDocuments(t *testing.T) {
	app, db, _ := setupITRApp(t)
	user, token := createUser(t, db, "filer@x.com", models.RoleUser)
	other, _ := createUser(t, db, "other@x.com", models.RoleUser)
	purchase := createPaidPurchase(t, db, user.ID)

	mine := models.Document{UserID: user.ID, FileURL: "https://cdn/a.pdf", FileName: "a.pdf", FileType: "application/pdf"}
	theirs := models.Document{UserID: other.ID, FileURL: "https://cdn/b.pdf", FileName: "b.pdf", FileType: "application/pdf"}
	require.NoError(t, db.Create(&mine).Error)
	require.NoError(t, db.Create(&theirs).Error)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/itr", token, map[string]interface{}{
		"purchaseId":   purchase.ID,
		"formType":     "ITR1",
		"uploadedDocs": []uint{mine.ID, theirs.ID},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NoError(t, db.First(&mine, mine.ID).Error)
	require.NoError(t, db.First(&theirs, theirs.ID).Error)
	assert.NotNil(t, mine.FormID)
	assert.Nil(t, theirs.FormID)
}

func TestReviewScopes(t *testing.T) {
	app, db, _ := setupITRApp(t)

	filerA, tokenA := createUser(t, db, "a@x.com", models.RoleUser)
	filerB, _ := createUser(t, db, "b@x.com", models.RoleUser)
	caOne, caOneToken := createUser(t, db, "ca1@x.com", models.RoleCA)
	_, caTwoToken := createUser(t, db, "ca2@x.com", models.RoleCA)
	_, adminToken := createUser(t, db, "admin@x.com", models.RoleAdmin)

	purchaseA := createPaidPurchase(t, db, filerA.ID)
	purchaseB := createPaidPurchase(t, db, filerB.ID)

	itrA := models.ITRForm{
		UserID: filerA.ID, PurchaseID: purchaseA.ID,
		FormType: models.FormTypeITR1, Status: models.ITRStatusPending,
		CaAssignedID: &caOne.ID,
	}
	itrB := models.ITRForm{
		UserID: filerB.ID, PurchaseID: purchaseB.ID,
		FormType: models.FormTypeITR1, Status: models.ITRStatusPending,
	}
	require.NoError(t, db.Create(&itrA).Error)
	require.NoError(t, db.Create(&itrB).Error)

	// Admin sees everything
	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/itr/all", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["count"])

	// A CA sees only assigned filings
	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/itr/all", caOneToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/itr/all", caTwoToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["count"])

	// Plain users cannot reach the reviewer list at all
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/itr/all", tokenA, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// But they see their own filings
	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/itr", tokenA, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])
}

func TestUpdateStatusAuthorization(t *testing.T) {
	app, db, mailer := setupITRApp(t)

	filer, _ := createUser(t, db, "filer@x.com", models.RoleUser)
	caOne, caOneToken := createUser(t, db, "ca1@x.com", models.RoleCA)
	_, caTwoToken := createUser(t, db, "ca2@x.com", models.RoleCA)
	_, adminToken := createUser(t, db, "admin@x.com", models.RoleAdmin)

	purchase := createPaidPurchase(t, db, filer.ID)
	itr := models.ITRForm{
		UserID: filer.ID, PurchaseID: purchase.ID,
		FormType: models.FormTypeITR1, Status: models.ITRStatusReviewing,
		CaAssignedID: &caOne.ID,
	}
	require.NoError(t, db.Create(&itr).Error)

	path := fmt.Sprintf("/api/v1/itr/%d/status", itr.ID)

	// An unassigned CA is rejected
	resp, _ := doJSON(t, app, http.MethodPut, path, caTwoToken, map[string]interface{}{
		"status": "Filed",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The assigned CA may move it
	resp, _ = doJSON(t, app, http.MethodPut, path, caOneToken, map[string]interface{}{
		"status":  "Filed",
		"remarks": "Acknowledgement attached",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&itr, itr.ID).Error)
	assert.Equal(t, models.ITRStatusFiled, itr.Status)
	require.Len(t, mailer.statusEmails, 1)
	assert.Equal(t, "filer@x.com:Filed", mailer.statusEmails[0])

	// Admin may move any filing regardless of assignment
	resp, _ = doJSON(t, app, http.MethodPut, path, adminToken, map[string]interface{}{
		"status": "Completed",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Unknown status values never reach the workflow
	resp, _ = doJSON(t, app, http.MethodPut, path, adminToken, map[string]interface{}{
		"status": "Archived",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAssignForcesReview(t *testing.T) {
	app, db, _ := setupITRApp(t)

	filer, _ := createUser(t, db, "filer@x.com", models.RoleUser)
	ca, caToken := createUser(t, db, "ca@x.com", models.RoleCA)
	_, adminToken := createUser(t, db, "admin@x.com", models.RoleAdmin)

	purchase := createPaidPurchase(t, db, filer.ID)
	itr := models.ITRForm{
		UserID: filer.ID, PurchaseID: purchase.ID,
		FormType: models.FormTypeITR1, Status: models.ITRStatusPending,
	}
	require.NoError(t, db.Create(&itr).Error)

	path := fmt.Sprintf("/api/v1/itr/%d/assign", itr.ID)

	// Assignment is admin only
	resp, _ := doJSON(t, app, http.MethodPut, path, caToken, map[string]interface{}{
		"caId": ca.ID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The reviewer must hold a reviewing role
	resp, _ = doJSON(t, app, http.MethodPut, path, adminToken, map[string]interface{}{
		"caId": filer.ID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPut, path, adminToken, map[string]interface{}{
		"caId": ca.ID,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&itr, itr.ID).Error)
	require.NotNil(t, itr.CaAssignedID)
	assert.Equal(t, ca.ID, *itr.CaAssignedID)
	assert.Equal(t, models.ITRStatusReviewing, itr.Status)
}

func TestUpdateStatusUnknownForm(t *testing.T) {
	app, db, _ := setupITRApp(t)
	_, adminToken := createUser(t, db, "admin@x.com", models.RoleAdmin)

	resp, _ := doJSON(t, app, http.MethodPut, "/api/v1/itr/424242/status", adminToken, map[string]interface{}{
		"status": "Filed",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
