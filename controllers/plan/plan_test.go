package planController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ledgerline/config"
	planController "ledgerline/controllers/plan"
	"ledgerline/database"
	"ledgerline/middleware"
	"ledgerline/models"
	"ledgerline/routers/planRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPlanApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	api := app.Group("/api/v1")
	planRoutes.SetupPlanRoutes(api, planController.NewPlanController(db), db)

	return app, db
}

func createUser(t *testing.T, db *gorm.DB, email, role string) string {
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
	return token
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

func TestListShowsOnlyActivePlans(t *testing.T) {
	app, db := setupPlanApp(t)

	require.NoError(t, db.Create(&models.Plan{
		Name: "Salary Basic", Price: 799,
		Type: models.PlanTypeBasic, FormType: models.FormTypeITR1,
		Features: []byte(`["Salary income"]`), IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&models.Plan{
		Name: "Retired Plan", Price: 499,
		Type: models.PlanTypeBasic, FormType: models.FormTypeITR1,
		Features: []byte(`[]`), IsActive: false,
	}).Error)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/plans/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])

	plans := body["data"].([]interface{})
	assert.Equal(t, "Salary Basic", plans[0].(map[string]interface{})["name"])
}

func TestGetReturnsInactivePlanToo(t *testing.T) {
	app, db := setupPlanApp(t)

	plan := models.Plan{
		Name: "Retired Plan", Price: 499,
		Type: models.PlanTypeBasic, FormType: models.FormTypeITR1,
		Features: []byte(`[]`), IsActive: false,
	}
	require.NoError(t, db.Create(&plan).Error)

	resp, body := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/plans/%d", plan.ID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Retired Plan", body["data"].(map[string]interface{})["name"])

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/plans/999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateRequiresAdmin(t *testing.T) {
	app, db := setupPlanApp(t)
	userToken := createUser(t, db, "user@x.com", models.RoleUser)
	adminToken := createUser(t, db, "admin@x.com", models.RoleAdmin)

	payload := map[string]interface{}{
		"name":     "Capital Gains Premium",
		"price":    2499,
		"type":     "Premium",
		"formType": "ITR2",
		"features": []string{"Capital gains", "Salary income"},
	}

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/plans/", "", payload)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/plans/", userToken, payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/plans/", adminToken, payload)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2499), data["price"])
	assert.Equal(t, true, data["isActive"])
}

func TestCreateValidatesPayload(t *testing.T) {
	app, db := setupPlanApp(t)
	adminToken := createUser(t, db, "admin@x.com", models.RoleAdmin)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/plans/", adminToken, map[string]interface{}{
		"name":     "Broken",
		"price":    100,
		"type":     "Luxury",
		"formType": "ITR9",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateIsPartial(t *testing.T) {
	app, db := setupPlanApp(t)
	adminToken := createUser(t, db, "admin@x.com", models.RoleAdmin)

	plan := models.Plan{
		Name: "Salary Basic", Price: 799,
		Type: models.PlanTypeBasic, FormType: models.FormTypeITR1,
		Features: []byte(`["Salary income"]`), IsActive: true,
	}
	require.NoError(t, db.Create(&plan).Error)

	resp, _ := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/plans/%d", plan.ID), adminToken, map[string]interface{}{
		"price": 899,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&plan, plan.ID).Error)
	assert.Equal(t, uint(899), plan.Price)
	assert.Equal(t, "Salary Basic", plan.Name)
	assert.True(t, plan.IsActive)

	// Deactivation without touching anything else
	resp, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/plans/%d", plan.ID), adminToken, map[string]interface{}{
		"isActive": false,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&plan, plan.ID).Error)
	assert.False(t, plan.IsActive)
	assert.Equal(t, uint(899), plan.Price)
}

func TestDeleteIsSoft(t *testing.T) {
	app, db := setupPlanApp(t)
	adminToken := createUser(t, db, "admin@x.com", models.RoleAdmin)

	plan := models.Plan{
		Name: "Salary Basic", Price: 799,
		Type: models.PlanTypeBasic, FormType: models.FormTypeITR1,
		Features: []byte(`[]`), IsActive: true,
	}
	require.NoError(t, db.Create(&plan).Error)

	resp, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/plans/%d", plan.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Gone from normal queries, still present unscoped
	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/plans/%d", plan.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Plan{}).Where("id = ?", plan.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
