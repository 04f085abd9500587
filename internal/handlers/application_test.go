package handlers

import (
	"net/http"
	"testing"

	"github.com/jammission/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestApplicationCreateForcesPendingStatus(t *testing.T) {
	db := openDB(t)
	mailer := &fakeMailer{}
	h := &ApplicationHandler{DB: db, Notifier: newNotifier(mailer)}

	rec, c := doJSONRequest(t, echo.New(), http.MethodPost, "/api/v1/applications", map[string]interface{}{
		"id":              99,
		"status":          models.ApplicationApproved,
		"lease_term":      "12 months",
		"housing_size":    "tiny home",
		"adults":          2,
		"monthly_support": "work exchange",
	})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var app models.PreQualificationApplication
	require.NoError(t, db.First(&app).Error)
	require.Equal(t, models.ApplicationPending, app.Status)
	require.NotEqual(t, uint(99), app.ID)
	require.Equal(t, uint(2), app.Adults)

	require.Len(t, mailer.sent, 1)
	require.Equal(t, "New lease pre-qualification application", mailer.sent[0].Subject)
	require.Contains(t, mailer.sent[0].Body, "Lease term: 12 months")
}

func TestApplicationCreateDefaultsAdultsToOne(t *testing.T) {
	db := openDB(t)
	h := &ApplicationHandler{DB: db, Notifier: newNotifier(&fakeMailer{})}

	rec, c := doJSONRequest(t, echo.New(), http.MethodPost, "/api/v1/applications", map[string]interface{}{
		"lease_term": "6 months",
	})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var app models.PreQualificationApplication
	require.NoError(t, db.First(&app).Error)
	require.Equal(t, uint(1), app.Adults)
}

func TestApplicationSetStatus(t *testing.T) {
	db := openDB(t)
	h := &ApplicationHandler{DB: db}
	app := models.PreQualificationApplication{LeaseTerm: "12 months", Adults: 2, Status: models.ApplicationPending}
	require.NoError(t, db.Create(&app).Error)

	rec, c := doJSONRequest(t, echo.New(), http.MethodPatch, "/api/v1/admin/owner/applications/1/status", map[string]string{
		"status": models.ApplicationReviewed,
	})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.SetStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, db.First(&app, app.ID).Error)
	require.Equal(t, models.ApplicationReviewed, app.Status)
}
