package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jammission/backend/internal/models"
	"github.com/jammission/backend/internal/mykafka"
	"github.com/jammission/backend/internal/notify"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type ApplicationHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	Notifier *notify.Dispatcher
}

// Create accepts a lease pre-qualification application. The form fields
// mirror the application document, all free-text questions optional.
func (h *ApplicationHandler) Create(c echo.Context) error {
	var app models.PreQualificationApplication
	if err := c.Bind(&app); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	app.ID = 0
	app.Status = models.ApplicationPending
	if app.Adults < 1 {
		app.Adults = 1
	}

	if err := h.DB.Create(&app).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.Notifier.NewApplication(&app)
	publishEvent(c, h.Producer, fmt.Sprint(app.ID), map[string]interface{}{
		"type":          "application_created",
		"applicationID": app.ID,
	})

	return c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) List(c echo.Context) error {
	var apps []models.PreQualificationApplication
	if err := h.DB.Order("created_at DESC").Find(&apps).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) SetStatus(c echo.Context) error {
	id := parseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		return errorResponse(c, http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	switch req.Status {
	case models.ApplicationPending, models.ApplicationReviewed,
		models.ApplicationApproved, models.ApplicationRejected:
	default:
		return errorResponse(c, http.StatusBadRequest, "unknown status")
	}

	var app models.PreQualificationApplication
	if err := h.DB.First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "application not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	app.Status = req.Status
	if err := h.DB.Save(&app).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, app)
}
