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

type ContactHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	Notifier *notify.Dispatcher
}

func (h *ContactHandler) Create(c echo.Context) error {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	errs := fieldErrors{}
	errs.requireText("name", req.Name)
	errs.requireEmail("email", req.Email)
	errs.requireText("message", req.Message)
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	msg := models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.DB.Create(&msg).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.Notifier.NewContactMessage(&msg)
	publishEvent(c, h.Producer, fmt.Sprint(msg.ID), map[string]interface{}{
		"type":      "contact_message_created",
		"messageID": msg.ID,
	})

	return c.JSON(http.StatusCreated, msg)
}

func (h *ContactHandler) List(c echo.Context) error {
	var msgs []models.ContactMessage
	if err := h.DB.Order("created_at DESC").Find(&msgs).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, msgs)
}

func (h *ContactHandler) SetHandled(c echo.Context) error {
	id := parseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		return errorResponse(c, http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Handled bool `json:"handled"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	var msg models.ContactMessage
	if err := h.DB.First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "message not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	msg.Handled = req.Handled
	if err := h.DB.Save(&msg).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, msg)
}
