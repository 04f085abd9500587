package handlers

import (
	"fmt"
	"net/http"

	"github.com/jammission/backend/internal/models"
	"github.com/jammission/backend/internal/mykafka"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NewsletterHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

// Subscribe is idempotent: resubmitting a known email succeeds without
// creating a second row. The unique index on email is the authority, so
// two concurrent signups cannot both insert.
func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	errs := fieldErrors{}
	errs.requireEmail("email", req.Email)
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	sub := models.NewsletterSubscriber{Email: req.Email}
	err := h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&sub).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if sub.ID != 0 {
		publishEvent(c, h.Producer, fmt.Sprint(sub.ID), map[string]interface{}{
			"type":  "newsletter_subscribed",
			"email": sub.Email,
		})
	}

	return c.JSON(http.StatusOK, Response{Status: "ok", Message: "subscribed"})
}

func (h *NewsletterHandler) List(c echo.Context) error {
	var subs []models.NewsletterSubscriber
	if err := h.DB.Order("created_at DESC").Find(&subs).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, subs)
}
