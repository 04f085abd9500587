package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jammission/backend/internal/availability"
	"github.com/jammission/backend/internal/models"
	"github.com/jammission/backend/internal/mykafka"
	"github.com/jammission/backend/internal/slugify"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EventHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

type eventResponse struct {
	models.Event
	TicketsSold uint `json:"tickets_sold"`
	Available   uint `json:"available"`
}

func (h *EventHandler) withAvailability(event models.Event) (eventResponse, error) {
	sold, err := availability.TicketsSold(h.DB, event.ID)
	if err != nil {
		return eventResponse{}, err
	}
	avail := uint(0)
	if sold < event.Capacity {
		avail = event.Capacity - sold
	}
	return eventResponse{Event: event, TicketsSold: sold, Available: avail}, nil
}

func (h *EventHandler) List(c echo.Context) error {
	var events []models.Event
	err := h.DB.Where("is_active = ?", true).Order("start_date ASC, title ASC").Find(&events).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	out := make([]eventResponse, 0, len(events))
	for _, ev := range events {
		resp, err := h.withAvailability(ev)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		out = append(out, resp)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *EventHandler) GetBySlug(c echo.Context) error {
	var event models.Event
	err := h.DB.Where("slug = ? AND is_active = ?", c.Param("slug"), true).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp, err := h.withAvailability(event)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

type eventRequest struct {
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
	ShortTagline string          `json:"short_tagline"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	Price        decimal.Decimal `json:"price"`
	Capacity     uint            `json:"capacity"`
	Description  string          `json:"description"`
	IsActive     *bool           `json:"is_active"`
}

func (r *eventRequest) validate() (time.Time, *time.Time, fieldErrors) {
	errs := fieldErrors{}
	errs.requireText("title", r.Title)

	var start time.Time
	if r.StartDate == "" {
		errs["start_date"] = "This field is required."
	} else {
		var err error
		start, err = time.Parse("2006-01-02", r.StartDate)
		if err != nil {
			errs["start_date"] = "Enter a valid date (YYYY-MM-DD)."
		}
	}

	var end *time.Time
	if r.EndDate != "" {
		t, err := time.Parse("2006-01-02", r.EndDate)
		if err != nil {
			errs["end_date"] = "Enter a valid date (YYYY-MM-DD)."
		} else {
			end = &t
		}
	}

	if r.Price.IsNegative() {
		errs["price"] = "Price must not be negative."
	}
	return start, end, errs
}

func (h *EventHandler) Create(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	start, end, errs := req.validate()
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	event := models.Event{
		Title:        req.Title,
		Slug:         req.Slug,
		ShortTagline: req.ShortTagline,
		StartDate:    start,
		EndDate:      end,
		Price:        req.Price,
		Capacity:     req.Capacity,
		Description:  req.Description,
		IsActive:     true,
	}
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}

	if err := slugify.Ensure(h.DB, &models.Event{}, &event.Slug, event.Title, 0); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Create(&event).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publishEvent(c, h.Producer, fmt.Sprint(event.ID), map[string]interface{}{
		"type":    "event_created",
		"eventID": event.ID,
		"slug":    event.Slug,
	})

	return c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) Update(c echo.Context) error {
	var event models.Event
	if err := h.DB.Where("slug = ?", c.Param("slug")).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	start, end, errs := req.validate()
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	event.Title = req.Title
	event.ShortTagline = req.ShortTagline
	event.StartDate = start
	event.EndDate = end
	event.Price = req.Price
	event.Capacity = req.Capacity
	event.Description = req.Description
	event.Slug = req.Slug
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}

	if err := slugify.Ensure(h.DB, &models.Event{}, &event.Slug, event.Title, event.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Save(&event).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publishEvent(c, h.Producer, fmt.Sprint(event.ID), map[string]interface{}{
		"type":    "event_updated",
		"eventID": event.ID,
		"slug":    event.Slug,
	})

	return c.JSON(http.StatusOK, event)
}
