package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jammission/backend/internal/availability"
	"github.com/jammission/backend/internal/models"
	"github.com/jammission/backend/internal/mykafka"
	"github.com/jammission/backend/internal/notify"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type BookingHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	Notifier *notify.Dispatcher
}

type bookingRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
	// Tickets is a pointer so an omitted field (defaults to 1) stays
	// distinguishable from an explicit 0 (rejected).
	Tickets   *uint  `json:"tickets"`
	Notes     string `json:"notes"`
	EventSlug string `json:"event_slug"`
}

func (r *bookingRequest) validate() (time.Time, fieldErrors) {
	errs := fieldErrors{}
	errs.requireText("name", r.Name)
	errs.requireEmail("email", r.Email)
	if r.Tickets != nil && *r.Tickets < 1 {
		errs["tickets"] = "Ensure this value is greater than or equal to 1."
	}

	var date time.Time
	if r.Date == "" {
		errs["date"] = "This field is required."
	} else {
		var err error
		date, err = time.Parse("2006-01-02", r.Date)
		if err != nil {
			errs["date"] = "Enter a valid date (YYYY-MM-DD)."
		}
	}
	return date, errs
}

// create runs the shared intake path: the event (when given) is attached
// before the availability guard, and the guard runs exactly once at
// submission time.
func (h *BookingHandler) create(c echo.Context, req *bookingRequest, event *models.Event) error {
	date, errs := req.validate()
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	tickets := uint(1)
	if req.Tickets != nil {
		tickets = *req.Tickets
	}

	if event != nil {
		if err := availability.Check(h.DB, event, tickets); err != nil {
			var guardErr *availability.GuardError
			if errors.As(err, &guardErr) {
				return validationFailed(c, fieldErrors{"tickets": guardErr.Error()})
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	booking := models.Booking{
		Name:    req.Name,
		Email:   req.Email,
		Date:    date,
		Tickets: tickets,
		Notes:   req.Notes,
		Status:  models.BookingPending,
	}
	if event != nil {
		booking.EventID = &event.ID
	}

	if err := h.DB.Create(&booking).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.Notifier.NewBooking(&booking, event)
	publishEvent(c, h.Producer, fmt.Sprint(booking.ID), map[string]interface{}{
		"type":      "booking_created",
		"bookingID": booking.ID,
		"tickets":   booking.Tickets,
	})

	return c.JSON(http.StatusCreated, booking)
}

// Create handles the general booking form. An event_slug may be passed
// from event pages; an unknown slug leaves the booking unattached,
// matching the form's lenient behavior.
func (h *BookingHandler) Create(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	var event *models.Event
	if req.EventSlug != "" {
		var ev models.Event
		if err := h.DB.Where("slug = ?", req.EventSlug).First(&ev).Error; err == nil {
			event = &ev
		}
	}
	return h.create(c, &req, event)
}

// CreateForEvent handles bookings submitted from an event detail page.
func (h *BookingHandler) CreateForEvent(c echo.Context) error {
	var event models.Event
	err := h.DB.Where("slug = ? AND is_active = ?", c.Param("slug"), true).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	return h.create(c, &req, &event)
}

func (h *BookingHandler) List(c echo.Context) error {
	q := h.DB.Model(&models.Booking{}).Order("created_at DESC")
	switch c.QueryParam("kind") {
	case "stay":
		q = q.Where("event_id IS NULL")
	case "event":
		q = q.Where("event_id IS NOT NULL")
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) SetStatus(c echo.Context) error {
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
	case models.BookingPending, models.BookingConfirmed, models.BookingRejected,
		models.BookingPaid, models.BookingCancelled:
	default:
		return errorResponse(c, http.StatusBadRequest, "unknown status")
	}

	var booking models.Booking
	if err := h.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "booking not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	booking.Status = req.Status
	if err := h.DB.Save(&booking).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publishEvent(c, h.Producer, fmt.Sprint(booking.ID), map[string]interface{}{
		"type":      "booking_status_changed",
		"bookingID": booking.ID,
		"status":    booking.Status,
	})

	return c.JSON(http.StatusOK, booking)
}
