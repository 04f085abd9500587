package handlers

import (
	"net/http"

	"github.com/jammission/backend/internal/models"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	DB *gorm.DB
}

func (h *DashboardHandler) counts() (map[string]int64, error) {
	counts := map[string]int64{}
	for name, model := range map[string]interface{}{
		"events":       &models.Event{},
		"services":     &models.Service{},
		"products":     &models.Product{},
		"posts":        &models.BlogPost{},
		"orders":       &models.Order{},
		"subscribers":  &models.NewsletterSubscriber{},
		"messages":     &models.ContactMessage{},
		"applications": &models.PreQualificationApplication{},
	} {
		var n int64
		if err := h.DB.Model(model).Count(&n).Error; err != nil {
			return nil, err
		}
		counts[name] = n
	}

	var stay, event int64
	if err := h.DB.Model(&models.Booking{}).Where("event_id IS NULL").Count(&stay).Error; err != nil {
		return nil, err
	}
	if err := h.DB.Model(&models.Booking{}).Where("event_id IS NOT NULL").Count(&event).Error; err != nil {
		return nil, err
	}
	counts["stay_bookings"] = stay
	counts["event_bookings"] = event
	return counts, nil
}

// Owner summarizes everything the owner dashboard renders: analytics
// counts plus the most recent submissions.
func (h *DashboardHandler) Owner(c echo.Context) error {
	analytics, err := h.counts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var bookings []models.Booking
	if err := h.DB.Order("created_at DESC").Limit(10).Find(&bookings).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	var orders []models.Order
	if err := h.DB.Order("created_at DESC").Limit(10).Find(&orders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"analytics":       analytics,
		"recent_bookings": bookings,
		"recent_orders":   orders,
	})
}

// Tech gives the technical admin a site overview.
func (h *DashboardHandler) Tech(c echo.Context) error {
	analytics, err := h.counts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var users int64
	if err := h.DB.Model(&models.User{}).Count(&users).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	analytics["users"] = users

	return c.JSON(http.StatusOK, map[string]interface{}{"analytics": analytics})
}
