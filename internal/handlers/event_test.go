package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/jammission/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestEventDetailReportsAvailability(t *testing.T) {
	db := openDB(t)
	event := seedEvent(t, db, 10)
	require.NoError(t, db.Create(&models.Booking{
		Name:    "Earlier",
		Email:   "earlier@x.com",
		Date:    event.StartDate,
		Tickets: 8,
		EventID: &event.ID,
		Status:  models.BookingConfirmed,
	}).Error)

	h := &EventHandler{DB: db}
	rec, c := doJSONRequest(t, echo.New(), http.MethodGet, "/api/v1/events/harvest-festival", nil)
	c.SetParamNames("slug")
	c.SetParamValues("harvest-festival")
	require.NoError(t, h.GetBySlug(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Slug        string `json:"slug"`
		TicketsSold uint   `json:"tickets_sold"`
		Available   uint   `json:"available"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "harvest-festival", body.Slug)
	require.Equal(t, uint(8), body.TicketsSold)
	require.Equal(t, uint(2), body.Available)
}

func TestEventListHidesInactive(t *testing.T) {
	db := openDB(t)
	seedEvent(t, db, 10)
	require.NoError(t, db.Create(&models.Event{
		Title:     "Winter Retreat",
		Slug:      "winter-retreat",
		StartDate: time.Date(2026, 12, 12, 0, 0, 0, 0, time.UTC),
		Capacity:  5,
		IsActive:  false,
	}).Error)

	h := &EventHandler{DB: db}
	rec, c := doJSONRequest(t, echo.New(), http.MethodGet, "/api/v1/events", nil)
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var events []eventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	require.Equal(t, "harvest-festival", events[0].Slug)
}

func TestEventCreateDerivesSlugAndParsesDates(t *testing.T) {
	db := openDB(t)
	h := &EventHandler{DB: db}

	rec, c := doJSONRequest(t, echo.New(), http.MethodPost, "/api/v1/admin/owner/events", map[string]interface{}{
		"title":      "Harvest Festival",
		"start_date": "2026-10-03",
		"end_date":   "2026-10-04",
		"capacity":   25,
	})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var event models.Event
	require.NoError(t, db.First(&event).Error)
	require.Equal(t, "harvest-festival", event.Slug)
	require.True(t, event.IsActive)
	require.NotNil(t, event.EndDate)
	require.Equal(t, "2026-10-04", event.EndDate.Format("2006-01-02"))
}

func TestEventCreateRejectsBadStartDate(t *testing.T) {
	db := openDB(t)
	h := &EventHandler{DB: db}

	rec, c := doJSONRequest(t, echo.New(), http.MethodPost, "/api/v1/admin/owner/events", map[string]interface{}{
		"title":      "Harvest Festival",
		"start_date": "October 3rd",
	})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
