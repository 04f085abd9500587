package handlers

import (
	"net/http"
	"testing"

	"github.com/jammission/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestContactCreateNotifiesStaff(t *testing.T) {
	db := openDB(t)
	mailer := &fakeMailer{}
	h := &ContactHandler{DB: db, Notifier: newNotifier(mailer)}

	rec, c := doJSONRequest(t, echo.New(), http.MethodPost, "/api/v1/contact", map[string]string{
		"name":    "Jane",
		"email":   "jane@x.com",
		"message": "Do you deliver?",
	})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var msg models.ContactMessage
	require.NoError(t, db.First(&msg).Error)
	require.False(t, msg.Handled)

	require.Len(t, mailer.sent, 1)
	require.Equal(t, "New message from JAM Mission website", mailer.sent[0].Subject)
	require.Contains(t, mailer.sent[0].Body, "Do you deliver?")
}

func TestContactCreateUsesProvidedSubject(t *testing.T) {
	db := openDB(t)
	mailer := &fakeMailer{}
	h := &ContactHandler{DB: db, Notifier: newNotifier(mailer)}

	rec, c := doJSONRequest(t, echo.New(), http.MethodPost, "/api/v1/contact", map[string]string{
		"name":    "Jane",
		"email":   "jane@x.com",
		"subject": "Wholesale pricing",
		"message": "Hi",
	})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, mailer.sent, 1)
	require.Equal(t, "Wholesale pricing", mailer.sent[0].Subject)
}

func TestContactCreateRequiresMessage(t *testing.T) {
	db := openDB(t)
	h := &ContactHandler{DB: db, Notifier: newNotifier(&fakeMailer{})}

	rec, c := doJSONRequest(t, echo.New(), http.MethodPost, "/api/v1/contact", map[string]string{
		"name":  "Jane",
		"email": "jane@x.com",
	})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestContactSetHandled(t *testing.T) {
	db := openDB(t)
	h := &ContactHandler{DB: db}
	msg := models.ContactMessage{Name: "Jane", Email: "jane@x.com", Message: "Hi"}
	require.NoError(t, db.Create(&msg).Error)

	rec, c := doJSONRequest(t, echo.New(), http.MethodPatch, "/api/v1/admin/owner/messages/1/handled", map[string]bool{
		"handled": true,
	})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.SetHandled(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, db.First(&msg, msg.ID).Error)
	require.True(t, msg.Handled)
}
