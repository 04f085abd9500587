package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/jammission/backend/internal/config"
	"github.com/jammission/backend/internal/notify"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

type sentMail struct {
	To      []string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent []sentMail
}

func (m *fakeMailer) Send(to []string, subject, body string) error {
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func newNotifier(mailer *fakeMailer) *notify.Dispatcher {
	return notify.NewDispatcher(mailer, []string{"owner@example.com"}, nil)
}

func doJSONRequest(t *testing.T, e *echo.Echo, method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}
