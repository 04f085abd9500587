package handlers

import (
	"context"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/jammission/backend/internal/mykafka"
	"github.com/labstack/echo/v4"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func errorResponse(c echo.Context, code int, msg string) error {
	return c.JSON(code, Response{Status: "error", Message: msg})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// fieldErrors collects per-field validation messages for one form
// submission. Surfaced inline to the submitter, never persisted.
type fieldErrors map[string]string

func (f fieldErrors) requireText(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = "This field is required."
	}
}

func (f fieldErrors) requireEmail(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = "This field is required."
		return
	}
	if !validEmail(value) {
		f[field] = "Enter a valid email address."
	}
}

func validationFailed(c echo.Context, errs fieldErrors) error {
	return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
		"status": "error",
		"errors": errs,
	})
}

func publishEvent(c echo.Context, producer *mykafka.Producer, key string, event map[string]interface{}) {
	if producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, mykafka.TopicSiteEvents, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}
