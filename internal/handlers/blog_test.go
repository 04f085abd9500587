package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jammission/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestBlogCreateAndGet(t *testing.T) {
	db := openDB(t)
	h := &BlogHandler{DB: db}

	rec, c := doJSONRequest(t, echo.New(), http.MethodPost, "/api/v1/admin/owner/blog", map[string]string{
		"title":   "Spring on the farm",
		"content": "The chicks arrived this week.",
	})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var post models.BlogPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))

	rec, c = doJSONRequest(t, echo.New(), http.MethodGet, "/api/v1/blog/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.BlogPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, post.Title, got.Title)
}

func TestBlogCreateRequiresContent(t *testing.T) {
	db := openDB(t)
	h := &BlogHandler{DB: db}

	rec, c := doJSONRequest(t, echo.New(), http.MethodPost, "/api/v1/admin/owner/blog", map[string]string{
		"title": "Spring on the farm",
	})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestBlogGetUnknownPost(t *testing.T) {
	db := openDB(t)
	h := &BlogHandler{DB: db}

	rec, c := doJSONRequest(t, echo.New(), http.MethodGet, "/api/v1/blog/42", nil)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
