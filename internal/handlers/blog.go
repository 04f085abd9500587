package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jammission/backend/internal/models"
	"github.com/jammission/backend/internal/mykafka"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type BlogHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

func (h *BlogHandler) List(c echo.Context) error {
	var posts []models.BlogPost
	if err := h.DB.Order("created_at DESC").Find(&posts).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *BlogHandler) Get(c echo.Context) error {
	id := parseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		return errorResponse(c, http.StatusBadRequest, "invalid id")
	}

	var post models.BlogPost
	if err := h.DB.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, post)
}

type blogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r *blogRequest) validate() fieldErrors {
	errs := fieldErrors{}
	errs.requireText("title", r.Title)
	errs.requireText("content", r.Content)
	return errs
}

func (h *BlogHandler) Create(c echo.Context) error {
	var req blogRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	post := models.BlogPost{Title: req.Title, Content: req.Content}
	if err := h.DB.Create(&post).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publishEvent(c, h.Producer, fmt.Sprint(post.ID), map[string]interface{}{
		"type":   "blog_post_created",
		"postID": post.ID,
	})

	return c.JSON(http.StatusCreated, post)
}

func (h *BlogHandler) Update(c echo.Context) error {
	id := parseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		return errorResponse(c, http.StatusBadRequest, "invalid id")
	}

	var post models.BlogPost
	if err := h.DB.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req blogRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	post.Title = req.Title
	post.Content = req.Content
	if err := h.DB.Save(&post).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publishEvent(c, h.Producer, fmt.Sprint(post.ID), map[string]interface{}{
		"type":   "blog_post_updated",
		"postID": post.ID,
	})

	return c.JSON(http.StatusOK, post)
}
