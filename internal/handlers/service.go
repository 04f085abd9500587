package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jammission/backend/internal/models"
	"github.com/jammission/backend/internal/mykafka"
	"github.com/jammission/backend/internal/slugify"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ServiceHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

func (h *ServiceHandler) List(c echo.Context) error {
	var services []models.Service
	if err := h.DB.Where("is_active = ?", true).Order("name ASC").Find(&services).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) GetBySlug(c echo.Context) error {
	var service models.Service
	err := h.DB.Where("slug = ? AND is_active = ?", c.Param("slug"), true).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "service not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, service)
}

type serviceRequest struct {
	Name        string              `json:"name"`
	Slug        string              `json:"slug"`
	Description string              `json:"description"`
	Price       decimal.NullDecimal `json:"price"`
	IsActive    *bool               `json:"is_active"`
}

func (r *serviceRequest) validate() fieldErrors {
	errs := fieldErrors{}
	errs.requireText("name", r.Name)
	if r.Price.Valid && r.Price.Decimal.IsNegative() {
		errs["price"] = "Price must not be negative."
	}
	return errs
}

func (h *ServiceHandler) Create(c echo.Context) error {
	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	service := models.Service{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    true,
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := slugify.Ensure(h.DB, &models.Service{}, &service.Slug, service.Name, 0); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Create(&service).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publishEvent(c, h.Producer, fmt.Sprint(service.ID), map[string]interface{}{
		"type":      "service_created",
		"serviceID": service.ID,
		"slug":      service.Slug,
	})

	return c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c echo.Context) error {
	var service models.Service
	if err := h.DB.Where("slug = ?", c.Param("slug")).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "service not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	service.Name = req.Name
	service.Description = req.Description
	service.Price = req.Price
	service.Slug = req.Slug
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := slugify.Ensure(h.DB, &models.Service{}, &service.Slug, service.Name, service.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Save(&service).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publishEvent(c, h.Producer, fmt.Sprint(service.ID), map[string]interface{}{
		"type":      "service_updated",
		"serviceID": service.ID,
		"slug":      service.Slug,
	})

	return c.JSON(http.StatusOK, service)
}
