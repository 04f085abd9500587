package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/jammission/backend/internal/es"
	"github.com/jammission/backend/internal/models"
	"github.com/jammission/backend/internal/mykafka"
	"github.com/jammission/backend/internal/slugify"
	"github.com/jammission/backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
}

func (h *ProductHandler) index(c echo.Context, p *models.Product) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	var err error
	if p.InStock {
		err = es.IndexProduct(ctx, h.ES, p)
	} else {
		err = es.DeleteProduct(ctx, h.ES, p.ID)
	}
	if err != nil {
		c.Logger().Errorf("ES index error: %v", err)
	}
}

func (h *ProductHandler) List(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	q := h.DB.Model(&models.Product{}).Where("in_stock = ?", true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.Product
	if err := q.Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": items,
		"meta": map[string]interface{}{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}

func (h *ProductHandler) GetBySlug(c echo.Context) error {
	var product models.Product
	err := h.DB.Where("slug = ? AND in_stock = ?", c.Param("slug"), true).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, product)
}

type productRequest struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	InStock     *bool           `json:"in_stock"`
}

func (r *productRequest) validate() fieldErrors {
	errs := fieldErrors{}
	errs.requireText("name", r.Name)
	if r.Price.IsNegative() {
		errs["price"] = "Price must not be negative."
	}
	return errs
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	product := models.Product{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		InStock:     true,
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := slugify.Ensure(h.DB, &models.Product{}, &product.Slug, product.Name, 0); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Create(&product).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.index(c, &product)
	publishEvent(c, h.Producer, fmt.Sprint(product.ID), map[string]interface{}{
		"type":      "product_created",
		"productID": product.ID,
		"slug":      product.Slug,
	})

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c echo.Context) error {
	var product models.Product
	if err := h.DB.Where("slug = ?", c.Param("slug")).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Slug = req.Slug
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := slugify.Ensure(h.DB, &models.Product{}, &product.Slug, product.Name, product.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Save(&product).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.index(c, &product)
	publishEvent(c, h.Producer, fmt.Sprint(product.ID), map[string]interface{}{
		"type":      "product_updated",
		"productID": product.ID,
		"slug":      product.Slug,
	})

	return c.JSON(http.StatusOK, product)
}
