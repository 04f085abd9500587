package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jammission/backend/internal/models"
	"github.com/jammission/backend/internal/mykafka"
	"github.com/jammission/backend/internal/notify"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type OrderHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	Notifier *notify.Dispatcher
}

type orderRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	// Quantity is a pointer so an omitted field (defaults to 1) stays
	// distinguishable from an explicit 0 (rejected).
	Quantity *uint  `json:"quantity"`
	Notes    string `json:"notes"`
}

func (r *orderRequest) validate() fieldErrors {
	errs := fieldErrors{}
	errs.requireText("name", r.Name)
	errs.requireEmail("email", r.Email)
	if r.Quantity != nil && *r.Quantity < 1 {
		errs["quantity"] = "Ensure this value is greater than or equal to 1."
	}
	return errs
}

// Create takes a single-product order from the product detail page.
func (h *OrderHandler) Create(c echo.Context) error {
	var product models.Product
	err := h.DB.Where("slug = ? AND in_stock = ?", c.Param("slug"), true).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	quantity := uint(1)
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	order := models.Order{
		ProductID: product.ID,
		Name:      req.Name,
		Email:     req.Email,
		Quantity:  quantity,
		Notes:     req.Notes,
		Status:    models.OrderPending,
	}
	if err := h.DB.Create(&order).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.Notifier.NewOrder(&order, &product)
	publishEvent(c, h.Producer, fmt.Sprint(order.ID), map[string]interface{}{
		"type":      "order_created",
		"orderID":   order.ID,
		"productID": product.ID,
		"quantity":  order.Quantity,
	})

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) List(c echo.Context) error {
	var orders []models.Order
	if err := h.DB.Order("created_at DESC").Find(&orders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) SetStatus(c echo.Context) error {
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
	case models.OrderPending, models.OrderConfirmed, models.OrderPaid,
		models.OrderShipped, models.OrderCancelled:
	default:
		return errorResponse(c, http.StatusBadRequest, "unknown status")
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	order.Status = req.Status
	if err := h.DB.Save(&order).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publishEvent(c, h.Producer, fmt.Sprint(order.ID), map[string]interface{}{
		"type":    "order_status_changed",
		"orderID": order.ID,
		"status":  order.Status,
	})

	return c.JSON(http.StatusOK, order)
}
