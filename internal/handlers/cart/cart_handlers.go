package cart

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jammission/backend/internal/models"
	"github.com/jammission/backend/internal/mykafka"
	"github.com/jammission/backend/internal/notify"
	"github.com/jammission/backend/internal/session"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CartHandler struct {
	DB       *gorm.DB
	Store    session.CartStore
	Producer *mykafka.Producer
	Notifier *notify.Dispatcher
}

const sessionCookie = "cartSession"

// sessionID returns the visitor's cart session, minting one on first
// contact. The cookie is opaque; all cart state lives in the store.
func (h *CartHandler) sessionID(c echo.Context) string {
	if ck, err := c.Cookie(sessionCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	sid := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}

func (h *CartHandler) publish(c echo.Context, key string, event map[string]interface{}) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, mykafka.TopicSiteEvents, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	sid := h.sessionID(c)
	ctx := c.Request().Context()

	cart, err := h.Store.Get(ctx, sid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	items, total, err := Resolve(h.DB, cart)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
		"total": total,
	})
}

// AddToCart puts quantity of the slugged product into the session cart.
// A missing or non-positive quantity counts as 1; adding a slug already
// present increments its quantity.
func (h *CartHandler) AddToCart(c echo.Context) error {
	slug := c.Param("slug")

	var product models.Product
	if err := h.DB.Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "product not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	_ = c.Bind(&req)
	qty := uint(1)
	if req.Quantity > 0 {
		qty = uint(req.Quantity)
	}

	sid := h.sessionID(c)
	ctx := c.Request().Context()
	if err := h.Store.Add(ctx, sid, slug, qty); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	cart, err := h.Store.Get(ctx, sid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, sid, map[string]interface{}{
		"type":     "cart_item_added",
		"slug":     slug,
		"quantity": cart[slug],
	})

	return c.JSON(http.StatusOK, map[string]interface{}{"cart": cart})
}

func validateBuyer(b Buyer) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(b.Name) == "" {
		errs["name"] = "This field is required."
	}
	if strings.TrimSpace(b.Email) == "" {
		errs["email"] = "This field is required."
	} else if _, err := mail.ParseAddress(b.Email); err != nil {
		errs["email"] = "Enter a valid email address."
	}
	return errs
}

// Checkout converts every resolvable cart line into an Order in one
// transaction, then clears the cart. With nothing resolvable it is a
// no-op: zero orders, cart left as it was.
func (h *CartHandler) Checkout(c echo.Context) error {
	sid := h.sessionID(c)
	ctx := c.Request().Context()

	var buyer Buyer
	if err := c.Bind(&buyer); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	cart, err := h.Store.Get(ctx, sid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	items, total, err := Resolve(h.DB, cart)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if len(items) == 0 {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"orders": []models.Order{},
			"total":  total,
		})
	}

	if errs := validateBuyer(buyer); len(errs) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"status": "error",
			"errors": errs,
		})
	}

	var orders []models.Order
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		orders, err = Checkout(tx, items, buyer)
		return err
	})
	if txErr != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, txErr.Error())
	}

	// Clear only after the orders are committed. A leftover cart can
	// be cleared again on the next visit; a cart emptied before a
	// failed commit cannot be restored.
	if err := h.Store.Clear(ctx, sid); err != nil {
		c.Logger().Errorf("cart clear error: %v", err)
	}

	lines := make([]notify.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, notify.OrderLine{
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}
	h.Notifier.CombinedOrder(buyer.Name, buyer.Email, buyer.Notes, lines, total)

	h.publish(c, sid, map[string]interface{}{
		"type":   "combined_order_created",
		"orders": len(orders),
		"total":  total.StringFixed(2),
	})

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"orders": orders,
		"total":  total,
	})
}
