package cart

import (
	"errors"
	"sort"

	"github.com/jammission/backend/internal/models"
	"github.com/jammission/backend/internal/session"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResolvedItem is one line of the cart as the visitor sees it at read
// time: the product as it exists right now, the stored quantity, and
// the line subtotal.
type ResolvedItem struct {
	Product  models.Product  `json:"product"`
	Quantity uint            `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Resolve maps the stored cart onto the current catalog. Slugs that no
// longer resolve to an in-stock product are dropped from the view but
// stay in the stored cart. Lines come back sorted by slug so the view
// is stable between requests.
func Resolve(db *gorm.DB, cart session.Cart) ([]ResolvedItem, decimal.Decimal, error) {
	slugs := make([]string, 0, len(cart))
	for slug := range cart {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	items := make([]ResolvedItem, 0, len(slugs))
	total := decimal.Zero
	for _, slug := range slugs {
		var product models.Product
		err := db.Where("slug = ? AND in_stock = ?", slug, true).First(&product).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, decimal.Zero, err
		}
		qty := cart[slug]
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(qty)))
		items = append(items, ResolvedItem{Product: product, Quantity: qty, Subtotal: subtotal})
		total = total.Add(subtotal)
	}
	return items, total, nil
}

type Buyer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

// Checkout turns the resolved items into one pending Order per line,
// all inside the given transaction handle so a failure persists none
// of them.
func Checkout(tx *gorm.DB, items []ResolvedItem, buyer Buyer) ([]models.Order, error) {
	orders := make([]models.Order, 0, len(items))
	for _, item := range items {
		order := models.Order{
			ProductID: item.Product.ID,
			Name:      buyer.Name,
			Email:     buyer.Email,
			Quantity:  item.Quantity,
			Notes:     buyer.Notes,
			Status:    models.OrderPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
