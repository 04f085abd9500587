package httpserver

import (
	"github.com/jammission/backend/internal/handlers"
	"github.com/jammission/backend/internal/handlers/cart"
	"github.com/jammission/backend/internal/models"
	"github.com/jammission/backend/internal/service/token"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type Deps struct {
	DB                 *gorm.DB
	AuthHandler        *handlers.AuthHandler
	ProductHandler     *handlers.ProductHandler
	ServiceHandler     *handlers.ServiceHandler
	EventHandler       *handlers.EventHandler
	BookingHandler     *handlers.BookingHandler
	OrderHandler       *handlers.OrderHandler
	ContactHandler     *handlers.ContactHandler
	ApplicationHandler *handlers.ApplicationHandler
	NewsletterHandler  *handlers.NewsletterHandler
	BlogHandler        *handlers.BlogHandler
	DashboardHandler   *handlers.DashboardHandler
	SearchHandler      *handlers.SearchHandler
	CartHandler        *cart.CartHandler
	TokenService       *token.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)

	v1.GET("/products", d.ProductHandler.List)
	v1.GET("/products/:slug", d.ProductHandler.GetBySlug)
	v1.POST("/products/:slug/orders", d.OrderHandler.Create)
	v1.GET("/services", d.ServiceHandler.List)
	v1.GET("/services/:slug", d.ServiceHandler.GetBySlug)
	v1.GET("/events", d.EventHandler.List)
	v1.GET("/events/:slug", d.EventHandler.GetBySlug)
	v1.POST("/events/:slug/bookings", d.BookingHandler.CreateForEvent)
	v1.GET("/blog", d.BlogHandler.List)
	v1.GET("/blog/:id", d.BlogHandler.Get)
	v1.GET("/search", d.SearchHandler.Search)

	v1.POST("/bookings", d.BookingHandler.Create)
	v1.POST("/contact", d.ContactHandler.Create)
	v1.POST("/applications", d.ApplicationHandler.Create)
	v1.POST("/newsletter", d.NewsletterHandler.Subscribe)

	v1.GET("/cart", d.CartHandler.GetCart)
	v1.POST("/cart/:slug", d.CartHandler.AddToCart)
	v1.POST("/cart/checkout", d.CartHandler.Checkout)

	staff := v1.Group("/admin", d.TokenService.AutoRefresh)

	owner := staff.Group("/owner", d.TokenService.RequireRole(models.RoleOwner))
	owner.GET("/dashboard", d.DashboardHandler.Owner)
	owner.POST("/products", d.ProductHandler.Create)
	owner.PATCH("/products/:slug", d.ProductHandler.Update)
	owner.POST("/services", d.ServiceHandler.Create)
	owner.PATCH("/services/:slug", d.ServiceHandler.Update)
	owner.POST("/events", d.EventHandler.Create)
	owner.PATCH("/events/:slug", d.EventHandler.Update)
	owner.POST("/blog", d.BlogHandler.Create)
	owner.PATCH("/blog/:id", d.BlogHandler.Update)
	owner.GET("/bookings", d.BookingHandler.List)
	owner.PATCH("/bookings/:id/status", d.BookingHandler.SetStatus)
	owner.GET("/orders", d.OrderHandler.List)
	owner.PATCH("/orders/:id/status", d.OrderHandler.SetStatus)
	owner.GET("/messages", d.ContactHandler.List)
	owner.PATCH("/messages/:id/handled", d.ContactHandler.SetHandled)
	owner.GET("/applications", d.ApplicationHandler.List)
	owner.PATCH("/applications/:id/status", d.ApplicationHandler.SetStatus)
	owner.GET("/subscribers", d.NewsletterHandler.List)

	tech := staff.Group("/tech", d.TokenService.RequireRole(models.RoleTechAdmin))
	tech.GET("/dashboard", d.DashboardHandler.Tech)
	tech.PATCH("/users/:id/role", d.AuthHandler.SetRole)
}
