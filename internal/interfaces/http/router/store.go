package router

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/handler"
)

// Handlers are the handlers mounted by StoreGroups
type Handlers struct {
	Product    *handler.ProductHandler
	Collection *handler.CollectionHandler
	Review     *handler.ReviewHandler
	Image      *handler.ImageHandler
	Tag        *handler.TagHandler
	Customer   *handler.CustomerHandler
	Order      *handler.OrderHandler
	Cart       *handler.CartHandler
	Auth       *handler.AuthHandler
	Admin      *handler.AdminHandler
	Outbox     *handler.OutboxHandler
	System     *handler.SystemHandler
}

// Guards are the access checks attached per route.
// Authenticated requires a valid access token. Staff must run after Authenticated.
type Guards struct {
	Authenticated gin.HandlerFunc
	Staff         gin.HandlerFunc
}

func (g Guards) user(h gin.HandlerFunc) []gin.HandlerFunc {
	return []gin.HandlerFunc{g.Authenticated, h}
}

func (g Guards) staff(h gin.HandlerFunc) []gin.HandlerFunc {
	return []gin.HandlerFunc{g.Authenticated, g.Staff, h}
}

// StoreGroups builds the route groups of the storefront API.
// Catalog reads and carts are public; catalog writes, customers and admin are staff only.
func StoreGroups(h Handlers, g Guards) []*DomainGroup {
	store := NewDomainGroup("store", "/store")

	products := store.Group("products", "/products")
	products.GET("", h.Product.List)
	products.POST("", g.staff(h.Product.Create)...)
	products.GET("/:product_id", h.Product.Get)
	products.PUT("/:product_id", g.staff(h.Product.Update)...)
	products.PATCH("/:product_id", g.staff(h.Product.UpdateUnitPrice)...)
	products.DELETE("/:product_id", g.staff(h.Product.Delete)...)

	products.GET("/:product_id/reviews", h.Review.List)
	products.POST("/:product_id/reviews", g.user(h.Review.Create)...)
	products.GET("/:product_id/reviews/:id", h.Review.Get)
	products.DELETE("/:product_id/reviews/:id", g.staff(h.Review.Delete)...)

	products.GET("/:product_id/images", h.Image.List)
	products.POST("/:product_id/images", g.staff(h.Image.RequestUpload)...)
	products.DELETE("/:product_id/images/:id", g.staff(h.Image.Delete)...)

	products.GET("/:product_id/tags", h.Tag.ListForProduct)
	products.POST("/:product_id/tags", g.staff(h.Tag.Attach)...)
	products.DELETE("/:product_id/tags/:tag_id", g.staff(h.Tag.Detach)...)

	collections := store.Group("collections", "/collections")
	collections.GET("", h.Collection.List)
	collections.POST("", g.staff(h.Collection.Create)...)
	collections.GET("/:id", h.Collection.Get)
	collections.PUT("/:id", g.staff(h.Collection.Update)...)
	collections.DELETE("/:id", g.staff(h.Collection.Delete)...)

	tags := store.Group("tags", "/tags")
	tags.GET("", h.Tag.List)
	tags.POST("", g.staff(h.Tag.Create)...)

	customers := store.Group("customers", "/customers").Use(g.Authenticated, g.Staff)
	customers.GET("", h.Customer.List)
	customers.POST("", h.Customer.Create)
	customers.GET("/:id", h.Customer.Get)
	customers.PUT("/:id", h.Customer.Update)
	customers.PATCH("/:id", h.Customer.UpdateMembership)

	orders := store.Group("orders", "/orders")
	orders.GET("", g.user(h.Order.List)...)
	orders.POST("", g.user(h.Order.Place)...)
	orders.GET("/:id", g.user(h.Order.Get)...)
	orders.PATCH("/:id", g.staff(h.Order.UpdatePaymentStatus)...)

	carts := store.Group("carts", "/carts")
	carts.POST("", h.Cart.Create)
	carts.GET("/:id", h.Cart.Get)
	carts.DELETE("/:id", h.Cart.Delete)
	carts.POST("/:id/items", h.Cart.AddItem)
	carts.PATCH("/:id/items/:item_id", h.Cart.UpdateItem)
	carts.DELETE("/:id/items/:item_id", h.Cart.RemoveItem)

	authGroup := NewDomainGroup("auth", "/auth")
	authGroup.POST("/users", h.Auth.Register)
	authGroup.GET("/users/me", g.user(h.Auth.Me)...)
	authGroup.POST("/jwt/create", h.Auth.Login)
	authGroup.POST("/jwt/refresh", h.Auth.Refresh)
	authGroup.POST("/jwt/logout", g.user(h.Auth.Logout)...)

	adminGroup := NewDomainGroup("admin", "/admin").Use(g.Authenticated, g.Staff)
	adminGroup.GET("", h.Admin.Entities)
	adminGroup.GET("/:entity", h.Admin.Changelist)
	adminGroup.GET("/:entity/config", h.Admin.Config)
	adminGroup.POST("/products/actions/clear_inventory", h.Admin.ClearInventory)
	adminGroup.PATCH("/products/:id", h.Admin.EditProduct)
	adminGroup.PATCH("/customers/:id", h.Admin.EditCustomer)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)
	system.GET("/ping", h.System.Ping)

	outbox := system.Group("outbox", "/outbox").Use(g.Authenticated, g.Staff)
	outbox.GET("/stats", h.Outbox.GetStats)
	outbox.GET("/dead", h.Outbox.GetDeadLetterEntries)
	outbox.POST("/dead/retry-all", h.Outbox.RetryAllDeadEntries)
	outbox.GET("/:id", h.Outbox.GetEntry)
	outbox.POST("/:id/retry", h.Outbox.RetryDeadEntry)

	return []*DomainGroup{store, authGroup, adminGroup, system}
}
