// Package router wires the HTTP surface: public browsing, auth, the
// purchase flow and the admin back office.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"concert-tickets/internal/config"
	"concert-tickets/internal/handler"
	"concert-tickets/internal/middleware"
)

// Deps carries everything the route registration needs.
type Deps struct {
	Cfg      config.Config
	Redis    *redis.Client
	Auth     *handler.AuthHandler
	Public   *handler.PublicHandler
	Purchase *handler.PurchaseHandler
	Admin    *handler.AdminHandler
}

// Register mounts all routes on the Echo instance.
//
// Route map:
//
//	GET  /healthz                      liveness
//	GET  /metrics                      Prometheus metrics
//	POST /v1/auth/register|login|refresh|logout
//	GET  /v1/concerts[/:id]            public, Redis-cached
//	GET  /v1/me                        authenticated profile
//	POST /v1/logout                    revoke all sessions (bearer)
//	GET  /v1/ticket-offers/:id/order-form
//	POST /v1/orders                    place order (rate limited)
//	GET  /v1/orders/:id                order success page
//	/v1/admin/...                      back office, admin only
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Session endpoints; logout here works with just a refresh token so
	// an expired access token does not trap the session.
	authGrp := e.Group("/v1/auth")
	authGrp.POST("/register", d.Auth.Register)
	authGrp.POST("/login", d.Auth.Login)
	authGrp.POST("/refresh", d.Auth.Refresh)
	authGrp.POST("/logout", d.Auth.Logout)

	// Public concert browsing sits behind the response cache so the
	// landing page survives sale-opening traffic.
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), d.Redis)
	e.GET("/v1/concerts", d.Public.ListConcerts, cache)
	e.GET("/v1/concerts/:id", d.Public.GetConcert, cache)

	// The order success page is reachable without a session so the
	// post-purchase redirect works from any device.
	e.GET("/v1/orders/:id", d.Purchase.GetOrder)

	// Authenticated buyer flow.
	auth := e.Group("/v1", middleware.JWTAuth(d.Cfg.JWTSecret))
	auth.GET("/me", d.Auth.Me)
	// Bearer logout without a body token revokes all of the user's
	// sessions; that branch needs the JWT identity.
	auth.POST("/logout", d.Auth.Logout)
	auth.GET("/ticket-offers/:id/order-form", d.Purchase.OrderForm)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Redis)
	auth.POST("/orders", d.Purchase.PlaceOrder, limiter)

	// Back office.
	admin := e.Group("/v1/admin", middleware.JWTAuth(d.Cfg.JWTSecret), middleware.RequireAdmin())
	admin.GET("/concerts", d.Admin.ListConcerts)
	admin.POST("/concerts", d.Admin.CreateConcert)
	admin.GET("/concerts/:id", d.Admin.GetConcert)
	admin.PUT("/concerts/:id", d.Admin.UpdateConcert)
	admin.DELETE("/concerts/:id", d.Admin.DeleteConcert)

	admin.GET("/ticket-offers", d.Admin.ListTicketOffers)
	admin.POST("/ticket-offers", d.Admin.CreateTicketOffer)
	admin.GET("/ticket-offers/:id", d.Admin.GetTicketOffer)
	admin.PUT("/ticket-offers/:id", d.Admin.UpdateTicketOffer)
	admin.PATCH("/ticket-offers/:id/inventory", d.Admin.UpdateInventory)
	admin.DELETE("/ticket-offers/:id", d.Admin.DeleteTicketOffer)

	admin.GET("/orders", d.Admin.ListOrders)
	admin.GET("/orders/unpaid", d.Admin.ListUnpaidOrders)
	admin.POST("/orders", d.Admin.CreateOrder)
	admin.GET("/orders/:id", d.Admin.GetOrder)
	admin.PUT("/orders/:id", d.Admin.UpdateOrder)
	admin.POST("/orders/:id/confirm-payment", d.Admin.ConfirmPayment)
	admin.PATCH("/orders/:id/paid", d.Admin.SetPaid)
	admin.DELETE("/orders/:id", d.Admin.DeleteOrder)
}
