package router

import (
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"concert-tickets/internal/config"
	"concert-tickets/internal/handler"
	"concert-tickets/internal/repository"
	"concert-tickets/internal/service"
)

func testDeps() Deps {
	cfg := config.Config{JWTSecret: "test-secret"}
	users := repository.NewUserRepo(nil)
	tokens := repository.NewTokenRepo(nil)
	concerts := repository.NewConcertRepo(nil)
	offers := repository.NewTicketOfferRepo(nil)
	orders := repository.NewOrderRepo(nil)

	orderSvc := service.NewOrderService(nil, orders, offers, users, nil)
	return Deps{
		Cfg:      cfg,
		Auth:     handler.NewAuthHandler(cfg, users, tokens),
		Public:   handler.NewPublicHandler(service.NewConcertService(concerts)),
		Purchase: handler.NewPurchaseHandler(orderSvc, service.NewTicketOfferService(offers), users),
		Admin:    handler.NewAdminHandler(concerts, offers, orders, orderSvc),
	}
}

func registeredRoutes(t *testing.T) map[string]bool {
	t.Helper()
	e := echo.New()
	Register(e, testDeps())
	routes := make(map[string]bool, len(e.Routes()))
	for _, r := range e.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	return routes
}

func TestRegisterMountsBackOfficeLists(t *testing.T) {
	routes := registeredRoutes(t)
	assert.True(t, routes["GET /v1/admin/concerts"])
	assert.True(t, routes["GET /v1/admin/ticket-offers"])
	assert.True(t, routes["GET /v1/admin/orders"])
	assert.True(t, routes["GET /v1/admin/orders/unpaid"])
}

func TestRegisterMountsBothLogoutRoutes(t *testing.T) {
	routes := registeredRoutes(t)
	// /v1/auth/logout takes a refresh token; /v1/logout sits behind
	// JWTAuth so the revoke-all-sessions branch sees an identity.
	assert.True(t, routes["POST /v1/auth/logout"])
	assert.True(t, routes["POST /v1/logout"])
}
