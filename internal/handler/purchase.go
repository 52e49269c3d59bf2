package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"concert-tickets/internal/middleware"
	"concert-tickets/internal/repository"
	"concert-tickets/internal/service"
)

// PurchaseHandler covers the buyer flow: the pre-purchase order form,
// order placement and the order success page.
type PurchaseHandler struct {
	Orders *service.OrderService
	Offers *service.TicketOfferService
	Users  *repository.UserRepo
}

func NewPurchaseHandler(orders *service.OrderService, offers *service.TicketOfferService, users *repository.UserRepo) *PurchaseHandler {
	if orders == nil || offers == nil || users == nil {
		panic("nil dependency passed to NewPurchaseHandler")
	}
	return &PurchaseHandler{Orders: orders, Offers: offers, Users: users}
}

type placeOrderReq struct {
	TicketOfferID uint64 `json:"ticket_offer_id"`
	NumTickets    int    `json:"num_tickets"`
}

// OrderForm returns the pricing preview for an offer: the buyer's unit
// price after any member discount, the total for one ticket and the
// remaining inventory.  Requires authentication because the discount
// depends on who is asking.
func (h *PurchaseHandler) OrderForm(c echo.Context) error {
	offerID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		return internalError(c, "load user failed", err)
	}

	form, err := h.Offers.OrderFormFor(ctx, offerID, u.HasMemberCard)
	if err != nil {
		if errors.Is(err, service.ErrOfferNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket offer not found"})
		}
		return internalError(c, "load order form failed", err)
	}
	return c.JSON(http.StatusOK, form)
}

// PlaceOrder creates an order for the authenticated user.  The total is
// computed server-side from the stored price and the buyer's discount
// eligibility; client-submitted totals are never accepted.
func (h *PurchaseHandler) PlaceOrder(c echo.Context) error {
	var req placeOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.TicketOfferID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket_offer_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	orderID, err := h.Orders.PlaceOrder(ctx, service.PlaceOrderInput{
		TicketOfferID: req.TicketOfferID,
		UserID:        middleware.UserID(c),
		Quantity:      req.NumTickets,
	})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidQuantity):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "num_tickets must be between 1 and 10"})
	case errors.Is(err, service.ErrOfferNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket offer not found"})
	case errors.Is(err, service.ErrInsufficientTickets):
		return c.JSON(http.StatusConflict, echo.Map{"error": "not enough tickets available"})
	case errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	default:
		return internalError(c, "place order failed", err)
	}

	detail, err := h.Orders.GetOrder(ctx, orderID)
	if err != nil {
		// Order committed; return at least its ID.
		return c.JSON(http.StatusCreated, echo.Map{"order_id": orderID})
	}
	return c.JSON(http.StatusCreated, detail)
}

// GetOrder serves the order success page projection.
func (h *PurchaseHandler) GetOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	detail, err := h.Orders.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return internalError(c, "load order failed", err)
	}
	return c.JSON(http.StatusOK, detail)
}
