package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"concert-tickets/internal/model"
	"concert-tickets/internal/repository"
	"concert-tickets/internal/service"
)

type adminOrderReq struct {
	UserID          uint64          `json:"user_id"`
	TicketOfferID   uint64          `json:"ticket_offer_id"`
	NumTickets      int             `json:"num_tickets"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Paid            bool            `json:"paid"`
	DiscountApplied bool            `json:"discount_applied"`
}

func (r *adminOrderReq) validate() string {
	if r.UserID == 0 || r.TicketOfferID == 0 {
		return "user_id/ticket_offer_id required"
	}
	if r.NumTickets < 1 {
		return "num_tickets must be positive"
	}
	if r.TotalPrice.IsNegative() {
		return "total_price must not be negative"
	}
	return ""
}

// ListOrders returns all orders joined with offer, concert and buyer.
// ?unpaid=true restricts the list to orders awaiting confirmation.
func (h *AdminHandler) ListOrders(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	onlyUnpaid := c.QueryParam("unpaid") == "true"
	orders, err := h.Orders.ListDetails(ctx, onlyUnpaid)
	if err != nil {
		return internalError(c, "list orders failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// ListUnpaidOrders returns the orders awaiting payment confirmation.
func (h *AdminHandler) ListUnpaidOrders(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	orders, err := h.Orders.ListDetails(ctx, true)
	if err != nil {
		return internalError(c, "list orders failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// GetOrder returns one order projection.
func (h *AdminHandler) GetOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	detail, err := h.Orders.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return internalError(c, "load order failed", err)
	}
	return c.JSON(http.StatusOK, detail)
}

// CreateOrder inserts an order directly, bypassing inventory.  The
// back-office form supplies the total; nothing is decremented.
func (h *AdminHandler) CreateOrder(c echo.Context) error {
	var req adminOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	order := model.Order{
		UserID:          req.UserID,
		TicketOfferID:   req.TicketOfferID,
		NumTickets:      req.NumTickets,
		TotalPrice:      req.TotalPrice,
		Paid:            req.Paid,
		DiscountApplied: req.DiscountApplied,
	}
	if err := h.Orders.Create(ctx, &order); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "user or ticket offer does not exist"})
		}
		return internalError(c, "create order failed", err)
	}
	return c.JSON(http.StatusCreated, order)
}

// UpdateOrder rewrites an order's fields.
func (h *AdminHandler) UpdateOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req adminOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err = h.Orders.Update(ctx, model.Order{
		ID:              id,
		UserID:          req.UserID,
		TicketOfferID:   req.TicketOfferID,
		NumTickets:      req.NumTickets,
		TotalPrice:      req.TotalPrice,
		Paid:            req.Paid,
		DiscountApplied: req.DiscountApplied,
	})
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "user or ticket offer does not exist"})
		default:
			return internalError(c, "update order failed", err)
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// ConfirmPayment marks an order as paid.  Confirming an already paid
// order succeeds without change.
func (h *AdminHandler) ConfirmPayment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.OrderSvc.ConfirmPayment(ctx, id); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return internalError(c, "confirm payment failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}

type paidReq struct {
	Paid bool `json:"paid"`
}

// SetPaid sets the paid flag to an explicit value.
func (h *AdminHandler) SetPaid(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req paidReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.OrderSvc.UpdatePaid(ctx, id, req.Paid); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return internalError(c, "update paid failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteOrder removes an order.
func (h *AdminHandler) DeleteOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Orders.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return internalError(c, "delete order failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}
