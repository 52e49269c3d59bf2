package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"concert-tickets/internal/model"
	"concert-tickets/internal/repository"
)

type ticketOfferReq struct {
	ConcertID  uint64          `json:"concert_id"`
	TicketType string          `json:"ticket_type"`
	NumTickets int             `json:"num_tickets"`
	Price      decimal.Decimal `json:"price"`
}

func (r *ticketOfferReq) validate() string {
	r.TicketType = strings.TrimSpace(r.TicketType)
	if r.ConcertID == 0 {
		return "concert_id required"
	}
	if r.TicketType == "" {
		return "ticket_type required"
	}
	if r.NumTickets < 0 {
		return "num_tickets must not be negative"
	}
	if r.Price.IsNegative() {
		return "price must not be negative"
	}
	return ""
}

// ListTicketOffers returns all offers with their parent concerts.
func (h *AdminHandler) ListTicketOffers(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	offers, err := h.Offers.ListWithConcerts(ctx)
	if err != nil {
		return internalError(c, "list ticket offers failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ticket_offers": offers})
}

// CreateTicketOffer adds an offer to a concert.
func (h *AdminHandler) CreateTicketOffer(c echo.Context) error {
	var req ticketOfferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	offer := model.TicketOffer{
		ConcertID:  req.ConcertID,
		TicketType: req.TicketType,
		NumTickets: req.NumTickets,
		Price:      req.Price,
	}
	if err := h.Offers.Create(ctx, &offer); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "concert does not exist"})
		}
		return internalError(c, "create ticket offer failed", err)
	}
	return c.JSON(http.StatusCreated, offer)
}

// GetTicketOffer returns one offer with its parent concert.
func (h *AdminHandler) GetTicketOffer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	offer, err := h.Offers.GetWithConcert(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket offer not found"})
		}
		return internalError(c, "load ticket offer failed", err)
	}
	return c.JSON(http.StatusOK, offer)
}

// UpdateTicketOffer rewrites an offer's fields.
func (h *AdminHandler) UpdateTicketOffer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req ticketOfferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err = h.Offers.Update(ctx, model.TicketOffer{
		ID:         id,
		ConcertID:  req.ConcertID,
		TicketType: req.TicketType,
		NumTickets: req.NumTickets,
		Price:      req.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket offer not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "concert does not exist"})
		default:
			return internalError(c, "update ticket offer failed", err)
		}
	}
	return c.NoContent(http.StatusNoContent)
}

type inventoryReq struct {
	NumTickets int `json:"num_tickets"`
}

// UpdateInventory sets an offer's remaining ticket count.
func (h *AdminHandler) UpdateInventory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req inventoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.NumTickets < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "num_tickets must not be negative"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Offers.UpdateNumTickets(ctx, id, req.NumTickets); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket offer not found"})
		}
		return internalError(c, "update inventory failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteTicketOffer removes an offer unless orders reference it.
func (h *AdminHandler) DeleteTicketOffer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Offers.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket offer not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "ticket offer has orders"})
		default:
			return internalError(c, "delete ticket offer failed", err)
		}
	}
	return c.NoContent(http.StatusNoContent)
}
