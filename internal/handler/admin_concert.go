package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"concert-tickets/internal/model"
	"concert-tickets/internal/repository"
	"concert-tickets/internal/service"
)

// AdminHandler bundles the dependencies of the back office.  All of its
// routes run behind JWTAuth plus RequireAdmin.  Payment confirmation
// goes through the order service so its idempotency rule lives in one
// place; plain CRUD talks to the repositories directly.
type AdminHandler struct {
	Concerts *repository.ConcertRepo
	Offers   *repository.TicketOfferRepo
	Orders   *repository.OrderRepo
	OrderSvc *service.OrderService
}

func NewAdminHandler(concerts *repository.ConcertRepo, offers *repository.TicketOfferRepo, orders *repository.OrderRepo, orderSvc *service.OrderService) *AdminHandler {
	if concerts == nil || offers == nil || orders == nil || orderSvc == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Concerts: concerts, Offers: offers, Orders: orders, OrderSvc: orderSvc}
}

type concertReq struct {
	Artist   string    `json:"artist"`
	Location string    `json:"location"`
	Date     time.Time `json:"date"`
}

func (r *concertReq) validate() string {
	r.Artist = strings.TrimSpace(r.Artist)
	r.Location = strings.TrimSpace(r.Location)
	if r.Artist == "" || r.Location == "" {
		return "artist/location required"
	}
	if r.Date.IsZero() {
		return "date required"
	}
	return ""
}

// ListConcerts returns every concert with its ticket offers, ordered by
// date, for the back-office index.
func (h *AdminHandler) ListConcerts(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	concerts, offersByConcert, err := h.Concerts.ListWithOffers(ctx)
	if err != nil {
		return internalError(c, "list concerts failed", err)
	}
	out := make([]echo.Map, 0, len(concerts))
	for _, concert := range concerts {
		offers := offersByConcert[concert.ID]
		if offers == nil {
			offers = []model.TicketOffer{}
		}
		out = append(out, echo.Map{"concert": concert, "ticket_offers": offers})
	}
	return c.JSON(http.StatusOK, echo.Map{"concerts": out})
}

// CreateConcert adds a concert.
func (h *AdminHandler) CreateConcert(c echo.Context) error {
	var req concertReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	concert := model.Concert{Artist: req.Artist, Location: req.Location, Date: req.Date}
	if err := h.Concerts.Create(ctx, &concert); err != nil {
		return internalError(c, "create concert failed", err)
	}
	return c.JSON(http.StatusCreated, concert)
}

// GetConcert returns a concert with its ticket offers.
func (h *AdminHandler) GetConcert(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	concert, offers, err := h.Concerts.GetWithOffers(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "concert not found"})
		}
		return internalError(c, "load concert failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"concert": concert, "ticket_offers": offers})
}

// UpdateConcert rewrites a concert's fields.
func (h *AdminHandler) UpdateConcert(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req concertReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err = h.Concerts.Update(ctx, model.Concert{ID: id, Artist: req.Artist, Location: req.Location, Date: req.Date})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "concert not found"})
		}
		return internalError(c, "update concert failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteConcert removes a concert.  Its offers cascade away; offers
// already referenced by orders block the delete with a 409.
func (h *AdminHandler) DeleteConcert(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Concerts.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "concert not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "concert has ordered tickets"})
		default:
			return internalError(c, "delete concert failed", err)
		}
	}
	return c.NoContent(http.StatusNoContent)
}
