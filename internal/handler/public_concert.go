package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"concert-tickets/internal/service"
)

// PublicHandler serves the unauthenticated concert listing endpoints.
type PublicHandler struct {
	Concerts *service.ConcertService
}

func NewPublicHandler(concerts *service.ConcertService) *PublicHandler {
	if concerts == nil {
		panic("nil service passed to NewPublicHandler")
	}
	return &PublicHandler{Concerts: concerts}
}

// ListConcerts returns all concerts with their ticket offers and
// remaining-ticket totals, ordered by date.
func (h *PublicHandler) ListConcerts(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	concerts, err := h.Concerts.ListConcerts(ctx)
	if err != nil {
		return internalError(c, "list concerts failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"concerts": concerts})
}

// GetConcert returns one concert with its offers and availability.
func (h *PublicHandler) GetConcert(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	concert, err := h.Concerts.GetConcert(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrConcertNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "concert not found"})
		}
		return internalError(c, "load concert failed", err)
	}
	return c.JSON(http.StatusOK, concert)
}
