package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movitour/internal/model"
)

// CatalogHandler serves the public city and offer endpoints. No
// authentication is required.
type CatalogHandler struct {
	Catalog CatalogService
}

func NewCatalogHandler(catalog CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog}
}

// pathID parses the :id parameter. Anything that is not a positive integer
// yields 0, which the services treat as not found.
func pathID(c echo.Context) int64 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// ListCities handles GET /api/ciudades.
func (h *CatalogHandler) ListCities(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	cities, err := h.Catalog.ListCities(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ciudades": cities})
}

// GetCity handles GET /api/ciudades/:id.
func (h *CatalogHandler) GetCity(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	city, err := h.Catalog.GetCity(ctx, pathID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ciudad": city})
}

// ListOffers handles GET /api/ofertas.
func (h *CatalogHandler) ListOffers(c echo.Context) error {
	return h.offers(c, model.OfferFilter{})
}

// SearchOffers handles GET /api/ofertas/buscar?ciudad=&fecha=&hora=.
func (h *CatalogHandler) SearchOffers(c echo.Context) error {
	return h.offers(c, model.OfferFilter{
		City: c.QueryParam("ciudad"),
		Date: c.QueryParam("fecha"),
		Time: c.QueryParam("hora"),
	})
}

func (h *CatalogHandler) offers(c echo.Context, f model.OfferFilter) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	offers, err := h.Catalog.ListOffers(ctx, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ofertas": offers})
}

// GetOffer handles GET /api/ofertas/:id.
func (h *CatalogHandler) GetOffer(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	offer, err := h.Catalog.GetOffer(ctx, pathID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"oferta": offer})
}
