package handler

import (
	"net/http"
	"strings"

	"salva-iguaba-api/internal/dto"
	"salva-iguaba-api/internal/geo"

	"github.com/labstack/echo/v4"
)

type GeocodeHandler struct {
	geocoder *geo.Geocoder
}

func NewGeocodeHandler(geocoder *geo.Geocoder) *GeocodeHandler {
	return &GeocodeHandler{geocoder: geocoder}
}

func (h *GeocodeHandler) Geocode(c echo.Context) error {
	var req dto.GeocodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo inválido")
	}
	if strings.TrimSpace(req.Address) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "endereço não fornecido")
	}

	return c.JSON(http.StatusOK, h.geocoder.Geocode(c.Request().Context(), req.Address))
}
