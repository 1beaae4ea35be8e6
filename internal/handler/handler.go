package handler

import (
	"errors"
	"net/http"
	"strconv"

	"salva-iguaba-api/internal/service"

	"github.com/labstack/echo/v4"
)

// toHTTPError maps service sentinel errors onto the HTTP taxonomy; anything
// unmapped surfaces as a 500.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "sem permissão")
	case errors.Is(err, service.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInsufficientQuantity):
		return echo.NewHTTPError(http.StatusBadRequest, "bag não disponível ou quantidade insuficiente")
	case errors.Is(err, service.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, "transição de status inválida")
	default:
		return err
	}
}

func paramUint(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id inválido")
	}
	return uint(v), nil
}
