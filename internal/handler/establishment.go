package handler

import (
	"net/http"

	"salva-iguaba-api/internal/auth"
	"salva-iguaba-api/internal/dto"
	"salva-iguaba-api/internal/service"

	"github.com/labstack/echo/v4"
)

type EstablishmentHandler struct {
	establishmentService service.EstablishmentService
	bagService           service.BagService
}

func NewEstablishmentHandler(establishmentService service.EstablishmentService, bagService service.BagService) *EstablishmentHandler {
	return &EstablishmentHandler{
		establishmentService: establishmentService,
		bagService:           bagService,
	}
}

func (h *EstablishmentHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	establishments, err := h.establishmentService.ListActive(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, establishments)
}

func (h *EstablishmentHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	establishment, err := h.establishmentService.Get(ctx, id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, establishment)
}

func (h *EstablishmentHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.EchoUser(c)

	var req dto.CreateEstablishmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo inválido")
	}

	establishment, err := h.establishmentService.Create(ctx, user.ID, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"id":      establishment.ID,
		"success": true,
	})
}

func (h *EstablishmentHandler) ListBags(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	bags, err := h.bagService.ListByEstablishment(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bags)
}

// ListMine backs the merchant dashboard.
func (h *EstablishmentHandler) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.EchoUser(c)

	establishments, err := h.establishmentService.ListMine(ctx, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, establishments)
}
