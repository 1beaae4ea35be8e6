package handler

import (
	"context"
	"net/http"

	"salva-iguaba-api/internal/auth"
	"salva-iguaba-api/internal/dto"
	"salva-iguaba-api/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.EchoUser(c)

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo inválido")
	}

	order, err := h.orderService.Create(ctx, user.ID, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.EchoUser(c)

	orders, err := h.orderService.ListMine(ctx, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Confirm(c echo.Context) error {
	return h.transition(c, h.orderService.Confirm)
}

func (h *OrderHandler) Complete(c echo.Context) error {
	return h.transition(c, h.orderService.Complete)
}

func (h *OrderHandler) Cancel(c echo.Context) error {
	return h.transition(c, h.orderService.Cancel)
}

func (h *OrderHandler) transition(c echo.Context, fn func(ctx context.Context, orderID uint, userID string) error) error {
	user := auth.EchoUser(c)

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	if err := fn(c.Request().Context(), id, user.ID); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Merchant-facing listings.

func (h *OrderHandler) ListMerchantOrders(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.EchoUser(c)

	orders, err := h.orderService.ListMerchantOrders(ctx, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) MerchantStats(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.EchoUser(c)

	stats, err := h.orderService.MerchantStats(ctx, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}
