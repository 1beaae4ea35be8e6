package handler

import (
	"net/http"
	"strconv"

	"salva-iguaba-api/internal/auth"
	"salva-iguaba-api/internal/service"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Check reports whether the caller is an admin. It runs behind RequireAuth
// only, so the frontend can probe without triggering a 403.
func (h *AdminHandler) Check(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.EchoUser(c)

	isAdmin, err := h.adminService.IsAdmin(ctx, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"is_admin": isAdmin})
}

func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.adminService.PlatformStats(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListEstablishments(c echo.Context) error {
	establishments, err := h.adminService.ListEstablishments(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, establishments)
}

func (h *AdminHandler) ApproveEstablishment(c echo.Context) error {
	user := auth.EchoUser(c)

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	if err := h.adminService.ApproveEstablishment(c.Request().Context(), id, user.ID); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) RejectEstablishment(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo inválido")
	}

	if err := h.adminService.RejectEstablishment(c.Request().Context(), id, req.Reason); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	orders, err := h.adminService.ListOrders(c.Request().Context(), c.QueryParam("status"), limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *AdminHandler) ListPayments(c echo.Context) error {
	payments, err := h.adminService.ListPayments(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, payments)
}

func (h *AdminHandler) OverridePaymentStatus(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo inválido")
	}

	if err := h.adminService.OverridePaymentStatus(c.Request().Context(), id, req.Status); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) ListSettings(c echo.Context) error {
	settings, err := h.adminService.ListSettings(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, settings)
}

func (h *AdminHandler) UpdateSetting(c echo.Context) error {
	user := auth.EchoUser(c)
	key := c.Param("key")

	var req struct {
		Value string `json:"value"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo inválido")
	}

	if err := h.adminService.UpdateSetting(c.Request().Context(), key, req.Value, user.ID); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) AddAdmin(c echo.Context) error {
	user := auth.EchoUser(c)

	var req struct {
		UserID string `json:"user_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo inválido")
	}

	admin, err := h.adminService.AddAdmin(c.Request().Context(), req.UserID, user.ID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, admin)
}

func (h *AdminHandler) ListAdmins(c echo.Context) error {
	admins, err := h.adminService.ListAdmins(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, admins)
}
