package handler

import (
	"net/http"

	"salva-iguaba-api/internal/auth"
	"salva-iguaba-api/internal/dto"
	"salva-iguaba-api/internal/service"

	"github.com/labstack/echo/v4"
)

type BagHandler struct {
	bagService service.BagService
}

func NewBagHandler(bagService service.BagService) *BagHandler {
	return &BagHandler{bagService: bagService}
}

// ListAvailable is the public catalog.
func (h *BagHandler) ListAvailable(c echo.Context) error {
	ctx := c.Request().Context()

	bags, err := h.bagService.ListAvailable(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bags)
}

func (h *BagHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.EchoUser(c)

	var req dto.CreateBagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo inválido")
	}

	bag, err := h.bagService.Create(ctx, user.ID, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"id":      bag.ID,
		"success": true,
	})
}

func (h *BagHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.EchoUser(c)

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateBagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo inválido")
	}

	if err := h.bagService.Update(ctx, id, user.ID, &req); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *BagHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.EchoUser(c)

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	if err := h.bagService.Deactivate(ctx, id, user.ID); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *BagHandler) ListPhotos(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	photos, err := h.bagService.ListPhotos(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, photos)
}

func (h *BagHandler) AddPhoto(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.EchoUser(c)

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	var req dto.AddBagPhotoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo inválido")
	}

	photo, err := h.bagService.AddPhoto(ctx, id, user.ID, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"id":      photo.ID,
		"success": true,
	})
}

func (h *BagHandler) DeletePhoto(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.EchoUser(c)

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	photoID, err := paramUint(c, "photoId")
	if err != nil {
		return err
	}

	if err := h.bagService.DeletePhoto(ctx, id, photoID, user.ID); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
