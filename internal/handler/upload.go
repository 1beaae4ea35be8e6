package handler

import (
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"salva-iguaba-api/internal/dto"
	"salva-iguaba-api/internal/storage"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxUploadBytes = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type UploadHandler struct {
	store   *storage.Store
	baseURL string
}

func NewUploadHandler(store *storage.Store, baseURL string) *UploadHandler {
	return &UploadHandler{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload accepts one multipart image under the "file" field, stores it under
// a generated key, and returns the public URL the frontend can embed.
func (h *UploadHandler) Upload(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "arquivo não fornecido")
	}

	if fileHeader.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "arquivo excede 5MB")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "tipo de arquivo não permitido, use jpeg, png ou webp")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	// The client may pin a key (logo replacement); otherwise one is generated.
	key := path.Clean(c.FormValue("key"))
	if key == "" || key == "." || strings.HasPrefix(key, "..") {
		key = fmt.Sprintf("uploads/%s/%s%s",
			time.Now().Format("2006/01"), uuid.NewString(), ext)
	}

	if err := h.store.Put(ctx, key, contentType, src); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, &dto.UploadResponse{
		Success:     true,
		URL:         h.baseURL + "/api/files/" + key,
		Key:         key,
		Size:        fileHeader.Size,
		ContentType: contentType,
	})
}

// Serve streams a stored object back to the client.
func (h *UploadHandler) Serve(c echo.Context) error {
	ctx := c.Request().Context()

	key := path.Clean(c.Param("*"))
	if key == "" || key == "." || strings.HasPrefix(key, "..") {
		return echo.NewHTTPError(http.StatusBadRequest, "chave inválida")
	}

	obj, err := h.store.Get(ctx, key)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "arquivo não encontrado")
	}
	defer obj.Body.Close()

	if obj.ETag != "" {
		c.Response().Header().Set("ETag", obj.ETag)
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")

	return c.Stream(http.StatusOK, obj.ContentType, obj.Body)
}

func (h *UploadHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	key := path.Clean(c.Param("*"))
	if key == "" || key == "." || strings.HasPrefix(key, "..") {
		return echo.NewHTTPError(http.StatusBadRequest, "chave inválida")
	}

	if err := h.store.Delete(ctx, key); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
