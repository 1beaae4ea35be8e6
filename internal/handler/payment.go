package handler

import (
	"io"
	"net/http"

	"salva-iguaba-api/internal/auth"
	"salva-iguaba-api/internal/config"
	"salva-iguaba-api/internal/dto"
	"salva-iguaba-api/internal/logger"
	"salva-iguaba-api/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	mpConfig       config.MercadoPago
	stripeConfig   config.Stripe
}

func NewPaymentHandler(paymentService service.PaymentService, mpConfig config.MercadoPago, stripeConfig config.Stripe) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		mpConfig:       mpConfig,
		stripeConfig:   stripeConfig,
	}
}

// Keys exposes the publishable keys the frontend needs to render checkout.
// Secrets never leave the server.
func (h *PaymentHandler) Keys(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"mercadopago_public_key": h.mpConfig.PublicKey,
		"stripe_publishable_key": h.stripeConfig.PublishableKey,
	})
}

func (h *PaymentHandler) CreatePix(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.EchoUser(c)

	var req dto.CreatePixPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo inválido")
	}

	resp, err := h.paymentService.CreatePix(ctx, user, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *PaymentHandler) Status(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.EchoUser(c)

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	status, err := h.paymentService.Status(ctx, id, user.ID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, status)
}

func (h *PaymentHandler) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.EchoUser(c)

	payments, err := h.paymentService.ListMine(ctx, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, payments)
}

// Webhook receives Mercado Pago payment notifications. It always answers
// 200 on handled events so the gateway stops retrying; signature failures
// answer 401 so a misconfigured secret is visible in the gateway dashboard.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo inválido")
	}

	signature := c.Request().Header.Get("x-signature")
	requestID := c.Request().Header.Get("x-request-id")

	if err := h.paymentService.HandleWebhook(ctx, signature, requestID, body); err != nil {
		logger.FromEcho(c).Warn("webhook rejected", zap.Error(err))
		return echo.NewHTTPError(http.StatusUnauthorized, "assinatura inválida")
	}

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}
