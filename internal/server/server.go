package server

import (
	"net/http"

	"salva-iguaba-api/internal/auth"
	"salva-iguaba-api/internal/config"
	"salva-iguaba-api/internal/geo"
	"salva-iguaba-api/internal/handler"
	"salva-iguaba-api/internal/logger"
	"salva-iguaba-api/internal/metrics"
	appmiddleware "salva-iguaba-api/internal/middleware"
	"salva-iguaba-api/internal/service"
	"salva-iguaba-api/internal/storage"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo *echo.Echo

	authHandler          *handler.AuthHandler
	establishmentHandler *handler.EstablishmentHandler
	bagHandler           *handler.BagHandler
	orderHandler         *handler.OrderHandler
	paymentHandler       *handler.PaymentHandler
	adminHandler         *handler.AdminHandler
	uploadHandler        *handler.UploadHandler
	geocodeHandler       *handler.GeocodeHandler

	requireAuth  echo.MiddlewareFunc
	requireAdmin echo.MiddlewareFunc
}

func NewServer(
	cfg *config.Config,
	identity auth.IdentityClient,
	establishmentService service.EstablishmentService,
	bagService service.BagService,
	orderService service.OrderService,
	paymentService service.PaymentService,
	adminService service.AdminService,
	store *storage.Store,
	geocoder *geo.Geocoder,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())

	corsOrigins := []string{"*"}
	if cfg.BaseURL != "" {
		corsOrigins = []string{cfg.BaseURL}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     corsOrigins,
		AllowCredentials: true,
	}))
	e.Use(logger.Middleware())
	e.Use(metrics.Middleware)

	s := &Server{
		echo:                 e,
		authHandler:          handler.NewAuthHandler(identity, cfg.Auth.CookieName),
		establishmentHandler: handler.NewEstablishmentHandler(establishmentService, bagService),
		bagHandler:           handler.NewBagHandler(bagService),
		orderHandler:         handler.NewOrderHandler(orderService),
		paymentHandler:       handler.NewPaymentHandler(paymentService, cfg.MercadoPago, cfg.Stripe),
		adminHandler:         handler.NewAdminHandler(adminService),
		uploadHandler:        handler.NewUploadHandler(store, cfg.BaseURL),
		geocodeHandler:       handler.NewGeocodeHandler(geocoder),

		requireAuth:  appmiddleware.RequireAuth(identity, cfg.Auth.CookieName),
		requireAdmin: appmiddleware.RequireAdmin(adminService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/metrics", metrics.Handler())

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	api.GET("/oauth/google/redirect_url", s.authHandler.OAuthRedirectURL)
	api.POST("/sessions", s.authHandler.CreateSession)
	api.GET("/users/me", s.authHandler.Me, s.requireAuth)
	api.GET("/logout", s.authHandler.Logout)

	// -------- public catalog --------
	api.GET("/establishments", s.establishmentHandler.List)
	api.GET("/establishments/:id", s.establishmentHandler.Get)
	api.GET("/establishments/:id/bags", s.establishmentHandler.ListBags)
	api.GET("/bags", s.bagHandler.ListAvailable)
	api.GET("/bags/:id/photos", s.bagHandler.ListPhotos)
	api.POST("/geocode", s.geocodeHandler.Geocode)
	api.GET("/config/payment-keys", s.paymentHandler.Keys)

	// -------- merchant --------
	api.POST("/establishments", s.establishmentHandler.Create, s.requireAuth)
	api.POST("/bags", s.bagHandler.Create, s.requireAuth)
	api.PUT("/bags/:id", s.bagHandler.Update, s.requireAuth)
	api.DELETE("/bags/:id", s.bagHandler.Delete, s.requireAuth)
	api.POST("/bags/:id/photos", s.bagHandler.AddPhoto, s.requireAuth)
	api.DELETE("/bags/:id/photos/:photoId", s.bagHandler.DeletePhoto, s.requireAuth)
	api.GET("/merchant/establishments", s.establishmentHandler.ListMine, s.requireAuth)
	api.GET("/merchant/orders", s.orderHandler.ListMerchantOrders, s.requireAuth)
	api.GET("/merchant/stats", s.orderHandler.MerchantStats, s.requireAuth)

	// -------- customer orders --------
	api.POST("/orders", s.orderHandler.Create, s.requireAuth)
	api.GET("/orders/my", s.orderHandler.ListMine, s.requireAuth)
	api.PUT("/orders/:id/confirm", s.orderHandler.Confirm, s.requireAuth)
	api.PUT("/orders/:id/complete", s.orderHandler.Complete, s.requireAuth)
	api.PUT("/orders/:id/cancel", s.orderHandler.Cancel, s.requireAuth)

	// -------- payments --------
	api.POST("/payments/pix/create", s.paymentHandler.CreatePix, s.requireAuth)
	api.GET("/payments/my", s.paymentHandler.ListMine, s.requireAuth)
	api.GET("/payments/:id/status", s.paymentHandler.Status, s.requireAuth)
	api.POST("/webhooks/mercadopago", s.paymentHandler.Webhook)

	// -------- uploads --------
	api.POST("/upload", s.uploadHandler.Upload, s.requireAuth)
	api.GET("/files/*", s.uploadHandler.Serve)
	api.DELETE("/upload/*", s.uploadHandler.Delete, s.requireAuth)

	// -------- admin --------
	api.GET("/admin/check", s.adminHandler.Check, s.requireAuth)

	admin := api.Group("/admin", s.requireAuth, s.requireAdmin)
	admin.GET("/stats", s.adminHandler.Stats)
	admin.GET("/establishments", s.adminHandler.ListEstablishments)
	admin.PUT("/establishments/:id/approve", s.adminHandler.ApproveEstablishment)
	admin.PUT("/establishments/:id/reject", s.adminHandler.RejectEstablishment)
	admin.GET("/orders", s.adminHandler.ListOrders)
	admin.GET("/payments", s.adminHandler.ListPayments)
	admin.PUT("/payments/:id/status", s.adminHandler.OverridePaymentStatus)
	admin.GET("/settings", s.adminHandler.ListSettings)
	admin.PUT("/settings/:key", s.adminHandler.UpdateSetting)
	admin.GET("/admins", s.adminHandler.ListAdmins)
	admin.POST("/admins", s.adminHandler.AddAdmin)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
