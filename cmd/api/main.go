package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"salva-iguaba-api/internal/auth"
	"salva-iguaba-api/internal/client"
	"salva-iguaba-api/internal/config"
	"salva-iguaba-api/internal/geo"
	"salva-iguaba-api/internal/logger"
	"salva-iguaba-api/internal/repository"
	"salva-iguaba-api/internal/server"
	"salva-iguaba-api/internal/service"
	"salva-iguaba-api/internal/storage"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg); err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.Get()
	defer log.Sync()

	db, err := client.InitPostgresClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := client.Migrate(db); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}

	mpClient := client.NewMercadoPagoClient(&cfg.MercadoPago)
	identity := auth.NewIdentityClient(&cfg.Auth)

	store, err := storage.NewStore(cfg.S3)
	if err != nil {
		log.Fatal("object store init failed", zap.Error(err))
	}
	geocoder := geo.NewGeocoder(cfg.Geocoding.GoogleApiKey)

	establishmentRepo := repository.NewEstablishmentRepository(db)
	bagRepo := repository.NewBagRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	establishmentService := service.NewEstablishmentService(establishmentRepo)
	bagService := service.NewBagService(bagRepo, establishmentRepo)
	orderService := service.NewOrderService(db, bagRepo, orderRepo)
	paymentService := service.NewPaymentService(
		db, mpClient, cfg.MercadoPago.WebhookSecret,
		orderRepo, paymentRepo,
	)
	adminService := service.NewAdminService(
		adminRepo, establishmentRepo, orderRepo, paymentRepo, settingsRepo,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(
		cfg, identity,
		establishmentService, bagService, orderService,
		paymentService, adminService,
		store, geocoder,
	)

	log.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}
