package main

import (
	"context"
	"fmt"
	"os"

	"github.com/freightdesk/contracts-service/internal/auth"
	"github.com/freightdesk/contracts-service/internal/carrier"
	"github.com/freightdesk/contracts-service/internal/config"
	"github.com/freightdesk/contracts-service/internal/db"
	"github.com/freightdesk/contracts-service/internal/excel"
	httphandler "github.com/freightdesk/contracts-service/internal/http"
	"github.com/freightdesk/contracts-service/internal/http/middleware"
	"github.com/freightdesk/contracts-service/internal/logger"
	"github.com/freightdesk/contracts-service/internal/pdf"
	"github.com/freightdesk/contracts-service/internal/render"
	"github.com/freightdesk/contracts-service/internal/repository"
	"github.com/freightdesk/contracts-service/internal/service"
	"github.com/freightdesk/contracts-service/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	contractRepo := repository.NewContractRepository(database)
	clientRepo := repository.NewClientRepository(database)
	consignmentRepo := repository.NewConsignmentRepository(database)

	renderer, err := render.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init document renderer")
	}
	pdfGenerator := pdf.NewGenerator()
	excelGenerator := excel.NewGenerator()

	var store storage.Store
	switch cfg.Storage.Driver {
	case "s3":
		store, err = storage.NewS3Store(context.Background(), cfg.Storage.Bucket, cfg.Storage.Region)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init s3 storage")
		}
	default:
		store = storage.NewLocalStore(cfg.Storage.LocalDir, cfg.Storage.PublicURL)
	}

	carrierClient := carrier.NewClient(cfg.Carrier.BaseURL, cfg.Carrier.ClientID, cfg.Carrier.ClientSecret)

	contractService := service.NewContractService(contractRepo, clientRepo, renderer, pdfGenerator, excelGenerator, store, cfg)
	clientService := service.NewClientService(clientRepo)
	consignmentService := service.NewConsignmentService(consignmentRepo, clientRepo)
	bookingService := service.NewBookingService(carrierClient, cfg)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(contractService, clientService, consignmentService, bookingService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting contracts service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
