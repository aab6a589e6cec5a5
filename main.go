package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tabscope/internal/config"
	"tabscope/internal/container"
	"tabscope/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	server := ui.NewServer(ui.ServerConfig{
		GinMode:      appConfig.Server.GinMode,
		MaxUploadMB:  appConfig.Server.MaxUploadMB,
		ReaderConfig: appContainer.ReaderConfig(),
	}, appContainer.ProfileService, appContainer.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer.Logger.Info("tabscope starting on :%s (max upload %d MB, %d profile workers)",
		appConfig.Server.Port, appConfig.Server.MaxUploadMB, appConfig.Profiling.Workers)

	if err := server.Start(ctx, ":"+appConfig.Server.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
