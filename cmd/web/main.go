package main

import (
	"context"
	"time"
	"travelbook/internal/web"
	"travelbook/pkg/app"
	"travelbook/pkg/client"
	"travelbook/pkg/config"
	"travelbook/pkg/middleware"
)

const ServiceName = "web"

const apiProbeWait = 1500 * time.Millisecond

func main() {
	cfg := config.Load(ServiceName, config.DefaultWebPort)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	if err := cfg.ValidateAPIURL(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()
	cfg.Log.Info("Starting web front end", "api_url", cfg.APIURL)

	api := client.NewBookingClient(cfg.APIURL)
	webHandler, err := web.NewHandler(api, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to load page templates", "error", err)
	}

	serverApp := app.NewApplication(cfg, webHandler,
		app.WithContentTypes(middleware.ContentTypeForm),
		app.WithReadiness("bookings-api", func(ctx context.Context) error {
			return api.HTTP().WaitForHealthy(ctx, apiProbeWait)
		}),
	)
	serverApp.Run()
}
