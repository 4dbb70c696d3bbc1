package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	ridesApi "ride-analytics/internal/rides/api"
	ridesApp "ride-analytics/internal/rides/app"
	ridesRepo "ride-analytics/internal/rides/repo"
	"ride-analytics/internal/shared/config"
	"ride-analytics/internal/shared/db"
	"ride-analytics/internal/shared/health"
	"ride-analytics/internal/shared/middleware"
	"ride-analytics/internal/shared/util"
	userApi "ride-analytics/internal/user/api"
	userApp "ride-analytics/internal/user/app"
	userRepo "ride-analytics/internal/user/repo"
	"ride-analytics/internal/weather"
	"ride-analytics/internal/zones"
)

const serviceName = "ride-analytics"

func main() {
	log := util.New()

	log.Info(serviceName, "Starting service initialization...")

	// .env is a local development convenience; deployed environments inject
	// variables directly, so a missing file is not an error.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatal("Env", err)
	}

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatal("Config", err)
	}
	log.OK("Config", "Configuration loaded successfully")

	pool, err := db.ConnectToDB(&cfg.Database)
	if err != nil {
		log.Fatal("Database", err)
	}
	defer pool.Close()
	log.OK("Database", "Connected successfully")

	zoneIndex, err := zones.Load(cfg.Zones.GeoJSON)
	if err != nil {
		log.Fatal("Zones", err)
	}
	log.OK("Zones", fmt.Sprintf("Loaded %d taxi zone polygons", zoneIndex.Len()))

	weatherClient := weather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL)

	users := userApi.NewHandler(userApp.NewUserService(userRepo.NewUserRepo(pool), cfg.Auth.Secret, log))
	rides := ridesApi.NewHandler(ridesApp.NewAnalyticsService(ridesRepo.NewAnalyticsRepo(pool), log))

	mux := http.NewServeMux()
	users.RegisterRoutes(mux)
	rides.RegisterRoutes(mux)
	mux.HandleFunc("GET /zones/resolve", zones.ResolveHandler(zoneIndex))
	mux.HandleFunc("GET /data/taxi_zones.geojson", zones.FileHandler(cfg.Zones.GeoJSON))
	mux.HandleFunc("GET /weather/current", weather.CurrentHandler(weatherClient))
	mux.HandleFunc("GET /health", health.Handler(serviceName, pool))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			util.WriteJSONError(w, "not found", http.StatusNotFound)
			return
		}
		fmt.Fprint(w, "Welcome to NYC Ride Share!")
	})

	server := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: middleware.RequestID(mux),
	}

	go func() {
		log.OK("HTTP", serviceName+" running on :"+cfg.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn(serviceName, "Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP", err)
	} else {
		log.OK("HTTP", "Server stopped gracefully")
	}
	log.Info(serviceName, "Shutdown complete")
}
