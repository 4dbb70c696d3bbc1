package api

import (
	"net/http"

	"ride-analytics/internal/rides/app"
	"ride-analytics/internal/shared/util"
)

type Handler struct {
	service *app.AnalyticsService
	logger  *util.Logger
}

func NewHandler(service *app.AnalyticsService) *Handler {
	return &Handler{service: service, logger: util.New()}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /rides/avg-fare-weather", h.AvgFareWeather)
	mux.HandleFunc("GET /rides/avg-fare-estimate", h.AvgFareEstimate)
	mux.HandleFunc("GET /rides/average-trip-time", h.AverageTripTime)
	mux.HandleFunc("GET /rides/high-fare-hours", h.HighFareHours)
	mux.HandleFunc("GET /rides/extreme-weather-routes", h.ExtremeWeatherRoutes)
	mux.HandleFunc("GET /rides/rush-hour-analysis", h.RushHourAnalysis)
	mux.HandleFunc("GET /rides/outlier-rides", h.OutlierRides)
	mux.HandleFunc("GET /rides/similar-rides", h.SimilarRides)
	mux.HandleFunc("GET /rides/user-hourly-stats", h.UserHourlyStats)
	mux.HandleFunc("GET /rides/hourly-user-aggregates", h.HourlyUserAggregates)
	mux.HandleFunc("GET /rides/carpool", h.Carpool)
	mux.HandleFunc("GET /rides/overpaid", h.Overpaid)
}
