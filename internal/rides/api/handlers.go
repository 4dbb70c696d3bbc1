package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"ride-analytics/internal/rides/domain"
	"ride-analytics/internal/shared/apperrors"
	"ride-analytics/internal/shared/util"
	"ride-analytics/internal/shared/validation"
)

const queryTimeout = 5 * time.Second

// ride_time accepts RFC 3339 or a bare timestamp without zone
var rideTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// fail writes the error response and emits the access line with the mapped
// status, so error exits show up in the request log like successes do.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, start time.Time, err error) {
	status := apperrors.CheckError(err)
	util.ErrResponseInJson(w, err)
	h.logger.HTTP(status, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) ok(w http.ResponseWriter, r *http.Request, start time.Time, body interface{}) {
	util.ResponseInJson(w, http.StatusOK, body)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func weatherParams(q url.Values) (domain.WeatherParams, error) {
	var p domain.WeatherParams
	var err error
	if p.Temperature, err = validation.RequiredFloat(q, "temperature"); err != nil {
		return p, err
	}
	if p.Rain, err = validation.RequiredFloat(q, "rain"); err != nil {
		return p, err
	}
	if p.WindSpeed, err = validation.RequiredFloat(q, "wind_speed"); err != nil {
		return p, err
	}
	return p, nil
}

func routeWeatherParams(q url.Values) (domain.RouteWeatherParams, error) {
	var p domain.RouteWeatherParams
	var err error
	if p.PULocationID, err = validation.RequiredInt(q, "pu_location_id"); err != nil {
		return p, err
	}
	if p.DOLocationID, err = validation.RequiredInt(q, "do_location_id"); err != nil {
		return p, err
	}
	p.Weather, err = weatherParams(q)
	return p, err
}

func (h *Handler) AvgFareWeather(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	params, err := weatherParams(r.URL.Query())
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	avg, err := h.service.AvgFareByWeather(ctx, params)
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	h.ok(w, r, start, map[string]float64{"average_fare": avg})
}

func (h *Handler) AvgFareEstimate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	params, err := routeWeatherParams(r.URL.Query())
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	estimate, err := h.service.AvgFareEstimate(ctx, params)
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	h.ok(w, r, start, estimate)
}

func (h *Handler) AverageTripTime(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	params, err := routeWeatherParams(r.URL.Query())
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	avg, err := h.service.AvgTripTimeMin(ctx, params)
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	h.ok(w, r, start, map[string]float64{"avg_time_min": avg})
}

func (h *Handler) HighFareHours(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	stats, err := h.service.HighFareHours(ctx)
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	h.ok(w, r, start, stats)
}

func (h *Handler) ExtremeWeatherRoutes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	routes, err := h.service.ExtremeWeatherRoutes(ctx)
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	h.ok(w, r, start, routes)
}

func (h *Handler) RushHourAnalysis(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	cmp, err := h.service.RushHourAnalysis(ctx)
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	h.ok(w, r, start, cmp)
}

func (h *Handler) OutlierRides(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	outliers, err := h.service.OutlierRides(ctx)
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	h.ok(w, r, start, outliers)
}

func (h *Handler) SimilarRides(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	q := r.URL.Query()

	var params domain.SimilarRideParams
	var err error
	if params.Username, err = validation.RequiredString(q, "username"); err != nil {
		h.fail(w, r, start, err)
		return
	}
	if params.PULocationID, err = validation.RequiredInt(q, "pu_location_id"); err != nil {
		h.fail(w, r, start, err)
		return
	}
	if params.DOLocationID, err = validation.RequiredInt(q, "do_location_id"); err != nil {
		h.fail(w, r, start, err)
		return
	}
	if params.RideTime, err = parseRideTime(q.Get("ride_time")); err != nil {
		h.fail(w, r, start, err)
		return
	}
	if params.Temperature, err = validation.RequiredFloat(q, "temperature"); err != nil {
		h.fail(w, r, start, err)
		return
	}
	if params.Rain, err = validation.RequiredFloat(q, "rain"); err != nil {
		h.fail(w, r, start, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	rides, err := h.service.SimilarRides(ctx, params)
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	h.ok(w, r, start, rides)
}

func (h *Handler) UserHourlyStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	username, err := validation.RequiredString(r.URL.Query(), "username")
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	stats, err := h.service.UserHourlyStats(ctx, username)
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	h.ok(w, r, start, stats)
}

func (h *Handler) HourlyUserAggregates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	aggs, err := h.service.HourlyUserAggregates(ctx)
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	h.ok(w, r, start, aggs)
}

func (h *Handler) Carpool(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	username, err := validation.RequiredString(r.URL.Query(), "username")
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	matches, err := h.service.CarpoolMatches(ctx, username)
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	h.ok(w, r, start, matches)
}

func (h *Handler) Overpaid(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	username, err := validation.RequiredString(r.URL.Query(), "username")
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	diff, err := h.service.OverpaidDifference(ctx, username)
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	h.ok(w, r, start, map[string]float64{"avg_fare_difference": diff})
}

func parseRideTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: ride_time is a required query parameter", apperrors.ErrBadRequest)
	}
	for _, layout := range rideTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: ride_time must be a valid timestamp", apperrors.ErrBadRequest)
}
