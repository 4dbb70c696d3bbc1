package domain

import "time"

// WeatherParams is the tolerance-window center for weather-conditioned
// queries. A ride qualifies when its joined hourly weather reading lies
// within the band around every parameter: ±1° temperature, ±0.1 rain,
// ±1 wind speed.
type WeatherParams struct {
	Temperature float64
	Rain        float64
	WindSpeed   float64
}

// RouteWeatherParams narrows a weather query to a pickup/dropoff zone pair.
type RouteWeatherParams struct {
	PULocationID int
	DOLocationID int
	Weather      WeatherParams
}

// Methods reported by the fare estimate endpoint.
const (
	MethodExact           = "exact"
	MethodWeatherFallback = "weather_only_fallback"
)

type FareEstimate struct {
	AvgFare float64 `json:"avg_fare"`
	Method  string  `json:"method"`
}

type HourlyFareStat struct {
	Hour      int     `json:"hour"`
	RideCount int64   `json:"ride_count"`
	AvgFare   float64 `json:"avg_fare"`
}

type ExtremeWeatherRoute struct {
	PULocationID int     `json:"pu_location_id"`
	DOLocationID int     `json:"do_location_id"`
	AvgFare      float64 `json:"avg_fare"`
	AvgTimeMin   float64 `json:"avg_time_min"`
	RideCount    int64   `json:"ride_count"`
}

type RushHourComparison struct {
	OverallAvgFareRush           float64 `json:"overall_avg_fare_rush"`
	OverallAvgFareNonrush        float64 `json:"overall_avg_fare_nonrush"`
	OverallAvgTripTimeRushMin    float64 `json:"overall_avg_trip_time_rush_minutes"`
	OverallAvgTripTimeNonrushMin float64 `json:"overall_avg_trip_time_nonrush_minutes"`
}

type OutlierRide struct {
	PULocationID int     `json:"pu_location_id"`
	DOLocationID int     `json:"do_location_id"`
	TotalFare    float64 `json:"total_fare"`
	TripTimeMin  float64 `json:"trip_time_min"`
}

// SimilarRideParams describes the reference ride for nearest-neighbor
// ranking over a user's history on one route.
type SimilarRideParams struct {
	Username     string
	PULocationID int
	DOLocationID int
	RideTime     time.Time
	Temperature  float64
	Rain         float64
}

type SimilarRide struct {
	RideID          int64     `json:"ride_id"`
	RequestDatetime time.Time `json:"request_datetime"`
	PULocationID    int       `json:"pu_location_id"`
	DOLocationID    int       `json:"do_location_id"`
	TotalFare       float64   `json:"total_fare"`
	TripTimeMin     float64   `json:"trip_time_min"`
	TimeDiffHours   float64   `json:"time_diff_hours"`
	TempDiff        float64   `json:"temp_diff"`
	RainDiff        float64   `json:"rain_diff"`
	SimilarityScore float64   `json:"similarity_score"`
}

type UserHourlyStat struct {
	Hour          int     `json:"hour"`
	UserAvgFare   float64 `json:"user_avg_fare"`
	GlobalAvgFare float64 `json:"global_avg_fare"`
	FareDiff      float64 `json:"fare_diff"`
}

type HourlyUserAggregate struct {
	Hour            int     `json:"hour"`
	RainStatus      string  `json:"rain_status"`
	TotalRevenue    float64 `json:"total_revenue"`
	AvgTripMiles    float64 `json:"avg_trip_miles"`
	RideCount       int64   `json:"ride_count"`
	AvgRidesPerUser float64 `json:"avg_rides_per_user"`
}

type CarpoolMatch struct {
	Username        string  `json:"username"`
	SimilarityScore float64 `json:"similarity_score"`
}
