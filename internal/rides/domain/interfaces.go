package domain

import "context"

// AnalyticsRepository is the read-only query surface over the ride, weather
// and user tables plus the externally refreshed statistics views. Average
// queries return a nil pointer when no ride qualifies so callers can tell
// "no match" from a genuine zero.
type AnalyticsRepository interface {
	AvgFareByWeather(ctx context.Context, p WeatherParams) (*float64, error)
	AvgFareByRouteWeather(ctx context.Context, p RouteWeatherParams) (*float64, error)
	AvgTripTimeMin(ctx context.Context, p RouteWeatherParams) (*float64, error)
	HighFareHours(ctx context.Context) ([]HourlyFareStat, error)
	ExtremeWeatherRoutes(ctx context.Context) ([]ExtremeWeatherRoute, error)
	RushHourAnalysis(ctx context.Context) (*RushHourComparison, error)
	OutlierRides(ctx context.Context) ([]OutlierRide, error)
	SimilarRides(ctx context.Context, p SimilarRideParams) ([]SimilarRide, error)
	UserHourlyStats(ctx context.Context, username string) ([]UserHourlyStat, error)
	HourlyUserAggregates(ctx context.Context) ([]HourlyUserAggregate, error)
	CarpoolMatches(ctx context.Context, username string) ([]CarpoolMatch, error)
	OverpaidDifference(ctx context.Context, username string) (*float64, error)
}
