package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ride-analytics/internal/rides/domain"
	"ride-analytics/internal/shared/apperrors"
	"ride-analytics/internal/shared/util"
)

func ptr(v float64) *float64 { return &v }

// fakeAnalyticsRepo returns canned values; err, when set, fails every call.
type fakeAnalyticsRepo struct {
	weatherAvg *float64
	routeAvg   *float64
	tripAvg    *float64
	overpaid   *float64
	matches    []domain.CarpoolMatch
	err        error
}

func (f *fakeAnalyticsRepo) AvgFareByWeather(context.Context, domain.WeatherParams) (*float64, error) {
	return f.weatherAvg, f.err
}

func (f *fakeAnalyticsRepo) AvgFareByRouteWeather(context.Context, domain.RouteWeatherParams) (*float64, error) {
	return f.routeAvg, f.err
}

func (f *fakeAnalyticsRepo) AvgTripTimeMin(context.Context, domain.RouteWeatherParams) (*float64, error) {
	return f.tripAvg, f.err
}

func (f *fakeAnalyticsRepo) HighFareHours(context.Context) ([]domain.HourlyFareStat, error) {
	return nil, f.err
}

func (f *fakeAnalyticsRepo) ExtremeWeatherRoutes(context.Context) ([]domain.ExtremeWeatherRoute, error) {
	return nil, f.err
}

func (f *fakeAnalyticsRepo) RushHourAnalysis(context.Context) (*domain.RushHourComparison, error) {
	return &domain.RushHourComparison{}, f.err
}

func (f *fakeAnalyticsRepo) OutlierRides(context.Context) ([]domain.OutlierRide, error) {
	return nil, f.err
}

func (f *fakeAnalyticsRepo) SimilarRides(context.Context, domain.SimilarRideParams) ([]domain.SimilarRide, error) {
	return nil, f.err
}

func (f *fakeAnalyticsRepo) UserHourlyStats(context.Context, string) ([]domain.UserHourlyStat, error) {
	return nil, f.err
}

func (f *fakeAnalyticsRepo) HourlyUserAggregates(context.Context) ([]domain.HourlyUserAggregate, error) {
	return nil, f.err
}

func (f *fakeAnalyticsRepo) CarpoolMatches(context.Context, string) ([]domain.CarpoolMatch, error) {
	return f.matches, f.err
}

func (f *fakeAnalyticsRepo) OverpaidDifference(context.Context, string) (*float64, error) {
	return f.overpaid, f.err
}

func newService(repo domain.AnalyticsRepository) *AnalyticsService {
	return NewAnalyticsService(repo, util.New())
}

func TestAvgFareByWeather(t *testing.T) {
	svc := newService(&fakeAnalyticsRepo{weatherAvg: ptr(23.47)})

	avg, err := svc.AvgFareByWeather(context.Background(), domain.WeatherParams{})
	require.NoError(t, err)
	assert.Equal(t, 23.47, avg)
}

func TestAvgFareByWeatherNoMatches(t *testing.T) {
	svc := newService(&fakeAnalyticsRepo{})

	_, err := svc.AvgFareByWeather(context.Background(), domain.WeatherParams{})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestAvgFareEstimateExactMatch(t *testing.T) {
	svc := newService(&fakeAnalyticsRepo{routeAvg: ptr(31.2), weatherAvg: ptr(20.0)})

	estimate, err := svc.AvgFareEstimate(context.Background(), domain.RouteWeatherParams{})
	require.NoError(t, err)
	assert.Equal(t, 31.2, estimate.AvgFare)
	assert.Equal(t, domain.MethodExact, estimate.Method)
}

func TestAvgFareEstimateWeatherFallback(t *testing.T) {
	svc := newService(&fakeAnalyticsRepo{routeAvg: nil, weatherAvg: ptr(20.0)})

	estimate, err := svc.AvgFareEstimate(context.Background(), domain.RouteWeatherParams{})
	require.NoError(t, err)
	assert.Equal(t, 20.0, estimate.AvgFare)
	assert.Equal(t, domain.MethodWeatherFallback, estimate.Method)
}

func TestAvgFareEstimateNothingMatches(t *testing.T) {
	svc := newService(&fakeAnalyticsRepo{})

	_, err := svc.AvgFareEstimate(context.Background(), domain.RouteWeatherParams{})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestOverpaidNoResultIsNotZero(t *testing.T) {
	svc := newService(&fakeAnalyticsRepo{overpaid: nil})

	_, err := svc.OverpaidDifference(context.Background(), "alice")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestOverpaidReturnsDifference(t *testing.T) {
	svc := newService(&fakeAnalyticsRepo{overpaid: ptr(4.2)})

	diff, err := svc.OverpaidDifference(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 4.2, diff)
}

func TestDatabaseFailuresAreGeneric(t *testing.T) {
	svc := newService(&fakeAnalyticsRepo{err: errors.New("relation does not exist")})
	ctx := context.Background()

	_, err := svc.AvgFareByWeather(ctx, domain.WeatherParams{})
	assert.True(t, errors.Is(err, apperrors.ErrDatabase))
	assert.NotContains(t, err.Error(), "relation")

	_, err = svc.HighFareHours(ctx)
	assert.True(t, errors.Is(err, apperrors.ErrDatabase))

	_, err = svc.CarpoolMatches(ctx, "alice")
	assert.True(t, errors.Is(err, apperrors.ErrDatabase))

	_, err = svc.OverpaidDifference(ctx, "alice")
	assert.True(t, errors.Is(err, apperrors.ErrDatabase))
}

func TestCarpoolPassesMatchesThrough(t *testing.T) {
	matches := []domain.CarpoolMatch{
		{Username: "bob", SimilarityScore: 1.2},
		{Username: "carol", SimilarityScore: 3.4},
	}
	svc := newService(&fakeAnalyticsRepo{matches: matches})

	got, err := svc.CarpoolMatches(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, matches, got)
}
