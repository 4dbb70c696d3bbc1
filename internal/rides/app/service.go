package app

import (
	"context"
	"fmt"

	"ride-analytics/internal/rides/domain"
	"ride-analytics/internal/shared/apperrors"
	"ride-analytics/internal/shared/util"
)

type AnalyticsService struct {
	repo   domain.AnalyticsRepository
	logger *util.Logger
}

func NewAnalyticsService(r domain.AnalyticsRepository, logger *util.Logger) *AnalyticsService {
	return &AnalyticsService{repo: r, logger: logger}
}

func (s *AnalyticsService) AvgFareByWeather(ctx context.Context, p domain.WeatherParams) (float64, error) {
	instance := "AnalyticsService.AvgFareByWeather"

	avg, err := s.repo.AvgFareByWeather(ctx, p)
	if err != nil {
		s.logger.Error(instance, fmt.Errorf("query failed: %w", err))
		return 0, apperrors.ErrDatabase
	}
	if avg == nil {
		return 0, fmt.Errorf("%w: no rides matched those conditions", apperrors.ErrNotFound)
	}
	return *avg, nil
}

// AvgFareEstimate tries an exact route+weather match first and degrades to
// a location-agnostic weather estimate, reporting which method produced
// the number.
func (s *AnalyticsService) AvgFareEstimate(ctx context.Context, p domain.RouteWeatherParams) (*domain.FareEstimate, error) {
	instance := "AnalyticsService.AvgFareEstimate"

	avg, err := s.repo.AvgFareByRouteWeather(ctx, p)
	if err != nil {
		s.logger.Error(instance, fmt.Errorf("exact query failed: %w", err))
		return nil, apperrors.ErrDatabase
	}
	if avg != nil {
		return &domain.FareEstimate{AvgFare: *avg, Method: domain.MethodExact}, nil
	}

	s.logger.Info(instance, fmt.Sprintf("no exact match for route %d->%d, falling back to weather-only",
		p.PULocationID, p.DOLocationID))

	fallback, err := s.repo.AvgFareByWeather(ctx, p.Weather)
	if err != nil {
		s.logger.Error(instance, fmt.Errorf("fallback query failed: %w", err))
		return nil, apperrors.ErrDatabase
	}
	if fallback == nil {
		return nil, fmt.Errorf("%w: no rides matched those conditions", apperrors.ErrNotFound)
	}
	return &domain.FareEstimate{AvgFare: *fallback, Method: domain.MethodWeatherFallback}, nil
}

func (s *AnalyticsService) AvgTripTimeMin(ctx context.Context, p domain.RouteWeatherParams) (float64, error) {
	instance := "AnalyticsService.AvgTripTimeMin"

	avg, err := s.repo.AvgTripTimeMin(ctx, p)
	if err != nil {
		s.logger.Error(instance, fmt.Errorf("query failed: %w", err))
		return 0, apperrors.ErrDatabase
	}
	if avg == nil {
		return 0, fmt.Errorf("%w: no rides matched those conditions", apperrors.ErrNotFound)
	}
	return *avg, nil
}

func (s *AnalyticsService) HighFareHours(ctx context.Context) ([]domain.HourlyFareStat, error) {
	stats, err := s.repo.HighFareHours(ctx)
	if err != nil {
		s.logger.Error("AnalyticsService.HighFareHours", fmt.Errorf("query failed: %w", err))
		return nil, apperrors.ErrDatabase
	}
	return stats, nil
}

func (s *AnalyticsService) ExtremeWeatherRoutes(ctx context.Context) ([]domain.ExtremeWeatherRoute, error) {
	routes, err := s.repo.ExtremeWeatherRoutes(ctx)
	if err != nil {
		s.logger.Error("AnalyticsService.ExtremeWeatherRoutes", fmt.Errorf("query failed: %w", err))
		return nil, apperrors.ErrDatabase
	}
	return routes, nil
}

func (s *AnalyticsService) RushHourAnalysis(ctx context.Context) (*domain.RushHourComparison, error) {
	cmp, err := s.repo.RushHourAnalysis(ctx)
	if err != nil {
		s.logger.Error("AnalyticsService.RushHourAnalysis", fmt.Errorf("query failed: %w", err))
		return nil, apperrors.ErrDatabase
	}
	return cmp, nil
}

func (s *AnalyticsService) OutlierRides(ctx context.Context) ([]domain.OutlierRide, error) {
	outliers, err := s.repo.OutlierRides(ctx)
	if err != nil {
		s.logger.Error("AnalyticsService.OutlierRides", fmt.Errorf("query failed: %w", err))
		return nil, apperrors.ErrDatabase
	}
	return outliers, nil
}

func (s *AnalyticsService) SimilarRides(ctx context.Context, p domain.SimilarRideParams) ([]domain.SimilarRide, error) {
	rides, err := s.repo.SimilarRides(ctx, p)
	if err != nil {
		s.logger.Error("AnalyticsService.SimilarRides", fmt.Errorf("query failed: %w", err))
		return nil, apperrors.ErrDatabase
	}
	return rides, nil
}

func (s *AnalyticsService) UserHourlyStats(ctx context.Context, username string) ([]domain.UserHourlyStat, error) {
	stats, err := s.repo.UserHourlyStats(ctx, username)
	if err != nil {
		s.logger.Error("AnalyticsService.UserHourlyStats", fmt.Errorf("query failed: %w", err))
		return nil, apperrors.ErrDatabase
	}
	return stats, nil
}

func (s *AnalyticsService) HourlyUserAggregates(ctx context.Context) ([]domain.HourlyUserAggregate, error) {
	aggs, err := s.repo.HourlyUserAggregates(ctx)
	if err != nil {
		s.logger.Error("AnalyticsService.HourlyUserAggregates", fmt.Errorf("query failed: %w", err))
		return nil, apperrors.ErrDatabase
	}
	return aggs, nil
}

func (s *AnalyticsService) CarpoolMatches(ctx context.Context, username string) ([]domain.CarpoolMatch, error) {
	matches, err := s.repo.CarpoolMatches(ctx, username)
	if err != nil {
		s.logger.Error("AnalyticsService.CarpoolMatches", fmt.Errorf("query failed: %w", err))
		return nil, apperrors.ErrDatabase
	}
	return matches, nil
}

// OverpaidDifference surfaces not-found instead of a misleading zero when
// the user is not overpaying on any route.
func (s *AnalyticsService) OverpaidDifference(ctx context.Context, username string) (float64, error) {
	instance := "AnalyticsService.OverpaidDifference"

	diff, err := s.repo.OverpaidDifference(ctx, username)
	if err != nil {
		s.logger.Error(instance, fmt.Errorf("query failed: %w", err))
		return 0, apperrors.ErrDatabase
	}
	if diff == nil {
		return 0, fmt.Errorf("%w: user is not overpaying on any route", apperrors.ErrNotFound)
	}
	return *diff, nil
}
