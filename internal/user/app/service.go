package app

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"ride-analytics/internal/shared/apperrors"
	"ride-analytics/internal/shared/util"
	"ride-analytics/internal/user/domain"
	"ride-analytics/internal/user/jwt"
)

// datetime layouts accepted for ride payloads, most specific first
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

type UserService struct {
	repo      domain.UserRepository
	jwtSecret string
	logger    *util.Logger
}

func NewUserService(r domain.UserRepository, jwtSecret string, logger *util.Logger) *UserService {
	return &UserService{repo: r, jwtSecret: jwtSecret, logger: logger}
}

func (s *UserService) Register(ctx context.Context, username, hashedPassword string) error {
	instance := "UserService.Register"

	if username == "" || hashedPassword == "" {
		return fmt.Errorf("%w: username and hashed_password are required", apperrors.ErrBadRequest)
	}

	s.logger.Info(instance, fmt.Sprintf("registering new user [username=%s]", username))

	if err := s.repo.CreateUser(ctx, username, hashedPassword); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			s.logger.Warn(instance, fmt.Sprintf("username already taken [username=%s]", username))
			return fmt.Errorf("%w: %s", apperrors.ErrConflict, domain.ErrDuplicateUser)
		}
		s.logger.Error(instance, fmt.Errorf("failed to create user: %w", err))
		return apperrors.ErrDatabase
	}

	s.logger.OK(instance, fmt.Sprintf("user registered [username=%s]", username))
	return nil
}

// Login returns the stored password hash for client-side comparison. The
// upstream contract works this way; server-side verification lives in Verify.
func (s *UserService) Login(ctx context.Context, username string) (string, error) {
	instance := "UserService.Login"

	if username == "" {
		return "", fmt.Errorf("%w: username is required", apperrors.ErrBadRequest)
	}

	hash, err := s.repo.GetHashedPassword(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn(instance, fmt.Sprintf("login failed: unknown user [username=%s]", username))
			return "", fmt.Errorf("%w: %s", apperrors.ErrNotFound, domain.ErrUserNotFound)
		}
		s.logger.Error(instance, fmt.Errorf("failed to query user: %w", err))
		return "", apperrors.ErrDatabase
	}

	s.logger.OK(instance, fmt.Sprintf("login lookup successful [username=%s]", username))
	return hash, nil
}

// Verify compares the presented hash against the stored one server-side and
// issues a short-lived access token on match.
func (s *UserService) Verify(ctx context.Context, username, hashedPassword string) (string, error) {
	instance := "UserService.Verify"

	if username == "" || hashedPassword == "" {
		return "", fmt.Errorf("%w: username and hashed_password are required", apperrors.ErrBadRequest)
	}

	stored, err := s.repo.GetHashedPassword(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn(instance, fmt.Sprintf("verify failed: unknown user [username=%s]", username))
			return "", fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		s.logger.Error(instance, fmt.Errorf("failed to query user: %w", err))
		return "", apperrors.ErrDatabase
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(hashedPassword)) != 1 {
		s.logger.Warn(instance, fmt.Sprintf("verify failed: hash mismatch [username=%s]", username))
		return "", fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := jwt.GenerateToken(username, s.jwtSecret)
	if err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to generate token: %w", err))
		return "", fmt.Errorf("failed to generate token")
	}

	s.logger.OK(instance, fmt.Sprintf("user verified [username=%s]", username))
	return token, nil
}

// LogRide validates the payload, buckets the request time to its hour and
// stores the ride with its user link atomically.
func (s *UserService) LogRide(ctx context.Context, req domain.LogRideRequest) error {
	instance := "UserService.LogRide"

	if req.Username == "" {
		return fmt.Errorf("%w: username is required", apperrors.ErrBadRequest)
	}

	requestDT, err := parseDatetime(req.RequestDatetime)
	if err != nil {
		return fmt.Errorf("%w: invalid request_datetime", apperrors.ErrBadRequest)
	}
	onSceneDT, err := parseDatetime(req.OnSceneDatetime)
	if err != nil {
		return fmt.Errorf("%w: invalid on_scene_datetime", apperrors.ErrBadRequest)
	}

	ride := domain.Ride{
		Username:        req.Username,
		RequestDatetime: requestDT,
		OnSceneDatetime: onSceneDT,
		TripTime:        req.TripTime,
		PULocationID:    req.PULocationID,
		DOLocationID:    req.DOLocationID,
		TripMiles:       req.TripMiles,
		Tolls:           req.Tolls,
		TotalFare:       req.TotalFare,
		DriverPay:       req.DriverPay,
		Tips:            req.Tips,
		RequestHour:     util.TruncateToHour(requestDT),
	}

	s.logger.Info(instance, fmt.Sprintf("logging ride [username=%s, pu=%d, do=%d]",
		ride.Username, ride.PULocationID, ride.DOLocationID))

	if err := s.repo.LogRide(ctx, ride); err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to log ride: %w", err))
		return apperrors.ErrDatabase
	}

	s.logger.OK(instance, fmt.Sprintf("ride logged [username=%s]", ride.Username))
	return nil
}

func parseDatetime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("empty datetime")
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", raw)
}
