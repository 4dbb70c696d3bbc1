package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"ride-analytics/internal/user/domain"
)

// uniqueViolation is the Postgres error code raised when the username
// primary key already exists.
const uniqueViolation = "23505"

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) CreateUser(ctx context.Context, username, hashedPassword string) error {
	query := `
		INSERT INTO users (username, hashed_password)
		VALUES ($1, $2)
	`
	_, err := r.db.Exec(ctx, query, username, hashedPassword)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateUser
		}
		return err
	}
	return nil
}

func (r *UserRepo) GetHashedPassword(ctx context.Context, username string) (string, error) {
	var hash string
	err := r.db.QueryRow(ctx, `
		SELECT hashed_password FROM users WHERE username = $1
	`, username).Scan(&hash)
	if err != nil {
		return "", err
	}
	return hash, nil
}

// LogRide inserts the ride row and its user link inside one transaction.
// Either both rows land or neither does; the deferred rollback is a no-op
// after a successful commit, so the connection goes back to the pool on
// every exit path.
func (r *UserRepo) LogRide(ctx context.Context, ride domain.Ride) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var rideID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO uber_rides (
			request_datetime, on_scene_datetime, trip_time,
			pulocationid, dolocationid, trip_miles, tolls,
			total_fare, driver_pay, tips, request_hour
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ride_id
	`,
		ride.RequestDatetime, ride.OnSceneDatetime, ride.TripTime,
		ride.PULocationID, ride.DOLocationID, ride.TripMiles, ride.Tolls,
		ride.TotalFare, ride.DriverPay, ride.Tips, ride.RequestHour,
	).Scan(&rideID)
	if err != nil {
		return fmt.Errorf("insert ride failed: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_rides (username, ride_id) VALUES ($1, $2)
	`, ride.Username, rideID)
	if err != nil {
		return fmt.Errorf("insert user ride failed: %w", err)
	}

	return tx.Commit(ctx)
}
