package domain

import "context"

type UserRepository interface {
	CreateUser(ctx context.Context, username, hashedPassword string) error
	GetHashedPassword(ctx context.Context, username string) (string, error)
	LogRide(ctx context.Context, ride Ride) error
}
