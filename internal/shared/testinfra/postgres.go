//go:build integration

// Package testinfra starts throwaway Postgres containers for repository
// integration tests.
//
// Usage:
//
//	go test -tags integration ./internal/...
package testinfra

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const postgresImage = "postgres:16-alpine"

// The stats views are plain tables here so fixtures control the statistics
// the queries read.
const schema = `
CREATE TABLE users (
	username        TEXT PRIMARY KEY,
	hashed_password TEXT NOT NULL
);

CREATE TABLE uber_rides (
	ride_id           BIGSERIAL PRIMARY KEY,
	request_datetime  TIMESTAMP NOT NULL,
	on_scene_datetime TIMESTAMP NOT NULL,
	trip_time         DOUBLE PRECISION NOT NULL,
	pulocationid      INT NOT NULL,
	dolocationid      INT NOT NULL,
	trip_miles        DOUBLE PRECISION NOT NULL,
	tolls             DOUBLE PRECISION NOT NULL,
	total_fare        DOUBLE PRECISION NOT NULL,
	driver_pay        DOUBLE PRECISION NOT NULL,
	tips              DOUBLE PRECISION NOT NULL,
	request_hour      TIMESTAMP NOT NULL
);

CREATE TABLE user_rides (
	username TEXT NOT NULL REFERENCES users(username),
	ride_id  BIGINT NOT NULL REFERENCES uber_rides(ride_id),
	PRIMARY KEY (username, ride_id)
);

CREATE TABLE weather (
	time        TIMESTAMP PRIMARY KEY,
	temperature DOUBLE PRECISION NOT NULL,
	rain        DOUBLE PRECISION NOT NULL,
	wind_speed  DOUBLE PRECISION NOT NULL
);

CREATE TABLE mv_hourly_ride_stats (
	hour       INT,
	ride_count BIGINT,
	avg_fare   DOUBLE PRECISION
);

CREATE TABLE mv_extreme_weather_stats (
	pulocationid  INT,
	dolocationid  INT,
	avg_fare      DOUBLE PRECISION,
	avg_trip_time DOUBLE PRECISION,
	ride_count    BIGINT
);

CREATE TABLE mv_rush_hour_stats (
	avg_fare_rush         DOUBLE PRECISION,
	avg_fare_nonrush      DOUBLE PRECISION,
	avg_trip_time_rush    DOUBLE PRECISION,
	avg_trip_time_nonrush DOUBLE PRECISION
);

CREATE TABLE mv_route_stats (
	pulocationid  INT,
	dolocationid  INT,
	avg_fare      DOUBLE PRECISION,
	std_fare      DOUBLE PRECISION,
	avg_trip_time DOUBLE PRECISION,
	std_trip_time DOUBLE PRECISION
);
`

// SkipIfNoDocker skips the test when the Docker daemon is not reachable.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	if !IsDockerAvailable() {
		t.Skip("Skipping test: Docker not available")
	}
}

// IsDockerAvailable checks if Docker daemon is running and accessible.
func IsDockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "docker", "info")
	return cmd.Run() == nil
}

// StartPostgres runs a Postgres container with the application schema
// applied and returns a pool connected to it. The container and the pool
// are torn down with the test.
func StartPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	SkipIfNoDocker(t)

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "rideshare",
		},
		WaitingFor: wait.ForAll(
			// postgres restarts once during init, hence the second occurrence
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Skipping: could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/rideshare?sslmode=disable", host, port.Port())
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("ping test database: %v", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	return pool
}
