package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ride-analytics/internal/shared/apperrors"
	"ride-analytics/internal/shared/util"
	"ride-analytics/internal/user/domain"
	userjwt "ride-analytics/internal/user/jwt"
)

type fakeUserRepo struct {
	users     map[string]string
	rides     []domain.Ride
	createErr error
	lookupErr error
	logErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]string)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, username, hashedPassword string) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.users[username]; exists {
		return domain.ErrDuplicateUser
	}
	f.users[username] = hashedPassword
	return nil
}

func (f *fakeUserRepo) GetHashedPassword(_ context.Context, username string) (string, error) {
	if f.lookupErr != nil {
		return "", f.lookupErr
	}
	hash, ok := f.users[username]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return hash, nil
}

func (f *fakeUserRepo) LogRide(_ context.Context, ride domain.Ride) error {
	if f.logErr != nil {
		return f.logErr
	}
	f.rides = append(f.rides, ride)
	return nil
}

func newService(repo domain.UserRepository) *UserService {
	return NewUserService(repo, "test-secret", util.New())
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "deadbeefhash"))

	hash, err := svc.Login(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "deadbeefhash", hash)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "h1"))

	err := svc.Register(ctx, "alice", "h2")
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestRegisterMissingFields(t *testing.T) {
	svc := newService(newFakeUserRepo())

	err := svc.Register(context.Background(), "", "hash")
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))

	err = svc.Register(context.Background(), "alice", "")
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), "ghost")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestLoginDatabaseFailure(t *testing.T) {
	repo := newFakeUserRepo()
	repo.lookupErr = errors.New("connection refused")
	svc := newService(repo)

	_, err := svc.Login(context.Background(), "alice")
	assert.True(t, errors.Is(err, apperrors.ErrDatabase))
	assert.NotContains(t, err.Error(), "connection refused")
}

func TestVerifyIssuesToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "deadbeefhash"))

	token, err := svc.Verify(ctx, "alice", "deadbeefhash")
	require.NoError(t, err)

	claims, err := userjwt.ParseToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestVerifyRejectsMismatchAndUnknown(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "deadbeefhash"))

	_, err := svc.Verify(ctx, "alice", "wronghash")
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	_, err = svc.Verify(ctx, "ghost", "deadbeefhash")
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func validLogRideRequest() domain.LogRideRequest {
	return domain.LogRideRequest{
		Username:        "alice",
		RequestDatetime: "2024-01-01T08:15:00Z",
		OnSceneDatetime: "2024-01-01T08:20:00Z",
		TripTime:        900,
		PULocationID:    132,
		DOLocationID:    48,
		TripMiles:       5.2,
		Tolls:           0,
		TotalFare:       23.5,
		DriverPay:       18,
		Tips:            3,
	}
}

func TestLogRideBucketsRequestHour(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	require.NoError(t, svc.LogRide(context.Background(), validLogRideRequest()))

	require.Len(t, repo.rides, 1)
	ride := repo.rides[0]
	assert.Equal(t, "alice", ride.Username)
	assert.Equal(t, 132, ride.PULocationID)

	wantHour, _ := time.Parse(time.RFC3339, "2024-01-01T08:00:00Z")
	assert.True(t, ride.RequestHour.Equal(wantHour),
		"request_hour %s, want %s", ride.RequestHour, wantHour)
}

func TestLogRideRejectsBadDatetimes(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	req := validLogRideRequest()
	req.RequestDatetime = "yesterday-ish"
	err := svc.LogRide(context.Background(), req)
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))

	req = validLogRideRequest()
	req.OnSceneDatetime = ""
	err = svc.LogRide(context.Background(), req)
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))

	// nothing reached the repository
	assert.Empty(t, repo.rides)
}

func TestLogRideDatabaseFailure(t *testing.T) {
	repo := newFakeUserRepo()
	repo.logErr = errors.New("deadlock detected")
	svc := newService(repo)

	err := svc.LogRide(context.Background(), validLogRideRequest())
	assert.True(t, errors.Is(err, apperrors.ErrDatabase))
	assert.NotContains(t, err.Error(), "deadlock")
}
