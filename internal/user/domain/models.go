package domain

import "time"

type RegisterRequest struct {
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
}

type LoginRequest struct {
	Username string `json:"username"`
}

type VerifyRequest struct {
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
}

// LogRideRequest carries the raw ride payload. Datetimes arrive as strings
// and are validated before any database work happens.
type LogRideRequest struct {
	Username        string  `json:"username"`
	RequestDatetime string  `json:"request_datetime"`
	OnSceneDatetime string  `json:"on_scene_datetime"`
	TripTime        float64 `json:"trip_time"`
	PULocationID    int     `json:"pu_location_id"`
	DOLocationID    int     `json:"do_location_id"`
	TripMiles       float64 `json:"trip_miles"`
	Tolls           float64 `json:"tolls"`
	TotalFare       float64 `json:"total_fare"`
	DriverPay       float64 `json:"driver_pay"`
	Tips            float64 `json:"tips"`
}

// Ride is the validated form of LogRideRequest. RequestHour is the request
// time truncated to the top of the hour, the join key against hourly weather.
type Ride struct {
	Username        string
	RequestDatetime time.Time
	OnSceneDatetime time.Time
	TripTime        float64
	PULocationID    int
	DOLocationID    int
	TripMiles       float64
	Tolls           float64
	TotalFare       float64
	DriverPay       float64
	Tips            float64
	RequestHour     time.Time
}

