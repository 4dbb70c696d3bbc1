package util

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"
)

func GenerateUUID() (string, error) {
	b := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}

	// Set version (4) and variant bits to match UUID v4 format
	b[6] = (b[6] & 0x0f) | 0x40 // Version 4
	b[8] = (b[8] & 0x3f) | 0x80 // Variant 10

	uuid := fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		b[0:4],
		b[4:6],
		b[6:8],
		b[8:10],
		b[10:16])

	return uuid, nil
}

// TruncateToHour buckets a timestamp to the top of its hour in UTC. Ride
// request times are bucketed this way to join against hourly weather rows.
func TruncateToHour(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}
