package util

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateToHour(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"mid hour", "2024-01-01T08:15:00Z", "2024-01-01T08:00:00Z"},
		{"top of hour unchanged", "2024-01-01T08:00:00Z", "2024-01-01T08:00:00Z"},
		{"last second of hour", "2024-01-01T08:59:59Z", "2024-01-01T08:00:00Z"},
		{"offset zone normalized to UTC", "2024-01-01T03:15:00-05:00", "2024-01-01T08:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := time.Parse(time.RFC3339, tt.in)
			require.NoError(t, err)
			want, err := time.Parse(time.RFC3339, tt.want)
			require.NoError(t, err)

			assert.True(t, TruncateToHour(in).Equal(want),
				"got %s, want %s", TruncateToHour(in), want)
		})
	}
}

func TestGenerateUUID(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := GenerateUUID()
		require.NoError(t, err)
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "duplicate UUID generated")
		seen[id] = true
	}
}
