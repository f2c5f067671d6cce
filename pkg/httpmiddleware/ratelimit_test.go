package httpmiddleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := newRateLimiter(RateLimitConfig{
		Max:    3,
		Window: time.Minute,
	})
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, _, allowed := rl.allow("1.2.3.4", now)
		require.True(t, allowed, "request %d should be allowed", i+1)
	}
	_, _, allowed := rl.allow("1.2.3.4", now)
	assert.False(t, allowed, "fourth request should be rejected")

	// Other keys are tracked independently.
	_, _, allowed = rl.allow("5.6.7.8", now)
	assert.True(t, allowed)
}

func TestRateLimiterWindowRotation(t *testing.T) {
	rl := newRateLimiter(RateLimitConfig{
		Max:    2,
		Window: time.Minute,
	})
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		_, _, allowed := rl.allow("k", now)
		require.True(t, allowed)
	}
	_, _, allowed := rl.allow("k", now)
	require.False(t, allowed)

	// Two full windows later the previous count no longer weighs in.
	later := now.Add(2 * time.Minute)
	_, _, allowed = rl.allow("k", later)
	assert.True(t, allowed)
}

func TestRateLimiterRemaining(t *testing.T) {
	rl := newRateLimiter(RateLimitConfig{
		Max:    5,
		Window: time.Minute,
	})
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	remaining, _, allowed := rl.allow("k", now)
	require.True(t, allowed)
	assert.Equal(t, 4, remaining)

	remaining, _, _ = rl.allow("k", now)
	assert.Equal(t, 3, remaining)
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := newRateLimiter(RateLimitConfig{
		Max:    1,
		Window: time.Minute,
	})
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	rl.allow("stale", now)
	rl.allow("fresh", now.Add(3*time.Minute))

	rl.cleanup(now.Add(3 * time.Minute))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.entries, "stale")
	assert.Contains(t, rl.entries, "fresh")
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "10.0.0.1:51234",
			want:       "10.0.0.1",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.1:51234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for chain keeps first",
			remoteAddr: "10.0.0.1:51234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.0.0.1:51234",
			headers:    map[string]string{"X-Real-IP": "198.51.100.4"},
			want:       "198.51.100.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := http.NewRequest(http.MethodGet, "/", nil)
			require.NoError(t, err)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(r))
		})
	}
}
