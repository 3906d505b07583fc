package ratelimit

import "testing"

func TestToInt(t *testing.T) {
	t.Parallel()

	t.Run("parses redis int64 replies", func(t *testing.T) {
		// Lua numbers come back from Eval as int64
		got, err := toInt(int64(42))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != 42 {
			t.Fatalf("expected 42, got %d", got)
		}
	})

	t.Run("parses numeric strings", func(t *testing.T) {
		got, err := toInt("7")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != 7 {
			t.Fatalf("expected 7, got %d", got)
		}
	})

	t.Run("rejects other types", func(t *testing.T) {
		if _, err := toInt(3.5); err == nil {
			t.Fatal("expected error for float value")
		}
		if _, err := toInt(nil); err == nil {
			t.Fatal("expected error for nil value")
		}
	})
}

func TestIsWhitelisted(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(nil, &Config{WhitelistedIPs: []string{"10.0.0.1"}})

	if !limiter.isWhitelisted("10.0.0.1") {
		t.Fatal("expected whitelisted IP to match")
	}
	if limiter.isWhitelisted("10.0.0.2") {
		t.Fatal("expected unlisted IP to not match")
	}
}

func TestGetLimit(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(nil, &Config{
		DefaultRequests: 1,
		PublicRequests:  2,
		AuthRequests:    3,
		SeatRequests:    4,
		AdminRequests:   5,
		HealthRequests:  6,
	})

	cases := map[RateLimitType]int{
		RateLimitTypeDefault: 1,
		RateLimitTypePublic:  2,
		RateLimitTypeAuth:    3,
		RateLimitTypeSeat:    4,
		RateLimitTypeAdmin:   5,
		RateLimitTypeHealth:  6,
	}
	for limitType, want := range cases {
		if got := limiter.getLimit(limitType); got != want {
			t.Fatalf("%s: expected limit %d, got %d", limitType, want, got)
		}
	}
}
