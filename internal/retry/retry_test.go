package retry

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"server error", fmt.Errorf("API returned status 503"), true},
		{"bad gateway", fmt.Errorf("API returned status 502"), true},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"io timeout", errors.New("read: i/o timeout"), true},
		{"not found", fmt.Errorf("API returned status 404"), false},
		{"unauthorized", fmt.Errorf("API returned status 401"), false},
		{"generic", errors.New("something broke"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.expected {
				t.Errorf("IsRetryable(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestIsRateLimited(t *testing.T) {
	if !IsRateLimited(fmt.Errorf("API returned status 429")) {
		t.Error("429 should be rate limited")
	}
	if IsRateLimited(fmt.Errorf("API returned status 500")) {
		t.Error("500 should not be rate limited")
	}
	if IsRateLimited(nil) {
		t.Error("nil should not be rate limited")
	}
}
