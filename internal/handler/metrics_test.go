package handler

import "testing"

func TestSanitizeEndpoint(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/dashboard", "/api/dashboard"},
		{"/api/chat/transcripts", "/api/chat/transcripts"},
		{"/health/ready", "/health/ready"},
		{"/api/unknown/123", "/api/other"},
		{"/favicon.ico", "other"},
	}
	for _, tt := range tests {
		if got := sanitizeEndpoint(tt.path); got != tt.want {
			t.Errorf("sanitizeEndpoint(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
