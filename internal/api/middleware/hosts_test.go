package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestTrustedHosts(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		host    string
		want    int
	}{
		{"exact match", []string{"api.example.com"}, "api.example.com", http.StatusOK},
		{"port ignored", []string{"api.example.com"}, "api.example.com:8080", http.StatusOK},
		{"case insensitive", []string{"API.example.com"}, "api.EXAMPLE.com", http.StatusOK},
		{"subdomain wildcard", []string{"*.example.com"}, "eu.api.example.com", http.StatusOK},
		{"wildcard needs a subdomain", []string{"*.example.com"}, "example.com", http.StatusBadRequest},
		{"any host", []string{"*"}, "whatever.test", http.StatusOK},
		{"foreign host", []string{"api.example.com"}, "evil.test", http.StatusBadRequest},
		{"suffix lookalike", []string{"*.example.com"}, "attacker-example.com", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Pre(TrustedHosts(tt.allowed))
			e.GET("/health", func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Host = tt.host
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("host %q: expected %d, got %d", tt.host, tt.want, rec.Code)
			}
		})
	}
}
