package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runWithRole(t *testing.T, role interface{}, allowed ...string) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	h := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec.Code
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		role    interface{}
		allowed []string
		want    int
	}{
		{name: "allowed role", role: "admin", allowed: []string{"admin"}, want: http.StatusOK},
		{name: "one of several", role: "teacher", allowed: []string{"teacher", "admin"}, want: http.StatusOK},
		{name: "wrong role", role: "student", allowed: []string{"admin"}, want: http.StatusForbidden},
		{name: "missing role", role: nil, allowed: []string{"admin"}, want: http.StatusForbidden},
		{name: "non-string role", role: 42, allowed: []string{"admin"}, want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runWithRole(t, tt.role, tt.allowed...); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}
