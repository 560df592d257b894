package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/golf/internal/config"
)

func TestCourseDeleteRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, Services{}, &config.Config{Environment: "development", JWTSecret: "test-secret"})

	var found bool
	for _, route := range r.Routes() {
		if route.Method != http.MethodDelete {
			continue
		}
		switch route.Path {
		case "/api/v1/courses/:id":
			found = true
		default:
			t.Errorf("unexpected DELETE route %s", route.Path)
		}
	}
	if !found {
		t.Fatal("DELETE /api/v1/courses/:id is not registered")
	}

	tests := []struct {
		name, auth string
	}{
		{"no token", ""},
		{"bad token", "Bearer not-a-jwt"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/courses/1", nil)
		if tt.auth != "" {
			req.Header.Set("Authorization", tt.auth)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", tt.name, w.Code)
		}
	}
}
