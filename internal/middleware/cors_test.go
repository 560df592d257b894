package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/golf/internal/config"
)

func TestOriginAllowed(t *testing.T) {
	dev := &config.Config{Environment: "development"}
	prod := &config.Config{Environment: "production", FrontendURL: "https://play.example.com"}

	tests := []struct {
		cfg    *config.Config
		origin string
		want   bool
	}{
		{dev, "http://localhost:5173", true},
		{dev, "http://127.0.0.1:3000", true},
		{dev, "https://evil.example.com", false},
		{prod, "https://golf.playmatatu.com", true},
		{prod, "https://play.example.com", true},
		{prod, "http://localhost:5173", false},
	}
	for _, tt := range tests {
		if got := originAllowed(tt.cfg, tt.origin); got != tt.want {
			t.Errorf("originAllowed(%s, %q) = %v, want %v", tt.cfg.Environment, tt.origin, got, tt.want)
		}
	}
}

func TestWebSocketCORSCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Environment: "production"}
	r := gin.New()
	r.GET("/ws", WebSocketCORSCheck(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		upgrade bool
		origin  string
		want    int
	}{
		{false, "", http.StatusOK},
		{true, "", http.StatusBadRequest},
		{true, "https://evil.example.com", http.StatusForbidden},
		{true, "https://golf.playmatatu.com", http.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if tt.upgrade {
			req.Header.Set("Connection", "Upgrade")
			req.Header.Set("Upgrade", "websocket")
		}
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("upgrade=%v origin=%q: got %d, want %d", tt.upgrade, tt.origin, w.Code, tt.want)
		}
	}
}
