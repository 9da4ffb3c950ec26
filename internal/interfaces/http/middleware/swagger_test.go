package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func swaggerRouter(cfg SwaggerConfig, jwt gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg, jwt), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	return router
}

func TestSwaggerProtection(t *testing.T) {
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	allow := func(c *gin.Context) {}

	tests := []struct {
		name       string
		cfg        SwaggerConfig
		jwt        gin.HandlerFunc
		remoteAddr string
		want       int
	}{
		{"disabled", SwaggerConfig{}, nil, "127.0.0.1:1", http.StatusNotFound},
		{"open", SwaggerConfig{Enabled: true}, nil, "10.1.1.1:1", http.StatusOK},
		{"allowed ip", SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1"}}, nil, "127.0.0.1:1", http.StatusOK},
		{"allowed cidr", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}, nil, "10.2.3.4:1", http.StatusOK},
		{"denied ip", SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1"}}, nil, "192.168.1.1:1", http.StatusForbidden},
		{"auth rejected", SwaggerConfig{Enabled: true, RequireAuth: true}, deny, "127.0.0.1:1", http.StatusUnauthorized},
		{"auth accepted", SwaggerConfig{Enabled: true, RequireAuth: true}, allow, "127.0.0.1:1", http.StatusOK},
		{"ip checked before auth", SwaggerConfig{Enabled: true, RequireAuth: true, AllowedIPs: []string{"127.0.0.1"}}, allow, "192.168.1.1:1", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
			req.RemoteAddr = tt.remoteAddr
			w := httptest.NewRecorder()

			swaggerRouter(tt.cfg, tt.jwt).ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestIPAllowlist(t *testing.T) {
	l := parseAllowlist([]string{"192.168.1.1", "10.0.0.0/8", "::1", "not-an-ip", "300.0.0.0/8"})

	assert.Len(t, l.ips, 2)
	assert.Len(t, l.nets, 1)
	assert.True(t, l.contains(net.ParseIP("192.168.1.1")))
	assert.True(t, l.contains(net.ParseIP("10.200.0.5")))
	assert.True(t, l.contains(net.ParseIP("::1")))
	assert.False(t, l.contains(net.ParseIP("11.0.0.5")))
	assert.False(t, l.contains(nil))
}
