package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func swaggerRouter(cfg SwaggerConfig) *gin.Engine {
	router := gin.New()
	docs := router.Group("/swagger", SwaggerProtection(cfg))
	docs.GET("/*any", func(c *gin.Context) { c.String(http.StatusOK, "docs") })
	return router
}

func serveFrom(router *gin.Engine, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = remote
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSwaggerProtection_Disabled(t *testing.T) {
	w := serveFrom(swaggerRouter(SwaggerConfig{Enabled: false}), "127.0.0.1:1000")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
}

func TestSwaggerProtection_Open(t *testing.T) {
	w := serveFrom(swaggerRouter(SwaggerConfig{Enabled: true}), "203.0.113.9:1000")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "docs", w.Body.String())
}

func TestSwaggerProtection_Allowlist(t *testing.T) {
	router := swaggerRouter(SwaggerConfig{
		Enabled:    true,
		AllowedIPs: []string{"10.0.0.0/8", "192.168.1.20", "not-an-ip"},
	})

	assert.Equal(t, http.StatusOK, serveFrom(router, "10.1.2.3:5000").Code)
	assert.Equal(t, http.StatusOK, serveFrom(router, "192.168.1.20:5000").Code)

	w := serveFrom(router, "192.168.1.21:5000")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_FORBIDDEN")
}

func TestIsIPAllowed(t *testing.T) {
	_, network, _ := net.ParseCIDR("172.16.0.0/12")

	assert.True(t, isIPAllowed(net.ParseIP("172.20.1.1"), nil, []*net.IPNet{network}))
	assert.False(t, isIPAllowed(net.ParseIP("172.32.0.1"), nil, []*net.IPNet{network}))
	assert.False(t, isIPAllowed(nil, []net.IP{net.ParseIP("::1")}, nil))
	assert.True(t, isIPAllowed(net.ParseIP("::1"), []net.IP{net.ParseIP("::1")}, nil))
}
