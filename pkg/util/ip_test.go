package util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetRealClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"X-Forwarded-For 取第一个", map[string]string{"X-Forwarded-For": "1.1.1.1, 2.2.2.2", "X-Real-IP": "9.9.9.9"}, "3.3.3.3:1234", "1.1.1.1"},
		{"无效的 X-Forwarded-For 被跳过", map[string]string{"X-Forwarded-For": "unknown", "X-Real-IP": "9.9.9.9"}, "3.3.3.3:1234", "9.9.9.9"},
		{"Cloudflare", map[string]string{"CF-Connecting-IP": "2001:db8::1"}, "3.3.3.3:1234", "2001:db8::1"},
		{"RemoteAddr 兜底", nil, "3.3.3.3:1234", "3.3.3.3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, GetRealClientIP(c))
		})
	}
}

func TestIsValidIP(t *testing.T) {
	assert.True(t, IsValidIP("127.0.0.1"))
	assert.True(t, IsValidIP("::1"))
	assert.False(t, IsValidIP("localhost"))
}
