// pkg/util/ip.go
package util

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// clientIPHeaders 按优先级排列；值可能是逗号分隔的代理链，取第一个
var clientIPHeaders = []string{
	"X-Forwarded-For",
	"X-Real-IP",
	"CF-Connecting-IP", // Cloudflare
	"EO-Connecting-IP", // 腾讯云 EdgeOne
	"Ali-CDN-Real-IP",  // 阿里云 CDN/ESA
	"True-Client-IP",
	"X-Client-IP",
}

// GetRealClientIP 获取客户端真实IP地址，头部均无效时回退到 gin 的 ClientIP
func GetRealClientIP(c *gin.Context) string {
	for _, header := range clientIPHeaders {
		value := c.GetHeader(header)
		if value == "" {
			continue
		}
		first := strings.TrimSpace(strings.Split(value, ",")[0])
		if IsValidIP(first) {
			return first
		}
	}
	return c.ClientIP()
}

// IsValidIP 验证IP地址是否有效
func IsValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}
