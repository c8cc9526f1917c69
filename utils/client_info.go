package utils

import (
	"strings"

	"github.com/Xushengqwer/member_hub/models/dto"
	"github.com/gin-gonic/gin"
)

// ExtractClientInfo 从请求中提取客户端信息（IP、设备类型、设备标识）。
// - IP 优先取 X-Forwarded-For 链路中的第一个地址，否则回退到 gin 的 ClientIP。
// - 设备类型根据 User-Agent 粗粒度识别，仅用于登录日志，不参与业务判断。
func ExtractClientInfo(c *gin.Context) dto.ClientInfo {
	return dto.ClientInfo{
		IP:         clientIP(c),
		DeviceType: deviceTypeFromUA(c.GetHeader("User-Agent")),
		DeviceID:   c.GetHeader("X-Device-Id"),
	}
}

// clientIP 解析客户端真实 IP。
func clientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		// X-Forwarded-For 可能是逗号分隔的链路，第一个为最初的客户端地址
		if idx := strings.Index(forwarded, ","); idx > 0 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return strings.TrimSpace(forwarded)
	}
	return c.ClientIP()
}

// deviceTypeFromUA 根据 User-Agent 识别设备类型。
func deviceTypeFromUA(ua string) string {
	lower := strings.ToLower(ua)
	switch {
	case strings.Contains(lower, "android"):
		return "ANDROID"
	case strings.Contains(lower, "iphone"), strings.Contains(lower, "ipad"), strings.Contains(lower, "ios"):
		return "IOS"
	case lower == "":
		return "UNKNOWN"
	default:
		return "WEB"
	}
}
