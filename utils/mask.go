package utils

import "strings"

// MaskPhone 对手机号脱敏，保留前3位和后4位，中间用 **** 替代。
// - 仅处理11位手机号，其他长度原样返回（避免越界）。
func MaskPhone(phone string) string {
	if len(phone) != 11 {
		return phone
	}
	return phone[:3] + "****" + phone[7:]
}

// MaskIP 对 IPv4 地址脱敏，将最后一段替换为 *。
// - 非标准格式（非四段）原样返回，IPv6 暂不脱敏。
func MaskIP(ip string) string {
	parts := strings.Split(ip, ".")
	if len(parts) != 4 {
		return ip
	}
	parts[3] = "*"
	return strings.Join(parts, ".")
}
