package dto

import (
	"time"

	"github.com/Xushengqwer/member_hub/models/enums"
)

// LoginLogEvent 定义登录事件消息体。
// - 生产者在注册/登录的主流程外异步投递到 Redis 队列，消费者取出后落库。
// - 序列化为 JSON，字段需保持前后兼容。
type LoginLogEvent struct {
	MemberID    int64           `json:"member_id"`    // 会员ID
	LoginType   enums.LoginType `json:"login_type"`   // 登录方式
	LoginTime   time.Time       `json:"login_time"`   // 登录时间
	LoginIP     string          `json:"login_ip"`     // 登录IP（明文，落库时由消费者决定是否脱敏）
	DeviceType  string          `json:"device_type"`  // 设备类型
	DeviceID    string          `json:"device_id"`    // 设备标识
	LoginStatus int             `json:"login_status"` // 登录结果：1-成功 2-失败
	FailReason  string          `json:"fail_reason"`  // 失败原因，成功时为空
}
