package entities

import (
	"time"

	"github.com/Xushengqwer/member_hub/models/enums"
)

// LoginLog 登录记录，对应 login_log 表。
// - 记录由异步消费者写入，主登录/注册流程不直接落库。
type LoginLog struct {
	// 主键
	ID int64 `gorm:"primaryKey;autoIncrement;column:id"`

	// 会员ID，普通索引
	MemberID int64 `gorm:"not null;index:idx_member_id;column:member_id"`

	// 登录方式（REGISTER/PASSWORD/SMS）
	LoginType enums.LoginType `gorm:"type:varchar(16);column:login_type"`

	// 登录时间
	LoginTime time.Time `gorm:"type:datetime;column:login_time"`

	// 登录IP
	LoginIP string `gorm:"type:varchar(64);column:login_ip"`

	// IP地域（如"北京市朝阳区"），未接入解析服务时为空
	IPRegion string `gorm:"type:varchar(64);column:ip_region"`

	// 设备类型（IOS/ANDROID/WEB/UNKNOWN）
	DeviceType string `gorm:"type:varchar(16);column:device_type"`

	// 设备唯一标识
	DeviceID string `gorm:"type:varchar(64);column:device_id"`

	// 登录状态（1=成功, 2=失败）
	LoginStatus int `gorm:"type:tinyint;column:login_status"`

	// 失败原因（如"密码错误"）
	FailReason string `gorm:"type:varchar(64);column:fail_reason"`
}

// TableName 指定表名为 login_log
func (LoginLog) TableName() string {
	return "login_log"
}
