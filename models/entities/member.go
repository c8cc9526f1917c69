package entities

import (
	"time"

	"github.com/Xushengqwer/member_hub/models/enums"
)

// Member 会员核心信息，对应 member 表。
// - 手机号是会员的唯一标识，注册后不可变更。
// - 会员记录从不物理删除，注销通过 account_status 状态流转实现。
type Member struct {
	// 会员ID，自增主键
	ID int64 `gorm:"primaryKey;autoIncrement;column:id"`

	// 手机号，唯一索引，作为登录标识
	Phone string `gorm:"type:varchar(11);not null;uniqueIndex:uk_phone;column:phone"`

	// 密码（BCrypt 哈希）
	Password string `gorm:"type:varchar(255);not null;column:password"`

	// 昵称
	Nickname string `gorm:"type:varchar(64);column:nickname"`

	// 头像URL
	Avatar string `gorm:"type:varchar(255);column:avatar"`

	// 性别（0=未知, 1=男, 2=女）
	Gender enums.Gender `gorm:"type:tinyint;default:0;column:gender"`

	// 出生日期，可以为空
	Birthday *time.Time `gorm:"type:date;column:birthday"`

	// 注册方式（PHONE/WECHAT/ALIPAY/QQ）
	RegisterType string `gorm:"type:varchar(16);column:register_type"`

	// 注册时间
	RegisterTime time.Time `gorm:"type:datetime;column:register_time"`

	// 账号状态（1=正常, 2=冻结, 3=未激活, 4=已注销）
	AccountStatus enums.AccountStatus `gorm:"type:tinyint;default:1;column:account_status"`

	// 最后登录时间
	LastLoginTime *time.Time `gorm:"type:datetime;column:last_login_time"`

	// 最后登录IP
	LastLoginIP string `gorm:"type:varchar(64);column:last_login_ip"`

	// 创建时间，默认当前时间戳
	CreatedAt time.Time `gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:create_time"`

	// 更新时间，默认当前时间戳，自动更新
	UpdatedAt time.Time `gorm:"type:datetime;default:CURRENT_TIMESTAMP;autoUpdateTime;column:update_time"`
}

// TableName 指定表名为 member
func (Member) TableName() string {
	return "member"
}
