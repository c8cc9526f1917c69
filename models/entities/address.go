package entities

import "time"

// Address 收货地址，对应 address 表。
// - 每个地址归属于唯一的会员（member_id），归属校验在服务层完成。
// - 业务约束：同一会员最多只有一条 is_default = 1 的记录。
type Address struct {
	// 地址ID，自增主键
	ID int64 `gorm:"primaryKey;autoIncrement;column:id"`

	// 归属会员ID，普通索引
	MemberID int64 `gorm:"not null;index:idx_member_id;column:member_id"`

	// 收货人姓名
	ReceiverName string `gorm:"type:varchar(64);not null;column:receiver_name"`

	// 收货人手机号
	ReceiverPhone string `gorm:"type:varchar(11);not null;column:receiver_phone"`

	// 省份编码/名称
	ProvinceCode string `gorm:"type:varchar(16);column:province_code"`
	ProvinceName string `gorm:"type:varchar(64);column:province_name"`

	// 城市编码/名称
	CityCode string `gorm:"type:varchar(16);column:city_code"`
	CityName string `gorm:"type:varchar(64);column:city_name"`

	// 区县编码/名称
	DistrictCode string `gorm:"type:varchar(16);column:district_code"`
	DistrictName string `gorm:"type:varchar(64);column:district_name"`

	// 详细地址
	DetailAddress string `gorm:"type:varchar(255);not null;column:detail_address"`

	// 邮编
	PostalCode string `gorm:"type:varchar(16);column:postal_code"`

	// 是否默认地址（0=否, 1=是）
	IsDefault int `gorm:"type:tinyint;default:0;column:is_default"`

	// 创建时间，默认当前时间戳
	CreatedAt time.Time `gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:create_time"`

	// 更新时间，默认当前时间戳，自动更新
	UpdatedAt time.Time `gorm:"type:datetime;default:CURRENT_TIMESTAMP;autoUpdateTime;column:update_time"`
}

// TableName 指定表名为 address
func (Address) TableName() string {
	return "address"
}
