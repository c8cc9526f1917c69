package dto

import "github.com/Xushengqwer/member_hub/models/enums"

// UpdateMemberData 定义更新会员资料的数据传输对象。
// - 所有字段均为指针，nil 表示不修改该字段（显式 patch 语义）。
// - 手机号是不可变标识，不在可更新字段之列。
type UpdateMemberData struct {
	Nickname *string       `json:"nickname" binding:"omitempty,max=64"`              // 昵称
	Gender   *enums.Gender `json:"gender" binding:"omitempty,Gender"`                // 性别
	Birthday *string       `json:"birthday" binding:"omitempty,datetime=2006-01-02"` // 出生日期，格式 YYYY-MM-DD
}
