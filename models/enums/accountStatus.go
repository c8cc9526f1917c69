package enums

// AccountStatus 会员账号状态枚举
// 与 member 表的 account_status 字段取值保持一致
type AccountStatus int

const (
	StatusActive      AccountStatus = 1 // 正常
	StatusLocked      AccountStatus = 2 // 冻结（锁定）
	StatusUnactivated AccountStatus = 3 // 未激活
	StatusCanceled    AccountStatus = 4 // 已注销
)
