package enums

// Gender 表示会员性别的枚举类型
// - 注册时默认未知，会员可在资料更新中修改
type Gender uint

const (
	Unknown Gender = 0 // 未知
	Male    Gender = 1 // 男性
	Female  Gender = 2 // 女性
)
