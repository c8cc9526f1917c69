package vo

// AddressVO 收货地址视图。
type AddressVO struct {
	AddressID     int64  `json:"address_id"`     // 地址ID
	ReceiverName  string `json:"receiver_name"`  // 收件人姓名
	ReceiverPhone string `json:"receiver_phone"` // 收件人手机号（脱敏）
	ProvinceCode  string `json:"province_code"`  // 省份编码
	ProvinceName  string `json:"province_name"`  // 省份名称
	CityCode      string `json:"city_code"`      // 城市编码
	CityName      string `json:"city_name"`      // 城市名称
	DistrictCode  string `json:"district_code"`  // 区县编码
	DistrictName  string `json:"district_name"`  // 区县名称
	DetailAddress string `json:"detail_address"` // 详细地址
	PostalCode    string `json:"postal_code"`    // 邮政编码
	IsDefault     bool   `json:"is_default"`     // 是否默认地址
}
