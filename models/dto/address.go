package dto

// AddAddressData 定义新增收货地址的数据传输对象
type AddAddressData struct {
	ReceiverName  string `json:"receiverName" binding:"required,max=64"`        // 收货人姓名
	ReceiverPhone string `json:"receiverPhone" binding:"required,ChinesePhone"` // 收货人手机号
	ProvinceCode  string `json:"provinceCode" binding:"omitempty,max=16"`       // 省份编码
	ProvinceName  string `json:"provinceName" binding:"omitempty,max=64"`       // 省份名称
	CityCode      string `json:"cityCode" binding:"omitempty,max=16"`           // 城市编码
	CityName      string `json:"cityName" binding:"omitempty,max=64"`           // 城市名称
	DistrictCode  string `json:"districtCode" binding:"omitempty,max=16"`       // 区县编码
	DistrictName  string `json:"districtName" binding:"omitempty,max=64"`       // 区县名称
	DetailAddress string `json:"detailAddress" binding:"required,max=255"`      // 详细地址
	PostalCode    string `json:"postalCode" binding:"omitempty,max=16"`         // 邮编
	IsDefault     bool   `json:"isDefault"`                                     // 是否设为默认地址
}

// UpdateAddressData 定义更新收货地址的数据传输对象。
// - 除 AddressID 外所有字段均为指针，nil 表示不修改该字段（显式 patch 语义）。
type UpdateAddressData struct {
	AddressID     int64   `json:"addressId" binding:"required"`                   // 地址ID
	ReceiverName  *string `json:"receiverName" binding:"omitempty,max=64"`        // 收货人姓名
	ReceiverPhone *string `json:"receiverPhone" binding:"omitempty,ChinesePhone"` // 收货人手机号
	ProvinceCode  *string `json:"provinceCode" binding:"omitempty,max=16"`        // 省份编码
	ProvinceName  *string `json:"provinceName" binding:"omitempty,max=64"`        // 省份名称
	CityCode      *string `json:"cityCode" binding:"omitempty,max=16"`            // 城市编码
	CityName      *string `json:"cityName" binding:"omitempty,max=64"`            // 城市名称
	DistrictCode  *string `json:"districtCode" binding:"omitempty,max=16"`        // 区县编码
	DistrictName  *string `json:"districtName" binding:"omitempty,max=64"`        // 区县名称
	DetailAddress *string `json:"detailAddress" binding:"omitempty,max=255"`      // 详细地址
	PostalCode    *string `json:"postalCode" binding:"omitempty,max=16"`          // 邮编
	IsDefault     *bool   `json:"isDefault"`                                      // 是否默认地址
}
