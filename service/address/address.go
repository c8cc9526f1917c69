package address

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/member_hub/errs"
	"github.com/Xushengqwer/member_hub/models/dto"
	"github.com/Xushengqwer/member_hub/models/entities"
	"github.com/Xushengqwer/member_hub/models/vo"
	"github.com/Xushengqwer/member_hub/repository/mysql"
	"github.com/Xushengqwer/member_hub/utils"
)

// maxAddressCount 单个会员允许保存的地址数量上限。
const maxAddressCount = 20

// AddressService 定义了收货地址管理的服务接口。
// - 核心约束：同一会员最多只有一个默认地址，"先清除旧默认，再写入新默认"在事务中完成。
// - 所有变更操作先加载目标地址并校验归属，越权访问返回 403 业务错误。
type AddressService interface {
	// ListAddresses 查询会员的全部收货地址，默认地址在前，其余按创建时间倒序。
	// - 收货人手机号脱敏返回。
	ListAddresses(ctx context.Context, memberID int64) ([]vo.AddressVO, error)

	// AddAddress 新增收货地址。
	// - 会员的第一条地址自动设为默认；请求设为默认时先清除旧默认。
	AddAddress(ctx context.Context, memberID int64, data dto.AddAddressData) (vo.AddressVO, error)

	// UpdateAddress 更新收货地址，patch 语义，nil 字段不修改。
	// - 将地址改为默认时同样先清除旧默认。
	UpdateAddress(ctx context.Context, memberID int64, data dto.UpdateAddressData) (vo.AddressVO, error)

	// SetDefaultAddress 将指定地址设为会员的默认地址。
	SetDefaultAddress(ctx context.Context, memberID int64, addressID int64) error

	// DeleteAddress 删除指定收货地址。
	// - 删除默认地址不会自动提升其他地址为默认。
	DeleteAddress(ctx context.Context, memberID int64, addressID int64) error
}

// addressService 是 AddressService 接口的实现。
type addressService struct {
	addressRepo mysql.AddressRepository // 地址仓库
	db          *gorm.DB                // 数据库连接，用于开启事务
	logger      *core.ZapLogger         // 日志记录器
}

// NewAddressService 创建 AddressService 实例。
func NewAddressService(
	addressRepo mysql.AddressRepository,
	db *gorm.DB,
	logger *core.ZapLogger,
) AddressService {
	return &addressService{
		addressRepo: addressRepo,
		db:          db,
		logger:      logger,
	}
}

// toAddressVO 将地址实体转换为脱敏后的视图。
func toAddressVO(address *entities.Address) vo.AddressVO {
	return vo.AddressVO{
		AddressID:     address.ID,
		ReceiverName:  address.ReceiverName,
		ReceiverPhone: utils.MaskPhone(address.ReceiverPhone),
		ProvinceCode:  address.ProvinceCode,
		ProvinceName:  address.ProvinceName,
		CityCode:      address.CityCode,
		CityName:      address.CityName,
		DistrictCode:  address.DistrictCode,
		DistrictName:  address.DistrictName,
		DetailAddress: address.DetailAddress,
		PostalCode:    address.PostalCode,
		IsDefault:     address.IsDefault == 1,
	}
}

// loadOwnedAddress 加载地址并校验归属。
// - 地址不存在返回 404 业务错误，归属他人返回 403 业务错误。
func (s *addressService) loadOwnedAddress(ctx context.Context, operation string, memberID, addressID int64) (*entities.Address, error) {
	address, err := s.addressRepo.GetAddressByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, errs.NewNotFound("地址不存在")
		}
		s.logger.Error("查询地址失败",
			zap.String("operation", operation),
			zap.Int64("addressID", addressID),
			zap.Error(err),
		)
		return nil, commonerrors.ErrSystemError
	}
	if address.MemberID != memberID {
		s.logger.Warn("越权访问他人地址",
			zap.String("operation", operation),
			zap.Int64("memberID", memberID),
			zap.Int64("addressID", addressID),
		)
		return nil, errs.NewForbidden("无权操作该地址")
	}
	return address, nil
}

// ListAddresses 实现接口方法，查询地址列表。
func (s *addressService) ListAddresses(ctx context.Context, memberID int64) ([]vo.AddressVO, error) {
	const operation = "AddressService.ListAddresses"

	addresses, err := s.addressRepo.ListByMember(ctx, memberID)
	if err != nil {
		s.logger.Error("查询地址列表失败",
			zap.String("operation", operation),
			zap.Int64("memberID", memberID),
			zap.Error(err),
		)
		return nil, commonerrors.ErrSystemError
	}

	result := make([]vo.AddressVO, 0, len(addresses))
	for _, address := range addresses {
		result = append(result, toAddressVO(address))
	}
	return result, nil
}

// AddAddress 实现接口方法，新增地址。
func (s *addressService) AddAddress(ctx context.Context, memberID int64, data dto.AddAddressData) (vo.AddressVO, error) {
	const operation = "AddressService.AddAddress"
	emptyResult := vo.AddressVO{}

	// 1. 校验地址数量上限
	count, err := s.addressRepo.CountByMember(ctx, memberID)
	if err != nil {
		s.logger.Error("统计地址数量失败",
			zap.String("operation", operation),
			zap.Int64("memberID", memberID),
			zap.Error(err),
		)
		return emptyResult, commonerrors.ErrSystemError
	}
	if count >= maxAddressCount {
		return emptyResult, errs.NewBadRequest(fmt.Sprintf("收货地址最多保存 %d 条", maxAddressCount))
	}

	// 2. 第一条地址自动设为默认
	isDefault := data.IsDefault
	if count == 0 {
		isDefault = true
	}

	address := &entities.Address{
		MemberID:      memberID,
		ReceiverName:  data.ReceiverName,
		ReceiverPhone: data.ReceiverPhone,
		ProvinceCode:  data.ProvinceCode,
		ProvinceName:  data.ProvinceName,
		CityCode:      data.CityCode,
		CityName:      data.CityName,
		DistrictCode:  data.DistrictCode,
		DistrictName:  data.DistrictName,
		DetailAddress: data.DetailAddress,
		PostalCode:    data.PostalCode,
	}
	if isDefault {
		address.IsDefault = 1
	}

	// 3. 在事务中先清除旧默认，再插入新地址
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if isDefault {
			if err := s.addressRepo.ClearDefault(ctx, tx, memberID); err != nil {
				return fmt.Errorf("事务中清除旧默认地址失败: %w", err)
			}
		}
		if err := s.addressRepo.CreateAddress(ctx, tx, address); err != nil {
			return fmt.Errorf("事务中创建地址失败: %w", err)
		}
		return nil
	})
	if txErr != nil {
		s.logger.Error("新增地址事务失败",
			zap.String("operation", operation),
			zap.Int64("memberID", memberID),
			zap.Error(txErr),
		)
		return emptyResult, commonerrors.ErrSystemError
	}

	s.logger.Info("新增地址成功",
		zap.String("operation", operation),
		zap.Int64("memberID", memberID),
		zap.Int64("addressID", address.ID),
	)
	return toAddressVO(address), nil
}

// UpdateAddress 实现接口方法，更新地址。
func (s *addressService) UpdateAddress(ctx context.Context, memberID int64, data dto.UpdateAddressData) (vo.AddressVO, error) {
	const operation = "AddressService.UpdateAddress"
	emptyResult := vo.AddressVO{}

	// 1. 加载地址并校验归属
	if _, err := s.loadOwnedAddress(ctx, operation, memberID, data.AddressID); err != nil {
		return emptyResult, err
	}

	// 2. 组装待更新的列
	updates := make(map[string]interface{})
	setString := func(column string, value *string) {
		if value != nil {
			updates[column] = *value
		}
	}
	setString("receiver_name", data.ReceiverName)
	setString("receiver_phone", data.ReceiverPhone)
	setString("province_code", data.ProvinceCode)
	setString("province_name", data.ProvinceName)
	setString("city_code", data.CityCode)
	setString("city_name", data.CityName)
	setString("district_code", data.DistrictCode)
	setString("district_name", data.DistrictName)
	setString("detail_address", data.DetailAddress)
	setString("postal_code", data.PostalCode)

	makeDefault := data.IsDefault != nil && *data.IsDefault
	if data.IsDefault != nil {
		if *data.IsDefault {
			updates["is_default"] = 1
		} else {
			updates["is_default"] = 0
		}
	}

	// 3. 在事务中先清除旧默认，再落盘更新
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if makeDefault {
			if err := s.addressRepo.ClearDefault(ctx, tx, memberID); err != nil {
				return fmt.Errorf("事务中清除旧默认地址失败: %w", err)
			}
		}
		if err := s.addressRepo.UpdateAddress(ctx, tx, data.AddressID, updates); err != nil {
			return fmt.Errorf("事务中更新地址失败: %w", err)
		}
		return nil
	})
	if txErr != nil {
		s.logger.Error("更新地址事务失败",
			zap.String("operation", operation),
			zap.Int64("memberID", memberID),
			zap.Int64("addressID", data.AddressID),
			zap.Error(txErr),
		)
		return emptyResult, commonerrors.ErrSystemError
	}

	// 4. 回查并返回更新后的地址
	address, err := s.addressRepo.GetAddressByID(ctx, data.AddressID)
	if err != nil {
		s.logger.Error("回查地址失败",
			zap.String("operation", operation),
			zap.Int64("addressID", data.AddressID),
			zap.Error(err),
		)
		return emptyResult, commonerrors.ErrSystemError
	}
	return toAddressVO(address), nil
}

// SetDefaultAddress 实现接口方法，设置默认地址。
func (s *addressService) SetDefaultAddress(ctx context.Context, memberID int64, addressID int64) error {
	const operation = "AddressService.SetDefaultAddress"

	// 1. 加载地址并校验归属
	address, err := s.loadOwnedAddress(ctx, operation, memberID, addressID)
	if err != nil {
		return err
	}
	if address.IsDefault == 1 {
		// 已是默认地址，幂等返回
		return nil
	}

	// 2. 在事务中先清除旧默认，再标记新默认
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.addressRepo.ClearDefault(ctx, tx, memberID); err != nil {
			return fmt.Errorf("事务中清除旧默认地址失败: %w", err)
		}
		if err := s.addressRepo.UpdateAddress(ctx, tx, addressID, map[string]interface{}{"is_default": 1}); err != nil {
			return fmt.Errorf("事务中标记默认地址失败: %w", err)
		}
		return nil
	})
	if txErr != nil {
		s.logger.Error("设置默认地址事务失败",
			zap.String("operation", operation),
			zap.Int64("memberID", memberID),
			zap.Int64("addressID", addressID),
			zap.Error(txErr),
		)
		return commonerrors.ErrSystemError
	}

	s.logger.Info("设置默认地址成功",
		zap.String("operation", operation),
		zap.Int64("memberID", memberID),
		zap.Int64("addressID", addressID),
	)
	return nil
}

// DeleteAddress 实现接口方法，删除地址。
func (s *addressService) DeleteAddress(ctx context.Context, memberID int64, addressID int64) error {
	const operation = "AddressService.DeleteAddress"

	// 1. 加载地址并校验归属
	if _, err := s.loadOwnedAddress(ctx, operation, memberID, addressID); err != nil {
		return err
	}

	// 2. 执行删除
	if err := s.addressRepo.DeleteAddress(ctx, s.db, addressID); err != nil {
		s.logger.Error("删除地址失败",
			zap.String("operation", operation),
			zap.Int64("memberID", memberID),
			zap.Int64("addressID", addressID),
			zap.Error(err),
		)
		return commonerrors.ErrSystemError
	}

	s.logger.Info("删除地址成功",
		zap.String("operation", operation),
		zap.Int64("memberID", memberID),
		zap.Int64("addressID", addressID),
	)
	return nil
}
