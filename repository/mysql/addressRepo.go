package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/member_hub/models/entities"

	"gorm.io/gorm"
)

// AddressRepository 定义了与收货地址（Address）数据存储相关的操作接口。
// - “单一默认地址”约束由服务层在事务中通过 ClearDefault + 写入配合保证。
type AddressRepository interface {
	// ListByMember 查询指定会员的全部收货地址。
	// - 默认地址排在最前，其余按创建时间倒序。
	// - 查询结果为空时返回空切片而非错误。
	ListByMember(ctx context.Context, memberID int64) ([]*entities.Address, error)

	// GetAddressByID 根据地址 ID 检索单条收货地址。
	// - 如果未找到匹配的地址，将返回 commonerrors.ErrRepoNotFound。
	GetAddressByID(ctx context.Context, addressID int64) (*entities.Address, error)

	// GetDefaultByMember 查询指定会员的默认地址。
	// - 如果该会员没有默认地址，将返回 commonerrors.ErrRepoNotFound。
	GetDefaultByMember(ctx context.Context, memberID int64) (*entities.Address, error)

	// CountByMember 统计指定会员的地址数量，用于数量上限校验。
	CountByMember(ctx context.Context, memberID int64) (int64, error)

	// CreateAddress 持久化一条新的收货地址。
	// - 使用传入的 db 对象执行操作，使其能够参与外部事务。
	CreateAddress(ctx context.Context, db *gorm.DB, address *entities.Address) error

	// UpdateAddress 按列更新一条收货地址。
	// - 使用传入的 db 对象执行操作，使其能够参与外部事务。
	UpdateAddress(ctx context.Context, db *gorm.DB, addressID int64, updates map[string]interface{}) error

	// ClearDefault 将指定会员的所有地址取消默认标记。
	// - 在事务中先于设置新默认地址执行，保证同一会员最多一个默认地址。
	ClearDefault(ctx context.Context, db *gorm.DB, memberID int64) error

	// DeleteAddress 根据地址 ID 删除一条收货地址。
	// - 使用传入的 db 对象执行操作，使其能够参与外部事务。
	DeleteAddress(ctx context.Context, db *gorm.DB, addressID int64) error
}

// addressRepository 是 AddressRepository 接口基于 GORM 的实现。
type addressRepository struct {
	db *gorm.DB // db 是 GORM 数据库连接实例
}

// NewAddressRepository 创建一个新的 addressRepository 实例。
// - 依赖注入 GORM 数据库连接。
func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

// ListByMember 实现接口方法，查询会员的地址列表。
func (r *addressRepository) ListByMember(ctx context.Context, memberID int64) ([]*entities.Address, error) {
	var addresses []*entities.Address
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("is_default DESC, create_time DESC").
		Find(&addresses).Error
	if err != nil {
		// 包装查询错误，添加中文上下文信息
		return nil, fmt.Errorf("addressRepo.ListByMember: 查询地址列表失败 (MemberID: %d): %w", memberID, err)
	}
	return addresses, nil
}

// GetAddressByID 实现接口方法，根据 ID 获取地址。
func (r *addressRepository) GetAddressByID(ctx context.Context, addressID int64) (*entities.Address, error) {
	var address entities.Address
	err := r.db.WithContext(ctx).Where("id = ?", addressID).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		return nil, fmt.Errorf("addressRepo.GetAddressByID: 查询地址失败 (AddressID: %d): %w", addressID, err)
	}
	return &address, nil
}

// GetDefaultByMember 实现接口方法，查询会员的默认地址。
func (r *addressRepository) GetDefaultByMember(ctx context.Context, memberID int64) (*entities.Address, error) {
	var address entities.Address
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND is_default = ?", memberID, 1).
		First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		return nil, fmt.Errorf("addressRepo.GetDefaultByMember: 查询默认地址失败 (MemberID: %d): %w", memberID, err)
	}
	return &address, nil
}

// CountByMember 实现接口方法，统计会员的地址数量。
func (r *addressRepository) CountByMember(ctx context.Context, memberID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Address{}).Where("member_id = ?", memberID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("addressRepo.CountByMember: 统计地址数量失败 (MemberID: %d): %w", memberID, err)
	}
	return count, nil
}

// CreateAddress 实现接口方法，持久化地址记录。
func (r *addressRepository) CreateAddress(ctx context.Context, db *gorm.DB, address *entities.Address) error {
	if err := db.WithContext(ctx).Create(address).Error; err != nil {
		return fmt.Errorf("addressRepo.CreateAddress: 创建地址失败 (MemberID: %d): %w", address.MemberID, err)
	}
	return nil
}

// UpdateAddress 实现接口方法，按列更新地址记录。
func (r *addressRepository) UpdateAddress(ctx context.Context, db *gorm.DB, addressID int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := db.WithContext(ctx).Model(&entities.Address{}).Where("id = ?", addressID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("addressRepo.UpdateAddress: 更新地址失败 (AddressID: %d): %w", addressID, result.Error)
	}
	return nil
}

// ClearDefault 实现接口方法，取消会员所有地址的默认标记。
func (r *addressRepository) ClearDefault(ctx context.Context, db *gorm.DB, memberID int64) error {
	result := db.WithContext(ctx).Model(&entities.Address{}).
		Where("member_id = ? AND is_default = ?", memberID, 1).
		Update("is_default", 0)
	if result.Error != nil {
		return fmt.Errorf("addressRepo.ClearDefault: 取消默认地址失败 (MemberID: %d): %w", memberID, result.Error)
	}
	return nil
}

// DeleteAddress 实现接口方法，删除地址记录。
func (r *addressRepository) DeleteAddress(ctx context.Context, db *gorm.DB, addressID int64) error {
	result := db.WithContext(ctx).Where("id = ?", addressID).Delete(&entities.Address{})
	if result.Error != nil {
		return fmt.Errorf("addressRepo.DeleteAddress: 删除地址失败 (AddressID: %d): %w", addressID, result.Error)
	}
	return nil
}
