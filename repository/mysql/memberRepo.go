package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/member_hub/errs"
	"github.com/Xushengqwer/member_hub/models/entities"
	"github.com/go-sql-driver/mysql"

	"gorm.io/gorm"
)

// mysqlDuplicateEntry 是 MySQL 唯一键冲突的错误码 (Error 1062)。
const mysqlDuplicateEntry = 1062

// MemberRepository 定义了与会员（Member）数据存储相关的操作接口。
// - 它抽象了数据库交互，提供会员的创建、查询和更新功能。
type MemberRepository interface {
	// CreateMember 持久化一个新的会员记录。
	// - 手机号唯一键冲突时返回 errs.ErrPhoneAlreadyExists，兜底并发注册的竞态。
	// - 其他数据库错误将被包装后返回。
	CreateMember(ctx context.Context, member *entities.Member) error

	// GetMemberByID 根据会员 ID 检索单个会员的完整信息。
	// - 如果未找到匹配的会员，将返回 commonerrors.ErrRepoNotFound。
	// - 其他数据库错误将被包装后返回。
	GetMemberByID(ctx context.Context, memberID int64) (*entities.Member, error)

	// GetMemberByPhone 根据手机号检索单个会员的完整信息。
	// - 如果未找到匹配的会员，将返回 commonerrors.ErrRepoNotFound。
	// - 其他数据库错误将被包装后返回。
	GetMemberByPhone(ctx context.Context, phone string) (*entities.Member, error)

	// UpdateMember 更新一个已存在的会员信息。
	// - 使用 GORM 的 Updates，只更新 updates 映射中指定的列。
	// - 如果数据库操作失败，则返回包装后的错误。
	UpdateMember(ctx context.Context, memberID int64, updates map[string]interface{}) error

	// UpdateLastLogin 更新会员的最近登录时间与登录 IP。
	// - 登录主流程调用，失败不应阻断登录，由服务层决定如何处理。
	UpdateLastLogin(ctx context.Context, memberID int64, loginTime time.Time, loginIP string) error

	// UpdatePassword 更新会员的密码哈希。
	// - 如果数据库操作失败，则返回包装后的错误。
	UpdatePassword(ctx context.Context, memberID int64, hashedPassword string) error
}

// memberRepository 是 MemberRepository 接口基于 GORM 的实现。
type memberRepository struct {
	db *gorm.DB // db 是 GORM 数据库连接实例
}

// NewMemberRepository 创建一个新的 memberRepository 实例。
// - 依赖注入 GORM 数据库连接。
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// CreateMember 实现接口方法，持久化会员记录。
func (r *memberRepository) CreateMember(ctx context.Context, member *entities.Member) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		// 唯一键冲突说明同一手机号被并发注册，翻译为业务错误
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return errs.ErrPhoneAlreadyExists
		}
		// 包装创建操作时发生的错误，添加中文上下文信息
		return fmt.Errorf("memberRepo.CreateMember: 创建会员失败: %w", err)
	}
	return nil
}

// GetMemberByID 实现接口方法，根据 ID 获取会员信息。
func (r *memberRepository) GetMemberByID(ctx context.Context, memberID int64) (*entities.Member, error) {
	var member entities.Member
	err := r.db.WithContext(ctx).Where("id = ?", memberID).First(&member).Error
	if err != nil {
		// 检查是否是 GORM 的“记录未找到”错误
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 根据约定，记录未找到时返回统一的公共错误
			return nil, commonerrors.ErrRepoNotFound
		}
		// 包装其他查询错误，添加中文上下文信息
		return nil, fmt.Errorf("memberRepo.GetMemberByID: 查询会员失败 (MemberID: %d): %w", memberID, err)
	}
	return &member, nil
}

// GetMemberByPhone 实现接口方法，根据手机号获取会员信息。
func (r *memberRepository) GetMemberByPhone(ctx context.Context, phone string) (*entities.Member, error) {
	var member entities.Member
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		// 日志与错误信息中不输出明文手机号
		return nil, fmt.Errorf("memberRepo.GetMemberByPhone: 根据手机号查询会员失败: %w", err)
	}
	return &member, nil
}

// UpdateMember 实现接口方法，按列更新会员信息。
func (r *memberRepository) UpdateMember(ctx context.Context, memberID int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		// 没有要更新的字段时直接成功返回，避免生成空 UPDATE
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entities.Member{}).Where("id = ?", memberID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("memberRepo.UpdateMember: 更新会员信息失败 (MemberID: %d): %w", memberID, result.Error)
	}
	return nil
}

// UpdateLastLogin 实现接口方法，更新最近登录信息。
func (r *memberRepository) UpdateLastLogin(ctx context.Context, memberID int64, loginTime time.Time, loginIP string) error {
	result := r.db.WithContext(ctx).Model(&entities.Member{}).Where("id = ?", memberID).Updates(map[string]interface{}{
		"last_login_time": loginTime,
		"last_login_ip":   loginIP,
	})
	if result.Error != nil {
		return fmt.Errorf("memberRepo.UpdateLastLogin: 更新最近登录信息失败 (MemberID: %d): %w", memberID, result.Error)
	}
	return nil
}

// UpdatePassword 实现接口方法，更新密码哈希。
func (r *memberRepository) UpdatePassword(ctx context.Context, memberID int64, hashedPassword string) error {
	result := r.db.WithContext(ctx).Model(&entities.Member{}).Where("id = ?", memberID).Update("password", hashedPassword)
	if result.Error != nil {
		return fmt.Errorf("memberRepo.UpdatePassword: 更新密码失败 (MemberID: %d): %w", memberID, result.Error)
	}
	return nil
}
