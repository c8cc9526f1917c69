package mysql

import (
	"context"
	"fmt"

	"github.com/Xushengqwer/member_hub/models/entities"

	"gorm.io/gorm"
)

// LoginLogRepository 定义了与登录日志（LoginLog）数据存储相关的操作接口。
type LoginLogRepository interface {
	// CreateLoginLog 持久化一条登录日志。
	// - 由队列消费者调用，写入失败由调用方记录并丢弃，不做重试。
	CreateLoginLog(ctx context.Context, log *entities.LoginLog) error

	// ListRecentByMember 查询指定会员最近的登录记录，按登录时间倒序。
	ListRecentByMember(ctx context.Context, memberID int64, limit int) ([]*entities.LoginLog, error)
}

// loginLogRepository 是 LoginLogRepository 接口基于 GORM 的实现。
type loginLogRepository struct {
	db *gorm.DB // db 是 GORM 数据库连接实例
}

// NewLoginLogRepository 创建一个新的 loginLogRepository 实例。
// - 依赖注入 GORM 数据库连接。
func NewLoginLogRepository(db *gorm.DB) LoginLogRepository {
	return &loginLogRepository{db: db}
}

// CreateLoginLog 实现接口方法，持久化登录日志。
func (r *loginLogRepository) CreateLoginLog(ctx context.Context, log *entities.LoginLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		// 包装创建操作时发生的错误，添加中文上下文信息
		return fmt.Errorf("loginLogRepo.CreateLoginLog: 创建登录日志失败 (MemberID: %d): %w", log.MemberID, err)
	}
	return nil
}

// ListRecentByMember 实现接口方法，查询最近的登录记录。
func (r *loginLogRepository) ListRecentByMember(ctx context.Context, memberID int64, limit int) ([]*entities.LoginLog, error) {
	if limit <= 0 {
		limit = 10
	}
	var logs []*entities.LoginLog
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("login_time DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("loginLogRepo.ListRecentByMember: 查询登录记录失败 (MemberID: %d): %w", memberID, err)
	}
	return logs, nil
}
