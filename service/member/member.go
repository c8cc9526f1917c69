package member

import (
	"context"
	"errors"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/member_hub/errs"
	"github.com/Xushengqwer/member_hub/models/dto"
	"github.com/Xushengqwer/member_hub/models/entities"
	"github.com/Xushengqwer/member_hub/models/vo"
	"github.com/Xushengqwer/member_hub/repository/mysql"
	"github.com/Xushengqwer/member_hub/utils"
)

const (
	timeLayout = "2006-01-02 15:04:05"
	dateLayout = "2006-01-02"
)

// MemberService 定义了会员资料与登录历史查询的服务接口。
type MemberService interface {
	// GetMemberInfo 查询会员资料。
	// - 手机号脱敏返回，会员不存在时返回 404 业务错误。
	GetMemberInfo(ctx context.Context, memberID int64) (vo.MemberInfoVO, error)

	// UpdateMemberInfo 更新会员资料。
	// - 采用 patch 语义，只更新 DTO 中非 nil 的字段；手机号与账号状态不可通过此接口修改。
	UpdateMemberInfo(ctx context.Context, memberID int64, data dto.UpdateMemberData) (vo.MemberInfoVO, error)

	// GetLoginHistory 查询会员最近的登录记录，IP 脱敏返回。
	GetLoginHistory(ctx context.Context, memberID int64, limit int) ([]vo.LoginHistoryVO, error)
}

// memberService 是 MemberService 接口的实现。
type memberService struct {
	memberRepo   mysql.MemberRepository   // 会员仓库
	loginLogRepo mysql.LoginLogRepository // 登录日志仓库
	logger       *core.ZapLogger          // 日志记录器
}

// NewMemberService 创建 MemberService 实例。
func NewMemberService(
	memberRepo mysql.MemberRepository,
	loginLogRepo mysql.LoginLogRepository,
	logger *core.ZapLogger,
) MemberService {
	return &memberService{
		memberRepo:   memberRepo,
		loginLogRepo: loginLogRepo,
		logger:       logger,
	}
}

// toMemberInfoVO 将会员实体转换为脱敏后的视图。
func toMemberInfoVO(member *entities.Member) vo.MemberInfoVO {
	birthday := ""
	if member.Birthday != nil {
		birthday = member.Birthday.Format(dateLayout)
	}
	return vo.MemberInfoVO{
		MemberID:      member.ID,
		Phone:         utils.MaskPhone(member.Phone),
		Nickname:      member.Nickname,
		Avatar:        member.Avatar,
		Gender:        member.Gender,
		Birthday:      birthday,
		AccountStatus: member.AccountStatus,
		RegisterTime:  member.RegisterTime.Format(timeLayout),
	}
}

// GetMemberInfo 实现接口方法，查询会员资料。
func (s *memberService) GetMemberInfo(ctx context.Context, memberID int64) (vo.MemberInfoVO, error) {
	const operation = "MemberService.GetMemberInfo"

	member, err := s.memberRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return vo.MemberInfoVO{}, errs.NewNotFound("会员不存在")
		}
		s.logger.Error("查询会员资料失败",
			zap.String("operation", operation),
			zap.Int64("memberID", memberID),
			zap.Error(err),
		)
		return vo.MemberInfoVO{}, commonerrors.ErrSystemError
	}
	return toMemberInfoVO(member), nil
}

// UpdateMemberInfo 实现接口方法，更新会员资料。
func (s *memberService) UpdateMemberInfo(ctx context.Context, memberID int64, data dto.UpdateMemberData) (vo.MemberInfoVO, error) {
	const operation = "MemberService.UpdateMemberInfo"

	// 1. 确认会员存在
	if _, err := s.memberRepo.GetMemberByID(ctx, memberID); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return vo.MemberInfoVO{}, errs.NewNotFound("会员不存在")
		}
		s.logger.Error("查询会员失败",
			zap.String("operation", operation),
			zap.Int64("memberID", memberID),
			zap.Error(err),
		)
		return vo.MemberInfoVO{}, commonerrors.ErrSystemError
	}

	// 2. 组装待更新的列，nil 字段不出现在 UPDATE 语句中
	updates := make(map[string]interface{})
	if data.Nickname != nil {
		updates["nickname"] = *data.Nickname
	}
	if data.Gender != nil {
		updates["gender"] = *data.Gender
	}
	if data.Birthday != nil {
		birthday, err := time.Parse(dateLayout, *data.Birthday)
		if err != nil {
			return vo.MemberInfoVO{}, errs.NewBadRequest("出生日期格式无效，应为 YYYY-MM-DD")
		}
		updates["birthday"] = birthday
	}

	if err := s.memberRepo.UpdateMember(ctx, memberID, updates); err != nil {
		s.logger.Error("更新会员资料失败",
			zap.String("operation", operation),
			zap.Int64("memberID", memberID),
			zap.Error(err),
		)
		return vo.MemberInfoVO{}, commonerrors.ErrSystemError
	}

	// 3. 返回更新后的资料
	member, err := s.memberRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		s.logger.Error("回查会员资料失败",
			zap.String("operation", operation),
			zap.Int64("memberID", memberID),
			zap.Error(err),
		)
		return vo.MemberInfoVO{}, commonerrors.ErrSystemError
	}
	return toMemberInfoVO(member), nil
}

// GetLoginHistory 实现接口方法，查询登录记录。
func (s *memberService) GetLoginHistory(ctx context.Context, memberID int64, limit int) ([]vo.LoginHistoryVO, error) {
	const operation = "MemberService.GetLoginHistory"

	logs, err := s.loginLogRepo.ListRecentByMember(ctx, memberID, limit)
	if err != nil {
		s.logger.Error("查询登录记录失败",
			zap.String("operation", operation),
			zap.Int64("memberID", memberID),
			zap.Error(err),
		)
		return nil, commonerrors.ErrSystemError
	}

	result := make([]vo.LoginHistoryVO, 0, len(logs))
	for _, log := range logs {
		result = append(result, vo.LoginHistoryVO{
			LoginType:   log.LoginType,
			LoginTime:   log.LoginTime.Format(timeLayout),
			LoginIP:     utils.MaskIP(log.LoginIP),
			DeviceType:  log.DeviceType,
			LoginStatus: log.LoginStatus,
			FailReason:  log.FailReason,
		})
	}
	return result, nil
}
