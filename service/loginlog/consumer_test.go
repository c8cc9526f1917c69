package loginlog

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	commonconfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"

	"github.com/Xushengqwer/member_hub/constants"
	"github.com/Xushengqwer/member_hub/models/dto"
	"github.com/Xushengqwer/member_hub/models/entities"
	"github.com/Xushengqwer/member_hub/models/enums"
)

// MockLoginLogRepository 是 mysql.LoginLogRepository 接口的模拟实现
type MockLoginLogRepository struct {
	mock.Mock
}

func (m *MockLoginLogRepository) CreateLoginLog(ctx context.Context, log *entities.LoginLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockLoginLogRepository) ListRecentByMember(ctx context.Context, memberID int64, limit int) ([]*entities.LoginLog, error) {
	args := m.Called(ctx, memberID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LoginLog), args.Error(1)
}

// newTestConsumer 基于 miniredis 构造消费者及其依赖。
func newTestConsumer(t *testing.T) (*Consumer, *goredis.Client, *MockLoginLogRepository) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("启动 miniredis 失败: %v", err)
	}
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger, err := core.NewZapLogger(commonconfig.ZapConfig{Level: "error"})
	if err != nil {
		t.Fatalf("初始化测试日志器失败: %v", err)
	}

	repo := new(MockLoginLogRepository)
	return NewConsumer(client, repo, logger), client, repo
}

func enqueue(t *testing.T, client *goredis.Client, event dto.LoginLogEvent) {
	t.Helper()
	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("序列化登录事件失败: %v", err)
	}
	if err := client.LPush(context.Background(), constants.LoginLogQueueKey, payload).Err(); err != nil {
		t.Fatalf("推送登录事件失败: %v", err)
	}
}

func TestConsumer_DrainOnce(t *testing.T) {
	consumer, client, repo := newTestConsumer(t)
	ctx := context.Background()

	enqueue(t, client, dto.LoginLogEvent{
		MemberID:    10001,
		LoginType:   enums.LoginTypePassword,
		LoginTime:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		LoginIP:     "192.168.1.100",
		DeviceType:  "IOS",
		LoginStatus: enums.LoginStatusSuccess,
	})
	enqueue(t, client, dto.LoginLogEvent{
		MemberID:    10002,
		LoginType:   enums.LoginTypeSMS,
		LoginTime:   time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		LoginIP:     "10.0.0.8",
		DeviceType:  "PC",
		LoginStatus: enums.LoginStatusFailed,
		FailReason:  "验证码错误或已过期",
	})

	repo.On("CreateLoginLog", mock.Anything, mock.MatchedBy(func(log *entities.LoginLog) bool {
		return log.MemberID == 10001 && log.LoginType == enums.LoginTypePassword && log.LoginIP == "192.168.1.100"
	})).Return(nil).Once()
	repo.On("CreateLoginLog", mock.Anything, mock.MatchedBy(func(log *entities.LoginLog) bool {
		return log.MemberID == 10002 && log.LoginStatus == enums.LoginStatusFailed && log.FailReason == "验证码错误或已过期"
	})).Return(nil).Once()

	if processed := consumer.DrainOnce(ctx); processed != 2 {
		t.Fatalf("期望落库 2 条，实际 %d 条", processed)
	}
	repo.AssertExpectations(t)

	// 队列应已取空
	if n, _ := client.LLen(ctx, constants.LoginLogQueueKey).Result(); n != 0 {
		t.Fatalf("期望队列为空，实际剩余 %d 条", n)
	}
}

func TestConsumer_DrainOnce_EmptyQueue(t *testing.T) {
	consumer, _, repo := newTestConsumer(t)

	if processed := consumer.DrainOnce(context.Background()); processed != 0 {
		t.Fatalf("空队列不应有消费，实际 %d 条", processed)
	}
	repo.AssertNotCalled(t, "CreateLoginLog", mock.Anything, mock.Anything)
}

func TestConsumer_DrainOnce_DropsMalformedMessage(t *testing.T) {
	consumer, client, repo := newTestConsumer(t)
	ctx := context.Background()

	// 格式错误的消息被丢弃，后续合法消息不受影响
	if err := client.LPush(ctx, constants.LoginLogQueueKey, "not-json").Err(); err != nil {
		t.Fatalf("推送非法消息失败: %v", err)
	}
	enqueue(t, client, dto.LoginLogEvent{
		MemberID:    10001,
		LoginType:   enums.LoginTypePassword,
		LoginTime:   time.Now(),
		LoginStatus: enums.LoginStatusSuccess,
	})

	repo.On("CreateLoginLog", mock.Anything, mock.AnythingOfType("*entities.LoginLog")).Return(nil).Once()

	if processed := consumer.DrainOnce(ctx); processed != 1 {
		t.Fatalf("期望只落库 1 条，实际 %d 条", processed)
	}
	repo.AssertExpectations(t)
}

func TestConsumer_DrainOnce_InsertFailureDropped(t *testing.T) {
	consumer, client, repo := newTestConsumer(t)
	ctx := context.Background()

	enqueue(t, client, dto.LoginLogEvent{
		MemberID:    10001,
		LoginType:   enums.LoginTypePassword,
		LoginTime:   time.Now(),
		LoginStatus: enums.LoginStatusSuccess,
	})

	repo.On("CreateLoginLog", mock.Anything, mock.AnythingOfType("*entities.LoginLog")).Return(context.DeadlineExceeded).Once()

	// 落库失败的消息丢弃不重试，队列被取空
	if processed := consumer.DrainOnce(ctx); processed != 0 {
		t.Fatalf("落库失败不应计入成功条数，实际 %d 条", processed)
	}
	if n, _ := client.LLen(ctx, constants.LoginLogQueueKey).Result(); n != 0 {
		t.Fatalf("期望失败消息被丢弃，实际剩余 %d 条", n)
	}
}
