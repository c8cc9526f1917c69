package dependencies

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	commonconfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"

	"github.com/Xushengqwer/member_hub/constants"
	"github.com/Xushengqwer/member_hub/models/dto"
	"github.com/Xushengqwer/member_hub/models/enums"
)

func newTestProducer(t *testing.T) (*redisLoginLogProducer, *goredis.Client) {
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
	return &redisLoginLogProducer{client: client, logger: logger}, client
}

func TestLoginLogProducer_Send(t *testing.T) {
	producer, client := newTestProducer(t)
	ctx := context.Background()

	event := dto.LoginLogEvent{
		MemberID:    10001,
		LoginType:   enums.LoginTypePassword,
		LoginTime:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		LoginIP:     "192.168.1.100",
		DeviceType:  "IOS",
		DeviceID:    "device-1",
		LoginStatus: enums.LoginStatusSuccess,
	}
	if err := producer.send(ctx, event); err != nil {
		t.Fatalf("投递登录事件失败: %v", err)
	}

	// 消费端从队尾取出，应能还原出完整事件
	payload, err := client.RPop(ctx, constants.LoginLogQueueKey).Result()
	if err != nil {
		t.Fatalf("从队列取出事件失败: %v", err)
	}
	var got dto.LoginLogEvent
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("反序列化事件失败: %v", err)
	}
	if got.MemberID != event.MemberID || got.LoginType != event.LoginType || got.LoginIP != event.LoginIP {
		t.Fatalf("事件内容不一致: got %+v, want %+v", got, event)
	}
	if !got.LoginTime.Equal(event.LoginTime) {
		t.Fatalf("登录时间不一致: got %v, want %v", got.LoginTime, event.LoginTime)
	}
}

func TestLoginLogProducer_SendPreservesOrder(t *testing.T) {
	producer, client := newTestProducer(t)
	ctx := context.Background()

	for _, memberID := range []int64{1, 2, 3} {
		event := dto.LoginLogEvent{MemberID: memberID, LoginType: enums.LoginTypeSMS, LoginTime: time.Now(), LoginStatus: enums.LoginStatusSuccess}
		if err := producer.send(ctx, event); err != nil {
			t.Fatalf("投递登录事件失败: %v", err)
		}
	}

	// LPUSH + RPOP 构成先进先出队列
	for _, want := range []int64{1, 2, 3} {
		payload, err := client.RPop(ctx, constants.LoginLogQueueKey).Result()
		if err != nil {
			t.Fatalf("从队列取出事件失败: %v", err)
		}
		var got dto.LoginLogEvent
		if err := json.Unmarshal([]byte(payload), &got); err != nil {
			t.Fatalf("反序列化事件失败: %v", err)
		}
		if got.MemberID != want {
			t.Fatalf("出队顺序错误: got %d, want %d", got.MemberID, want)
		}
	}
}
