package dependencies

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/member_hub/constants"
	"github.com/Xushengqwer/member_hub/models/dto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LoginLogProducer 定义登录日志事件的生产者接口
// - 注册/登录主流程只负责投递，落库由消费者异步完成，投递失败不影响主流程
type LoginLogProducer interface {
	// SendLoginLogAsync 异步投递登录事件
	// - 内部起 goroutine 执行，调用方无需等待，失败仅记录日志
	SendLoginLogAsync(event dto.LoginLogEvent)
}

// redisLoginLogProducer 基于 Redis List 实现的登录日志生产者
// - 事件序列化为 JSON 后 LPUSH 到队列，消费者从队尾 BRPOP 取出
type redisLoginLogProducer struct {
	client *redis.Client
	logger *core.ZapLogger
}

// NewLoginLogProducer 创建 LoginLogProducer 实例
func NewLoginLogProducer(client *redis.Client, logger *core.ZapLogger) LoginLogProducer {
	return &redisLoginLogProducer{client: client, logger: logger}
}

// SendLoginLogAsync 异步投递登录事件
func (p *redisLoginLogProducer) SendLoginLogAsync(event dto.LoginLogEvent) {
	go func() {
		const operation = "LoginLogProducer.SendLoginLogAsync"
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		if err := p.send(ctx, event); err != nil {
			p.logger.Warn("登录日志事件投递失败，本次登录不记录历史",
				zap.String("operation", operation),
				zap.Int64("memberID", event.MemberID),
				zap.Error(err),
			)
		}
	}()
}

// send 将事件序列化后推入队列，供异步入口和测试复用
func (p *redisLoginLogProducer) send(ctx context.Context, event dto.LoginLogEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("loginLogProducer.send: 序列化登录事件失败: %w", err)
	}
	if err := p.client.LPush(ctx, constants.LoginLogQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("loginLogProducer.send: 推送登录事件到队列失败: %w", err)
	}
	return nil
}
