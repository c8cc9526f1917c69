package loginlog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Xushengqwer/go-common/core"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/member_hub/constants"
	"github.com/Xushengqwer/member_hub/models/dto"
	"github.com/Xushengqwer/member_hub/models/entities"
	"github.com/Xushengqwer/member_hub/repository/mysql"
)

// Consumer 消费 Redis 队列中的登录事件并写入登录日志表。
// - 与生产者约定：事件为 JSON，生产者 LPUSH 入队，消费者从队尾取出，保证先进先出。
// - 反序列化失败的消息直接丢弃，落库失败的消息记录日志后丢弃，不做重试。
type Consumer struct {
	client       *goredis.Client
	loginLogRepo mysql.LoginLogRepository
	logger       *core.ZapLogger
}

// NewConsumer 创建登录日志消费者实例。
func NewConsumer(client *goredis.Client, loginLogRepo mysql.LoginLogRepository, logger *core.ZapLogger) *Consumer {
	return &Consumer{
		client:       client,
		loginLogRepo: loginLogRepo,
		logger:       logger,
	}
}

// Start 启动消费循环，阻塞直到 ctx 取消。
// - 使用 BRPOP 阻塞等待新事件，超时后重新循环以便响应 ctx 取消。
func (c *Consumer) Start(ctx context.Context) {
	const operation = "LoginLogConsumer.Start"
	c.logger.Info("登录日志消费者启动", zap.String("operation", operation))

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("登录日志消费者退出", zap.String("operation", operation))
			return
		default:
		}

		result, err := c.client.BRPop(ctx, 5*time.Second, constants.LoginLogQueueKey).Result()
		if err != nil {
			if errors.Is(err, goredis.Nil) {
				// 队列为空，等待超时后继续轮询
				continue
			}
			if ctx.Err() != nil {
				c.logger.Info("登录日志消费者退出", zap.String("operation", operation))
				return
			}
			c.logger.Error("从队列读取登录事件失败",
				zap.String("operation", operation),
				zap.Error(err),
			)
			// Redis 故障时退避一段时间再重试，避免空转
			time.Sleep(time.Second)
			continue
		}

		// BRPOP 返回 [key, value]
		if len(result) == 2 {
			c.handleMessage(ctx, result[1])
		}
	}
}

// DrainOnce 非阻塞地消费队列中现存的全部事件，返回成功落库的条数。
// - 使用 RPOP 逐条取出，队列取空即返回。
func (c *Consumer) DrainOnce(ctx context.Context) int {
	const operation = "LoginLogConsumer.DrainOnce"
	processed := 0

	for {
		payload, err := c.client.RPop(ctx, constants.LoginLogQueueKey).Result()
		if err != nil {
			if !errors.Is(err, goredis.Nil) {
				c.logger.Error("从队列读取登录事件失败",
					zap.String("operation", operation),
					zap.Error(err),
				)
			}
			return processed
		}
		if c.handleMessage(ctx, payload) {
			processed++
		}
	}
}

// handleMessage 反序列化事件并写入登录日志表，返回是否落库成功。
func (c *Consumer) handleMessage(ctx context.Context, payload string) bool {
	const operation = "LoginLogConsumer.handleMessage"

	var event dto.LoginLogEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		// 消息格式错误，丢弃并记录完整负载便于排查
		c.logger.Error("登录事件反序列化失败，消息已丢弃",
			zap.String("operation", operation),
			zap.String("payload", payload),
			zap.Error(err),
		)
		return false
	}

	// ip_region 留空，暂未接入 IP 归属地解析
	log := &entities.LoginLog{
		MemberID:    event.MemberID,
		LoginType:   event.LoginType,
		LoginTime:   event.LoginTime,
		LoginIP:     event.LoginIP,
		DeviceType:  event.DeviceType,
		DeviceID:    event.DeviceID,
		LoginStatus: event.LoginStatus,
		FailReason:  event.FailReason,
	}
	if err := c.loginLogRepo.CreateLoginLog(ctx, log); err != nil {
		c.logger.Error("登录日志落库失败，消息已丢弃",
			zap.String("operation", operation),
			zap.Int64("memberID", event.MemberID),
			zap.Error(err),
		)
		return false
	}
	return true
}
