package dependencies

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Xushengqwer/member_hub/config"
)

// SMSClient 定义短信验证码客户端接口
// - 用于发送验证码到会员手机号，支持第三方短信平台
type SMSClient interface {
	// SendCode 发送验证码到指定手机号
	// - 输入: ctx 用于上下文控制，phone 是目标手机号，code 是生成的验证码
	// - 输出: error 表示发送是否成功，成功时返回 nil
	// - 注意: 不负责生成或存储验证码，仅处理发送逻辑
	SendCode(ctx context.Context, phone string, code string) error
}

// smsClient 实现 SMSClient 接口的结构体
type smsClient struct {
	config     *config.SMSConfig // 短信平台配置
	httpClient *http.Client      // HTTP 客户端，用于发送请求
}

// NewSMSClient 创建 SMSClient 实例，通过依赖注入初始化
// - 输入: config 包含短信平台的配置信息
// - 输出: SMSClient 接口实例
// - 注意: 降级模式下平台凭证允许为空，此时该客户端不应被调用
func NewSMSClient(config *config.SMSConfig) (SMSClient, error) {
	// 1. 校验配置是否有效
	if config == nil {
		return nil, fmt.Errorf("SMS 配置不能为空")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// 2. 初始化 HTTP 客户端
	// - 设置默认超时为 10 秒
	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}

	// 3. 返回 SMSClient 实例
	return &smsClient{
		config:     config,
		httpClient: httpClient,
	}, nil
}

// SendCode 发送验证码到指定手机号
func (s *smsClient) SendCode(ctx context.Context, phone string, code string) error {
	// 1. 构造请求参数
	// - 根据短信平台 API 的要求，组装 JSON 数据
	reqBody := map[string]interface{}{
		"appid":       s.config.AppID,
		"secret":      s.config.Secret,
		"template_id": s.config.TemplateID,
		"phone":       phone,
		"data": map[string]string{
			"code": code, // 模板中的验证码变量
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("构造短信请求参数失败: %v", err)
	}

	// 2. 创建 HTTP 请求
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.Endpoint, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return fmt.Errorf("创建短信请求失败: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// 3. 发送请求
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("发送短信验证码失败: %v", err)
	}
	defer resp.Body.Close()

	// 4. 检查响应状态
	// - 平台返回 JSON，包含 errcode 和 errmsg，errcode = 0 表示成功
	var result struct {
		ErrCode int    `json:"errcode"`
		ErrMsg  string `json:"errmsg"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("解析短信响应失败: %v", err)
	}

	// 5. 验证发送结果
	if result.ErrCode != 0 {
		return fmt.Errorf("短信发送失败，错误码: %d, 错误信息: %s", result.ErrCode, result.ErrMsg)
	}

	return nil
}
