package config

import "errors"

// SMSConfig 定义短信平台客户端的配置。
//   - DegradationEnabled 为 true 时进入降级模式：不调用外部短信平台，验证码直接随响应回显，
//     供开发联调环境使用；此时平台凭证允许为空。
type SMSConfig struct {
	// 短信平台的 AppID
	AppID string `mapstructure:"appID" json:"appID" yaml:"appID"`

	// 短信平台的 Secret
	Secret string `mapstructure:"secret" json:"secret" yaml:"secret"`

	// SMS 服务 API 端点（如 "https://sms.example.com/send"）
	Endpoint string `mapstructure:"endpoint" json:"endpoint" yaml:"endpoint"`

	// 短信模板 ID
	TemplateID string `mapstructure:"templateID" json:"templateID" yaml:"templateID"`

	// 是否开启降级模式
	DegradationEnabled bool `mapstructure:"degradationEnabled" json:"degradationEnabled" yaml:"degradationEnabled"`

	// 验证码有效期（秒），为 0 时使用默认值 300
	CodeExpiration int64 `mapstructure:"codeExpiration" json:"codeExpiration" yaml:"codeExpiration"`
}

// Validate 校验短信配置。
// - 生产模式下平台凭证为必填；降级模式不依赖外部平台，跳过凭证校验。
func (c *SMSConfig) Validate() error {
	if c.DegradationEnabled {
		return nil
	}
	if c.AppID == "" || c.Secret == "" || c.Endpoint == "" || c.TemplateID == "" {
		return errors.New("短信配置不完整: appID/secret/endpoint/templateID 均为必填")
	}
	return nil
}
