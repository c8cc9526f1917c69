package config

// JWTConfig 定义JWT认证功能的相关配置，包含密钥、签发者和过期时间，用于生成和验证JWT。
type JWTConfig struct {
	SecretKey     string `mapstructure:"secret_key" yaml:"secret_key"`         // 用于签名访问令牌的密钥
	Issuer        string `mapstructure:"issuer" yaml:"issuer"`                 // JWT的签发者
	ExpireSeconds int64  `mapstructure:"expire_seconds" yaml:"expire_seconds"` // 访问令牌有效期（秒），同时作为会话缓存的 TTL
}
