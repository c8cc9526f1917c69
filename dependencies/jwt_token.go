package dependencies

import (
	"errors"
	"fmt"
	"time"

	"github.com/Xushengqwer/member_hub/config"
	"github.com/google/uuid"

	"github.com/golang-jwt/jwt/v5" // 引入 v5 版本的 JWT 包
)

// JWTTokenInterface 定义 JWT 工具的接口
// - 用于生成和解析访问令牌，会话以 Redis 缓存为准，JWT 自校验只是第一道闸
type JWTTokenInterface interface {
	// GenerateToken 生成访问令牌
	// - 输入: memberID 会员ID, phone 会员手机号
	// - 输出: 访问令牌字符串和可能的错误
	GenerateToken(memberID int64, phone string) (string, error)

	// ParseToken 解析并验证访问令牌
	// - 输入: tokenString 待解析的令牌字符串
	// - 输出: 解析后的 CustomClaims 和可能的错误
	ParseToken(tokenString string) (*CustomClaims, error)

	// TokenTTL 返回访问令牌的有效期，供会话缓存对齐 TTL
	TokenTTL() time.Duration
}

// CustomClaims 定义 JWT 的声明结构体，包含标准字段和自定义字段
type CustomClaims struct {
	MemberID             int64  `json:"member_id"` // 会员ID，唯一标识会员
	Phone                string `json:"phone"`     // 会员手机号
	jwt.RegisteredClaims        // 嵌入 JWT v5 的标准声明字段
}

// JWTUtility 实现 JWTTokenInterface 接口的结构体
type JWTUtility struct {
	cfg *config.JWTConfig // JWT 配置，包含密钥、发行者、有效期等信息
}

// NewJWTUtility 创建 JWTUtility 实例，通过依赖注入初始化
// - 输入: cfg JWT 配置实例
// - 输出: JWTTokenInterface 接口实例
func NewJWTUtility(cfg *config.JWTConfig) JWTTokenInterface {
	return &JWTUtility{cfg: cfg}
}

// GenerateToken 生成访问令牌
// - 输入: memberID 会员ID, phone 会员手机号
// - 输出: 访问令牌字符串和可能的错误
func (ju *JWTUtility) GenerateToken(memberID int64, phone string) (string, error) {
	now := time.Now()

	// 创建自定义声明
	claims := &CustomClaims{
		MemberID: memberID,
		Phone:    phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ju.cfg.Issuer,                              // 令牌发行者，从配置中获取
			IssuedAt:  jwt.NewNumericDate(now),                    // 签发时间
			ExpiresAt: jwt.NewNumericDate(now.Add(ju.TokenTTL())), // 过期时间，从配置中获取
			ID:        uuid.New().String(),                        // 生成唯一 JTI
		},
	}

	// 创建令牌，使用 HS256 签名算法
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// 使用访问令牌的密钥签名
	secret := []byte(ju.cfg.SecretKey)
	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("签名令牌失败: %v", err)
	}
	return signedToken, nil
}

// ParseToken 解析并验证访问令牌
// - 输入: tokenString 待解析的令牌字符串
// - 输出: 解析后的 CustomClaims 和可能的错误
func (ju *JWTUtility) ParseToken(tokenString string) (*CustomClaims, error) {
	secret := []byte(ju.cfg.SecretKey)

	// 创建解析器，启用 v5 的严格验证选项
	parser := jwt.NewParser(
		jwt.WithExpirationRequired(),  // 强制要求令牌包含过期时间
		jwt.WithIssuer(ju.cfg.Issuer), // 验证发行者是否匹配配置中的值
	)

	// 使用 v5 的 Parser 解析令牌
	token, err := parser.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法是否为 HS256
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("签名算法不匹配: %v", token.Header["alg"])
		}
		return secret, nil
	})

	// 如果解析失败，返回错误
	if err != nil {
		return nil, err
	}

	// 类型断言并验证令牌有效性
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("无效的JWT声明")
	}

	return claims, nil
}

// TokenTTL 返回访问令牌的有效期。
func (ju *JWTUtility) TokenTTL() time.Duration {
	if ju.cfg.ExpireSeconds <= 0 {
		return 2 * time.Hour
	}
	return time.Duration(ju.cfg.ExpireSeconds) * time.Second
}
