package router

import (
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/member_hub/config"
	"github.com/Xushengqwer/member_hub/constants"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	commonMiddleware "github.com/Xushengqwer/go-common/middleware"

	"github.com/gin-gonic/gin"

	otelgin "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Xushengqwer/member_hub/controller"
	"github.com/Xushengqwer/member_hub/dependencies"
	_ "github.com/Xushengqwer/member_hub/docs" // 引入 docs 包以注册 Swagger 信息
	"github.com/Xushengqwer/member_hub/initialization"
)

// SetupRouter 初始化并配置 Gin 引擎，注册所有中间件和路由。
// 设计目的:
//   - 作为应用路由配置的统一入口点。
//   - 应用全局中间件，处理通用逻辑如日志、错误恢复、超时等。
//   - 创建 API 版本分组（/api/v1/member-hub）。
//   - 实例化所有控制器，并将它们的路由注册到相应的分组下。
//
// 注意: 会员认证由各控制器按需挂载本地 AuthMiddleware 完成，公开接口（注册、登录、验证码）不经过认证。
// 参数:
//   - logger: Zap 日志记录器实例，用于中间件和控制器。
//   - cfg: 应用的全局配置 (MemberHubConfig)。
//   - jwtUtil: JWT 工具实例，传递给需要认证的控制器。
//   - appServices: 包含所有已初始化服务实例的结构体。
//
// 返回:
//   - *gin.Engine: 配置完成的 Gin 引擎实例，可以直接运行。
func SetupRouter(
	logger *core.ZapLogger,
	cfg *config.MemberHubConfig,
	jwtUtil dependencies.JWTTokenInterface,
	appServices *initialization.AppServices,
) *gin.Engine {
	logger.Info("开始设置 Gin 路由...")

	// 1. 创建 Gin 引擎实例
	router := gin.Default()

	// 2. OTel Middleware (最先，处理追踪上下文和 Span)
	router.Use(otelgin.Middleware(constants.ServiceName))

	// 3. Panic Recovery (捕获后续中间件和 handler 的 panic)
	router.Use(commonMiddleware.ErrorHandlingMiddleware(logger))

	// 4. Request Logger (记录访问日志，需要 TraceID)
	if baseLogger := logger.Logger(); baseLogger != nil {
		router.Use(commonMiddleware.RequestLoggerMiddleware(baseLogger))
	} else {
		logger.Warn("无法获取底层的 *zap.Logger，跳过 RequestLoggerMiddleware 注册")
	}

	// 5. Request Timeout (超时控制)
	requestTimeout := time.Duration(cfg.ServerConfig.RequestTimeout) * time.Second
	router.Use(commonMiddleware.RequestTimeoutMiddleware(logger, requestTimeout))

	// 6. 创建 API 版本分组 /api/v1/member-hub
	v1 := router.Group("api/v1/member-hub")
	logger.Info("API 路由将注册到 api/v1/member-hub 分组下")

	// 7. 初始化所有控制器
	authCtrl := controller.NewAuthController(appServices.AuthService, jwtUtil, appServices.SessionTokenRepo, logger)
	captchaCtrl := controller.NewCaptchaController(appServices.CaptchaService, logger)
	memberCtrl := controller.NewMemberController(appServices.MemberService, jwtUtil, appServices.SessionTokenRepo, logger)
	addressCtrl := controller.NewAddressController(appServices.AddressService, jwtUtil, appServices.SessionTokenRepo, logger)

	// 8. 注册每个控制器的路由到分组
	authCtrl.RegisterRoutes(v1)
	captchaCtrl.RegisterRoutes(v1)
	memberCtrl.RegisterRoutes(v1)
	addressCtrl.RegisterRoutes(v1)

	logger.Info("所有业务路由已成功注册")

	// 9. 配置 Swagger UI 路由
	//    访问路径通常是 /swagger/index.html
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logger.Info("Swagger UI 路由已注册，访问路径: /swagger/index.html")

	// 10. 返回配置好的 Gin 引擎
	return router
}
