package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Xushengqwer/go-common/commonerrors"
	commonconfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"

	"github.com/Xushengqwer/member_hub/dependencies"
	"github.com/Xushengqwer/member_hub/errs"
	"github.com/Xushengqwer/member_hub/models/dto"
	"github.com/Xushengqwer/member_hub/models/entities"
	"github.com/Xushengqwer/member_hub/models/enums"
	"github.com/Xushengqwer/member_hub/models/vo"
	"github.com/Xushengqwer/member_hub/utils"
)

// MockMemberRepository 是 mysql.MemberRepository 接口的模拟实现
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) CreateMember(ctx context.Context, member *entities.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) GetMemberByID(ctx context.Context, memberID int64) (*entities.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Member), args.Error(1)
}

func (m *MockMemberRepository) GetMemberByPhone(ctx context.Context, phone string) (*entities.Member, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Member), args.Error(1)
}

func (m *MockMemberRepository) UpdateMember(ctx context.Context, memberID int64, updates map[string]interface{}) error {
	args := m.Called(ctx, memberID, updates)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdateLastLogin(ctx context.Context, memberID int64, loginTime time.Time, loginIP string) error {
	args := m.Called(ctx, memberID, loginTime, loginIP)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdatePassword(ctx context.Context, memberID int64, hashedPassword string) error {
	args := m.Called(ctx, memberID, hashedPassword)
	return args.Error(0)
}

// MockSessionTokenRepo 是 redis.SessionTokenRepo 接口的模拟实现
type MockSessionTokenRepo struct {
	mock.Mock
}

func (m *MockSessionTokenRepo) CacheToken(ctx context.Context, memberID int64, token string, expire time.Duration) error {
	args := m.Called(ctx, memberID, token, expire)
	return args.Error(0)
}

func (m *MockSessionTokenRepo) GetToken(ctx context.Context, memberID int64) (string, error) {
	args := m.Called(ctx, memberID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionTokenRepo) RemoveToken(ctx context.Context, memberID int64) error {
	args := m.Called(ctx, memberID)
	return args.Error(0)
}

// MockCaptchaService 是 captcha.CaptchaService 接口的模拟实现
type MockCaptchaService struct {
	mock.Mock
}

func (m *MockCaptchaService) Send(ctx context.Context, phone string, purpose enums.CodePurpose) (vo.CaptchaSendResult, error) {
	args := m.Called(ctx, phone, purpose)
	return args.Get(0).(vo.CaptchaSendResult), args.Error(1)
}

func (m *MockCaptchaService) Verify(ctx context.Context, phone string, purpose enums.CodePurpose, code string) bool {
	args := m.Called(ctx, phone, purpose, code)
	return args.Bool(0)
}

// MockJWTUtility 是 dependencies.JWTTokenInterface 接口的模拟实现
type MockJWTUtility struct {
	mock.Mock
}

func (m *MockJWTUtility) GenerateToken(memberID int64, phone string) (string, error) {
	args := m.Called(memberID, phone)
	return args.String(0), args.Error(1)
}

func (m *MockJWTUtility) ParseToken(tokenString string) (*dependencies.CustomClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dependencies.CustomClaims), args.Error(1)
}

func (m *MockJWTUtility) TokenTTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// MockLoginLogProducer 是 dependencies.LoginLogProducer 接口的模拟实现
type MockLoginLogProducer struct {
	mock.Mock
}

func (m *MockLoginLogProducer) SendLoginLogAsync(event dto.LoginLogEvent) {
	m.Called(event)
}

func newTestLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(commonconfig.ZapConfig{Level: "error"})
	if err != nil {
		t.Fatalf("初始化测试日志器失败: %v", err)
	}
	return logger
}

// testFixture 聚合 authService 及其全部模拟依赖
type testFixture struct {
	svc        AuthService
	memberRepo *MockMemberRepository
	sessions   *MockSessionTokenRepo
	captchaSvc *MockCaptchaService
	jwtUtil    *MockJWTUtility
	producer   *MockLoginLogProducer
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()
	f := &testFixture{
		memberRepo: new(MockMemberRepository),
		sessions:   new(MockSessionTokenRepo),
		captchaSvc: new(MockCaptchaService),
		jwtUtil:    new(MockJWTUtility),
		producer:   new(MockLoginLogProducer),
	}
	f.svc = NewAuthService(f.memberRepo, f.sessions, f.captchaSvc, f.jwtUtil, f.producer, newTestLogger(t))
	return f
}

// activeMember 构造一个状态正常的会员实体，密码为 abc12345。
func activeMember(t *testing.T) *entities.Member {
	t.Helper()
	hashed, err := utils.SetPassword("abc12345")
	if err != nil {
		t.Fatalf("哈希密码失败: %v", err)
	}
	return &entities.Member{
		ID:            10001,
		Phone:         "13800001111",
		Password:      hashed,
		Nickname:      "测试会员",
		RegisterTime:  time.Date(2025, 1, 1, 10, 0, 0, 0, time.Local),
		AccountStatus: enums.StatusActive,
	}
}

var testClient = dto.ClientInfo{IP: "192.168.1.100", DeviceType: "IOS", DeviceID: "device-1"}

func TestAuthService_Register_Success(t *testing.T) {
	f := newFixture(t)
	data := dto.RegisterData{Phone: "13800001111", Password: "abc12345", VerificationCode: "123456"}

	f.captchaSvc.On("Verify", mock.Anything, "13800001111", enums.PurposeRegister, "123456").Return(true)
	f.memberRepo.On("GetMemberByPhone", mock.Anything, "13800001111").Return(nil, commonerrors.ErrRepoNotFound)
	f.memberRepo.On("CreateMember", mock.Anything, mock.AnythingOfType("*entities.Member")).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.Member).ID = 10001
	}).Return(nil)
	f.jwtUtil.On("GenerateToken", int64(10001), "13800001111").Return("jwt-token", nil)
	f.jwtUtil.On("TokenTTL").Return(2 * time.Hour)
	f.sessions.On("CacheToken", mock.Anything, int64(10001), "jwt-token", 2*time.Hour).Return(nil)
	f.producer.On("SendLoginLogAsync", mock.AnythingOfType("dto.LoginLogEvent")).Return()

	result, err := f.svc.Register(context.Background(), data, testClient)
	assert.NoError(t, err)
	assert.Equal(t, int64(10001), result.MemberID)
	assert.Equal(t, "138****1111", result.Phone, "响应中的手机号应脱敏")
	assert.Equal(t, "jwt-token", result.Token)
	assert.Equal(t, int64(7200), result.ExpiresIn)
	// 未指定昵称时使用默认昵称，不包含完整手机号
	assert.NotContains(t, result.Nickname, "13800001111")
	f.memberRepo.AssertExpectations(t)
}

func TestAuthService_Register_InvalidPhoneFormat(t *testing.T) {
	f := newFixture(t)

	// 非法手机号在服务入口即被拒绝，不触达任何依赖
	for _, phone := range []string{"", "123", "12345678901", "138000011112"} {
		data := dto.RegisterData{Phone: phone, Password: "abc12345", VerificationCode: "123456"}
		_, err := f.svc.Register(context.Background(), data, testClient)
		bizErr, ok := errs.AsBusinessError(err)
		assert.True(t, ok, "手机号 %q 应返回业务错误", phone)
		assert.Equal(t, errs.CodeBadRequest, bizErr.Code)
	}
	f.memberRepo.AssertNotCalled(t, "GetMemberByPhone", mock.Anything, mock.Anything)
	f.captchaSvc.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	f := newFixture(t)

	for _, password := range []string{"short1", "allletters", "12345678", "a1234567890123456789x"} {
		data := dto.RegisterData{Phone: "13800001111", Password: password, VerificationCode: "123456"}
		_, err := f.svc.Register(context.Background(), data, testClient)
		bizErr, ok := errs.AsBusinessError(err)
		assert.True(t, ok, "密码 %q 应返回业务错误", password)
		assert.Equal(t, errs.CodeBadRequest, bizErr.Code)
	}
	f.memberRepo.AssertNotCalled(t, "CreateMember", mock.Anything, mock.Anything)
}

func TestAuthService_Register_CaptchaInvalid(t *testing.T) {
	f := newFixture(t)
	data := dto.RegisterData{Phone: "13800001111", Password: "abc12345", VerificationCode: "000000"}

	f.memberRepo.On("GetMemberByPhone", mock.Anything, "13800001111").Return(nil, commonerrors.ErrRepoNotFound)
	f.captchaSvc.On("Verify", mock.Anything, "13800001111", enums.PurposeRegister, "000000").Return(false)

	_, err := f.svc.Register(context.Background(), data, testClient)
	assert.ErrorIs(t, err, errs.ErrCaptchaInvalid)
	f.memberRepo.AssertNotCalled(t, "CreateMember", mock.Anything, mock.Anything)
}

func TestAuthService_Register_PhoneAlreadyExists(t *testing.T) {
	f := newFixture(t)
	data := dto.RegisterData{Phone: "13800001111", Password: "abc12345", VerificationCode: "123456"}

	f.memberRepo.On("GetMemberByPhone", mock.Anything, "13800001111").Return(activeMember(t), nil)

	_, err := f.svc.Register(context.Background(), data, testClient)
	assert.ErrorIs(t, err, errs.ErrPhoneAlreadyExists)
	// 手机号被占用时不触发验证码校验，验证码不被消费
	f.captchaSvc.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Register_ConcurrentDuplicate(t *testing.T) {
	f := newFixture(t)
	data := dto.RegisterData{Phone: "13800001111", Password: "abc12345", VerificationCode: "123456"}

	// 预检时不存在，但并发注册导致唯一键冲突
	f.captchaSvc.On("Verify", mock.Anything, "13800001111", enums.PurposeRegister, "123456").Return(true)
	f.memberRepo.On("GetMemberByPhone", mock.Anything, "13800001111").Return(nil, commonerrors.ErrRepoNotFound)
	f.memberRepo.On("CreateMember", mock.Anything, mock.AnythingOfType("*entities.Member")).Return(errs.ErrPhoneAlreadyExists)

	_, err := f.svc.Register(context.Background(), data, testClient)
	assert.ErrorIs(t, err, errs.ErrPhoneAlreadyExists)
}

func TestAuthService_PasswordLogin_Success(t *testing.T) {
	f := newFixture(t)
	member := activeMember(t)

	f.memberRepo.On("GetMemberByPhone", mock.Anything, "13800001111").Return(member, nil)
	f.jwtUtil.On("GenerateToken", int64(10001), "13800001111").Return("jwt-token", nil)
	f.jwtUtil.On("TokenTTL").Return(2 * time.Hour)
	f.sessions.On("CacheToken", mock.Anything, int64(10001), "jwt-token", 2*time.Hour).Return(nil)
	f.memberRepo.On("UpdateLastLogin", mock.Anything, int64(10001), mock.AnythingOfType("time.Time"), "192.168.1.100").Return(nil)
	f.producer.On("SendLoginLogAsync", mock.MatchedBy(func(event dto.LoginLogEvent) bool {
		return event.LoginStatus == enums.LoginStatusSuccess && event.LoginType == enums.LoginTypePassword
	})).Return()

	result, err := f.svc.PasswordLogin(context.Background(), dto.PasswordLoginData{Phone: "13800001111", Password: "abc12345"}, testClient)
	assert.NoError(t, err)
	assert.Equal(t, int64(10001), result.MemberID)
	assert.Equal(t, "138****1111", result.Phone)
	assert.Equal(t, "jwt-token", result.Token)
	f.producer.AssertExpectations(t)
}

func TestAuthService_PasswordLogin_PhoneNotRegistered(t *testing.T) {
	f := newFixture(t)

	f.memberRepo.On("GetMemberByPhone", mock.Anything, "13800001111").Return(nil, commonerrors.ErrRepoNotFound)

	_, err := f.svc.PasswordLogin(context.Background(), dto.PasswordLoginData{Phone: "13800001111", Password: "abc12345"}, testClient)
	assert.ErrorIs(t, err, errs.ErrPhoneNotRegistered)
}

func TestAuthService_PasswordLogin_InvalidPhoneFormat(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.PasswordLogin(context.Background(), dto.PasswordLoginData{Phone: "123", Password: "abc12345"}, testClient)
	bizErr, ok := errs.AsBusinessError(err)
	assert.True(t, ok)
	assert.Equal(t, errs.CodeBadRequest, bizErr.Code)
	f.memberRepo.AssertNotCalled(t, "GetMemberByPhone", mock.Anything, mock.Anything)
}

func TestAuthService_PasswordLogin_LastLoginPersistFailure(t *testing.T) {
	f := newFixture(t)
	member := activeMember(t)

	// 最近登录信息落盘失败时本次登录整体失败，不签发也不缓存令牌
	f.memberRepo.On("GetMemberByPhone", mock.Anything, "13800001111").Return(member, nil)
	f.memberRepo.On("UpdateLastLogin", mock.Anything, int64(10001), mock.AnythingOfType("time.Time"), "192.168.1.100").Return(errors.New("数据库连接失败"))

	_, err := f.svc.PasswordLogin(context.Background(), dto.PasswordLoginData{Phone: "13800001111", Password: "abc12345"}, testClient)
	assert.ErrorIs(t, err, commonerrors.ErrSystemError)
	f.jwtUtil.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
	f.sessions.AssertNotCalled(t, "CacheToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_PasswordLogin_WrongPassword(t *testing.T) {
	f := newFixture(t)
	member := activeMember(t)

	f.memberRepo.On("GetMemberByPhone", mock.Anything, "13800001111").Return(member, nil)
	f.producer.On("SendLoginLogAsync", mock.MatchedBy(func(event dto.LoginLogEvent) bool {
		return event.LoginStatus == enums.LoginStatusFailed && event.MemberID == 10001
	})).Return()

	_, err := f.svc.PasswordLogin(context.Background(), dto.PasswordLoginData{Phone: "13800001111", Password: "wrong999"}, testClient)
	assert.ErrorIs(t, err, errs.ErrPasswordIncorrect)
	// 密码错误不签发令牌也不写会话
	f.sessions.AssertNotCalled(t, "CacheToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.producer.AssertExpectations(t)
}

func TestAuthService_PasswordLogin_AccountStatusGates(t *testing.T) {
	cases := []struct {
		name    string
		status  enums.AccountStatus
		wantErr *errs.BusinessError
	}{
		{"锁定账号", enums.StatusLocked, errs.ErrAccountLocked},
		{"未激活账号", enums.StatusUnactivated, errs.ErrAccountInactive},
		{"已注销账号", enums.StatusCanceled, errs.ErrAccountCanceled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			member := activeMember(t)
			member.AccountStatus = tc.status

			f.memberRepo.On("GetMemberByPhone", mock.Anything, "13800001111").Return(member, nil)

			_, err := f.svc.PasswordLogin(context.Background(), dto.PasswordLoginData{Phone: "13800001111", Password: "abc12345"}, testClient)
			assert.ErrorIs(t, err, tc.wantErr)
			f.jwtUtil.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_SmsLogin_Success(t *testing.T) {
	f := newFixture(t)
	member := activeMember(t)
	lastLogin := time.Date(2025, 6, 1, 9, 0, 0, 0, time.Local)
	member.LastLoginTime = &lastLogin

	f.memberRepo.On("GetMemberByPhone", mock.Anything, "13800001111").Return(member, nil)
	f.captchaSvc.On("Verify", mock.Anything, "13800001111", enums.PurposeLogin, "123456").Return(true)
	f.jwtUtil.On("GenerateToken", int64(10001), "13800001111").Return("jwt-token", nil)
	f.jwtUtil.On("TokenTTL").Return(2 * time.Hour)
	f.sessions.On("CacheToken", mock.Anything, int64(10001), "jwt-token", 2*time.Hour).Return(nil)
	f.memberRepo.On("UpdateLastLogin", mock.Anything, int64(10001), mock.AnythingOfType("time.Time"), "192.168.1.100").Return(nil)
	f.producer.On("SendLoginLogAsync", mock.MatchedBy(func(event dto.LoginLogEvent) bool {
		return event.LoginType == enums.LoginTypeSMS && event.LoginStatus == enums.LoginStatusSuccess
	})).Return()

	result, err := f.svc.SmsLogin(context.Background(), dto.SmsLoginData{Phone: "13800001111", VerificationCode: "123456"}, testClient)
	assert.NoError(t, err)
	assert.Equal(t, "2025-06-01 09:00:00", result.LastLoginTime, "应返回本次登录之前的时间")
}

func TestAuthService_SmsLogin_StatusCheckedBeforeCaptcha(t *testing.T) {
	f := newFixture(t)
	member := activeMember(t)
	member.AccountStatus = enums.StatusLocked

	f.memberRepo.On("GetMemberByPhone", mock.Anything, "13800001111").Return(member, nil)

	// 锁定账号在验证码校验之前就被拒绝，验证码不被消费
	_, err := f.svc.SmsLogin(context.Background(), dto.SmsLoginData{Phone: "13800001111", VerificationCode: "123456"}, testClient)
	assert.ErrorIs(t, err, errs.ErrAccountLocked)
	f.captchaSvc.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_SmsLogin_InvalidPhoneFormat(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SmsLogin(context.Background(), dto.SmsLoginData{Phone: "abcdefghijk", VerificationCode: "123456"}, testClient)
	bizErr, ok := errs.AsBusinessError(err)
	assert.True(t, ok)
	assert.Equal(t, errs.CodeBadRequest, bizErr.Code)
	f.memberRepo.AssertNotCalled(t, "GetMemberByPhone", mock.Anything, mock.Anything)
}

func TestAuthService_SmsLogin_CaptchaInvalid(t *testing.T) {
	f := newFixture(t)
	member := activeMember(t)

	f.memberRepo.On("GetMemberByPhone", mock.Anything, "13800001111").Return(member, nil)
	f.captchaSvc.On("Verify", mock.Anything, "13800001111", enums.PurposeLogin, "000000").Return(false)
	f.producer.On("SendLoginLogAsync", mock.MatchedBy(func(event dto.LoginLogEvent) bool {
		return event.LoginStatus == enums.LoginStatusFailed
	})).Return()

	_, err := f.svc.SmsLogin(context.Background(), dto.SmsLoginData{Phone: "13800001111", VerificationCode: "000000"}, testClient)
	assert.ErrorIs(t, err, errs.ErrCaptchaInvalid)
}

func TestAuthService_ResetPassword_Success(t *testing.T) {
	f := newFixture(t)
	member := activeMember(t)
	data := dto.ResetPasswordData{Phone: "13800001111", VerificationCode: "123456", NewPassword: "newpass99"}

	f.captchaSvc.On("Verify", mock.Anything, "13800001111", enums.PurposeResetPassword, "123456").Return(true)
	f.memberRepo.On("GetMemberByPhone", mock.Anything, "13800001111").Return(member, nil)
	f.memberRepo.On("UpdatePassword", mock.Anything, int64(10001), mock.AnythingOfType("string")).Return(nil)
	f.sessions.On("RemoveToken", mock.Anything, int64(10001)).Return(nil)

	err := f.svc.ResetPassword(context.Background(), data)
	assert.NoError(t, err)
	// 重置成功后立即吊销会话
	f.sessions.AssertCalled(t, "RemoveToken", mock.Anything, int64(10001))
}

func TestAuthService_ResetPassword_SamePasswordRejected(t *testing.T) {
	f := newFixture(t)
	member := activeMember(t)
	data := dto.ResetPasswordData{Phone: "13800001111", VerificationCode: "123456", NewPassword: "abc12345"}

	f.captchaSvc.On("Verify", mock.Anything, "13800001111", enums.PurposeResetPassword, "123456").Return(true)
	f.memberRepo.On("GetMemberByPhone", mock.Anything, "13800001111").Return(member, nil)

	err := f.svc.ResetPassword(context.Background(), data)
	bizErr, ok := errs.AsBusinessError(err)
	assert.True(t, ok)
	assert.Equal(t, errs.CodeBadRequest, bizErr.Code)
	f.memberRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_ResetPassword_WeakNewPassword(t *testing.T) {
	f := newFixture(t)
	data := dto.ResetPasswordData{Phone: "13800001111", VerificationCode: "123456", NewPassword: "weak"}

	err := f.svc.ResetPassword(context.Background(), data)
	bizErr, ok := errs.AsBusinessError(err)
	assert.True(t, ok)
	assert.Equal(t, errs.CodeBadRequest, bizErr.Code)
	// 强度校验先于验证码校验，弱密码不消耗验证码
	f.captchaSvc.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_ResetPassword_CaptchaInvalid(t *testing.T) {
	f := newFixture(t)
	data := dto.ResetPasswordData{Phone: "13800001111", VerificationCode: "000000", NewPassword: "newpass99"}

	f.captchaSvc.On("Verify", mock.Anything, "13800001111", enums.PurposeResetPassword, "000000").Return(false)

	err := f.svc.ResetPassword(context.Background(), data)
	assert.ErrorIs(t, err, errs.ErrCaptchaInvalid)
	f.memberRepo.AssertNotCalled(t, "GetMemberByPhone", mock.Anything, mock.Anything)
}

func TestAuthService_Logout_SwallowsCacheFailure(t *testing.T) {
	f := newFixture(t)

	f.sessions.On("RemoveToken", mock.Anything, int64(10001)).Return(errors.New("redis 连接失败"))

	// 登出是幂等操作，缓存删除失败不向调用方暴露
	err := f.svc.Logout(context.Background(), 10001)
	assert.NoError(t, err)
}
