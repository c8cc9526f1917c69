package utils

import "testing"

func TestSetAndCheckPassword(t *testing.T) {
	hashed, err := SetPassword("abc12345")
	if err != nil {
		t.Fatalf("SetPassword 失败: %v", err)
	}
	if hashed == "abc12345" {
		t.Fatal("哈希结果不应等于明文")
	}

	if err := CheckPassword(hashed, "abc12345"); err != nil {
		t.Errorf("正确密码校验失败: %v", err)
	}
	if err := CheckPassword(hashed, "wrong123"); err == nil {
		t.Error("错误密码不应校验通过")
	}
}

func TestIsStrongPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     bool
	}{
		{"合法密码", "abc12345", true},
		{"上限长度", "a1234567890123456789", true},
		{"过短", "abc1234", false},
		{"过长", "a12345678901234567890", false},
		{"纯字母", "abcdefgh", false},
		{"纯数字", "12345678", false},
		{"含特殊字符但满足字母数字", "abc123!@#", true},
		{"空串", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsStrongPassword(tc.password); got != tc.want {
				t.Errorf("IsStrongPassword(%q) = %v, 期望 %v", tc.password, got, tc.want)
			}
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"13800001111", true},
		{"19912345678", true},
		{"12800001111", false}, // 第二位非 3-9
		{"1380000111", false},  // 少一位
		{"138000011112", false},
		{"abcdefghijk", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsValidPhone(tc.phone); got != tc.want {
			t.Errorf("IsValidPhone(%q) = %v, 期望 %v", tc.phone, got, tc.want)
		}
	}
}

func TestIsValidVerificationCode(t *testing.T) {
	cases := []struct {
		code string
		want bool
	}{
		{"123456", true},
		{"000000", true},
		{"12345", false},
		{"1234567", false},
		{"12345a", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsValidVerificationCode(tc.code); got != tc.want {
			t.Errorf("IsValidVerificationCode(%q) = %v, 期望 %v", tc.code, got, tc.want)
		}
	}
}

func TestGenerateCaptcha(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateCaptcha()
		if !IsValidVerificationCode(code) {
			t.Fatalf("生成的验证码格式非法: %s", code)
		}
	}
}
