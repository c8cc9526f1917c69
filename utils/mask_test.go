package utils

import "testing"

func TestMaskPhone(t *testing.T) {
	cases := []struct {
		name  string
		phone string
		want  string
	}{
		{"标准手机号", "13800001111", "138****1111"},
		{"非11位原样返回", "1380000", "1380000"},
		{"空串原样返回", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MaskPhone(tc.phone); got != tc.want {
				t.Errorf("MaskPhone(%q) = %q, 期望 %q", tc.phone, got, tc.want)
			}
		})
	}
}

func TestMaskIP(t *testing.T) {
	cases := []struct {
		name string
		ip   string
		want string
	}{
		{"标准IPv4", "192.168.1.100", "192.168.1.*"},
		{"IPv6原样返回", "::1", "::1"},
		{"非法格式原样返回", "not-an-ip", "not-an-ip"},
		{"空串原样返回", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MaskIP(tc.ip); got != tc.want {
				t.Errorf("MaskIP(%q) = %q, 期望 %q", tc.ip, got, tc.want)
			}
		})
	}
}
