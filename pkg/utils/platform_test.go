//go:build !mobile

package utils

import "testing"

// TestIsMobile_Desktop 测试桌面端编译时 IsMobile() 的返回值
func TestIsMobile_Desktop(t *testing.T) {
	t.Run("默认为桌面", func(t *testing.T) {
		t.Setenv("BASE_MOBILE_EMULATE", "")
		if IsMobile() {
			t.Error("IsMobile() should return false on desktop")
		}
	})

	t.Run("环境变量强制移动模式", func(t *testing.T) {
		t.Setenv("BASE_MOBILE_EMULATE", "1")
		if !IsMobile() {
			t.Error("IsMobile() should return true when emulation is enabled")
		}
	})
}
