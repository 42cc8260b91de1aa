package utils

import "math"

// EasingFunc 缓动函数：输入进度 t ∈ [0, 1]，返回缓动后的进度
type EasingFunc func(t float64) float64

// EaseLinear 匀速
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出，开始快结束慢
// f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EasingByName 按名称查找缓动函数（linear、easeOut、easeInOut）
// 未知名称返回 EaseLinear
func EasingByName(name string) EasingFunc {
	switch name {
	case "easeOut":
		return EaseOutCubic
	case "easeInOut":
		return EaseInOutCubic
	default:
		return EaseLinear
	}
}

// Clamp01 把 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
