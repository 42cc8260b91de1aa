package app

import (
	"math"

	"github.com/decker502/coclike/pkg/utils"
)

// 缩放范围（每格像素数）
const (
	MinZoom     = 4.0
	MaxZoom     = 48.0
	DefaultZoom = 12.0
)

// Camera 把屏幕（视口）坐标映射到世界坐标
//
// 世界坐标中 y 轴向上，屏幕坐标中 y 轴向下。
// (CenterX, CenterY) 是视口中心对应的世界坐标，Zoom 为每个世界单位（格）的像素数。
// Camera 实现 systems.Viewport。
type Camera struct {
	CenterX, CenterY float64
	Zoom             float64
	ScreenW, ScreenH int

	// 平滑移动动画
	animating              bool
	fromX, fromY           float64
	toX, toY               float64
	animElapsed, animTotal float64
	easing                 utils.EasingFunc
}

// NewCamera 创建以 (centerX, centerY) 为中心的相机
func NewCamera(screenW, screenH int, centerX, centerY float64) *Camera {
	return &Camera{
		CenterX: centerX,
		CenterY: centerY,
		Zoom:    DefaultZoom,
		ScreenW: screenW,
		ScreenH: screenH,
	}
}

// ViewportToWorld 屏幕坐标 → 世界坐标
// 指针不在视口内时返回 false
func (c *Camera) ViewportToWorld(px, py float64) (float64, float64, bool) {
	if px < 0 || py < 0 || px >= float64(c.ScreenW) || py >= float64(c.ScreenH) {
		return 0, 0, false
	}
	if math.IsNaN(px) || math.IsNaN(py) || c.Zoom <= 0 {
		return 0, 0, false
	}
	wx := c.CenterX + (px-float64(c.ScreenW)/2)/c.Zoom
	wy := c.CenterY - (py-float64(c.ScreenH)/2)/c.Zoom
	return wx, wy, true
}

// WorldToScreen 世界坐标 → 屏幕坐标
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := (wx-c.CenterX)*c.Zoom + float64(c.ScreenW)/2
	sy := float64(c.ScreenH)/2 - (wy-c.CenterY)*c.Zoom
	return sx, sy
}

// CellRect 返回格子矩形 [x, x+w) × [y, y+h) 在屏幕上的左上角和尺寸
func (c *Camera) CellRect(x, y, w, h int) (sx, sy, sw, sh float64) {
	// 世界坐标的左上角是 (x, y+h)
	sx, sy = c.WorldToScreen(float64(x), float64(y+h))
	return sx, sy, float64(w) * c.Zoom, float64(h) * c.Zoom
}

// Pan 按屏幕像素平移（拖动方向与内容移动方向一致）
func (c *Camera) Pan(dxPixels, dyPixels float64) {
	c.animating = false
	c.CenterX -= dxPixels / c.Zoom
	c.CenterY += dyPixels / c.Zoom
}

// ZoomAt 以屏幕点 (px, py) 为锚点缩放，锚点下的世界坐标保持不变
func (c *Camera) ZoomAt(factor, px, py float64) {
	if factor <= 0 || math.IsNaN(factor) {
		return
	}
	before := [2]float64{
		c.CenterX + (px-float64(c.ScreenW)/2)/c.Zoom,
		c.CenterY - (py-float64(c.ScreenH)/2)/c.Zoom,
	}
	c.Zoom = clampZoom(c.Zoom * factor)
	c.CenterX = before[0] - (px-float64(c.ScreenW)/2)/c.Zoom
	c.CenterY = before[1] + (py-float64(c.ScreenH)/2)/c.Zoom
}

// FocusOn 在 duration 秒内平滑移动到 (wx, wy)
// duration <= 0 时立即跳转
func (c *Camera) FocusOn(wx, wy, duration float64, easing utils.EasingFunc) {
	if duration <= 0 {
		c.CenterX, c.CenterY = wx, wy
		c.animating = false
		return
	}
	if easing == nil {
		easing = utils.EaseOutCubic
	}
	c.animating = true
	c.fromX, c.fromY = c.CenterX, c.CenterY
	c.toX, c.toY = wx, wy
	c.animElapsed = 0
	c.animTotal = duration
	c.easing = easing
}

// IsAnimating 是否正在平滑移动
func (c *Camera) IsAnimating() bool {
	return c.animating
}

// Update 推进平滑移动动画
func (c *Camera) Update(dt float64) {
	if !c.animating {
		return
	}
	c.animElapsed += dt
	t := utils.Clamp01(c.animElapsed / c.animTotal)
	k := c.easing(t)
	c.CenterX = utils.Lerp(c.fromX, c.toX, k)
	c.CenterY = utils.Lerp(c.fromY, c.toY, k)
	if t >= 1 {
		c.animating = false
	}
}

// Resize 更新视口尺寸
func (c *Camera) Resize(screenW, screenH int) {
	c.ScreenW, c.ScreenH = screenW, screenH
}

func clampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}
