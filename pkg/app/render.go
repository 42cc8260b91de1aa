package app

import (
	"image/color"
	"math"
	"strconv"

	"github.com/decker502/coclike/pkg/simulation"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	backgroundColor = color.RGBA{R: 20, G: 24, B: 20, A: 255}
	groundColor     = color.RGBA{R: 70, G: 120, B: 60, A: 255}
	gridLineColor   = color.RGBA{R: 60, G: 100, B: 52, A: 255}
	borderColor     = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	healthBgColor   = color.RGBA{R: 40, G: 0, B: 0, A: 200}
	healthFgColor   = color.RGBA{R: 60, G: 220, B: 60, A: 255}
	panelColor      = color.RGBA{R: 0, G: 0, B: 0, A: 160}
)

// 网格线只在缩放足够大时绘制
const minZoomForGridLines = 6.0

// 调试字体每行高度
const lineHeight = 16

// drawGround 绘制地面和网格线
func drawGround(screen *ebiten.Image, cam *Camera, snap simulation.Snapshot, showGrid bool) {
	screen.Fill(backgroundColor)

	sx, sy, sw, sh := cam.CellRect(0, 0, snap.GridWidth, snap.GridHeight)
	vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(sw), float32(sh), groundColor, false)

	if !showGrid || cam.Zoom < minZoomForGridLines {
		return
	}
	for x := 0; x <= snap.GridWidth; x++ {
		lx, _ := cam.WorldToScreen(float64(x), 0)
		vector.StrokeLine(screen, float32(lx), float32(sy), float32(lx), float32(sy+sh), 1, gridLineColor, false)
	}
	for y := 0; y <= snap.GridHeight; y++ {
		_, ly := cam.WorldToScreen(0, float64(y))
		vector.StrokeLine(screen, float32(sx), float32(ly), float32(sx+sw), float32(ly), 1, gridLineColor, false)
	}
}

// drawBuildings 绘制所有建筑，受损建筑显示血条
func drawBuildings(screen *ebiten.Image, cam *Camera, snap simulation.Snapshot) {
	for _, b := range snap.Buildings {
		sx, sy, sw, sh := cam.CellRect(b.X, b.Y, b.Footprint.Width, b.Footprint.Height)
		if !onScreen(cam, sx, sy, sw, sh) {
			continue
		}
		vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(sw), float32(sh), kindColor(b.Kind), false)
		vector.StrokeRect(screen, float32(sx), float32(sy), float32(sw), float32(sh), 1, borderColor, false)

		if b.MaxHealth > 0 && b.Health < b.MaxHealth {
			ratio := math.Max(0, b.Health/b.MaxHealth)
			vector.DrawFilledRect(screen, float32(sx), float32(sy-4), float32(sw), 3, healthBgColor, false)
			vector.DrawFilledRect(screen, float32(sx), float32(sy-4), float32(sw*ratio), 3, healthFgColor, false)
		}
		if sw >= 40 {
			ebitenutil.DebugPrintAt(screen, levelLabel(b.Level), int(sx)+2, int(sy)+1)
		}
	}
}

// drawPreview 绘制放置预览
func drawPreview(screen *ebiten.Image, cam *Camera, result simulation.StepResult) {
	if !result.HasPreview {
		return
	}
	p := result.Preview
	sx, sy, sw, sh := cam.CellRect(p.X, p.Y, p.Footprint.Width, p.Footprint.Height)
	vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(sw), float32(sh), previewColor(p.Valid), false)
}

// drawPanel 在 (x, y) 绘制带半透明背景的多行文字
func drawPanel(screen *ebiten.Image, lines []string, x, y, width int) {
	if len(lines) == 0 {
		return
	}
	vector.DrawFilledRect(screen, float32(x-4), float32(y-2), float32(width), float32(len(lines)*lineHeight+4), panelColor, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x, y+i*lineHeight)
	}
}

// onScreen 矩形是否与视口相交
func onScreen(cam *Camera, sx, sy, sw, sh float64) bool {
	return sx+sw >= 0 && sy+sh >= 0 && sx <= float64(cam.ScreenW) && sy <= float64(cam.ScreenH)
}

func levelLabel(level int) string {
	return "L" + strconv.Itoa(level)
}
