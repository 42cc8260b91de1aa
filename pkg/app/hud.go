package app

import (
	"fmt"
	"image/color"

	"github.com/decker502/coclike/pkg/simulation"
	"github.com/decker502/coclike/pkg/types"
)

// hudLines 生成左上角资源面板的文字，资源取整显示
func hudLines(snap simulation.Snapshot) []string {
	lines := []string{
		fmt.Sprintf("Gold: %d", snap.ResourceAmount(types.ResourceGold)),
		fmt.Sprintf("Elixir: %d", snap.ResourceAmount(types.ResourceElixir)),
	}
	if snap.Armed {
		lines = append(lines, fmt.Sprintf("Placing: %s (Esc to cancel)", snap.Selected.DisplayName()))
	} else {
		lines = append(lines, "Select: 1-7")
	}
	return lines
}

// 面板位置（屏幕像素）
const (
	hudX, hudY, hudWidth    = 10, 10, 260
	helpX, helpY, helpWidth = 10, 70, 200
)

// hotkeyHelp 生成热键说明
func hotkeyHelp() []string {
	kinds := types.BuildableKinds()
	lines := make([]string, 0, len(kinds))
	for i, kind := range kinds {
		lines = append(lines, fmt.Sprintf("%d %s", i+1, kind.DisplayName()))
	}
	return lines
}

// debugLines 生成调试面板文字（F3）
func debugLines(snap simulation.Snapshot, cam *Camera, tps, fps float64) []string {
	return []string{
		fmt.Sprintf("Camera: (%.1f, %.1f) zoom %.1f", cam.CenterX, cam.CenterY, cam.Zoom),
		fmt.Sprintf("Map: %dx%d", snap.GridWidth, snap.GridHeight),
		fmt.Sprintf("Buildings: %d", len(snap.Buildings)),
		fmt.Sprintf("Gold: %.1f (+%.1f/s, cap %d)",
			snap.Resources[types.ResourceGold], snap.Rates[types.ResourceGold], snap.Capacity[types.ResourceGold]),
		fmt.Sprintf("Elixir: %.1f (+%.1f/s, cap %d)",
			snap.Resources[types.ResourceElixir], snap.Rates[types.ResourceElixir], snap.Capacity[types.ResourceElixir]),
		fmt.Sprintf("Time: %.1fs", snap.Elapsed),
		fmt.Sprintf("TPS: %.0f FPS: %.0f", tps, fps),
	}
}

// kindColor 建筑种类的填充颜色
func kindColor(kind types.BuildingKind) color.RGBA {
	switch kind.Tag {
	case types.KindTownHall:
		return color.RGBA{R: 150, G: 90, B: 40, A: 255}
	case types.KindCollector:
		if kind.Resource == types.ResourceElixir {
			return color.RGBA{R: 180, G: 60, B: 200, A: 255}
		}
		return color.RGBA{R: 230, G: 190, B: 40, A: 255}
	case types.KindStorage:
		if kind.Resource == types.ResourceElixir {
			return color.RGBA{R: 120, G: 40, B: 150, A: 255}
		}
		return color.RGBA{R: 170, G: 140, B: 30, A: 255}
	case types.KindDefense:
		return color.RGBA{R: 90, G: 90, B: 100, A: 255}
	case types.KindWall:
		return color.RGBA{R: 160, G: 160, B: 160, A: 255}
	default:
		return color.RGBA{R: 255, G: 0, B: 255, A: 255}
	}
}

// previewColor 放置预览颜色：可放置为半透明绿色，否则为半透明红色
func previewColor(valid bool) color.RGBA {
	if valid {
		return color.RGBA{R: 40, G: 200, B: 80, A: 120}
	}
	return color.RGBA{R: 220, G: 40, B: 40, A: 120}
}

// helpEntryAt 返回屏幕点 (px, py) 下的热键说明行序号
// 点击或触摸说明面板的某一行等同于按下对应热键
func helpEntryAt(px, py int) (int, bool) {
	if px < helpX-4 || px >= helpX-4+helpWidth || py < helpY {
		return 0, false
	}
	idx := (py - helpY) / lineHeight
	if idx >= len(types.BuildableKinds()) {
		return 0, false
	}
	return idx, true
}
