package utils

import "math"

// WorldToGridCell 将世界坐标转换为网格格子坐标
// 一个世界单位对应一个格子，格子 (x, y) 覆盖 [x, x+1) × [y, y+1)
//
// 参数:
//   - worldX, worldY: 世界坐标
//
// 返回:
//   - x, y: 格子坐标（取整方式为向下取整，可能为负数，由调用方做边界检查）
//   - ok: 坐标为 NaN、无穷或超出 int 范围时为 false
func WorldToGridCell(worldX, worldY float64) (x, y int, ok bool) {
	fx := math.Floor(worldX)
	fy := math.Floor(worldY)
	if !finiteInt(fx) || !finiteInt(fy) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

// GridCellToWorld 返回格子左下角的世界坐标
func GridCellToWorld(x, y int) (worldX, worldY float64) {
	return float64(x), float64(y)
}

// GridCellCenter 返回格子中心的世界坐标
func GridCellCenter(x, y int) (worldX, worldY float64) {
	return float64(x) + 0.5, float64(y) + 0.5
}

// finiteInt 判断取整后的浮点数能否安全转换为 int32 范围内的整数
func finiteInt(v float64) bool {
	return !math.IsNaN(v) && v >= math.MinInt32 && v <= math.MaxInt32
}
