package components

import "github.com/decker502/coclike/pkg/ecs"

// GridOccupancyComponent 标识基地网格实体
// 用于跟踪哪些格子已被建筑占用
//
// Cells 按行优先存储每个格子的占用者：index = y*Width + x，
// 0（ecs.InvalidEntity）表示空格子。这里只保存建筑的ID，不拥有建筑记录。
type GridOccupancyComponent struct {
	Width  int
	Height int
	Cells  []ecs.EntityID
}

// NewGridOccupancyComponent 创建指定尺寸的空网格
func NewGridOccupancyComponent(width, height int) *GridOccupancyComponent {
	return &GridOccupancyComponent{
		Width:  width,
		Height: height,
		Cells:  make([]ecs.EntityID, width*height),
	}
}
