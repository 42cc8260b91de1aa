package components

import "github.com/decker502/coclike/pkg/types"

// BuildingComponent 标识实体为已放置的建筑
// 与 HealthComponent、GridPositionComponent 以及按种类附加的属性组件一起构成一条建筑记录
type BuildingComponent struct {
	Kind  types.BuildingKind // 建筑种类
	Level int                // 等级，始终在 [1,10]
}

// GridPositionComponent 记录建筑在网格上的锚点和占地
// 锚点 (X, Y) 为占地的左下角格子，占地覆盖 [X, X+W) × [Y, Y+H)
type GridPositionComponent struct {
	X         int
	Y         int
	Footprint types.Footprint
}

// Covers 判断格子 (x, y) 是否位于占地内
func (p *GridPositionComponent) Covers(x, y int) bool {
	return x >= p.X && x < p.X+p.Footprint.Width &&
		y >= p.Y && y < p.Y+p.Footprint.Height
}

// CollectorComponent 资源采集器属性
type CollectorComponent struct {
	Resource       types.ResourceKind // 产出的资源种类
	ProductionRate float64            // 每秒产量
}

// StorageComponent 资源仓库属性
// 容量只用于展示，资源累积不受容量限制
type StorageComponent struct {
	Resource types.ResourceKind
	Capacity int
}

// DefenseComponent 防御塔属性（战斗结算不在本模块范围内）
type DefenseComponent struct {
	Damage      float64
	Range       float64 // 射程（格）
	AttackSpeed float64 // 每秒攻击次数
}

// WallComponent 城墙属性
// Durability 始终与所在实体的 HealthComponent.CurrentHealth 一致
type WallComponent struct {
	Durability float64
}
