package simulation

import (
	"github.com/decker502/coclike/pkg/ecs"
	"github.com/decker502/coclike/pkg/types"
)

// BuildingSnapshot 展示层使用的建筑快照
type BuildingSnapshot struct {
	ID        ecs.EntityID
	Kind      types.BuildingKind
	Level     int
	Health    float64
	MaxHealth float64
	X, Y      int
	Footprint types.Footprint
}

// Snapshot 一步结束时的只读状态
// 修改快照不会影响模拟
type Snapshot struct {
	Buildings  []BuildingSnapshot // 按ID升序
	Resources  map[types.ResourceKind]float64
	Rates      map[types.ResourceKind]float64 // 每秒总产量
	Capacity   map[types.ResourceKind]int     // 仓库声明容量，只用于展示
	GridWidth  int
	GridHeight int
	Elapsed    float64
	Selected   types.BuildingKind
	Armed      bool
}

// Snapshot 生成当前状态的只读快照
func (s *Simulation) Snapshot() Snapshot {
	records := s.registry.Records()
	buildings := make([]BuildingSnapshot, 0, len(records))
	for _, rec := range records {
		buildings = append(buildings, BuildingSnapshot{
			ID:        rec.ID,
			Kind:      rec.Kind,
			Level:     rec.Level,
			Health:    rec.Health,
			MaxHealth: rec.MaxHealth,
			X:         rec.X,
			Y:         rec.Y,
			Footprint: rec.Footprint,
		})
	}

	selected, armed := s.state.Placement.Selected()
	return Snapshot{
		Buildings:  buildings,
		Resources:  s.state.Resources.Snapshot(),
		Rates:      s.economy.ProductionRates(),
		Capacity:   s.economy.StorageCapacity(),
		GridWidth:  s.grid.Width(),
		GridHeight: s.grid.Height(),
		Elapsed:    s.elapsed,
		Selected:   selected,
		Armed:      armed,
	}
}

// ResourceAmount 返回资源数量，截断为整数用于界面显示
func (snap Snapshot) ResourceAmount(kind types.ResourceKind) int64 {
	return int64(snap.Resources[kind])
}
