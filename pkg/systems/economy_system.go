package systems

import (
	"fmt"
	"math"

	"github.com/decker502/coclike/pkg/components"
	"github.com/decker502/coclike/pkg/ecs"
	"github.com/decker502/coclike/pkg/game"
	"github.com/decker502/coclike/pkg/types"
)

// EconomySystem 资源经济系统
// 每步按 产量 × 经过时间 把采集器的产出累加到玩家资源；不受仓库容量限制
type EconomySystem struct {
	entityManager *ecs.EntityManager
	resources     *game.PlayerResources
}

// NewEconomySystem 创建资源经济系统
func NewEconomySystem(em *ecs.EntityManager, resources *game.PlayerResources) *EconomySystem {
	return &EconomySystem{
		entityManager: em,
		resources:     resources,
	}
}

// Update 累积经过 dt 秒的产出
// dt 必须是非负有限数，否则属于调用方违约，直接 panic
func (s *EconomySystem) Update(dt float64) {
	if math.IsNaN(dt) || dt < 0 || math.IsInf(dt, 0) {
		panic(fmt.Sprintf("economy: elapsed seconds must be a finite non-negative number, got %v", dt))
	}
	if dt == 0 {
		return
	}

	entities := ecs.GetEntitiesWith2[
		*components.BuildingComponent,
		*components.CollectorComponent,
	](s.entityManager)

	for _, id := range entities {
		collector, _ := ecs.GetComponent[*components.CollectorComponent](s.entityManager, id)
		s.resources.Add(collector.Resource, collector.ProductionRate*dt)
	}
}

// ProductionRates 返回各资源当前的每秒总产量
func (s *EconomySystem) ProductionRates() map[types.ResourceKind]float64 {
	rates := make(map[types.ResourceKind]float64)
	for _, kind := range types.AllResourceKinds() {
		rates[kind] = 0
	}
	entities := ecs.GetEntitiesWith2[
		*components.BuildingComponent,
		*components.CollectorComponent,
	](s.entityManager)
	for _, id := range entities {
		collector, _ := ecs.GetComponent[*components.CollectorComponent](s.entityManager, id)
		rates[collector.Resource] += collector.ProductionRate
	}
	return rates
}

// StorageCapacity 返回各资源已声明的仓库总容量（只用于展示）
func (s *EconomySystem) StorageCapacity() map[types.ResourceKind]int {
	capacity := make(map[types.ResourceKind]int)
	for _, kind := range types.AllResourceKinds() {
		capacity[kind] = 0
	}
	entities := ecs.GetEntitiesWith2[
		*components.BuildingComponent,
		*components.StorageComponent,
	](s.entityManager)
	for _, id := range entities {
		storage, _ := ecs.GetComponent[*components.StorageComponent](s.entityManager, id)
		capacity[storage.Resource] += storage.Capacity
	}
	return capacity
}
