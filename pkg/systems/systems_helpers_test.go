package systems

import (
	"testing"

	"github.com/decker502/coclike/pkg/config"
	"github.com/decker502/coclike/pkg/ecs"
	"github.com/decker502/coclike/pkg/game"
)

// testWorld 测试用的最小模拟世界
type testWorld struct {
	em        *ecs.EntityManager
	registry  *BuildingRegistry
	grid      *GridSystem
	placement *PlacementSystem
	resources *game.PlayerResources
	economy   *EconomySystem
}

// newTestWorld 创建一个空的 width×height 基地
func newTestWorld(tb testing.TB, width, height int) *testWorld {
	tb.Helper()

	em := ecs.NewEntityManager()
	gridEntity, err := NewGridEntity(em, width, height)
	if err != nil {
		tb.Fatalf("NewGridEntity: %v", err)
	}
	grid, err := NewGridSystem(em, gridEntity, nil)
	if err != nil {
		tb.Fatalf("NewGridSystem: %v", err)
	}
	registry, err := NewBuildingRegistry(em, config.DefaultBuildingStats(), nil)
	if err != nil {
		tb.Fatalf("NewBuildingRegistry: %v", err)
	}
	resources := game.NewPlayerResources(nil)

	return &testWorld{
		em:        em,
		registry:  registry,
		grid:      grid,
		placement: NewPlacementSystem(registry, grid, nil),
		resources: resources,
		economy:   NewEconomySystem(em, resources),
	}
}

// assertGridConsistent 扫描整个网格，检查每个被占用的格子都属于一个存活建筑且位于其占地内，
// 并且每个建筑的占地格子都由它自己占用
func assertGridConsistent(tb testing.TB, w *testWorld) {
	tb.Helper()

	covered := 0
	for _, rec := range w.registry.Records() {
		for dy := 0; dy < rec.Footprint.Height; dy++ {
			for dx := 0; dx < rec.Footprint.Width; dx++ {
				if got := w.grid.OccupantAt(rec.X+dx, rec.Y+dy); got != rec.ID {
					tb.Fatalf("cell (%d,%d) of building %d is occupied by %d",
						rec.X+dx, rec.Y+dy, rec.ID, got)
				}
				covered++
			}
		}
	}

	for y := 0; y < w.grid.Height(); y++ {
		for x := 0; x < w.grid.Width(); x++ {
			id := w.grid.OccupantAt(x, y)
			if id != ecs.InvalidEntity && !w.registry.Exists(id) {
				tb.Fatalf("cell (%d,%d) is occupied by unknown entity %d", x, y, id)
			}
		}
	}

	if occupied := w.grid.OccupiedCount(); occupied != covered {
		tb.Fatalf("occupied cells = %d, footprint cells = %d", occupied, covered)
	}
}
