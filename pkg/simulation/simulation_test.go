package simulation

import (
	"errors"
	"math"
	"testing"

	"github.com/decker502/coclike/pkg/config"
	"github.com/decker502/coclike/pkg/ecs"
	"github.com/decker502/coclike/pkg/systems"
	"github.com/decker502/coclike/pkg/types"
)

func newTestSimulation(t *testing.T, base *config.BaseConfig, presenter Presenter) *Simulation {
	t.Helper()
	sim, err := New(Options{
		Stats:     config.DefaultBuildingStats(),
		Base:      base,
		Viewport:  systems.IdentityViewport{},
		Presenter: presenter,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sim
}

func TestNewRequiresCollaborators(t *testing.T) {
	t.Run("缺少属性表", func(t *testing.T) {
		_, err := New(Options{Viewport: systems.IdentityViewport{}})
		if !errors.Is(err, systems.ErrNoStats) {
			t.Errorf("Expected ErrNoStats, got %v", err)
		}
	})

	t.Run("缺少视口", func(t *testing.T) {
		_, err := New(Options{Stats: config.DefaultBuildingStats()})
		if !errors.Is(err, systems.ErrNoViewport) {
			t.Errorf("Expected ErrNoViewport, got %v", err)
		}
	})

	t.Run("非法网格", func(t *testing.T) {
		base := config.DefaultBaseConfig()
		base.Grid.Width = 0
		_, err := New(Options{Stats: config.DefaultBuildingStats(), Base: base, Viewport: systems.IdentityViewport{}})
		if err == nil {
			t.Error("Expected error for zero-width grid")
		}
	})
}

func TestDefaultBase(t *testing.T) {
	sim := newTestSimulation(t, nil, nil)
	snap := sim.Snapshot()

	if snap.GridWidth != 100 || snap.GridHeight != 100 {
		t.Errorf("grid = %dx%d, want 100x100", snap.GridWidth, snap.GridHeight)
	}
	if snap.Resources[types.ResourceGold] != 1000 || snap.Resources[types.ResourceElixir] != 1000 {
		t.Errorf("starting resources = %v", snap.Resources)
	}
	if len(snap.Buildings) != 1 {
		t.Fatalf("Expected the initial town hall, got %d buildings", len(snap.Buildings))
	}
	th := snap.Buildings[0]
	if th.Kind != types.TownHall() || th.X != 45 || th.Y != 45 || th.Level != 1 || th.Health != 1000 {
		t.Errorf("initial town hall = %+v", th)
	}
}

func TestOverlappingInitialBuildingIsSkipped(t *testing.T) {
	base := config.DefaultBaseConfig()
	base.InitialBuildings = append(base.InitialBuildings,
		config.InitialBuilding{Kind: types.Wall(), Level: 1, X: 46, Y: 46},
		config.InitialBuilding{Kind: types.Wall(), Level: 1, X: 0, Y: 0},
	)
	sim := newTestSimulation(t, base, nil)

	if sim.Registry().Count() != 2 {
		t.Errorf("Expected 2 buildings (overlap skipped), got %d", sim.Registry().Count())
	}
}

func TestStepOrder(t *testing.T) {
	var presented []Snapshot
	sim := newTestSimulation(t, nil, PresenterFunc(func(s Snapshot) {
		presented = append(presented, s)
	}))

	sim.Select(types.Collector(types.ResourceGold))
	result := sim.Step(FrameInput{
		Elapsed: 2.0,
		Pointer: &Pointer{X: 10.5, Y: 10.5},
		Click:   true,
	})

	if !result.HasPreview || !result.Preview.Valid {
		t.Errorf("preview should be resolved and valid before placement, got %+v", result.Preview)
	}
	if result.Placed == ecs.InvalidEntity {
		t.Fatal("click should place the collector")
	}
	// 放置在结算之前，新采集器本步已产出 5 * 2
	if got := sim.Resources().Get(types.ResourceGold); got != 1010 {
		t.Errorf("gold = %v, want 1010", got)
	}
	if _, armed := sim.Selected(); armed {
		t.Error("selection should return to Idle after placing")
	}

	if len(presented) != 1 {
		t.Fatalf("presenter should be called once per step, got %d", len(presented))
	}
	if len(presented[0].Buildings) != 2 || presented[0].Armed {
		t.Errorf("presented snapshot = %+v", presented[0])
	}
}

func TestStepWithoutPointer(t *testing.T) {
	sim := newTestSimulation(t, nil, nil)
	sim.Select(types.Wall())

	result := sim.Step(FrameInput{Elapsed: 0.5, Click: true})
	if result.HasPreview || result.Placed != ecs.InvalidEntity {
		t.Errorf("no pointer means no preview and no placement, got %+v", result)
	}
	if _, armed := sim.Selected(); !armed {
		t.Error("selection should stay armed")
	}
	if sim.Elapsed() != 0.5 || sim.Steps() != 1 {
		t.Errorf("elapsed=%v steps=%d", sim.Elapsed(), sim.Steps())
	}
}

func TestRejectedClickKeepsSelection(t *testing.T) {
	sim := newTestSimulation(t, nil, nil)
	sim.Select(types.Collector(types.ResourceElixir))

	result := sim.Step(FrameInput{Elapsed: 0, Pointer: &Pointer{X: 46, Y: 46}, Click: true})
	if result.Placed != ecs.InvalidEntity {
		t.Error("click on the town hall should be rejected")
	}
	if result.Preview.Valid {
		t.Error("preview over the town hall should be invalid")
	}
	if kind, armed := sim.Selected(); !armed || kind != types.Collector(types.ResourceElixir) {
		t.Error("rejected placement keeps the selection")
	}

	sim.Deselect()
	if _, armed := sim.Selected(); armed {
		t.Error("Deselect should return to Idle")
	}
}

func TestStepFrequencyDoesNotChangeTotals(t *testing.T) {
	run := func(stepSeconds float64, steps int) float64 {
		sim := newTestSimulation(t, nil, nil)
		sim.Placement().PlaceBuilding(types.Collector(types.ResourceElixir), 5, 0, 0)
		for i := 0; i < steps; i++ {
			sim.Step(FrameInput{Elapsed: stepSeconds})
		}
		return sim.Resources().Get(types.ResourceElixir)
	}

	coarse := run(1.0, 30)
	fine := run(1.0/120.0, 3600)
	if math.Abs(coarse-fine) > 1e-6 {
		t.Errorf("30x1s = %v, 3600x(1/120)s = %v", coarse, fine)
	}
	if coarse != 1000+15*30 {
		t.Errorf("elixir = %v, want %v", coarse, 1000+15*30)
	}
}

func TestStepPanicsOnInvalidElapsed(t *testing.T) {
	sim := newTestSimulation(t, nil, nil)
	defer func() {
		if recover() == nil {
			t.Error("negative elapsed time should panic")
		}
	}()
	sim.Step(FrameInput{Elapsed: -0.1})
}

func TestSnapshotIsReadOnly(t *testing.T) {
	sim := newTestSimulation(t, nil, nil)
	snap := sim.Snapshot()
	snap.Resources[types.ResourceGold] = 0
	snap.Buildings[0].Level = 9

	again := sim.Snapshot()
	if again.Resources[types.ResourceGold] != 1000 || again.Buildings[0].Level != 1 {
		t.Error("mutating a snapshot must not change the simulation")
	}
}

func TestSnapshotResourceAmountTruncates(t *testing.T) {
	snap := Snapshot{Resources: map[types.ResourceKind]float64{types.ResourceGold: 1234.99}}
	if got := snap.ResourceAmount(types.ResourceGold); got != 1234 {
		t.Errorf("ResourceAmount = %d, want 1234", got)
	}
}

func TestInitialLayoutResults(t *testing.T) {
	base := config.DefaultBaseConfig()
	base.InitialBuildings = append(base.InitialBuildings,
		config.InitialBuilding{Kind: types.Collector(types.ResourceGold), Level: 1, X: 46, Y: 46},
		config.InitialBuilding{Kind: types.Storage(types.ResourceGold), Level: 2, X: 98, Y: 98},
		config.InitialBuilding{Kind: types.Defense(), Level: 3, X: 40, Y: 40},
	)
	sim := newTestSimulation(t, base, nil)

	results := sim.InitialLayout()
	if len(results) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(results))
	}
	want := []bool{true, false, false, true}
	for i, r := range results {
		if r.Accepted != want[i] {
			t.Errorf("entry %d (%s at %d,%d): accepted = %v, want %v",
				i, r.Entry.Kind, r.Entry.X, r.Entry.Y, r.Accepted, want[i])
		}
		if !r.Accepted && r.ID != ecs.InvalidEntity {
			t.Errorf("rejected entry %d has id %d", i, r.ID)
		}
	}
	if CountAccepted(results) != 2 {
		t.Errorf("CountAccepted = %d, want 2", CountAccepted(results))
	}
}
