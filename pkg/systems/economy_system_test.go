package systems

import (
	"math"
	"testing"

	"github.com/decker502/coclike/pkg/types"
)

const floatTolerance = 1e-9

func TestGoldCollectorAccruesTenInTwoSeconds(t *testing.T) {
	w := newTestWorld(t, 100, 100)
	if _, ok := w.placement.PlaceBuilding(types.Collector(types.ResourceGold), 1, 0, 0); !ok {
		t.Fatal("placement failed")
	}

	before := w.resources.Get(types.ResourceGold)
	w.economy.Update(2.0)
	if got := w.resources.Get(types.ResourceGold) - before; got != 10.0 {
		t.Errorf("gold increased by %v, want exactly 10", got)
	}
	if w.resources.Get(types.ResourceElixir) != 0 {
		t.Error("elixir should be unchanged")
	}
}

func TestAccrualIsLinear(t *testing.T) {
	setup := func(t *testing.T) *testWorld {
		w := newTestWorld(t, 100, 100)
		w.placement.PlaceBuilding(types.Collector(types.ResourceGold), 3, 0, 0)
		w.placement.PlaceBuilding(types.Collector(types.ResourceGold), 7, 3, 0)
		w.placement.PlaceBuilding(types.Collector(types.ResourceElixir), 10, 6, 0)
		// 非采集器不产出
		w.placement.PlaceBuilding(types.Storage(types.ResourceGold), 1, 20, 20)
		return w
	}

	split := setup(t)
	split.economy.Update(0.7)
	split.economy.Update(1.9)

	single := setup(t)
	single.economy.Update(2.6)

	for _, kind := range types.AllResourceKinds() {
		a, b := split.resources.Get(kind), single.resources.Get(kind)
		if math.Abs(a-b) > floatTolerance {
			t.Errorf("%s: split ticks = %v, single tick = %v", kind, a, b)
		}
	}

	// 9 + 22 金币/秒，35 圣水/秒
	if got := single.resources.Get(types.ResourceGold); math.Abs(got-31*2.6) > floatTolerance {
		t.Errorf("gold = %v, want %v", got, 31*2.6)
	}
	if got := single.resources.Get(types.ResourceElixir); math.Abs(got-35*2.6) > floatTolerance {
		t.Errorf("elixir = %v, want %v", got, 35*2.6)
	}
}

func TestStepFrequencyIndependence(t *testing.T) {
	w := newTestWorld(t, 100, 100)
	w.placement.PlaceBuilding(types.Collector(types.ResourceElixir), 1, 0, 0)

	// 60 次 1/60 秒约等于 1 秒
	for i := 0; i < 60; i++ {
		w.economy.Update(1.0 / 60.0)
	}
	if got := w.resources.Get(types.ResourceElixir); math.Abs(got-5) > 1e-9 {
		t.Errorf("elixir after 60 small steps = %v, want 5", got)
	}
}

func TestZeroElapsedIsNoop(t *testing.T) {
	w := newTestWorld(t, 100, 100)
	w.placement.PlaceBuilding(types.Collector(types.ResourceGold), 1, 0, 0)
	w.economy.Update(0)
	if w.resources.Get(types.ResourceGold) != 0 {
		t.Error("zero elapsed time should not accrue")
	}
}

func TestNoStorageCap(t *testing.T) {
	w := newTestWorld(t, 100, 100)
	w.placement.PlaceBuilding(types.Collector(types.ResourceGold), 10, 0, 0)
	w.placement.PlaceBuilding(types.Storage(types.ResourceGold), 1, 10, 10)

	w.economy.Update(10000)
	if got := w.resources.Get(types.ResourceGold); got != 350000 {
		t.Errorf("gold = %v, want 350000 (uncapped)", got)
	}
	if capacity := w.economy.StorageCapacity()[types.ResourceGold]; capacity != 5000 {
		t.Errorf("capacity = %d, want 5000", capacity)
	}
}

func TestInvalidElapsedPanics(t *testing.T) {
	for _, dt := range []float64{-1, math.NaN(), math.Inf(1)} {
		t.Run("", func(t *testing.T) {
			w := newTestWorld(t, 10, 10)
			defer func() {
				if recover() == nil {
					t.Errorf("Update(%v) should panic", dt)
				}
			}()
			w.economy.Update(dt)
		})
	}
}

func TestProductionRates(t *testing.T) {
	w := newTestWorld(t, 100, 100)
	w.placement.PlaceBuilding(types.Collector(types.ResourceGold), 1, 0, 0)
	w.placement.PlaceBuilding(types.Collector(types.ResourceGold), 2, 3, 0)

	rates := w.economy.ProductionRates()
	if rates[types.ResourceGold] != 12 {
		t.Errorf("gold rate = %v, want 12", rates[types.ResourceGold])
	}
	if rate, ok := rates[types.ResourceElixir]; !ok || rate != 0 {
		t.Errorf("elixir rate = %v (present=%v), want 0", rate, ok)
	}
}

func BenchmarkEconomyUpdate(b *testing.B) {
	w := newTestWorld(b, 100, 100)
	for y := 0; y+3 <= 100; y += 3 {
		for x := 0; x+3 <= 100; x += 3 {
			w.placement.PlaceBuilding(types.Collector(types.ResourceGold), 1, x, y)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.economy.Update(1.0 / 60.0)
	}
}
