package systems

import (
	"errors"
	"testing"

	"github.com/decker502/coclike/pkg/game"
	"github.com/decker502/coclike/pkg/types"
)

// offsetViewport 平移视口：世界坐标 = 视口坐标/scale + offset
type offsetViewport struct {
	offsetX, offsetY float64
	scale            float64
	width, height    float64
}

func (v offsetViewport) ViewportToWorld(px, py float64) (float64, float64, bool) {
	if px < 0 || py < 0 || px >= v.width || py >= v.height {
		return 0, 0, false
	}
	return px/v.scale + v.offsetX, py/v.scale + v.offsetY, true
}

func newInputWorld(t *testing.T, vp Viewport) (*testWorld, *game.PlacementMode, *PlacementInputSystem) {
	t.Helper()
	w := newTestWorld(t, 100, 100)
	mode := game.NewPlacementMode()
	input, err := NewPlacementInputSystem(w.placement, vp, mode, nil)
	if err != nil {
		t.Fatalf("NewPlacementInputSystem: %v", err)
	}
	return w, mode, input
}

func TestNewPlacementInputSystemRequiresCollaborators(t *testing.T) {
	w := newTestWorld(t, 10, 10)

	if _, err := NewPlacementInputSystem(w.placement, nil, game.NewPlacementMode(), nil); !errors.Is(err, ErrNoViewport) {
		t.Errorf("Expected ErrNoViewport, got %v", err)
	}
	if _, err := NewPlacementInputSystem(w.placement, IdentityViewport{}, nil, nil); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Expected ErrNoSelection, got %v", err)
	}
}

func TestClickWhileIdleDoesNothing(t *testing.T) {
	w, _, input := newInputWorld(t, IdentityViewport{})
	if _, ok := input.Click(10, 10); ok {
		t.Error("click without selection should not place")
	}
	if w.registry.Count() != 0 {
		t.Error("no building should exist")
	}
}

func TestClickPlacesAtFlooredCellAndDisarms(t *testing.T) {
	w, mode, input := newInputWorld(t, IdentityViewport{})
	mode.Arm(types.Defense())

	id, ok := input.Click(12.9, 30.2)
	if !ok {
		t.Fatal("click should place the armed building")
	}
	rec, _ := w.registry.Get(id)
	if rec.X != 12 || rec.Y != 30 {
		t.Errorf("anchor = (%d,%d), want (12,30)", rec.X, rec.Y)
	}
	if rec.Level != StartingLevel {
		t.Errorf("level = %d, want %d", rec.Level, StartingLevel)
	}
	if mode.State() != game.PlacementIdle {
		t.Error("successful placement should return to Idle")
	}
}

func TestRejectedClickStaysArmed(t *testing.T) {
	w, mode, input := newInputWorld(t, IdentityViewport{})
	w.placement.PlaceBuilding(types.TownHall(), 1, 45, 45)

	mode.Arm(types.Collector(types.ResourceGold))
	if _, ok := input.Click(46.5, 46.5); ok {
		t.Fatal("overlapping click should be rejected")
	}
	if kind, armed := mode.Selected(); !armed || kind != types.Collector(types.ResourceGold) {
		t.Error("rejected placement should keep the selection armed")
	}

	// 重试到空地
	if _, ok := input.Click(10, 10); !ok {
		t.Error("retry on free cells should succeed")
	}
}

func TestClickOutsideViewport(t *testing.T) {
	vp := offsetViewport{offsetX: 40, offsetY: 40, scale: 16, width: 320, height: 240}
	w, mode, input := newInputWorld(t, vp)
	mode.Arm(types.Wall())

	if _, ok := input.Click(-5, 10); ok {
		t.Error("pointer outside the viewport should not place")
	}
	if _, armed := mode.Selected(); !armed {
		t.Error("selection should stay armed")
	}

	// (32, 48) / 16 + 40 = (42, 43)
	id, ok := input.Click(32, 48)
	if !ok {
		t.Fatal("click inside the viewport should place")
	}
	if rec, _ := w.registry.Get(id); rec.X != 42 || rec.Y != 43 {
		t.Errorf("anchor = (%d,%d), want (42,43)", rec.X, rec.Y)
	}
}

func TestPreviewDoesNotMutate(t *testing.T) {
	w, mode, input := newInputWorld(t, IdentityViewport{})

	if _, ok := input.Preview(1, 1); ok {
		t.Error("preview without selection should report nothing")
	}

	mode.Arm(types.TownHall())
	p, ok := input.Preview(98.4, 98.4)
	if !ok {
		t.Fatal("preview should resolve a cell")
	}
	if p.Valid || p.X != 98 || p.Y != 98 || p.Footprint != types.TownHallFootprint {
		t.Errorf("preview = %+v, want invalid 4x4 at (98,98)", p)
	}

	p, _ = input.Preview(0, 0)
	if !p.Valid {
		t.Error("preview on an empty corner should be valid")
	}

	if w.registry.Count() != 0 || w.grid.OccupiedCount() != 0 {
		t.Error("preview must not mutate state")
	}
	if _, armed := mode.Selected(); !armed {
		t.Error("preview must not change the selection")
	}
}

func TestIdentityViewport(t *testing.T) {
	x, y, ok := IdentityViewport{}.ViewportToWorld(3.5, -2)
	if !ok || x != 3.5 || y != -2 {
		t.Errorf("IdentityViewport = (%v,%v,%v)", x, y, ok)
	}
	var _ Selection = game.NewPlacementMode()
}
