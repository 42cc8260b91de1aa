package systems

import (
	"github.com/decker502/coclike/internal/logx"
	"github.com/decker502/coclike/pkg/ecs"
	"github.com/decker502/coclike/pkg/types"
	"github.com/decker502/coclike/pkg/utils"
	"go.uber.org/zap"
)

// StartingLevel 通过点击放置的建筑的初始等级
const StartingLevel = 1

// Viewport 相机/视口协作者
// 把视口坐标投影到世界坐标；指针不在视口内时 ok 为 false
type Viewport interface {
	ViewportToWorld(px, py float64) (wx, wy float64, ok bool)
}

// Selection 选择协作者，提供当前选中（Armed）的建筑种类
// game.PlacementMode 实现了该接口
type Selection interface {
	Selected() (types.BuildingKind, bool)
	Disarm()
}

// IdentityViewport 视口坐标即世界坐标，用于无界面运行和测试
type IdentityViewport struct{}

// ViewportToWorld 原样返回坐标
func (IdentityViewport) ViewportToWorld(px, py float64) (float64, float64, bool) {
	return px, py, true
}

// PlacementPreview 放置预览：指针所在格子以及选中建筑能否放在那里
type PlacementPreview struct {
	Kind      types.BuildingKind
	X, Y      int // 锚点格子
	Footprint types.Footprint
	Valid     bool // 能否放置
}

// PlacementInputSystem 放置输入流水线
// 视口坐标 → 世界坐标 → 向下取整得到格子 → 以 1 级调用放置服务
type PlacementInputSystem struct {
	placement *PlacementSystem
	viewport  Viewport
	selection Selection
	logger    logx.Logger
}

// NewPlacementInputSystem 创建放置输入流水线
// 返回:
//   - error: 缺少视口时返回 ErrNoViewport，缺少选择来源时返回 ErrNoSelection
func NewPlacementInputSystem(placement *PlacementSystem, viewport Viewport, selection Selection, logger logx.Logger) (*PlacementInputSystem, error) {
	if viewport == nil {
		return nil, ErrNoViewport
	}
	if selection == nil {
		return nil, ErrNoSelection
	}
	return &PlacementInputSystem{
		placement: placement,
		viewport:  viewport,
		selection: selection,
		logger:    logx.OrNop(logger).With(zap.String("system", "PlacementInputSystem")),
	}, nil
}

// resolveCell 把视口坐标解析为格子坐标
func (s *PlacementInputSystem) resolveCell(px, py float64) (int, int, bool) {
	wx, wy, ok := s.viewport.ViewportToWorld(px, py)
	if !ok {
		return 0, 0, false
	}
	return utils.WorldToGridCell(wx, wy)
}

// Preview 预览放置结果，不修改任何状态
// 返回: 没有选中建筑或指针无法投影时 ok 为 false
func (s *PlacementInputSystem) Preview(px, py float64) (PlacementPreview, bool) {
	kind, armed := s.selection.Selected()
	if !armed {
		return PlacementPreview{}, false
	}
	x, y, ok := s.resolveCell(px, py)
	if !ok {
		return PlacementPreview{}, false
	}
	return PlacementPreview{
		Kind:      kind,
		X:         x,
		Y:         y,
		Footprint: types.FootprintFor(kind),
		Valid:     s.placement.CanPlaceBuilding(kind, x, y),
	}, true
}

// Click 处理一次放置点击
// 放置成功后回到 Idle；被拒绝时保持选中以便重试
func (s *PlacementInputSystem) Click(px, py float64) (ecs.EntityID, bool) {
	kind, armed := s.selection.Selected()
	if !armed {
		return ecs.InvalidEntity, false
	}
	x, y, ok := s.resolveCell(px, py)
	if !ok {
		s.logger.Debug("pointer outside viewport", zap.Float64("px", px), zap.Float64("py", py))
		return ecs.InvalidEntity, false
	}

	id, placed := s.placement.PlaceBuilding(kind, StartingLevel, x, y)
	if placed {
		s.selection.Disarm()
	}
	return id, placed
}
