package systems

import (
	"github.com/decker502/coclike/internal/logx"
	"github.com/decker502/coclike/pkg/ecs"
	"github.com/decker502/coclike/pkg/types"
	"go.uber.org/zap"
)

// PlacementSystem 放置服务
// 建筑进入或离开模拟的唯一路径：注册表记录和网格占用总是一起创建、一起删除
type PlacementSystem struct {
	registry *BuildingRegistry
	grid     *GridSystem
	logger   logx.Logger
}

// NewPlacementSystem 创建放置服务
func NewPlacementSystem(registry *BuildingRegistry, grid *GridSystem, logger logx.Logger) *PlacementSystem {
	return &PlacementSystem{
		registry: registry,
		grid:     grid,
		logger:   logx.OrNop(logger).With(zap.String("system", "PlacementSystem")),
	}
}

// Registry 返回建筑注册表
func (s *PlacementSystem) Registry() *BuildingRegistry { return s.registry }

// Grid 返回网格系统
func (s *PlacementSystem) Grid() *GridSystem { return s.grid }

// CanPlaceBuilding 检查种类为 kind 的建筑能否以 (x, y) 为锚点放置
// 纯查询，用于放置预览
func (s *PlacementSystem) CanPlaceBuilding(kind types.BuildingKind, x, y int) bool {
	if !kind.IsValid() {
		return false
	}
	return s.grid.CanPlace(x, y, types.FootprintFor(kind))
}

// PlaceBuilding 放置建筑
// 参数:
//   - kind: 建筑种类
//   - level: 等级（截断到 [1,10]）
//   - x, y: 锚点格子
//
// 返回:
//   - ecs.EntityID: 新建筑ID
//   - bool: 放置被拒绝（占用、越界、无效种类）时为 false，此时没有任何状态被修改
func (s *PlacementSystem) PlaceBuilding(kind types.BuildingKind, level, x, y int) (ecs.EntityID, bool) {
	if !s.CanPlaceBuilding(kind, x, y) {
		s.logger.Debug("placement rejected",
			zap.Stringer("kind", kind), zap.Int("x", x), zap.Int("y", y))
		return ecs.InvalidEntity, false
	}

	id := s.registry.create(kind, level, x, y)
	if !s.grid.Place(x, y, types.FootprintFor(kind), id) {
		// CanPlace 刚通过，这里不应失败；失败时撤销记录，不留下半完成状态
		s.registry.remove(id)
		s.logger.Error("grid rejected a validated placement",
			zap.Stringer("kind", kind), zap.Int("x", x), zap.Int("y", y))
		return ecs.InvalidEntity, false
	}

	s.logger.Info("building placed",
		zap.Uint64("id", uint64(id)),
		zap.Stringer("kind", kind),
		zap.Int("x", x),
		zap.Int("y", y))
	return id, true
}

// SpawnBuilding 用于脚本化初始基地，在指定格子直接生成建筑
// 仍经过占用检查；被拒绝时记录警告
func (s *PlacementSystem) SpawnBuilding(kind types.BuildingKind, level, x, y int) (ecs.EntityID, bool) {
	id, ok := s.PlaceBuilding(kind, level, x, y)
	if !ok {
		s.logger.Warn("initial building rejected",
			zap.Stringer("kind", kind), zap.Int("level", level), zap.Int("x", x), zap.Int("y", y))
	}
	return id, ok
}

// PlaceBuildingByName 按种类名称放置建筑（townhall、gold_collector 等）
// 未知名称视为放置被拒绝
func (s *PlacementSystem) PlaceBuildingByName(name string, level, x, y int) (ecs.EntityID, bool) {
	kind, err := types.ParseBuildingKind(name)
	if err != nil {
		s.logger.Debug("unknown building kind", zap.String("name", name))
		return ecs.InvalidEntity, false
	}
	return s.PlaceBuilding(kind, level, x, y)
}

// RemoveBuilding 移除建筑：先释放所有占用格子，再删除记录
// 返回: 建筑不存在时为 false
func (s *PlacementSystem) RemoveBuilding(id ecs.EntityID) bool {
	if !s.registry.Exists(id) {
		return false
	}
	s.grid.Remove(id)
	s.registry.remove(id)
	s.logger.Info("building removed", zap.Uint64("id", uint64(id)))
	return true
}
