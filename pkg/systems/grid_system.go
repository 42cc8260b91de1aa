package systems

import (
	"fmt"

	"github.com/decker502/coclike/internal/logx"
	"github.com/decker502/coclike/pkg/components"
	"github.com/decker502/coclike/pkg/ecs"
	"github.com/decker502/coclike/pkg/types"
	"go.uber.org/zap"
)

// NewGridEntity 创建基地网格实体
// 参数:
//   - em: EntityManager 实例
//   - width, height: 网格尺寸（格）
//
// 返回:
//   - ecs.EntityID: 网格实体ID
//   - error: 尺寸不是正数时返回 ErrInvalidGridSize
func NewGridEntity(em *ecs.EntityManager, width, height int) (ecs.EntityID, error) {
	if width <= 0 || height <= 0 {
		return ecs.InvalidEntity, fmt.Errorf("%w: %dx%d", ErrInvalidGridSize, width, height)
	}
	id := em.CreateEntity()
	em.AddComponent(id, components.NewGridOccupancyComponent(width, height))
	return id, nil
}

// GridSystem 管理基地网格的占用状态
// 每个格子最多被一个建筑占用；建筑的占地一次性整体写入或清除
type GridSystem struct {
	entityManager *ecs.EntityManager
	gridEntity    ecs.EntityID
	grid          *components.GridOccupancyComponent
	logger        logx.Logger
}

// NewGridSystem 创建网格系统
// 参数:
//   - em: EntityManager 实例
//   - gridEntity: 由 NewGridEntity 创建的网格实体
//   - logger: 日志，可为 nil
//
// 返回:
//   - error: 网格实体不存在时返回 ErrNoGrid
func NewGridSystem(em *ecs.EntityManager, gridEntity ecs.EntityID, logger logx.Logger) (*GridSystem, error) {
	grid, ok := ecs.GetComponent[*components.GridOccupancyComponent](em, gridEntity)
	if !ok {
		return nil, ErrNoGrid
	}
	if grid.Width <= 0 || grid.Height <= 0 || len(grid.Cells) != grid.Width*grid.Height {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGridSize, grid.Width, grid.Height)
	}
	return &GridSystem{
		entityManager: em,
		gridEntity:    gridEntity,
		grid:          grid,
		logger:        logx.OrNop(logger).With(zap.String("system", "GridSystem")),
	}, nil
}

// Width 网格宽度
func (s *GridSystem) Width() int { return s.grid.Width }

// Height 网格高度
func (s *GridSystem) Height() int { return s.grid.Height }

// GridEntity 返回网格实体ID
func (s *GridSystem) GridEntity() ecs.EntityID { return s.gridEntity }

// CellIndex 返回格子在行优先存储中的下标
// 越界时返回 false
func (s *GridSystem) CellIndex(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= s.grid.Width || y >= s.grid.Height {
		return 0, false
	}
	return y*s.grid.Width + x, true
}

// OccupantAt 返回占用格子的建筑ID
// 空格子或越界时返回 ecs.InvalidEntity
func (s *GridSystem) OccupantAt(x, y int) ecs.EntityID {
	idx, ok := s.CellIndex(x, y)
	if !ok {
		return ecs.InvalidEntity
	}
	return s.grid.Cells[idx]
}

// IsOccupied 检查格子是否被占用（越界视为占用）
func (s *GridSystem) IsOccupied(x, y int) bool {
	idx, ok := s.CellIndex(x, y)
	if !ok {
		return true
	}
	return s.grid.Cells[idx] != ecs.InvalidEntity
}

// CanPlace 检查占地能否以 (x, y) 为锚点放下
// 占地必须完全位于网格内且覆盖的格子全部为空；没有任何副作用
func (s *GridSystem) CanPlace(x, y int, fp types.Footprint) bool {
	if fp.Width <= 0 || fp.Height <= 0 {
		return false
	}
	if x < 0 || y < 0 {
		return false
	}
	// 用减法比较，避免 x+W 溢出
	if fp.Width > s.grid.Width-x || fp.Height > s.grid.Height-y {
		return false
	}
	for dy := 0; dy < fp.Height; dy++ {
		row := (y + dy) * s.grid.Width
		for dx := 0; dx < fp.Width; dx++ {
			if s.grid.Cells[row+x+dx] != ecs.InvalidEntity {
				return false
			}
		}
	}
	return true
}

// Place 把占地覆盖的格子全部标记为 id 占用
// 无法放置时不修改任何格子并返回 false
func (s *GridSystem) Place(x, y int, fp types.Footprint, id ecs.EntityID) bool {
	if id == ecs.InvalidEntity || !s.CanPlace(x, y, fp) {
		return false
	}
	for dy := 0; dy < fp.Height; dy++ {
		row := (y + dy) * s.grid.Width
		for dx := 0; dx < fp.Width; dx++ {
			s.grid.Cells[row+x+dx] = id
		}
	}
	return true
}

// Remove 清除 id 占用的所有格子
// 返回: 被清除的格子数
func (s *GridSystem) Remove(id ecs.EntityID) int {
	if id == ecs.InvalidEntity {
		return 0
	}
	cleared := 0
	// 建筑仍有位置组件时只扫描其占地
	if pos, ok := ecs.GetComponent[*components.GridPositionComponent](s.entityManager, id); ok {
		cleared = s.clearRect(pos.X, pos.Y, pos.Footprint, id)
	}
	if cleared == 0 {
		for i, occupant := range s.grid.Cells {
			if occupant == id {
				s.grid.Cells[i] = ecs.InvalidEntity
				cleared++
			}
		}
	}
	if cleared > 0 {
		s.logger.Debug("cells released", zap.Uint64("id", uint64(id)), zap.Int("cells", cleared))
	}
	return cleared
}

// clearRect 清除矩形内属于 id 的格子
func (s *GridSystem) clearRect(x, y int, fp types.Footprint, id ecs.EntityID) int {
	cleared := 0
	for dy := 0; dy < fp.Height; dy++ {
		for dx := 0; dx < fp.Width; dx++ {
			idx, ok := s.CellIndex(x+dx, y+dy)
			if ok && s.grid.Cells[idx] == id {
				s.grid.Cells[idx] = ecs.InvalidEntity
				cleared++
			}
		}
	}
	return cleared
}

// OccupiedCount 返回被占用的格子数
func (s *GridSystem) OccupiedCount() int {
	n := 0
	for _, occupant := range s.grid.Cells {
		if occupant != ecs.InvalidEntity {
			n++
		}
	}
	return n
}
