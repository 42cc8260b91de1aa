package systems

import (
	"fmt"

	"github.com/decker502/coclike/internal/logx"
	"github.com/decker502/coclike/pkg/components"
	"github.com/decker502/coclike/pkg/config"
	"github.com/decker502/coclike/pkg/ecs"
	"github.com/decker502/coclike/pkg/types"
	"go.uber.org/zap"
)

// BuildingRecord 一条建筑记录的只读快照
type BuildingRecord struct {
	ID        ecs.EntityID
	Kind      types.BuildingKind
	Level     int
	X, Y      int // 锚点（左下角格子）
	Footprint types.Footprint
	Stats     config.StatSet // 当前等级的属性
	Health    float64        // 当前血量
	MaxHealth float64        // 当前等级的最大血量
}

// BuildingRegistry 建筑注册表
// 拥有所有已放置建筑的记录；记录只能通过放置服务创建和删除
//
// 每条记录是一个实体，带有：
//   - BuildingComponent（种类、等级）
//   - GridPositionComponent（锚点、占地）
//   - HealthComponent（当前/最大血量）
//   - 按种类附加的属性组件（采集器、仓库、防御塔、城墙）
type BuildingRegistry struct {
	entityManager *ecs.EntityManager
	stats         *config.BuildingStatsConfig
	logger        logx.Logger
}

// NewBuildingRegistry 创建建筑注册表
// 参数:
//   - em: EntityManager 实例
//   - stats: 属性成长表
//   - logger: 日志，可为 nil
func NewBuildingRegistry(em *ecs.EntityManager, stats *config.BuildingStatsConfig, logger logx.Logger) (*BuildingRegistry, error) {
	if stats == nil {
		return nil, ErrNoStats
	}
	return &BuildingRegistry{
		entityManager: em,
		stats:         stats,
		logger:        logx.OrNop(logger).With(zap.String("system", "BuildingRegistry")),
	}, nil
}

// Stats 返回注册表使用的属性成长表
func (r *BuildingRegistry) Stats() *config.BuildingStatsConfig {
	return r.stats
}

// create 创建一条建筑记录
// 等级被截断到 [1,10]，当前血量设为该等级的最大血量
func (r *BuildingRegistry) create(kind types.BuildingKind, level, x, y int) ecs.EntityID {
	level = config.ClampLevel(level)
	stats := r.stats.StatsFor(kind, level)

	id := r.entityManager.CreateEntity()
	r.entityManager.AddComponent(id, &components.BuildingComponent{Kind: kind, Level: level})
	r.entityManager.AddComponent(id, &components.GridPositionComponent{
		X:         x,
		Y:         y,
		Footprint: types.FootprintFor(kind),
	})
	r.entityManager.AddComponent(id, &components.HealthComponent{
		CurrentHealth: stats.Health,
		MaxHealth:     stats.Health,
	})
	r.attachKindComponents(id, kind, stats)

	r.logger.Debug("building created",
		zap.Uint64("id", uint64(id)),
		zap.Stringer("kind", kind),
		zap.Int("level", level),
		zap.Int("x", x),
		zap.Int("y", y))
	return id
}

// attachKindComponents 按种类附加（或刷新）属性组件
func (r *BuildingRegistry) attachKindComponents(id ecs.EntityID, kind types.BuildingKind, stats config.StatSet) {
	switch kind.Tag {
	case types.KindCollector:
		r.entityManager.AddComponent(id, &components.CollectorComponent{
			Resource:       kind.Resource,
			ProductionRate: stats.ProductionRate,
		})
	case types.KindStorage:
		r.entityManager.AddComponent(id, &components.StorageComponent{
			Resource: kind.Resource,
			Capacity: stats.Capacity,
		})
	case types.KindDefense:
		r.entityManager.AddComponent(id, &components.DefenseComponent{
			Damage:      stats.Damage,
			Range:       stats.Range,
			AttackSpeed: stats.AttackSpeed,
		})
	case types.KindWall:
		r.entityManager.AddComponent(id, &components.WallComponent{Durability: stats.Durability})
	}
}

// remove 删除建筑记录，返回记录是否存在
func (r *BuildingRegistry) remove(id ecs.EntityID) bool {
	if !r.Exists(id) {
		return false
	}
	r.entityManager.RemoveEntity(id)
	r.logger.Debug("building removed", zap.Uint64("id", uint64(id)))
	return true
}

// Exists 判断实体是否为已登记的建筑
func (r *BuildingRegistry) Exists(id ecs.EntityID) bool {
	return ecs.HasComponent[*components.BuildingComponent](r.entityManager, id)
}

// Get 查询建筑记录
func (r *BuildingRegistry) Get(id ecs.EntityID) (BuildingRecord, bool) {
	b, ok := ecs.GetComponent[*components.BuildingComponent](r.entityManager, id)
	if !ok {
		return BuildingRecord{}, false
	}
	rec := BuildingRecord{
		ID:    id,
		Kind:  b.Kind,
		Level: b.Level,
		Stats: r.stats.StatsFor(b.Kind, b.Level),
	}
	if pos, ok := ecs.GetComponent[*components.GridPositionComponent](r.entityManager, id); ok {
		rec.X, rec.Y, rec.Footprint = pos.X, pos.Y, pos.Footprint
	}
	if h, ok := ecs.GetComponent[*components.HealthComponent](r.entityManager, id); ok {
		rec.Health, rec.MaxHealth = h.CurrentHealth, h.MaxHealth
	}
	if w, ok := ecs.GetComponent[*components.WallComponent](r.entityManager, id); ok {
		rec.Stats.Durability = w.Durability
	}
	return rec, true
}

// IDs 返回所有建筑ID（升序，即创建顺序）
func (r *BuildingRegistry) IDs() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.BuildingComponent](r.entityManager)
}

// Records 返回所有建筑记录（按ID升序）
func (r *BuildingRegistry) Records() []BuildingRecord {
	ids := r.IDs()
	out := make([]BuildingRecord, 0, len(ids))
	for _, id := range ids {
		if rec, ok := r.Get(id); ok {
			out = append(out, rec)
		}
	}
	return out
}

// Count 返回建筑数量
func (r *BuildingRegistry) Count() int {
	return len(r.IDs())
}

// Relevel 修改建筑等级并按新等级刷新属性
// 等级被截断到 [1,10]，血量回满到新等级的最大血量；占地不随等级变化
func (r *BuildingRegistry) Relevel(id ecs.EntityID, level int) error {
	b, ok := ecs.GetComponent[*components.BuildingComponent](r.entityManager, id)
	if !ok {
		return fmt.Errorf("building %d not found", id)
	}
	b.Level = config.ClampLevel(level)
	stats := r.stats.StatsFor(b.Kind, b.Level)

	if h, ok := ecs.GetComponent[*components.HealthComponent](r.entityManager, id); ok {
		h.MaxHealth = stats.Health
		h.CurrentHealth = stats.Health
	}
	r.attachKindComponents(id, b.Kind, stats)

	r.logger.Info("building relevelled",
		zap.Uint64("id", uint64(id)),
		zap.Stringer("kind", b.Kind),
		zap.Int("level", b.Level))
	return nil
}

// ApplyDamage 对建筑造成伤害，血量最低为 0
// 城墙的耐久与血量同步；建筑被摧毁后仍保留在注册表中
// 返回: 伤害后的剩余血量
func (r *BuildingRegistry) ApplyDamage(id ecs.EntityID, amount float64) (float64, error) {
	h, ok := ecs.GetComponent[*components.HealthComponent](r.entityManager, id)
	if !ok || !r.Exists(id) {
		return 0, fmt.Errorf("building %d not found", id)
	}
	if !(amount > 0) {
		return h.CurrentHealth, nil
	}

	h.CurrentHealth -= amount
	if h.CurrentHealth < 0 {
		h.CurrentHealth = 0
	}
	if w, ok := ecs.GetComponent[*components.WallComponent](r.entityManager, id); ok {
		w.Durability = h.CurrentHealth
	}
	if h.IsDestroyed() {
		r.logger.Info("building destroyed", zap.Uint64("id", uint64(id)))
	}
	return h.CurrentHealth, nil
}
