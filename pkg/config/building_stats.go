package config

import (
	"fmt"

	"github.com/decker502/coclike/pkg/embedded"
	"github.com/decker502/coclike/pkg/types"
	"gopkg.in/yaml.v3"
)

// 等级范围
const (
	MinLevel = 1
	MaxLevel = 10
)

// DefaultBuildingStatsPath 默认属性表在嵌入数据中的路径
const DefaultBuildingStatsPath = "data/config/building_stats.yaml"

// StatSet 是某个建筑种类在某个等级的全部属性
// 只填充与种类相关的字段，其余为零值
type StatSet struct {
	Health         float64 // 血量（所有种类）
	ProductionRate float64 // 每秒产量（采集器）
	Capacity       int     // 容量（仓库）
	Damage         float64 // 伤害（防御塔）
	Range          float64 // 射程（防御塔）
	AttackSpeed    float64 // 攻速（防御塔）
	Durability     float64 // 耐久（城墙，与血量相同）
}

// StatCurves 单个建筑种类的属性曲线，每条曲线恰好 MaxLevel 个条目
type StatCurves struct {
	Health         []float64 `yaml:"health"`
	ProductionRate []float64 `yaml:"productionRate,omitempty"`
	Capacity       []int     `yaml:"capacity,omitempty"`
	Damage         []float64 `yaml:"damage,omitempty"`
	Range          []float64 `yaml:"range,omitempty"`
	AttackSpeed    []float64 `yaml:"attackSpeed,omitempty"`
}

// BuildingStatsConfig 属性成长表配置文件结构
// 采集器和仓库的曲线对金币和圣水共用
type BuildingStatsConfig struct {
	TownHall  StatCurves `yaml:"townhall"`
	Collector StatCurves `yaml:"collector"`
	Storage   StatCurves `yaml:"storage"`
	Defense   StatCurves `yaml:"defense"`
	Wall      StatCurves `yaml:"wall"`
}

// DefaultBuildingStats 返回内置的属性成长表
// 数值为手工设定，不做单调性修正
func DefaultBuildingStats() *BuildingStatsConfig {
	return &BuildingStatsConfig{
		TownHall: StatCurves{
			Health: []float64{1000, 1200, 1500, 1800, 2200, 2600, 3000, 3500, 4000, 5000},
		},
		Collector: StatCurves{
			Health:         []float64{400, 450, 500, 550, 600, 650, 700, 750, 800, 900},
			ProductionRate: []float64{5, 7, 9, 12, 15, 18, 22, 26, 30, 35},
		},
		Storage: StatCurves{
			Health:   []float64{600, 700, 800, 900, 1000, 1100, 1200, 1300, 1400, 1500},
			Capacity: []int{5000, 10000, 15000, 20000, 25000, 30000, 40000, 50000, 75000, 100000},
		},
		Defense: StatCurves{
			Health:      []float64{800, 900, 1000, 1100, 1200, 1300, 1400, 1500, 1750, 2000},
			Damage:      []float64{20, 25, 30, 35, 40, 45, 50, 55, 60, 70},
			Range:       []float64{5, 5.5, 6, 6.5, 7, 7.5, 8, 8.5, 9, 10},
			AttackSpeed: []float64{1, 1.1, 1.2, 1.3, 1.4, 1.5, 1.6, 1.7, 1.8, 2},
		},
		Wall: StatCurves{
			Health: []float64{300, 400, 500, 600, 700, 800, 900, 1000, 1200, 1500},
		},
	}
}

// LoadBuildingStats 从 YAML 文件加载属性成长表
// 参数：
//
//	filepath - 配置文件路径（"data/" 开头读取嵌入数据，否则读取磁盘）
//
// 返回：
//
//	*BuildingStatsConfig - 解析并验证后的配置对象
//	error - 如果文件读取、解析或验证失败，返回错误信息
func LoadBuildingStats(filepath string) (*BuildingStatsConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read building stats file %s: %w", filepath, err)
	}

	var config BuildingStatsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse building stats YAML from %s: %w", filepath, err)
	}

	if err := validateBuildingStats(&config); err != nil {
		return nil, fmt.Errorf("invalid building stats in %s: %w", filepath, err)
	}

	return &config, nil
}

// validateBuildingStats 验证每个种类所需的曲线都存在、长度正确且非负
func validateBuildingStats(config *BuildingStatsConfig) error {
	checks := []struct {
		name   string
		curves StatCurves
		need   []string
	}{
		{"townhall", config.TownHall, []string{"health"}},
		{"collector", config.Collector, []string{"health", "productionRate"}},
		{"storage", config.Storage, []string{"health", "capacity"}},
		{"defense", config.Defense, []string{"health", "damage", "range", "attackSpeed"}},
		{"wall", config.Wall, []string{"health"}},
	}

	for _, c := range checks {
		for _, curve := range c.need {
			values, ok := c.curves.floatCurve(curve)
			if !ok {
				return fmt.Errorf("%s: unknown curve %s", c.name, curve)
			}
			if len(values) != MaxLevel {
				return fmt.Errorf("%s: %s must have exactly %d entries, got %d", c.name, curve, MaxLevel, len(values))
			}
			for i, v := range values {
				if v < 0 {
					return fmt.Errorf("%s: %s level %d cannot be negative, got %v", c.name, curve, i+1, v)
				}
			}
		}
	}

	return nil
}

// floatCurve 按名称返回曲线（容量曲线转换为 float64 以便统一校验）
func (c StatCurves) floatCurve(name string) ([]float64, bool) {
	switch name {
	case "health":
		return c.Health, true
	case "productionRate":
		return c.ProductionRate, true
	case "damage":
		return c.Damage, true
	case "range":
		return c.Range, true
	case "attackSpeed":
		return c.AttackSpeed, true
	case "capacity":
		values := make([]float64, len(c.Capacity))
		for i, v := range c.Capacity {
			values[i] = float64(v)
		}
		return values, true
	default:
		return nil, false
	}
}

// ClampLevel 把等级限制在 [MinLevel, MaxLevel]
// 越界等级不是错误，而是按策略截断
func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// StatsFor 查询建筑种类在指定等级的属性
// 等级先被截断到 [1,10]；纯函数，可被任意数量的读者并发调用
func (c *BuildingStatsConfig) StatsFor(kind types.BuildingKind, level int) StatSet {
	idx := ClampLevel(level) - 1

	switch kind.Tag {
	case types.KindTownHall:
		return StatSet{Health: at(c.TownHall.Health, idx)}
	case types.KindCollector:
		return StatSet{
			Health:         at(c.Collector.Health, idx),
			ProductionRate: at(c.Collector.ProductionRate, idx),
		}
	case types.KindStorage:
		return StatSet{
			Health:   at(c.Storage.Health, idx),
			Capacity: at(c.Storage.Capacity, idx),
		}
	case types.KindDefense:
		return StatSet{
			Health:      at(c.Defense.Health, idx),
			Damage:      at(c.Defense.Damage, idx),
			Range:       at(c.Defense.Range, idx),
			AttackSpeed: at(c.Defense.AttackSpeed, idx),
		}
	case types.KindWall:
		health := at(c.Wall.Health, idx)
		return StatSet{Health: health, Durability: health}
	default:
		return StatSet{}
	}
}

// at 安全索引；验证过的配置总是命中
func at[T any](values []T, idx int) T {
	var zero T
	if idx < 0 || idx >= len(values) {
		return zero
	}
	return values[idx]
}
