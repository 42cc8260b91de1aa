package config

import (
	"fmt"

	"github.com/decker502/coclike/pkg/embedded"
	"github.com/decker502/coclike/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultBaseConfigPath 默认基地配置在嵌入数据中的路径
const DefaultBaseConfigPath = "data/config/base.yaml"

// 默认网格规格
const (
	DefaultGridWidth  = 100
	DefaultGridHeight = 100
)

// GridConfig 网格尺寸
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// InitialBuilding 脚本化初始基地中的一个建筑
type InitialBuilding struct {
	Kind  types.BuildingKind `yaml:"kind"`
	Level int                `yaml:"level"`
	X     int                `yaml:"x"`
	Y     int                `yaml:"y"`
}

// BaseConfig 基地配置文件结构
type BaseConfig struct {
	Grid              GridConfig         `yaml:"grid"`
	StartingResources map[string]float64 `yaml:"startingResources"` // 资源名（gold/elixir）到初始数量
	InitialBuildings  []InitialBuilding  `yaml:"initialBuildings"`
}

// DefaultBaseConfig 返回内置默认基地：100x100 网格、各 1000 资源、(45,45) 处 1 级大本营
func DefaultBaseConfig() *BaseConfig {
	return &BaseConfig{
		Grid: GridConfig{Width: DefaultGridWidth, Height: DefaultGridHeight},
		StartingResources: map[string]float64{
			"gold":   1000,
			"elixir": 1000,
		},
		InitialBuildings: []InitialBuilding{
			{Kind: types.TownHall(), Level: 1, X: 45, Y: 45},
		},
	}
}

// LoadBaseConfig 从 YAML 文件加载基地配置
func LoadBaseConfig(filepath string) (*BaseConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read base config file %s: %w", filepath, err)
	}

	var config BaseConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse base config YAML from %s: %w", filepath, err)
	}

	if err := ValidateBaseConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid base config in %s: %w", filepath, err)
	}

	return &config, nil
}

// ValidateBaseConfig 验证基地配置
// 只做静态检查；初始建筑之间的重叠由放置服务在生成时拒绝
func ValidateBaseConfig(config *BaseConfig) error {
	if config.Grid.Width <= 0 || config.Grid.Height <= 0 {
		return fmt.Errorf("grid size must be positive, got %dx%d", config.Grid.Width, config.Grid.Height)
	}

	for name, amount := range config.StartingResources {
		if _, err := ParseResourceKind(name); err != nil {
			return err
		}
		if amount < 0 {
			return fmt.Errorf("starting resource %s cannot be negative, got %v", name, amount)
		}
	}

	for i, b := range config.InitialBuildings {
		if !b.Kind.IsValid() {
			return fmt.Errorf("initialBuildings[%d]: kind is required", i)
		}
		if b.X < 0 || b.Y < 0 {
			return fmt.Errorf("initialBuildings[%d]: position (%d,%d) cannot be negative", i, b.X, b.Y)
		}
	}

	return nil
}

// StartingAmounts 把初始资源转换为按资源种类索引的映射
// 未配置的资源为 0
func (c *BaseConfig) StartingAmounts() map[types.ResourceKind]float64 {
	amounts := make(map[types.ResourceKind]float64, len(types.AllResourceKinds()))
	for _, kind := range types.AllResourceKinds() {
		amounts[kind] = 0
	}
	for name, amount := range c.StartingResources {
		if kind, err := ParseResourceKind(name); err == nil {
			amounts[kind] = amount
		}
	}
	return amounts
}

// ParseResourceKind 解析配置中的资源名称
func ParseResourceKind(name string) (types.ResourceKind, error) {
	switch name {
	case "gold":
		return types.ResourceGold, nil
	case "elixir":
		return types.ResourceElixir, nil
	default:
		return 0, fmt.Errorf("unknown resource %q", name)
	}
}
