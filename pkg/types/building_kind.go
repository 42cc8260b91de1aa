// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// ResourceKind 定义玩家资源的种类（封闭集合）
type ResourceKind int

const (
	// ResourceGold 金币
	ResourceGold ResourceKind = iota
	// ResourceElixir 圣水
	ResourceElixir
)

// AllResourceKinds 返回所有资源种类（固定顺序，用于 HUD 和快照输出）
func AllResourceKinds() []ResourceKind {
	return []ResourceKind{ResourceGold, ResourceElixir}
}

// String 返回资源种类的字符串表示
func (r ResourceKind) String() string {
	switch r {
	case ResourceGold:
		return "Gold"
	case ResourceElixir:
		return "Elixir"
	default:
		return "Unknown"
	}
}

// KindTag 是建筑种类的标签部分
type KindTag int

const (
	// KindUnknown 未知建筑（零值，不可放置）
	KindUnknown KindTag = iota
	// KindTownHall 大本营
	KindTownHall
	// KindCollector 资源采集器（携带 ResourceKind）
	KindCollector
	// KindStorage 资源仓库（携带 ResourceKind）
	KindStorage
	// KindDefense 防御塔
	KindDefense
	// KindWall 城墙
	KindWall
)

// BuildingKind 是建筑种类的和类型：标签 + 仅对采集器/仓库有意义的资源种类
//
// 零值为 KindUnknown。必须通过构造函数创建，构造函数会把无意义的 Resource 归零，
// 保证同一种类的两个值可以直接用 == 比较，也可以作为 map 的键。
type BuildingKind struct {
	Tag      KindTag
	Resource ResourceKind
}

// TownHall 返回大本营种类
func TownHall() BuildingKind { return BuildingKind{Tag: KindTownHall} }

// Collector 返回指定资源的采集器种类
func Collector(r ResourceKind) BuildingKind { return BuildingKind{Tag: KindCollector, Resource: r} }

// Storage 返回指定资源的仓库种类
func Storage(r ResourceKind) BuildingKind { return BuildingKind{Tag: KindStorage, Resource: r} }

// Defense 返回防御塔种类
func Defense() BuildingKind { return BuildingKind{Tag: KindDefense} }

// Wall 返回城墙种类
func Wall() BuildingKind { return BuildingKind{Tag: KindWall} }

// BuildableKinds 返回所有可放置的建筑种类，顺序与编辑器按钮一致
func BuildableKinds() []BuildingKind {
	return []BuildingKind{
		TownHall(),
		Collector(ResourceGold),
		Collector(ResourceElixir),
		Storage(ResourceGold),
		Storage(ResourceElixir),
		Defense(),
		Wall(),
	}
}

// IsValid 检查种类是否属于封闭集合
func (k BuildingKind) IsValid() bool {
	switch k.Tag {
	case KindTownHall, KindDefense, KindWall:
		return k.Resource == ResourceGold
	case KindCollector, KindStorage:
		return k.Resource == ResourceGold || k.Resource == ResourceElixir
	default:
		return false
	}
}

// String 返回配置文件中使用的名称，如 "gold_collector"
func (k BuildingKind) String() string {
	switch k.Tag {
	case KindTownHall:
		return "townhall"
	case KindCollector:
		return resourcePrefix(k.Resource) + "_collector"
	case KindStorage:
		return resourcePrefix(k.Resource) + "_storage"
	case KindDefense:
		return "defense"
	case KindWall:
		return "wall"
	default:
		return "unknown"
	}
}

// DisplayName 返回用于界面显示的名称
func (k BuildingKind) DisplayName() string {
	switch k.Tag {
	case KindTownHall:
		return "Town Hall"
	case KindCollector:
		return k.Resource.String() + " Collector"
	case KindStorage:
		return k.Resource.String() + " Storage"
	case KindDefense:
		return "Defense"
	case KindWall:
		return "Wall"
	default:
		return "Unknown"
	}
}

func resourcePrefix(r ResourceKind) string {
	switch r {
	case ResourceElixir:
		return "elixir"
	default:
		return "gold"
	}
}

// ParseBuildingKind 把配置名称解析为建筑种类
// 未知名称返回错误
func ParseBuildingKind(name string) (BuildingKind, error) {
	for _, k := range BuildableKinds() {
		if k.String() == name {
			return k, nil
		}
	}
	return BuildingKind{}, fmt.Errorf("unknown building kind %q", name)
}

// MarshalText 实现 encoding.TextMarshaler，使 YAML 中可以直接写种类名称
func (k BuildingKind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("cannot marshal invalid building kind %+v", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (k *BuildingKind) UnmarshalText(text []byte) error {
	parsed, err := ParseBuildingKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
