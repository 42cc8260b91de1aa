package game

import (
	"math"

	"github.com/decker502/coclike/pkg/types"
)

// PlayerResources 按资源种类累积的玩家资源（浮点，连续累积）
// 在当前范围内只增不减；没有仓库容量上限
type PlayerResources struct {
	amounts map[types.ResourceKind]float64
}

// NewPlayerResources 创建资源表，所有资源种类都有条目
// 负数或 NaN 的初始值按 0 处理
func NewPlayerResources(starting map[types.ResourceKind]float64) *PlayerResources {
	pr := &PlayerResources{amounts: make(map[types.ResourceKind]float64)}
	for _, kind := range types.AllResourceKinds() {
		pr.amounts[kind] = 0
	}
	for kind, amount := range starting {
		if amount > 0 {
			pr.amounts[kind] = amount
		}
	}
	return pr
}

// Add 增加资源
// 非正数或 NaN 的增量被忽略
func (pr *PlayerResources) Add(kind types.ResourceKind, amount float64) {
	if !(amount > 0) || math.IsInf(amount, 0) {
		return
	}
	pr.amounts[kind] += amount
}

// Get 返回当前数量
func (pr *PlayerResources) Get(kind types.ResourceKind) float64 {
	return pr.amounts[kind]
}

// Snapshot 返回资源表的只读副本，供展示层使用
func (pr *PlayerResources) Snapshot() map[types.ResourceKind]float64 {
	out := make(map[types.ResourceKind]float64, len(pr.amounts))
	for k, v := range pr.amounts {
		out[k] = v
	}
	return out
}
