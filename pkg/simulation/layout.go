package simulation

import (
	"github.com/decker502/coclike/pkg/config"
	"github.com/decker502/coclike/pkg/ecs"
	"github.com/decker502/coclike/pkg/systems"
)

// LayoutResult 脚本化布局中一个建筑的生成结果
type LayoutResult struct {
	Entry    config.InitialBuilding
	ID       ecs.EntityID // 被拒绝时为 ecs.InvalidEntity
	Accepted bool
}

// ApplyLayout 按顺序生成布局中的建筑
// 每个建筑都经过占用检查；与之前的建筑重叠或越界的条目被拒绝，不影响后续条目
func ApplyLayout(placement *systems.PlacementSystem, entries []config.InitialBuilding) []LayoutResult {
	results := make([]LayoutResult, 0, len(entries))
	for _, entry := range entries {
		id, ok := placement.SpawnBuilding(entry.Kind, entry.Level, entry.X, entry.Y)
		results = append(results, LayoutResult{Entry: entry, ID: id, Accepted: ok})
	}
	return results
}

// CountAccepted 返回被接受的条目数
func CountAccepted(results []LayoutResult) int {
	n := 0
	for _, r := range results {
		if r.Accepted {
			n++
		}
	}
	return n
}
