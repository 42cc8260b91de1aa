// Package game 保存模拟步所拥有的玩家状态
package game

import "github.com/decker502/coclike/pkg/types"

// GameState 存储单局模拟的玩家状态
// 由模拟显式创建并以指针传入各系统，不存在全局单例
type GameState struct {
	Resources *PlayerResources // 玩家持有的资源
	Placement *PlacementMode   // 放置模式（当前选中的建筑种类）
}

// NewGameState 创建游戏状态
// 参数:
//   - starting: 各资源的初始数量，可为 nil
func NewGameState(starting map[types.ResourceKind]float64) *GameState {
	return &GameState{
		Resources: NewPlayerResources(starting),
		Placement: NewPlacementMode(),
	}
}
