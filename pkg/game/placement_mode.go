package game

import "github.com/decker502/coclike/pkg/types"

// PlacementState 放置模式状态
type PlacementState int

const (
	// PlacementIdle 未选中建筑
	PlacementIdle PlacementState = iota
	// PlacementArmed 已选中建筑，等待放置点击
	PlacementArmed
)

// String 返回状态名称
func (s PlacementState) String() string {
	if s == PlacementArmed {
		return "Armed"
	}
	return "Idle"
}

// PlacementMode 放置模式状态机：Idle → Armed(kind) → Idle
//
// 由界面选择（编辑器按钮、热键）驱动；放置流水线只在放置成功后调用 Disarm，
// 放置被拒绝时保持 Armed 以便重试。没有超时。
type PlacementMode struct {
	state    PlacementState
	selected types.BuildingKind
}

// NewPlacementMode 创建处于 Idle 状态的放置模式
func NewPlacementMode() *PlacementMode {
	return &PlacementMode{state: PlacementIdle}
}

// Arm 选中建筑种类，进入 Armed 状态
// 无效种类会被忽略
func (pm *PlacementMode) Arm(kind types.BuildingKind) {
	if !kind.IsValid() {
		return
	}
	pm.state = PlacementArmed
	pm.selected = kind
}

// Disarm 取消选择，回到 Idle 状态
func (pm *PlacementMode) Disarm() {
	pm.state = PlacementIdle
	pm.selected = types.BuildingKind{}
}

// Selected 返回当前选中的建筑种类
func (pm *PlacementMode) Selected() (types.BuildingKind, bool) {
	if pm.state != PlacementArmed {
		return types.BuildingKind{}, false
	}
	return pm.selected, true
}

// State 返回当前状态
func (pm *PlacementMode) State() PlacementState {
	return pm.state
}
