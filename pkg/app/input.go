package app

import (
	"github.com/decker502/coclike/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerState 本帧的指针输入，同时支持鼠标和触摸，优先触摸
type pointerState struct {
	X, Y        int
	JustPressed bool // 左键/触摸刚按下
	IsTouching  bool
}

// readPointer 读取本帧的指针输入
func readPointer() pointerState {
	state := pointerState{}

	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		state.JustPressed = true
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		state.IsTouching = true
		return state
	}
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		state.IsTouching = true
		return state
	}

	state.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	state.X, state.Y = ebiten.CursorPosition()
	return state
}

// hotkeys 数字键 1..7 依次选中可建造的建筑种类
var hotkeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7,
}

// kindForHotkey 返回第 index 个热键对应的建筑种类
func kindForHotkey(index int) (types.BuildingKind, bool) {
	kinds := types.BuildableKinds()
	if index < 0 || index >= len(kinds) || index >= len(hotkeys) {
		return types.BuildingKind{}, false
	}
	return kinds[index], true
}

// pressedHotkey 返回本帧按下的热键序号
func pressedHotkey() (int, bool) {
	for i, key := range hotkeys {
		if inpututil.IsKeyJustPressed(key) {
			return i, true
		}
	}
	return 0, false
}

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放），只持续一帧
	DragStateEnded
)

// DragTracker 跟踪一个鼠标按键的拖拽，用于平移相机
type DragTracker struct {
	button       ebiten.MouseButton
	state        DragState
	lastX, lastY int
	dx, dy       int // 本帧位移
}

// NewDragTracker 创建拖拽跟踪器
func NewDragTracker(button ebiten.MouseButton) *DragTracker {
	return &DragTracker{button: button}
}

// Update 读取 ebiten 输入并推进状态（每帧调用一次）
func (d *DragTracker) Update() {
	x, y := ebiten.CursorPosition()
	d.step(ebiten.IsMouseButtonPressed(d.button), x, y)
}

// step 根据按键状态和指针位置推进状态机
func (d *DragTracker) step(pressed bool, x, y int) {
	d.dx, d.dy = 0, 0

	switch d.state {
	case DragStateNone, DragStateEnded:
		if pressed {
			d.state = DragStateStarted
			d.lastX, d.lastY = x, y
		} else {
			d.state = DragStateNone
		}
	case DragStateStarted, DragStateDragging:
		if !pressed {
			d.state = DragStateEnded
			return
		}
		d.state = DragStateDragging
		d.dx, d.dy = x-d.lastX, y-d.lastY
		d.lastX, d.lastY = x, y
	}
}

// State 当前拖拽状态
func (d *DragTracker) State() DragState { return d.state }

// Delta 本帧拖拽位移（屏幕像素）
func (d *DragTracker) Delta() (dx, dy int) { return d.dx, d.dy }

// IsDragging 是否正在拖拽
func (d *DragTracker) IsDragging() bool { return d.state == DragStateDragging }

// Reset 重置拖拽状态
func (d *DragTracker) Reset() {
	d.state = DragStateNone
	d.dx, d.dy = 0, 0
}
