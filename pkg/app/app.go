// Package app 提供基地查看器的 ebiten 包装器
//
// 该包把模拟核心接到 ebiten 的输入、帧时钟和绘制上，可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"

	"github.com/decker502/coclike/internal/logx"
	"github.com/decker502/coclike/pkg/config"
	"github.com/decker502/coclike/pkg/simulation"
	"github.com/decker502/coclike/pkg/types"
	"github.com/decker502/coclike/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// 逻辑屏幕尺寸
const (
	WindowWidth  = 1280
	WindowHeight = 720
)

// 相机控制参数
const (
	keyPanSpeed   = 600.0 // 方向键平移速度（像素/秒）
	wheelZoomStep = 1.1
	focusDuration = 0.6 // Home 键回到大本营的动画时长（秒）
)

// Config 定义应用启动配置
type Config struct {
	// StatsPath 属性成长表路径，为空时使用嵌入的默认表
	StatsPath string
	// BasePath 基地配置路径，为空时使用嵌入的默认基地
	BasePath string
	// Logger 日志，可为 nil
	Logger logx.Logger
	// DisableStorage 不使用 gdata 持久化查看器设置
	DisableStorage bool
}

// App 是查看器的核心包装器，实现 ebiten.Game 接口
type App struct {
	sim      *simulation.Simulation
	camera   *Camera
	settings *SettingsManager
	drag     *DragTracker
	logger   logx.Logger

	lastResult simulation.StepResult
	snapshot   simulation.Snapshot

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化查看器
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入数据。
func NewApp(cfg Config) (*App, error) {
	logger := logx.OrNop(cfg.Logger).With(zap.String("system", "App"))

	stats, err := loadStats(cfg.StatsPath)
	if err != nil {
		return nil, err
	}
	base, err := loadBase(cfg.BasePath)
	if err != nil {
		return nil, err
	}

	var settings *SettingsManager
	if cfg.DisableStorage {
		settings = NewSettingsManager(nil, cfg.Logger)
	} else {
		storage, err := OpenStorage()
		if err != nil {
			// 存储不可用时降级为仅内存设置
			logger.Warn("viewer settings will not persist", zap.Error(err))
		}
		settings = NewSettingsManager(storage, cfg.Logger)
	}

	camera := NewCamera(WindowWidth, WindowHeight, float64(base.Grid.Width)/2, float64(base.Grid.Height)/2)
	settings.ApplyCamera(camera)

	sim, err := simulation.New(simulation.Options{
		Stats:    stats,
		Base:     base,
		Viewport: camera,
		Logger:   cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}

	a := &App{
		sim:      sim,
		camera:   camera,
		settings: settings,
		drag:     NewDragTracker(dragButton()),
		logger:   logger,
	}
	a.snapshot = sim.Snapshot()
	if settings.Settings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	logger.Info("viewer ready", zap.Int("buildings", len(a.snapshot.Buildings)))
	return a, nil
}

func loadStats(path string) (*config.BuildingStatsConfig, error) {
	if path == "" {
		path = config.DefaultBuildingStatsPath
	}
	stats, err := config.LoadBuildingStats(path)
	if err != nil {
		return nil, fmt.Errorf("属性成长表加载失败: %w", err)
	}
	return stats, nil
}

func loadBase(path string) (*config.BaseConfig, error) {
	if path == "" {
		path = config.DefaultBaseConfigPath
	}
	base, err := config.LoadBaseConfig(path)
	if err != nil {
		return nil, fmt.Errorf("基地配置加载失败: %w", err)
	}
	return base, nil
}

// Update 每个 tick 调用一次，执行一步模拟
func (a *App) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	a.handleWindowKeys()
	a.handleSelectionKeys()
	a.handleCamera(dt)

	pointer := readPointer()
	if pointer.JustPressed && !a.snapshot.Armed {
		// 说明面板上的点击只用于选择种类，不进入放置管线
		if idx, ok := helpEntryAt(pointer.X, pointer.Y); ok {
			if kind, ok := kindForHotkey(idx); ok {
				a.sim.Select(kind)
			}
			pointer.JustPressed = false
		}
	}
	in := simulation.FrameInput{
		Elapsed: dt,
		Click:   pointer.JustPressed,
	}
	if a.pointerInside(pointer) {
		in.Pointer = &simulation.Pointer{X: float64(pointer.X), Y: float64(pointer.Y)}
	}

	a.lastResult = a.sim.Step(in)
	a.snapshot = a.sim.Snapshot()
	return nil
}

// handleWindowKeys F11 切换全屏，F3 切换调试面板
func (a *App) handleWindowKeys() {
	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(WindowWidth, WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.Settings().Fullscreen = ebiten.IsFullscreen()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		shown := a.settings.ToggleDebug()
		a.logger.Debug("debug overlay toggled", zap.Bool("shown", shown))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		a.settings.Settings().ShowGrid = !a.settings.Settings().ShowGrid
	}
}

// handleSelectionKeys 数字键选中建筑，Esc 或右键取消
func (a *App) handleSelectionKeys() {
	if idx, ok := pressedHotkey(); ok {
		if kind, ok := kindForHotkey(idx); ok {
			a.sim.Select(kind)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		a.sim.Deselect()
	}
}

// handleCamera 中键拖动平移，滚轮缩放，方向键平移，Home 回到大本营
func (a *App) handleCamera(dt float64) {
	a.camera.Update(dt)

	a.drag.Update()
	// 移动端用单指拖动平移，放置模式下让位给放置预览
	if a.drag.IsDragging() && !(utils.IsMobile() && a.snapshot.Armed) {
		dx, dy := a.drag.Delta()
		a.camera.Pan(float64(dx), float64(dy))
	}

	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		cx, cy := ebiten.CursorPosition()
		factor := wheelZoomStep
		if wheelY < 0 {
			factor = 1 / wheelZoomStep
		}
		a.camera.ZoomAt(factor, float64(cx), float64(cy))
	}

	step := keyPanSpeed * dt
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		a.camera.Pan(step, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		a.camera.Pan(-step, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		a.camera.Pan(0, step)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		a.camera.Pan(0, -step)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		x, y := a.townHallCenter()
		a.camera.FocusOn(x, y, focusDuration, utils.EasingByName("easeInOut"))
	}
}

// dragButton 平移相机使用的按键
// 移动端触摸由 ebiten 映射为左键
func dragButton() ebiten.MouseButton {
	if utils.IsMobile() {
		return ebiten.MouseButtonLeft
	}
	return ebiten.MouseButtonMiddle
}

// townHallCenter 返回大本营中心的世界坐标，没有大本营时返回网格中心
func (a *App) townHallCenter() (float64, float64) {
	for _, b := range a.snapshot.Buildings {
		if b.Kind == types.TownHall() {
			return float64(b.X) + float64(b.Footprint.Width)/2, float64(b.Y) + float64(b.Footprint.Height)/2
		}
	}
	return float64(a.snapshot.GridWidth) / 2, float64(a.snapshot.GridHeight) / 2
}

// pointerInside 光标是否在窗口内
// ebiten 在光标离开窗口后仍返回最后位置，这里只按视口范围判断
func (a *App) pointerInside(p pointerState) bool {
	_, _, ok := a.camera.ViewportToWorld(float64(p.X), float64(p.Y))
	return ok
}

// Draw 绘制画面，每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	s := a.settings.Settings()

	drawGround(screen, a.camera, a.snapshot, s.ShowGrid)
	drawBuildings(screen, a.camera, a.snapshot)
	drawPreview(screen, a.camera, a.lastResult)

	drawPanel(screen, hudLines(a.snapshot), hudX, hudY, hudWidth)
	if !a.snapshot.Armed {
		drawPanel(screen, hotkeyHelp(), helpX, helpY, helpWidth)
	}
	if s.ShowDebug {
		drawPanel(screen, debugLines(a.snapshot, a.camera, ebiten.ActualTPS(), ebiten.ActualFPS()),
			a.camera.ScreenW-330, 10, 320)
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

// Simulation 返回模拟实例
func (a *App) Simulation() *simulation.Simulation {
	return a.sim
}

// Close 保存查看器设置
// 在游戏循环结束后调用
func (a *App) Close() error {
	a.settings.CaptureCamera(a.camera)
	if err := a.settings.Save(); err != nil {
		return fmt.Errorf("failed to save viewer settings: %w", err)
	}
	return nil
}
