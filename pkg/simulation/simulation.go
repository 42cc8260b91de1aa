// Package simulation 把基地模拟的各个系统组装成固定顺序的单步流水线
//
// 每一步依次执行：输入解析 → 放置 → 资源结算 → 展示同步。
// 所有状态由 Simulation 独占，只在 Step 内部被修改，不需要加锁。
package simulation

import (
	"fmt"
	"math"

	"github.com/decker502/coclike/internal/logx"
	"github.com/decker502/coclike/pkg/config"
	"github.com/decker502/coclike/pkg/ecs"
	"github.com/decker502/coclike/pkg/game"
	"github.com/decker502/coclike/pkg/systems"
	"github.com/decker502/coclike/pkg/types"
	"go.uber.org/zap"
)

// Presenter 展示协作者，每步结束时接收只读快照
type Presenter interface {
	Present(snapshot Snapshot)
}

// PresenterFunc 把函数适配为 Presenter
type PresenterFunc func(snapshot Snapshot)

// Present 调用 f
func (f PresenterFunc) Present(snapshot Snapshot) { f(snapshot) }

// Options 模拟构造参数
type Options struct {
	Stats     *config.BuildingStatsConfig // 属性成长表，必填
	Base      *config.BaseConfig          // 基地配置，nil 时使用默认基地
	Viewport  systems.Viewport            // 相机/视口，必填（无界面运行使用 systems.IdentityViewport）
	Presenter Presenter                   // 可为 nil
	Logger    logx.Logger                 // 可为 nil
}

// Pointer 本帧指针（视口坐标）
type Pointer struct {
	X, Y float64
}

// FrameInput 一帧的外部输入
type FrameInput struct {
	Elapsed float64  // 距上一步经过的秒数，必须是非负有限数
	Pointer *Pointer // 指针位置，nil 表示没有指针（例如光标离开窗口）
	Click   bool     // 本帧是否发生放置点击（位置取 Pointer）
}

// StepResult 一步的结果
type StepResult struct {
	Preview    systems.PlacementPreview
	HasPreview bool
	Placed     ecs.EntityID // 本步放置的建筑，未放置时为 ecs.InvalidEntity
}

// Simulation 单局基地模拟
type Simulation struct {
	entityManager *ecs.EntityManager
	state         *game.GameState

	registry  *systems.BuildingRegistry
	grid      *systems.GridSystem
	placement *systems.PlacementSystem
	input     *systems.PlacementInputSystem
	economy   *systems.EconomySystem

	presenter Presenter
	logger    logx.Logger
	elapsed   float64 // 累计模拟时间（秒）
	steps     int
	layout    []LayoutResult
}

// New 创建模拟并按基地配置生成初始建筑
// 缺少属性表或视口、网格尺寸非法等启动期配置错误在这里返回
func New(opts Options) (*Simulation, error) {
	logger := logx.OrNop(opts.Logger)

	if opts.Stats == nil {
		return nil, fmt.Errorf("simulation setup: %w", systems.ErrNoStats)
	}
	if opts.Viewport == nil {
		return nil, fmt.Errorf("simulation setup: %w", systems.ErrNoViewport)
	}
	base := opts.Base
	if base == nil {
		base = config.DefaultBaseConfig()
	}
	if err := config.ValidateBaseConfig(base); err != nil {
		return nil, fmt.Errorf("simulation setup: %w", err)
	}

	em := ecs.NewEntityManager()
	gridEntity, err := systems.NewGridEntity(em, base.Grid.Width, base.Grid.Height)
	if err != nil {
		return nil, fmt.Errorf("simulation setup: %w", err)
	}
	grid, err := systems.NewGridSystem(em, gridEntity, logger)
	if err != nil {
		return nil, fmt.Errorf("simulation setup: %w", err)
	}
	registry, err := systems.NewBuildingRegistry(em, opts.Stats, logger)
	if err != nil {
		return nil, fmt.Errorf("simulation setup: %w", err)
	}

	state := game.NewGameState(base.StartingAmounts())
	placement := systems.NewPlacementSystem(registry, grid, logger)
	input, err := systems.NewPlacementInputSystem(placement, opts.Viewport, state.Placement, logger)
	if err != nil {
		return nil, fmt.Errorf("simulation setup: %w", err)
	}

	sim := &Simulation{
		entityManager: em,
		state:         state,
		registry:      registry,
		grid:          grid,
		placement:     placement,
		input:         input,
		economy:       systems.NewEconomySystem(em, state.Resources),
		presenter:     opts.Presenter,
		logger:        logger.With(zap.String("system", "Simulation")),
	}

	sim.layout = ApplyLayout(placement, base.InitialBuildings)
	sim.logger.Info("simulation ready",
		zap.Int("gridWidth", grid.Width()),
		zap.Int("gridHeight", grid.Height()),
		zap.Int("initialBuildings", CountAccepted(sim.layout)))
	return sim, nil
}

// Step 执行一步：输入解析 → 放置 → 资源结算 → 展示同步
// Elapsed 为负数、NaN 或无穷时 panic
func (s *Simulation) Step(in FrameInput) StepResult {
	if math.IsNaN(in.Elapsed) || in.Elapsed < 0 || math.IsInf(in.Elapsed, 0) {
		panic(fmt.Sprintf("simulation: elapsed seconds must be a finite non-negative number, got %v", in.Elapsed))
	}

	result := StepResult{Placed: ecs.InvalidEntity}

	// 1. 输入解析（预览只读）
	if in.Pointer != nil {
		result.Preview, result.HasPreview = s.input.Preview(in.Pointer.X, in.Pointer.Y)
	}

	// 2. 放置
	if in.Click && in.Pointer != nil {
		if id, ok := s.input.Click(in.Pointer.X, in.Pointer.Y); ok {
			result.Placed = id
		}
	}

	// 3. 资源结算
	s.economy.Update(in.Elapsed)
	s.elapsed += in.Elapsed
	s.steps++

	// 4. 展示同步
	if s.presenter != nil {
		s.presenter.Present(s.Snapshot())
	}
	return result
}

// Select 选中建筑种类，进入放置模式
func (s *Simulation) Select(kind types.BuildingKind) {
	s.state.Placement.Arm(kind)
}

// Deselect 取消选择
func (s *Simulation) Deselect() {
	s.state.Placement.Disarm()
}

// Selected 返回当前选中的建筑种类
func (s *Simulation) Selected() (types.BuildingKind, bool) {
	return s.state.Placement.Selected()
}

// Placement 返回放置服务（脚本化布局和工具使用）
func (s *Simulation) Placement() *systems.PlacementSystem { return s.placement }

// Registry 返回建筑注册表
func (s *Simulation) Registry() *systems.BuildingRegistry { return s.registry }

// Grid 返回网格系统
func (s *Simulation) Grid() *systems.GridSystem { return s.grid }

// Resources 返回玩家资源
func (s *Simulation) Resources() *game.PlayerResources { return s.state.Resources }

// Economy 返回资源经济系统
func (s *Simulation) Economy() *systems.EconomySystem { return s.economy }

// Elapsed 返回累计模拟时间（秒）
func (s *Simulation) Elapsed() float64 { return s.elapsed }

// InitialLayout 返回初始布局的生成结果
func (s *Simulation) InitialLayout() []LayoutResult { return s.layout }

// Steps 返回已执行的步数
func (s *Simulation) Steps() int { return s.steps }
