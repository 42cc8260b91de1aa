package systems

import "errors"

// 启动期配置错误
// 这些错误只在系统构造时返回，运行期的放置拒绝用 bool 表示
var (
	// ErrNoGrid 找不到基地网格实体（或实体上没有 GridOccupancyComponent）
	ErrNoGrid = errors.New("base grid entity is missing")
	// ErrInvalidGridSize 网格尺寸不是正数
	ErrInvalidGridSize = errors.New("grid dimensions must be positive")
	// ErrNoStats 未提供属性成长表
	ErrNoStats = errors.New("building stats table is missing")
	// ErrNoViewport 放置输入流水线没有可用的视口
	ErrNoViewport = errors.New("viewport is missing")
	// ErrNoSelection 放置输入流水线没有放置模式来源
	ErrNoSelection = errors.New("placement selection is missing")
)
