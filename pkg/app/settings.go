package app

import (
	"fmt"

	"github.com/decker502/coclike/internal/logx"
	"github.com/decker502/coclike/pkg/utils"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// StorageAppName gdata 存储使用的应用名
const StorageAppName = "coclike"

// ViewerSettings 查看器偏好设置（相机、调试面板等）
// 只是展示偏好，不包含任何模拟状态
type ViewerSettings struct {
	Zoom       float64 `yaml:"zoom"`       // 每格像素数
	CenterX    float64 `yaml:"centerX"`    // 相机中心（世界坐标）
	CenterY    float64 `yaml:"centerY"`
	ShowDebug  bool    `yaml:"showDebug"`  // 是否显示调试面板（F3）
	ShowGrid   bool    `yaml:"showGrid"`   // 是否绘制网格线
	Fullscreen bool    `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultViewerSettings 返回默认设置，相机对准 100x100 基地中心
func DefaultViewerSettings() *ViewerSettings {
	return &ViewerSettings{
		Zoom:     DefaultZoom,
		CenterX:  50,
		CenterY:  50,
		ShowGrid: true,
	}
}

// 存储路径常量
const (
	settingsObject   = "viewer"
	settingsProperty = "settings"
)

// OpenStorage 打开 gdata 跨平台存储
// 失败时返回错误，调用方可以用 nil 管理器进入降级模式
func OpenStorage() (*gdata.Manager, error) {
	if err := utils.EnsureStorageDir(); err != nil {
		dir, _ := utils.StorageDir()
		return nil, fmt.Errorf("failed to prepare storage dir %q: %w", dir, err)
	}
	m, err := gdata.Open(gdata.Config{AppName: StorageAppName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata storage: %w", err)
	}
	return m, nil
}

// SettingsManager 设置管理器
// 负责查看器设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *ViewerSettings
	logger       logx.Logger
}

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
// 加载失败不是致命错误，使用默认设置并记录警告
func NewSettingsManager(gdataManager *gdata.Manager, logger logx.Logger) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultViewerSettings(),
		logger:       logx.OrNop(logger).With(zap.String("system", "SettingsManager")),
	}
	if err := sm.Load(); err != nil {
		sm.logger.Warn("failed to load settings, using defaults", zap.Error(err))
	}
	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或设置不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultViewerSettings()
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultViewerSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultViewerSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultViewerSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultViewerSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.Zoom = clampZoom(loaded.Zoom)

	sm.settings = loaded
	sm.logger.Debug("settings loaded")
	return nil
}

// Save 保存设置到 gdata
// 降级模式下直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	sm.logger.Debug("settings saved")
	return nil
}

// Settings 获取当前设置
func (sm *SettingsManager) Settings() *ViewerSettings {
	return sm.settings
}

// CaptureCamera 把相机状态写入设置（仅内存，需调用 Save 持久化）
func (sm *SettingsManager) CaptureCamera(c *Camera) {
	sm.settings.Zoom = c.Zoom
	sm.settings.CenterX = c.CenterX
	sm.settings.CenterY = c.CenterY
}

// ApplyCamera 把设置中的相机状态应用到相机
func (sm *SettingsManager) ApplyCamera(c *Camera) {
	c.Zoom = clampZoom(sm.settings.Zoom)
	c.CenterX = sm.settings.CenterX
	c.CenterY = sm.settings.CenterY
}

// ToggleDebug 切换调试面板
func (sm *SettingsManager) ToggleDebug() bool {
	sm.settings.ShowDebug = !sm.settings.ShowDebug
	return sm.settings.ShowDebug
}
