package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/decker502/coclike/internal/logx"
	"github.com/decker502/coclike/pkg/config"
	"github.com/decker502/coclike/pkg/embedded"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envPrefix 环境变量前缀，例如 BASECTL_STATS、BASECTL_LOG_LEVEL
const envPrefix = "BASECTL"

// cliConfig 命令行配置：来自配置文件、环境变量和命令行参数（优先级从低到高）
type cliConfig struct {
	Stats string `mapstructure:"stats"` // 属性成长表路径，空为内置表
	Base  string `mapstructure:"base"`  // 基地配置路径，空为内置基地
	Log   struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"log"`
}

// cli 一次命令执行的共享状态
type cli struct {
	v          *viper.Viper
	configFile string
	cfg        cliConfig
	logger     *logx.ZapLogger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "basectl",
		Short: "Base builder simulation toolkit",
		Long: `basectl inspects the building stat tables, runs the base simulation
headlessly and validates scripted base layouts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.configFile, "config", "c", "", "Path to basectl YAML config file")
	flags.String("stats", "", "Path to building stats YAML (default: built-in table)")
	flags.String("base", "", "Path to base layout YAML (default: built-in base)")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	flags.String("log-file", "", "Optional JSON log file (rotated)")

	_ = c.v.BindPFlag("stats", flags.Lookup("stats"))
	_ = c.v.BindPFlag("base", flags.Lookup("base"))
	_ = c.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = c.v.BindPFlag("log.file", flags.Lookup("log-file"))

	rootCmd.AddCommand(newStatsCmd(c), newSimulateCmd(c), newLayoutCmd(c))
	return rootCmd
}

// load 读取配置并初始化日志
func (c *cli) load(cmd *cobra.Command) error {
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	c.v.AutomaticEnv()

	if c.configFile != "" {
		c.v.SetConfigFile(c.configFile)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", c.configFile, err)
		}
	}
	if err := c.v.Unmarshal(&c.cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}

	// "data/" 开头的路径相对当前目录解析
	if !embedded.IsInitialized() {
		embedded.Init(os.DirFS("."))
	}

	c.logger = logx.NewZapLogger(logx.New("basectl", logx.Config{
		Level: c.cfg.Log.Level,
		File:  c.cfg.Log.File,
	}, cmd.ErrOrStderr()))
	return nil
}

// stats 返回属性成长表
// 未配置路径时优先读取工作目录下的 data/config，不存在则使用内置表
func (c *cli) stats() (*config.BuildingStatsConfig, error) {
	path := c.cfg.Stats
	if path == "" {
		if !embedded.Exists(config.DefaultBuildingStatsPath) {
			return config.DefaultBuildingStats(), nil
		}
		path = config.DefaultBuildingStatsPath
	}
	return config.LoadBuildingStats(path)
}

// base 返回基地配置，查找顺序同 stats
func (c *cli) base() (*config.BaseConfig, error) {
	path := c.cfg.Base
	if path == "" {
		if !embedded.Exists(config.DefaultBaseConfigPath) {
			return config.DefaultBaseConfig(), nil
		}
		path = config.DefaultBaseConfigPath
	}
	return config.LoadBaseConfig(path)
}
