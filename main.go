package main

import (
	"flag"
	"log"

	"github.com/decker502/coclike/internal/logx"
	"github.com/decker502/coclike/pkg/app"
	"github.com/decker502/coclike/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

var (
	verbose   = flag.Bool("verbose", false, "详细日志（debug 级别）")
	statsPath = flag.String("stats", "", "属性成长表 YAML 路径（默认使用内置表）")
	basePath  = flag.String("base", "", "基地配置 YAML 路径（默认使用内置基地）")
	logFile   = flag.String("log-file", "", "可选：JSON 日志文件路径")
	noStorage = flag.Bool("no-storage", false, "不持久化查看器设置")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	level := "info"
	if *verbose {
		level = "debug"
	}
	zl := logx.New("viewer", logx.Config{Level: level, Dev: *verbose, File: *logFile}, nil)
	logger := logx.NewZapLogger(zl)
	defer logger.Sync()

	gameApp, err := app.NewApp(app.Config{
		StatsPath:      *statsPath,
		BasePath:       *basePath,
		Logger:         logger,
		DisableStorage: *noStorage,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(app.WindowWidth, app.WindowHeight)
	ebiten.SetWindowTitle("Base Builder")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gameApp)
	if err := gameApp.Close(); err != nil {
		logger.Warn("failed to save viewer settings", zap.Error(err))
	}
	if runErr != nil {
		logger.Error("game loop exited", zap.Error(runErr))
		log.Fatal(runErr)
	}
}
