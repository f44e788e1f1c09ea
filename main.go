package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/neonbubble/pkg/app"
	"github.com/decker502/neonbubble/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	// .env / 环境变量提供默认值，命令行参数优先
	defaults := app.ConfigFromEnv()
	verbose := flag.Bool("verbose", defaults.Verbose, "启用详细日志输出")
	scenePath := flag.String("scene", defaults.ScenePath, "场景文件路径（默认使用嵌入的 data/scenes/default.yaml）")
	flag.Parse()

	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:   *verbose,
		ScenePath: *scenePath,
	})
	if err != nil {
		// 非 verbose 模式下日志已被丢弃，直接写 stderr
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	w, h := a.ScreenSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("NeonBubble")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
