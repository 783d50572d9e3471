package main

import (
	"fmt"
	"log/slog"
	"os"

	"InfiniteBoard/internal/board"
	"InfiniteBoard/internal/logx"
	"InfiniteBoard/internal/ui"

	"github.com/tdewolff/argp"
)

type Board struct {
	Width   float64 `default:"1024" desc:"Window width"`
	Height  float64 `default:"768" desc:"Window height"`
	Brush   float64 `short:"b" default:"2" desc:"Initial brush size"`
	Eraser  float64 `default:"2" desc:"Eraser width as a multiple of the brush size"`
	Grid    float64 `default:"50" desc:"Grid spacing in world units, 0 disables the grid"`
	Verbose bool    `short:"v" desc:"Log debug messages"`
}

func main() {
	root := argp.NewCmd(&Board{}, "Infinite canvas whiteboard")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Board) Run() error {
	if cmd.Width <= 0 || cmd.Height <= 0 {
		return fmt.Errorf("window size must be positive")
	}
	if cmd.Grid < 0 {
		return fmt.Errorf("grid spacing cannot be negative")
	}

	level := slog.LevelInfo
	if cmd.Verbose {
		level = slog.LevelDebug
	}
	logx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := board.DefaultConfig()
	cfg.EraserWidthFactor = cmd.Eraser
	cfg.Render.GridSize = cmd.Grid

	b := board.New(cfg)
	b.Settings().SetBrushSize(cmd.Brush)

	ui.RunApp(b, float32(cmd.Width), float32(cmd.Height))
	return nil
}
