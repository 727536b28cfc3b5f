// Package app is the interactive point cloud inspector: a raylib window with
// orbit/pan/zoom navigation, click-to-measure authoring and auto-reload of the
// source file.
package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/lujing-jlu/smartscope/internal/measure"
	"github.com/lujing-jlu/smartscope/pkg/camera"
	"github.com/lujing-jlu/smartscope/pkg/cloud"
	"github.com/lujing-jlu/smartscope/pkg/stereo"
)

const (
	defaultWindowWidth  = 1280
	defaultWindowHeight = 800
)

// Option configures optional collaborators of the viewer
type Option func(*App)

// WithCalculator wires the stereo measurement calculator. Completed
// measurements get their 3D points and result string from it instead of the
// local evaluators.
func WithCalculator(c stereo.Calculator) Option {
	return func(app *App) { app.Stereo.calculator = c }
}

// WithProjectionProvider wires the stereo projection matrix used for the
// depth variant's 2D placement.
func WithProjectionProvider(p stereo.ProjectionProvider) Option {
	return func(app *App) { app.Stereo.provider = p }
}

// Run opens the viewer window on the given point cloud file and blocks until
// the window is closed.
func Run(sourceFile string, log *zap.Logger, opts ...Option) error {
	if log == nil {
		log = zap.NewNop()
	}

	app := &App{
		log:    log,
		Camera: camera.New(defaultWindowWidth, defaultWindowHeight),
		Store:  cloud.NewStore(),
		View: ViewSettings{
			showPoints:   true,
			showOverlays: true,
			showAxes:     true,
			pointSize:    3,
		},
		Measure: MeasureState{
			activeKind: measure.Length,
			selected:   -1,
		},
	}
	app.FileWatch.sourceFile = sourceFile
	for _, opt := range opts {
		opt(app)
	}

	// A missing or broken file is not fatal: the viewer starts empty and
	// the watcher picks the file up once it becomes readable.
	if err := app.loadCloud(sourceFile); err != nil {
		app.log.Warn("starting with empty cloud", zap.Error(err))
	}

	if err := app.setupFileWatcher(); err != nil {
		app.log.Warn("file watching unavailable", zap.Error(err))
	} else {
		defer app.FileWatch.fileWatcher.Close()
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(defaultWindowWidth, defaultWindowHeight, "SmartScope")
	rl.SetTargetFPS(60)
	// ESC finishes measurements instead of closing the window.
	rl.SetExitKey(0)
	defer rl.CloseWindow()

	for !rl.WindowShouldClose() {
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyQ) {
			break
		}

		if app.FileWatch.needsReload.CompareAndSwap(true, false) {
			app.reloadCloud()
		}

		app.Camera.SetViewport(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))

		app.handleInput()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))
		app.drawFrame()
		rl.EndDrawing()
	}

	return nil
}
