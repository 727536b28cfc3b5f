package app

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lujing-jlu/smartscope/pkg/cloud"
	"github.com/lujing-jlu/smartscope/pkg/watcher"
)

const watchDebounce = 300 * time.Millisecond

// loadCloud reads the point cloud file, installs it as the current snapshot
// (centered at the origin) and frames the camera on it.
func (app *App) loadCloud(path string) error {
	points, colors, err := cloud.LoadPLY(path)
	if err != nil {
		return errors.Wrapf(err, "failed to load %s", path)
	}

	offset := app.Store.Replace(points, colors, true)
	snap := app.Store.Snapshot()
	app.Camera.Frame(snap.Bounds)

	app.log.Info("cloud loaded",
		zap.String("file", path),
		zap.Int("points", snap.Len()),
		zap.Bool("colors", snap.HasColors()),
		zap.Float64("offsetX", offset.X),
		zap.Float64("offsetY", offset.Y),
		zap.Float64("offsetZ", offset.Z))
	return nil
}

// setupFileWatcher arranges a debounced reload whenever the source file is
// rewritten. The callback only flips a flag; the actual load happens on the
// main thread inside the frame loop.
func (app *App) setupFileWatcher() error {
	fw, err := watcher.NewFileWatcher(watchDebounce, app.log)
	if err != nil {
		return err
	}
	if err := fw.Watch([]string{app.FileWatch.sourceFile}, func(string) {
		app.FileWatch.needsReload.Store(true)
	}); err != nil {
		fw.Close()
		return err
	}
	fw.Start()
	app.FileWatch.fileWatcher = fw
	return nil
}

// reloadCloud applies a pending file change. Measurements reference cloud-local
// coordinates of the previous snapshot, so they are cleared on reload.
func (app *App) reloadCloud() {
	app.log.Info("reloading cloud", zap.String("file", app.FileWatch.sourceFile))
	if err := app.loadCloud(app.FileWatch.sourceFile); err != nil {
		app.log.Warn("reload failed, keeping previous cloud", zap.Error(err))
		return
	}
	app.clearMeasurements()
}

func (app *App) clearMeasurements() {
	app.Measure.active = nil
	app.Measure.completed = nil
	app.Measure.selected = -1
	app.Scene.Clear()
}
