package app

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/lujing-jlu/smartscope/internal/measure"
	"github.com/lujing-jlu/smartscope/pkg/camera"
	"github.com/lujing-jlu/smartscope/pkg/cloud"
	"github.com/lujing-jlu/smartscope/pkg/scene"
	"github.com/lujing-jlu/smartscope/pkg/stereo"
	"github.com/lujing-jlu/smartscope/pkg/watcher"
)

// App bundles the viewer's state. Everything except the watcher callback runs
// on the main thread.
type App struct {
	log *zap.Logger

	Camera      *camera.Camera
	Store       *cloud.Store
	Scene       scene.Objects
	View        ViewSettings
	Measure     MeasureState
	Interaction InteractionState
	FileWatch   FileWatchState
	Stereo      StereoState
}

// StereoState holds the optional stereo collaborators. When absent, 3D points
// come from picking and results from the local evaluators.
type StereoState struct {
	calculator stereo.Calculator
	provider   stereo.ProjectionProvider
	projection *stereo.ProjectionMatrix
}

// ViewSettings holds display settings
type ViewSettings struct {
	showPoints   bool
	showOverlays bool
	showAxes     bool
	pointSize    float32
}

// MeasureState holds the measurement session: the measurement currently being
// authored plus the completed ones.
type MeasureState struct {
	activeKind measure.Kind
	active     *measure.Measurement
	completed  []*measure.Measurement
	selected   int // index into completed, -1 = none
}

// InteractionState holds mouse state for click-vs-drag detection
type InteractionState struct {
	mouseDownPos rl.Vector2
	mouseMoved   bool
	isPanning    bool
}

// FileWatchState holds file watching and reload state. needsReload is set from
// the watcher goroutine and consumed on the main thread.
type FileWatchState struct {
	sourceFile  string
	fileWatcher *watcher.FileWatcher
	needsReload atomic.Bool
}
