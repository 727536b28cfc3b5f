package main

import (
	"fmt"
	"math"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/lujing-jlu/smartscope/pkg/analysis"
	"github.com/lujing-jlu/smartscope/pkg/cloud"
	"github.com/lujing-jlu/smartscope/pkg/geometry"
	"github.com/lujing-jlu/smartscope/pkg/viewer"
)

type App struct {
	window   fyne.Window
	store    *cloud.Store
	renderer *viewer.CloudRenderer
	info     *MeasurementInfo
}

type MeasurementInfo struct {
	point1Label    *widget.Label
	point2Label    *widget.Label
	distanceXLabel *widget.Label
	distanceYLabel *widget.Label
	distanceZLabel *widget.Label
	totalDistLabel *widget.Label
	cloudInfoLabel *widget.Label
}

func main() {
	a := app.New()
	w := a.NewWindow("SmartScope - Point Cloud Inspector")

	appInstance := &App{
		window: w,
		store:  cloud.NewStore(),
	}

	if len(os.Args) > 1 {
		appInstance.loadFile(os.Args[1])
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to SmartScope")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Click 'Open PLY File' to load a point cloud")

	openButton := widget.NewButton("Open PLY File", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadFile(filename string) {
	points, colors, err := cloud.LoadPLY(filename)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to load PLY file: %w", err), a.window)
		return
	}

	a.store.Replace(points, colors, true)
	a.setupMainUI()
}

func (a *App) setupMainUI() {
	a.info = &MeasurementInfo{
		point1Label:    widget.NewLabel("Point 1: Not selected"),
		point2Label:    widget.NewLabel("Point 2: Not selected"),
		distanceXLabel: widget.NewLabel("Distance X: -"),
		distanceYLabel: widget.NewLabel("Distance Y: -"),
		distanceZLabel: widget.NewLabel("Distance Z: -"),
		totalDistLabel: widget.NewLabel("Total Distance: -"),
		cloudInfoLabel: widget.NewLabel(""),
	}
	a.info.totalDistLabel.TextStyle = fyne.TextStyle{Bold: true}

	a.renderer = viewer.NewCloudRenderer(a.store)
	a.renderer.SetOnPick(func(point geometry.Vector3) {
		a.updateMeasurements()
	})

	openButton := widget.NewButton("Open File", func() {
		a.showFileDialog()
	})

	clearButton := widget.NewButton("Clear Selection", func() {
		a.renderer.ClearPicked()
		a.updateMeasurements()
	})

	stats := analysis.AnalyzeCloud(a.store.Snapshot())
	cloudInfo := fmt.Sprintf(
		"Points: %d\nColors: %t\n\nDimensions:\n  X: %.2f\n  Y: %.2f\n  Z: %.2f\n\nSpacing: %.3f",
		stats.PointCount,
		stats.HasColors,
		stats.Dimensions.X,
		stats.Dimensions.Y,
		stats.Dimensions.Z,
		stats.MeanSpacing,
	)
	a.info.cloudInfoLabel.SetText(cloudInfo)

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Click on points to select them\n" +
			"• Drag to rotate the view\n" +
			"• Scroll to zoom in/out\n" +
			"• Select 2 points to measure distance",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Cloud Information:"),
		widget.NewSeparator(),
		a.info.cloudInfoLabel,
		widget.NewSeparator(),
		widget.NewLabel("Measurements:"),
		widget.NewSeparator(),
		a.info.point1Label,
		a.info.point2Label,
		widget.NewSeparator(),
		a.info.distanceXLabel,
		a.info.distanceYLabel,
		a.info.distanceZLabel,
		a.info.totalDistLabel,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		openButton,
		clearButton,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.renderer, // center
	)

	a.window.SetContent(content)

	a.renderer.Render(800, 600)
}

func (a *App) updateMeasurements() {
	points := a.renderer.PickedPoints()

	if len(points) == 0 {
		a.info.point1Label.SetText("Point 1: Not selected")
		a.info.point2Label.SetText("Point 2: Not selected")
		a.info.distanceXLabel.SetText("Distance X: -")
		a.info.distanceYLabel.SetText("Distance Y: -")
		a.info.distanceZLabel.SetText("Distance Z: -")
		a.info.totalDistLabel.SetText("Total Distance: -")
		return
	}

	p1 := points[0]
	a.info.point1Label.SetText(fmt.Sprintf("Point 1: (%.3f, %.3f, %.3f)", p1.X, p1.Y, p1.Z))

	if len(points) < 2 {
		a.info.point2Label.SetText("Point 2: Click to select")
		a.info.distanceXLabel.SetText("Distance X: -")
		a.info.distanceYLabel.SetText("Distance Y: -")
		a.info.distanceZLabel.SetText("Distance Z: -")
		a.info.totalDistLabel.SetText("Total Distance: -")
		return
	}

	p2 := points[1]
	a.info.point2Label.SetText(fmt.Sprintf("Point 2: (%.3f, %.3f, %.3f)", p2.X, p2.Y, p2.Z))

	deltaX := math.Abs(p2.X - p1.X)
	deltaY := math.Abs(p2.Y - p1.Y)
	deltaZ := math.Abs(p2.Z - p1.Z)
	totalDist := p1.Distance(p2)

	a.info.distanceXLabel.SetText(fmt.Sprintf("Distance X: %.3f mm", deltaX))
	a.info.distanceYLabel.SetText(fmt.Sprintf("Distance Y: %.3f mm", deltaY))
	a.info.distanceZLabel.SetText(fmt.Sprintf("Distance Z: %.3f mm", deltaZ))
	a.info.totalDistLabel.SetText(fmt.Sprintf("Total Distance: %.3f mm", totalDist))
}
