package viewer

import (
	"image"
	"image/color"
	"math"

	"github.com/lujing-jlu/smartscope/pkg/camera"
	"github.com/lujing-jlu/smartscope/pkg/cloud"
)

// RenderCloudImage renders the snapshot into an RGBA image with per-pixel
// depth testing, so nearer points always win over farther ones. pointSize is
// the splat edge length in pixels.
func RenderCloudImage(cam *camera.Camera, snap *cloud.Snapshot, width, height, pointSize int, background color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, background)
		}
	}
	if snap == nil || snap.Len() == 0 {
		return img
	}

	zbuffer := make([]float64, width*height)
	for i := range zbuffer {
		zbuffer[i] = math.MaxFloat64
	}

	if pointSize < 1 {
		pointSize = 1
	}
	half := pointSize / 2

	for i, p := range snap.Points {
		screen, visible := cam.WorldToScreen(p)
		if !visible {
			continue
		}
		depth := cam.ViewDepth(p)
		c := snap.ColorAt(i)
		col := color.RGBA{
			R: uint8(c.R * 255),
			G: uint8(c.G * 255),
			B: uint8(c.B * 255),
			A: 255,
		}

		cx, cy := int(screen.X), int(screen.Y)
		for dy := -half; dy <= half; dy++ {
			for dx := -half; dx <= half; dx++ {
				x, y := cx+dx, cy+dy
				if x < 0 || x >= width || y < 0 || y >= height {
					continue
				}
				idx := y*width + x
				if depth < zbuffer[idx] {
					zbuffer[idx] = depth
					img.SetRGBA(x, y, col)
				}
			}
		}
	}

	return img
}

// drawLine draws a line on an image using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	var sx, sy int
	if x1 < x2 {
		sx = 1
	} else {
		sx = -1
	}
	if y1 < y2 {
		sy = 1
	} else {
		sy = -1
	}

	err := dx - dy

	for {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, col)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
