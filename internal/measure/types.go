// Package measure implements the measurement objects of the inspection tool:
// the variant-tagged measurement record, its authoring state machine, and the
// per-variant geometry builders that turn click points into overlay graphics.
package measure

import (
	"github.com/lujing-jlu/smartscope/pkg/geometry"
)

// Kind is the measurement variant tag
type Kind int

const (
	Length Kind = iota
	PointToLine
	Depth
	Area
	Polyline
	Profile
	RegionProfile
	MissingArea
)

var kindNames = map[Kind]string{
	Length:        "length",
	PointToLine:   "point-to-line",
	Depth:         "depth",
	Area:          "area",
	Polyline:      "polyline",
	Profile:       "profile",
	RegionProfile: "region-profile",
	MissingArea:   "missing-area",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// clickRule describes how many clicks a variant needs. Variants with
// variable == true accept clicks past min and complete via Finish.
type clickRule struct {
	min      int
	variable bool
}

var clickRules = map[Kind]clickRule{
	Length:        {min: 2},
	PointToLine:   {min: 3},
	Depth:         {min: 4},
	Area:          {min: 3, variable: true},
	Polyline:      {min: 2, variable: true},
	Profile:       {min: 2},
	RegionProfile: {min: 2},
	MissingArea:   {min: 5, variable: true},
}

// State is the authoring state of a measurement
type State int

const (
	StateEmpty State = iota
	StateAccumulating
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateAccumulating:
		return "accumulating"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// Measurement is one measurement record. ClickPoints are original image pixel
// coordinates in click order, append-only while authoring. Points, when
// populated by the stereo calculator, is index-aligned with ClickPoints.
type Measurement struct {
	Kind        Kind
	ClickPoints []geometry.Vector2
	Points      []geometry.Vector3
	Result      string
	Visible     bool
	Selected    bool

	finished bool
}

// New creates an empty, visible measurement of the given kind
func New(kind Kind) *Measurement {
	return &Measurement{Kind: kind, Visible: true}
}

// Rule returns the click rule for the measurement's variant
func (m *Measurement) Rule() (min int, variable bool) {
	rule := clickRules[m.Kind]
	return rule.min, rule.variable
}

// State reports where the measurement is in its lifecycle
func (m *Measurement) State() State {
	if len(m.ClickPoints) == 0 {
		return StateEmpty
	}
	min, variable := m.Rule()
	if variable {
		if m.finished && len(m.ClickPoints) >= min {
			return StateComplete
		}
		return StateAccumulating
	}
	if len(m.ClickPoints) >= min {
		return StateComplete
	}
	return StateAccumulating
}

// AddClick appends a click point. Clicks on an already complete measurement
// are ignored so the sequence stays append-only and stable.
func (m *Measurement) AddClick(p geometry.Vector2) bool {
	if m.State() == StateComplete {
		return false
	}
	m.ClickPoints = append(m.ClickPoints, p)
	return true
}

// UndoClick removes the most recent click while authoring
func (m *Measurement) UndoClick() bool {
	if len(m.ClickPoints) == 0 || m.State() == StateComplete {
		return false
	}
	m.ClickPoints = m.ClickPoints[:len(m.ClickPoints)-1]
	if len(m.Points) > len(m.ClickPoints) {
		m.Points = m.Points[:len(m.ClickPoints)]
	}
	return true
}

// Finish marks a variable-length measurement as complete. It reports whether
// the measurement actually reached a complete state.
func (m *Measurement) Finish() bool {
	min, variable := m.Rule()
	if !variable {
		return m.State() == StateComplete
	}
	if len(m.ClickPoints) < min {
		return false
	}
	m.finished = true
	return true
}

// SetPoints installs the calculator's 3D points. A slice that is not
// index-aligned with the clicks is rejected.
func (m *Measurement) SetPoints(points []geometry.Vector3) bool {
	if len(points) > len(m.ClickPoints) {
		return false
	}
	m.Points = points
	return true
}
