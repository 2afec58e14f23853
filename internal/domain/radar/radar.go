// Package radar turns skill levels into the series handed to the radar chart.
package radar

import (
	"math"

	"github.com/okian/skillcard/internal/domain/model"
)

// Axis domain of the chart. FullMark is the reference ring drawn at the edge.
const (
	Min      = 0.0
	Max      = 100.0
	FullMark = 100.0
)

// Rounding keeps level*100 free of float noise (0.7*100 != 70 otherwise).
const precision = 1e6

// Point is one spoke of the chart.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Chart is the opaque series plus axis bounds passed to the charting library.
type Chart struct {
	Title    string  `json:"title"`
	Points   []Point `json:"points"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	FullMark float64 `json:"fullMark"`
}

// Scale maps a level in [0, 1] onto the [0, 100] axis. Out-of-range levels
// are passed through scaled but not clamped.
func Scale(level float64) float64 {
	return math.Round(level*100*precision) / precision
}

// FromSkills builds one axis per skill, preserving order.
func FromSkills(skills []model.Skill) Chart {
	points := make([]Point, 0, len(skills))
	for _, s := range skills {
		points = append(points, Point{Label: s.Name, Value: Scale(s.Level)})
	}
	return Chart{
		Title:    "Skill Level",
		Points:   points,
		Min:      Min,
		Max:      Max,
		FullMark: FullMark,
	}
}
