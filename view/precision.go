package view

import (
	"fmt"
	"math"

	"github.com/marben/canvas_mandel/render"
)

// Bounds of the external precision control.
const (
	PrecisionMin = 0
	PrecisionMax = 100
)

// PrecisionRange maps the precision control onto iteration caps.
type PrecisionRange struct {
	// Floor is the cap at precision 0.
	Floor float64
	// Initial is the cap at precision 100 when the viewer starts.
	Initial float64
	// Change is the cap at precision 100 for later changes.
	Change float64
	// Fractional keeps the unrounded cap: the loop runs while i < cap and
	// escape counts are shaded by i/cap.
	Fractional bool
}

var (
	// DefaultPrecision uses one range for start-up and later changes.
	DefaultPrecision = PrecisionRange{Floor: 10, Initial: 300, Change: 300}

	// LegacyPrecision is the legacy slider behaviour: the control tops out
	// at 300 on load but at 250 once it is moved, and fractional caps are
	// kept for shading.
	LegacyPrecision = PrecisionRange{Floor: 10, Initial: 300, Change: 250, Fractional: true}
)

// Cap converts a control value in [0, 100] into an unrounded iteration cap.
// Values outside the control range are clamped.
func (r PrecisionRange) Cap(value float64, initial bool) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPrecision, value)
	}
	value = max(PrecisionMin, min(PrecisionMax, value))

	top := r.Change
	if initial {
		top = r.Initial
	}
	return render.MapRange(value, PrecisionMin, PrecisionMax, r.Floor, top), nil
}

// Iterations converts a control value into a whole iteration cap.
// Fractional caps round up, matching a loop that runs while i < cap.
func (r PrecisionRange) Iterations(value float64, initial bool) (int, error) {
	n, err := r.Cap(value, initial)
	if err != nil {
		return 0, err
	}
	return r.round(n), nil
}

func (r PrecisionRange) round(n float64) int {
	if r.Fractional {
		return int(math.Ceil(n))
	}
	return int(math.Ceil(n - capEpsilon))
}

// capEpsilon absorbs float noise such as 300*0.1 = 30.000000000000004.
const capEpsilon = 1e-9
