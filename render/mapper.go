package render

import mandel "github.com/marben/canvas_mandel"

// AxisMode selects how the horizontal pixel axis is mapped onto the plane.
type AxisMode int

const (
	// AxisAspect maps x over the raster width, scaled by the aspect ratio,
	// so the raster center always shows the viewport center.
	AxisAspect AxisMode = iota
	// AxisHeight maps x over the raster height, like y, as the legacy viewer
	// did; the image is shifted right of center.
	AxisHeight
)

func (m AxisMode) String() string {
	switch m {
	case AxisAspect:
		return "aspect"
	case AxisHeight:
		return "height"
	}
	return "unknown"
}

// Lerp interpolates linearly between a and b.
// It returns exactly a at t = 0 and exactly b at t = 1, and it is monotonic
// in t. Values of t outside [0, 1] extrapolate.
func Lerp(a, b, t float64) float64 {
	if t == 1 {
		return b
	}
	x := a + (b-a)*t
	// a + (b-a)*t is monotonic but may round past b near t = 1.
	if (t > 1) == (b > a) {
		return max(b, x)
	}
	return min(b, x)
}

// MapRange maps v from [a, b] onto [min, max].
// When a == b the result is Inf or NaN; it is not guarded.
func MapRange(v, a, b, min, max float64) float64 {
	return Lerp(min, max, (v-a)/(b-a))
}

// PlaneY returns the imaginary coordinate of pixel row y.
func PlaneY(y float64, v mandel.Viewport, height int) float64 {
	half := v.Span / 2
	return MapRange(y, 0, float64(height), v.CenterY-half, v.CenterY+half)
}

// PlaneX returns the real coordinate of pixel column x.
func PlaneX(x float64, v mandel.Viewport, width, height int, axis AxisMode) float64 {
	half := v.Span / 2
	if axis == AxisHeight {
		return MapRange(x, 0, float64(height), v.CenterX-half, v.CenterX+half)
	}
	half *= float64(width) / float64(height)
	return MapRange(x, 0, float64(width), v.CenterX-half, v.CenterX+half)
}

// NDC converts a pixel position into normalized device coordinates.
// y lands in [-1, 1]; x is stretched by width/height.
func NDC(px, py float64, width, height int) (float64, float64) {
	w, h := float64(width), float64(height)
	return (px/w*2 - 1) * w / h, py/h*2 - 1
}
