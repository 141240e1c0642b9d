package render

import (
	"math"
	"math/rand/v2"
	"testing"

	mandel "github.com/marben/canvas_mandel"
)

func TestMapRangeEndpoints(t *testing.T) {
	tests := []struct {
		a, b, min, max float64
	}{
		{0, 600, -2, 2},
		{0, 800, -3.6666666666666665, 1.6666666666666667},
		{0, 100, 10, 300},
		{0, 100, 10, 250},
		{-1, 1, 0.1, 0.7},
		{5, 3, 7, -7},
	}

	for _, tt := range tests {
		if got := MapRange(tt.a, tt.a, tt.b, tt.min, tt.max); got != tt.min {
			t.Errorf("MapRange(a=%v) = %v, want %v", tt.a, got, tt.min)
		}
		if got := MapRange(tt.b, tt.a, tt.b, tt.min, tt.max); got != tt.max {
			t.Errorf("MapRange(b=%v) = %v, want %v", tt.b, got, tt.max)
		}
	}
}

func TestMapRangeMonotonic(t *testing.T) {
	prev := math.Inf(-1)
	for v := 0.0; v <= 600; v += 0.5 {
		got := MapRange(v, 0, 600, -1.25, 3.5)
		if got < prev {
			t.Fatalf("MapRange not monotonic at v=%v: %v < %v", v, got, prev)
		}
		prev = got
	}
}

func TestMapRangeMonotonicAdjacent(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	check := func(v, a, b, lo, hi float64) {
		t.Helper()
		next := math.Nextafter(v, math.Inf(1))
		if got, gotNext := MapRange(v, a, b, lo, hi), MapRange(next, a, b, lo, hi); gotNext < got {
			t.Fatalf("MapRange(%v, %v, %v, %v, %v) = %v > MapRange(%v) = %v",
				v, a, b, lo, hi, got, next, gotNext)
		}
	}

	for range 200000 {
		lo := rng.Float64()*20 - 10
		hi := lo + rng.Float64()*math.Pow(10, -rng.Float64()*12)
		b := float64(1 + rng.IntN(2000))
		v := rng.Float64() * b * 1.5

		check(v, 0, b, lo, hi)
		check(math.Trunc(v), 0, b, lo, hi)
	}
	// The region around t = 1, where rounding can overshoot max.
	for range 20000 {
		lo := rng.Float64()*20 - 10
		hi := lo + rng.Float64()
		v := 600.0
		for range 8 {
			v = math.Nextafter(v, 0)
		}
		for range 16 {
			check(v, 0, 600, lo, hi)
			v = math.Nextafter(v, math.Inf(1))
		}
	}
}

func TestLerpExactEndpoints(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for range 100000 {
		a := (rng.Float64() - 0.5) * math.Pow(10, float64(rng.IntN(20)-10))
		b := (rng.Float64() - 0.5) * math.Pow(10, float64(rng.IntN(20)-10))
		if got := Lerp(a, b, 0); got != a {
			t.Fatalf("Lerp(%v, %v, 0) = %v", a, b, got)
		}
		if got := Lerp(a, b, 1); got != b {
			t.Fatalf("Lerp(%v, %v, 1) = %v", a, b, got)
		}
	}
}

func TestLerpExtrapolates(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 4, 0.5, 2},
		{0, 4, 1.5, 6},
		{0, 4, -0.5, -2},
		{4, 0, 1.5, -2},
		{255, 0, 0.25, 191.25},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); got != tt.want {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestMapRangeDegenerate(t *testing.T) {
	got := MapRange(0, 4, 4, -1, 1)
	if !math.IsNaN(got) && !math.IsInf(got, 0) {
		t.Errorf("MapRange with a == b = %v, want NaN or Inf", got)
	}
}

func TestPlaneCenter(t *testing.T) {
	v := mandel.Viewport{CenterX: -1, CenterY: 0, Span: 4, MaxIteration: 20}

	if got := PlaneY(300, v, 600); math.Abs(got) > 1e-12 {
		t.Errorf("PlaneY(300) = %v, want 0", got)
	}
	if got := PlaneX(400, v, 800, 600, AxisAspect); math.Abs(got+1) > 1e-12 {
		t.Errorf("PlaneX(400, aspect) = %v, want -1", got)
	}
}

func TestPlaneEdges(t *testing.T) {
	v := mandel.Viewport{CenterX: 0.5, CenterY: -0.25, Span: 2, MaxIteration: 20}

	if got := PlaneY(0, v, 600); got != -1.25 {
		t.Errorf("PlaneY(0) = %v, want -1.25", got)
	}
	if got := PlaneY(600, v, 600); got != 0.75 {
		t.Errorf("PlaneY(600) = %v, want 0.75", got)
	}

	// Height mapping: x spans the same extent as y over [0, height).
	if got := PlaneX(0, v, 800, 600, AxisHeight); got != -0.5 {
		t.Errorf("PlaneX(0, height) = %v, want -0.5", got)
	}
	if got := PlaneX(600, v, 800, 600, AxisHeight); got != 1.5 {
		t.Errorf("PlaneX(600, height) = %v, want 1.5", got)
	}

	// Aspect mapping: x spans span*width/height over [0, width).
	left := PlaneX(0, v, 800, 600, AxisAspect)
	right := PlaneX(800, v, 800, 600, AxisAspect)
	if math.Abs((right-left)-2*800.0/600.0) > 1e-12 {
		t.Errorf("aspect extent = %v, want %v", right-left, 2*800.0/600.0)
	}
}

func TestNDC(t *testing.T) {
	tests := []struct {
		name          string
		px, py        float64
		wantX, wantY  float64
		width, height int
	}{
		{"center", 400, 300, 0, 0, 800, 600},
		{"top left", 0, 0, -800.0 / 600.0, -1, 800, 600},
		{"bottom right", 800, 600, 800.0 / 600.0, 1, 800, 600},
		{"square", 50, 0, 0, -1, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := NDC(tt.px, tt.py, tt.width, tt.height)
			if math.Abs(x-tt.wantX) > 1e-12 || math.Abs(y-tt.wantY) > 1e-12 {
				t.Errorf("NDC(%v, %v) = (%v, %v), want (%v, %v)", tt.px, tt.py, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

// A click re-centers on the plane point drawn under the cursor when the
// aspect mapping is used.
func TestNDCAgreesWithAspectMapping(t *testing.T) {
	v := mandel.Viewport{CenterX: -0.7, CenterY: 0.2, Span: 1.5, MaxIteration: 50}
	for _, p := range [][2]float64{{0, 0}, {123, 456}, {799, 599}, {400, 300}} {
		nx, ny := NDC(p[0], p[1], 800, 600)
		cx := v.CenterX + nx*v.Span/2
		cy := v.CenterY + ny*v.Span/2

		if got := PlaneX(p[0], v, 800, 600, AxisAspect); math.Abs(got-cx) > 1e-12 {
			t.Errorf("x at %v: plane %v, click %v", p, got, cx)
		}
		if got := PlaneY(p[1], v, 600); math.Abs(got-cy) > 1e-12 {
			t.Errorf("y at %v: plane %v, click %v", p, got, cy)
		}
	}
}
