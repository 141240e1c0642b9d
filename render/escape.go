package render

// Escape iterates z = z*z + c from z = 0 with c = (mx, my).
// It returns the number of steps completed before |z| exceeded 2,
// or n when the orbit stayed bounded for n steps.
func Escape(mx, my float64, n int) int {
	var zx, zy float64

	i := 0
	for i < n {
		zx, zy = zx*zx-zy*zy+mx, 2*zx*zy+my

		if zx*zx+zy*zy > 4 {
			break
		}
		i++
	}
	return i
}
