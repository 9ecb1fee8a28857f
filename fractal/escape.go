package fractal

// Inside marks a point that did not escape within the depth cutoff
const Inside = -1

// bailout is the squared escape radius
const bailout = 4.0

// Escape iterates z = z² + c from z = 0 with c = (x, y)
// Returns the 0-based iteration at which |z|² exceeded 4, or Inside if depth iterations complete
func Escape(x, y float64, depth int) int {
	var zr, zi float64
	for i := 0; i < depth; i++ {
		// Conversions round every product so no platform fuses them into FMA
		zr, zi = float64(zr*zr)-float64(zi*zi)+x, float64(2*zr*zi)+y
		if float64(zr*zr)+float64(zi*zi) > bailout {
			return i
		}
	}
	return Inside
}
