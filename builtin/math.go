/*
File    : molcore/builtin/math.go
Package : builtin
*/
package builtin

import "math"

const degToRad = math.Pi / 180
const radToDeg = 180 / math.Pi

func init() {
	register("math.abs", 1, func(a []float64) (float64, error) { return math.Abs(a[0]), nil })
	register("math.floor", 1, func(a []float64) (float64, error) { return math.Floor(a[0]), nil })
	register("math.ceil", 1, func(a []float64) (float64, error) { return math.Ceil(a[0]), nil })
	register("math.round", 1, func(a []float64) (float64, error) { return math.Round(a[0]), nil })
	register("math.trunc", 1, func(a []float64) (float64, error) { return math.Trunc(a[0]), nil })
	register("math.sqrt", 1, func(a []float64) (float64, error) { return math.Sqrt(a[0]), nil })
	register("math.sign", 1, func(a []float64) (float64, error) { return sign(a[0]), nil })
	register("math.copy_sign", 2, func(a []float64) (float64, error) { return math.Copysign(a[0], a[1]), nil })
	register("math.min", 2, func(a []float64) (float64, error) { return math.Min(a[0], a[1]), nil })
	register("math.max", 2, func(a []float64) (float64, error) { return math.Max(a[0], a[1]), nil })
	register("math.clamp", 3, func(a []float64) (float64, error) { return clamp(a[0], a[1], a[2]), nil })
	register("math.mod", 2, func(a []float64) (float64, error) { return math.Mod(a[0], a[1]), nil })
	register("math.pi", 0, func(a []float64) (float64, error) { return math.Pi, nil })
	register("math.cos", 1, func(a []float64) (float64, error) { return math.Cos(a[0] * degToRad), nil })
	register("math.sin", 1, func(a []float64) (float64, error) { return math.Sin(a[0] * degToRad), nil })
	register("math.acos", 1, func(a []float64) (float64, error) { return math.Acos(a[0]) * radToDeg, nil })
	register("math.asin", 1, func(a []float64) (float64, error) { return math.Asin(a[0]) * radToDeg, nil })
	register("math.atan", 1, func(a []float64) (float64, error) { return math.Atan(a[0]) * radToDeg, nil })
	register("math.atan2", 2, func(a []float64) (float64, error) { return math.Atan2(a[0], a[1]) * radToDeg, nil })
	register("math.exp", 1, func(a []float64) (float64, error) { return math.Exp(a[0]), nil })
	register("math.ln", 1, func(a []float64) (float64, error) { return math.Log(a[0]), nil })
	register("math.pow", 2, func(a []float64) (float64, error) { return math.Pow(a[0], a[1]), nil })
	register("math.min_angle", 1, func(a []float64) (float64, error) { return minAngle(a[0]), nil })
	register("math.lerp", 3, func(a []float64) (float64, error) { return lerp(a[0], a[1], a[2]), nil })
	register("math.inverse_lerp", 3, func(a []float64) (float64, error) { return inverseLerp(a[0], a[1], a[2]), nil })
	register("math.lerprotate", 3, func(a []float64) (float64, error) { return lerpRotate(a[0], a[1], a[2]), nil })
	register("math.hermite_blend", 1, func(a []float64) (float64, error) { return hermiteBlend(a[0]), nil })
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func inverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return (v - a) / (b - a)
}

// minAngle normalizes deg to [-180, 180) by repeated wrap rather than a
// single modulo, so it stays correct for arbitrarily large inputs
// (SPEC_FULL.md §C, following the original Molang behavior).
func minAngle(deg float64) float64 {
	for deg < -180 {
		deg += 360
	}
	for deg >= 180 {
		deg -= 360
	}
	return deg
}

// lerpRotate interpolates the shortest angular path between two degree
// angles (SPEC_FULL.md §C): unlike plain lerp, it rotates through
// min_angle(b-a) rather than the raw numeric difference.
func lerpRotate(a, b, t float64) float64 {
	return a + minAngle(b-a)*t
}

func hermiteBlend(t float64) float64 {
	return 3*t*t - 2*t*t*t
}
