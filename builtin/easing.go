/*
File    : molcore/builtin/easing.go
Package : builtin
*/
package builtin

import "math"

// curve is a normalized easing function over t in [0, 1], returning an
// eased position in (roughly) [0, 1]. The Penner curve implementations
// below follow the standard reference formulas (spec.md §4.7).
type curve func(t float64) float64

func quadIn(t float64) float64  { return t * t }
func quadOut(t float64) float64 { return 1 - (1-t)*(1-t) }
func quadInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

func cubicIn(t float64) float64  { return t * t * t }
func cubicOut(t float64) float64 { return 1 - math.Pow(1-t, 3) }
func cubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func quartIn(t float64) float64  { return t * t * t * t }
func quartOut(t float64) float64 { return 1 - math.Pow(1-t, 4) }
func quartInOut(t float64) float64 {
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 4)/2
}

func quintIn(t float64) float64  { return t * t * t * t * t }
func quintOut(t float64) float64 { return 1 - math.Pow(1-t, 5) }
func quintInOut(t float64) float64 {
	if t < 0.5 {
		return 16 * t * t * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 5)/2
}

func sineIn(t float64) float64    { return 1 - math.Cos(t*math.Pi/2) }
func sineOut(t float64) float64   { return math.Sin(t * math.Pi / 2) }
func sineInOut(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 }

func expoIn(t float64) float64 {
	if t == 0 {
		return 0
	}
	return math.Pow(2, 10*t-10)
}
func expoOut(t float64) float64 {
	if t == 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}
func expoInOut(t float64) float64 {
	switch {
	case t == 0:
		return 0
	case t == 1:
		return 1
	case t < 0.5:
		return math.Pow(2, 20*t-10) / 2
	default:
		return (2 - math.Pow(2, -20*t+10)) / 2
	}
}

func circIn(t float64) float64  { return 1 - math.Sqrt(1-t*t) }
func circOut(t float64) float64 { return math.Sqrt(1 - math.Pow(t-1, 2)) }
func circInOut(t float64) float64 {
	if t < 0.5 {
		return (1 - math.Sqrt(1-math.Pow(2*t, 2))) / 2
	}
	return (math.Sqrt(1-math.Pow(-2*t+2, 2)) + 1) / 2
}

const backC1 = 1.70158
const backC3 = backC1 + 1

func backIn(t float64) float64 { return backC3*t*t*t - backC1*t*t }
func backOut(t float64) float64 {
	return 1 + backC3*math.Pow(t-1, 3) + backC1*math.Pow(t-1, 2)
}
func backInOut(t float64) float64 {
	const c2 = backC1 * 1.525
	if t < 0.5 {
		return (math.Pow(2*t, 2) * ((c2+1)*2*t - c2)) / 2
	}
	return (math.Pow(2*t-2, 2)*((c2+1)*(t*2-2)+c2) + 2) / 2
}

const elasticC4 = 2 * math.Pi / 3
const elasticC5 = 2 * math.Pi / 4.5

func elasticIn(t float64) float64 {
	switch t {
	case 0:
		return 0
	case 1:
		return 1
	}
	return -math.Pow(2, 10*t-10) * math.Sin((t*10-10.75)*elasticC4)
}
func elasticOut(t float64) float64 {
	switch t {
	case 0:
		return 0
	case 1:
		return 1
	}
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*elasticC4) + 1
}
func elasticInOut(t float64) float64 {
	switch {
	case t == 0:
		return 0
	case t == 1:
		return 1
	case t < 0.5:
		return -(math.Pow(2, 20*t-10) * math.Sin((20*t-11.125)*elasticC5)) / 2
	default:
		return (math.Pow(2, -20*t+10)*math.Sin((20*t-11.125)*elasticC5))/2 + 1
	}
}

func bounceOut(t float64) float64 {
	const n1, d1 = 7.5625, 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}
func bounceIn(t float64) float64 { return 1 - bounceOut(1-t) }
func bounceInOut(t float64) float64 {
	if t < 0.5 {
		return (1 - bounceOut(1-2*t)) / 2
	}
	return (1 + bounceOut(2*t-1)) / 2
}

// easingFamilies maps each family name to its (in, out, in_out) curves.
var easingFamilies = map[string][3]curve{
	"quad":    {quadIn, quadOut, quadInOut},
	"cubic":   {cubicIn, cubicOut, cubicInOut},
	"quart":   {quartIn, quartOut, quartInOut},
	"quint":   {quintIn, quintOut, quintInOut},
	"sine":    {sineIn, sineOut, sineInOut},
	"expo":    {expoIn, expoOut, expoInOut},
	"circ":    {circIn, circOut, circInOut},
	"back":    {backIn, backOut, backInOut},
	"elastic": {elasticIn, elasticOut, elasticInOut},
	"bounce":  {bounceIn, bounceOut, bounceInOut},
}

func init() {
	variants := [3]string{"ease_in", "ease_out", "ease_in_out"}
	for family, curves := range easingFamilies {
		for i, variant := range variants {
			name, fn := "math."+family+"_"+variant, curves[i]
			register(name, 3, func(a []float64) (float64, error) {
				start, end, t := a[0], a[1], a[2]
				return start + (end-start)*fn(t), nil
			})
		}
	}
}
