package colour

import "math"

// pow25To7 is the 25^7 constant from the CIEDE2000 G compensation and
// rotation terms.
const pow25To7 = 6103515625.0

// DeltaE2000 returns the CIEDE2000 colour difference between two CIELAB
// colours. The result is symmetric, non-negative, and zero for
// colorimetrically identical inputs. This is the sole distance metric used
// by clustering and palette selection.
func DeltaE2000(lab1, lab2 Lab) float64 {
	l1, a1, b1 := lab1.L, lab1.A, lab1.B
	l2, a2, b2 := lab2.L, lab2.A, lab2.B

	c1 := math.Sqrt(a1*a1 + b1*b1)
	c2 := math.Sqrt(a2*a2 + b2*b2)
	cAvg := (c1 + c2) / 2.0

	// Chroma compensation factor.
	cAvg7 := math.Pow(cAvg, 7)
	g := 0.5 * (1.0 - math.Sqrt(cAvg7/(cAvg7+pow25To7)))

	a1Prime := a1 * (1.0 + g)
	a2Prime := a2 * (1.0 + g)

	c1Prime := math.Sqrt(a1Prime*a1Prime + b1*b1)
	c2Prime := math.Sqrt(a2Prime*a2Prime + b2*b2)

	h1Prime := hueAngleDeg(b1, a1Prime)
	h2Prime := hueAngleDeg(b2, a2Prime)

	deltaLPrime := l2 - l1
	deltaCPrime := c2Prime - c1Prime

	// Hue difference with wrap-around; defined as zero when either chroma
	// vanishes (hue is meaningless on the neutral axis).
	var deltaHSmall float64
	if c1Prime*c2Prime != 0 {
		diff := h2Prime - h1Prime
		switch {
		case math.Abs(diff) <= 180.0:
			deltaHSmall = diff
		case diff > 180.0:
			deltaHSmall = diff - 360.0
		default:
			deltaHSmall = diff + 360.0
		}
	}
	deltaHPrime := 2.0 * math.Sqrt(c1Prime*c2Prime) * math.Sin(deltaHSmall*math.Pi/360.0)

	lAvg := (l1 + l2) / 2.0
	cAvgPrime := (c1Prime + c2Prime) / 2.0

	// Mean hue, with its own wrap rule when the two hues straddle 0/360.
	var hAvgPrime float64
	if c1Prime*c2Prime == 0 {
		hAvgPrime = h1Prime + h2Prime
	} else {
		sum := h1Prime + h2Prime
		switch {
		case math.Abs(h1Prime-h2Prime) <= 180.0:
			hAvgPrime = sum / 2.0
		case sum < 360.0:
			hAvgPrime = (sum + 360.0) / 2.0
		default:
			hAvgPrime = (sum - 360.0) / 2.0
		}
	}

	hRad := hAvgPrime * math.Pi / 180.0
	t := 1.0 -
		0.17*math.Cos(hRad-math.Pi/6.0) +
		0.24*math.Cos(2.0*hRad) +
		0.32*math.Cos(3.0*hRad+math.Pi/30.0) -
		0.20*math.Cos(4.0*hRad-63.0*math.Pi/180.0)

	deltaTheta := 30.0 * math.Exp(-math.Pow((hAvgPrime-275.0)/25.0, 2))
	cAvgPrime7 := math.Pow(cAvgPrime, 7)
	rc := 2.0 * math.Sqrt(cAvgPrime7/(cAvgPrime7+pow25To7))
	rt := -math.Sin(2.0*deltaTheta*math.Pi/180.0) * rc

	lAvgMinus50 := lAvg - 50.0
	sl := 1.0 + (0.015*lAvgMinus50*lAvgMinus50)/math.Sqrt(20.0+lAvgMinus50*lAvgMinus50)
	sc := 1.0 + 0.045*cAvgPrime
	sh := 1.0 + 0.015*cAvgPrime*t

	dl := deltaLPrime / sl
	dc := deltaCPrime / sc
	dh := deltaHPrime / sh

	return math.Sqrt(dl*dl + dc*dc + dh*dh + rt*dc*dh)
}

// hueAngleDeg returns atan2(b, a) in degrees, normalized to [0, 360).
func hueAngleDeg(b, a float64) float64 {
	deg := math.Atan2(b, a) * 180.0 / math.Pi
	if deg < 0 {
		deg += 360.0
	}
	return deg
}
