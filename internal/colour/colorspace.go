// Package colour implements the perceptual colour pipeline used to extract
// dominant colour swatches from cover art: sRGB/CIELAB conversion, the
// CIEDE2000 difference metric, pixel sampling, k-means clustering in Lab
// space, and diversity-constrained palette selection.
package colour

import "math"

// D65 reference white, the illuminant all Lab conversions are anchored to.
const (
	refWhiteX = 0.95047
	refWhiteY = 1.00000
	refWhiteZ = 1.08883
)

// labEpsilon is the CIE f(t) linear/cube-root threshold (216/24389, rounded
// as published).
const labEpsilon = 0.008856

// Lab is a colour in CIELAB space. L is lightness in [0, 100]; A and B are
// the green-red and blue-yellow axes, nominally in [-128, 127].
type Lab struct {
	L, A, B float64
}

// srgbToLinear decodes the sRGB piecewise gamma curve (IEC 61966-2-1).
func srgbToLinear(c float64) float64 {
	if c > 0.04045 {
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	return c / 12.92
}

// linearToSRGB encodes a linear component back to gamma-encoded sRGB.
func linearToSRGB(c float64) float64 {
	if c > 0.0031308 {
		return 1.055*math.Pow(c, 1.0/2.4) - 0.055
	}
	return 12.92 * c
}

// labF is the CIE f(t) nonlinearity: cube root above the threshold, linear
// below it.
func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

// labFInv is the algebraic inverse of labF.
func labFInv(t float64) float64 {
	t3 := t * t * t
	if t3 > labEpsilon {
		return t3
	}
	return (t - 16.0/116.0) / 7.787
}

// RGBToLab converts an 8-bit sRGB triple to CIELAB under the D65 white
// point.
func RGBToLab(r, g, b uint8) Lab {
	rf := srgbToLinear(float64(r) / 255.0)
	gf := srgbToLinear(float64(g) / 255.0)
	bf := srgbToLinear(float64(b) / 255.0)

	x := rf*0.4124 + gf*0.3576 + bf*0.1805
	y := rf*0.2126 + gf*0.7152 + bf*0.0722
	z := rf*0.0193 + gf*0.1192 + bf*0.9505

	fx := labF(x / refWhiteX)
	fy := labF(y / refWhiteY)
	fz := labF(z / refWhiteZ)

	return Lab{
		L: 116.0*fy - 16.0,
		A: 500.0 * (fx - fy),
		B: 200.0 * (fy - fz),
	}
}

// LabToRGB converts a CIELAB colour back to 8-bit sRGB. Out-of-gamut values
// are clamped to the legal channel range after conversion.
func LabToRGB(lab Lab) (r, g, b uint8) {
	fy := (lab.L + 16.0) / 116.0
	fx := lab.A/500.0 + fy
	fz := fy - lab.B/200.0

	x := labFInv(fx) * refWhiteX
	y := labFInv(fy) * refWhiteY
	z := labFInv(fz) * refWhiteZ

	rf := x*3.2406 + y*-1.5372 + z*-0.4986
	gf := x*-0.9689 + y*1.8758 + z*0.0415
	bf := x*0.0557 + y*-0.2040 + z*1.0570

	return clampChannel(linearToSRGB(rf)),
		clampChannel(linearToSRGB(gf)),
		clampChannel(linearToSRGB(bf))
}

// clampChannel maps a [0, 1] component to an 8-bit channel, clamping
// out-of-range values and rounding half away from zero.
func clampChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(1, v))*255.0 + 0.5)
}
