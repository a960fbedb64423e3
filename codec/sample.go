package codec

import "math"

// resample scales src into dst using filter. Used for formats whose range or
// precision does not fit 8-bit drawing.
func resample(src, dst *floatImage, filter FilterMode) {
	sw, sh := float64(src.width), float64(src.height)
	for y := range dst.height {
		v := (float64(y) + 0.5) / float64(dst.height)
		for x := range dst.width {
			u := (float64(x) + 0.5) / float64(dst.width)
			out := dst.at(x, y)
			switch filter {
			case FilterLinear:
				sampleBilinear(src, u*sw-0.5, v*sh-0.5, out)
			case FilterCubic:
				sampleBicubic(src, u*sw-0.5, v*sh-0.5, out)
			case FilterFant:
				sampleBox(src,
					float64(x)*sw/float64(dst.width), float64(y)*sh/float64(dst.height),
					float64(x+1)*sw/float64(dst.width), float64(y+1)*sh/float64(dst.height),
					out)
			default:
				sx := clamp(int(math.Floor(u*sw)), 0, src.width-1)
				sy := clamp(int(math.Floor(v*sh)), 0, src.height-1)
				copy(out, src.at(sx, sy))
			}
		}
	}
}

func sampleBilinear(src *floatImage, fx, fy float64, out []float32) {
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := clamp(x0+1, 0, src.width-1)
	y1 := clamp(y0+1, 0, src.height-1)
	x0 = clamp(x0, 0, src.width-1)
	y0 = clamp(y0, 0, src.height-1)

	p00, p10 := src.at(x0, y0), src.at(x1, y0)
	p01, p11 := src.at(x0, y1), src.at(x1, y1)
	for c := range 4 {
		out[c] = float32(lerp2D(float64(p00[c]), float64(p10[c]), float64(p01[c]), float64(p11[c]), tx, ty))
	}
}

func sampleBicubic(src *floatImage, fx, fy float64, out []float32) {
	x := int(math.Floor(fx))
	y := int(math.Floor(fy))
	tx := fx - float64(x)
	ty := fy - float64(y)

	var vals [4][4][4]float64
	for dy := -1; dy <= 2; dy++ {
		for dx := -1; dx <= 2; dx++ {
			p := src.at(clamp(x+dx, 0, src.width-1), clamp(y+dy, 0, src.height-1))
			for c := range 4 {
				vals[c][dy+1][dx+1] = float64(p[c])
			}
		}
	}
	for c := range 4 {
		out[c] = float32(bicubicInterp(vals[c], tx, ty))
	}
	// Alpha overshoot from the cubic kernel is not meaningful.
	out[chA] = float32(clampFloat(float64(out[chA]), 0, 1))
}

// sampleBox averages the source area [x0, x1) x [y0, y1), weighting
// partially covered pixels by their coverage.
func sampleBox(src *floatImage, x0, y0, x1, y1 float64, out []float32) {
	var sum [4]float64
	var total float64
	for sy := int(math.Floor(y0)); sy < int(math.Ceil(y1)); sy++ {
		wy := math.Min(y1, float64(sy+1)) - math.Max(y0, float64(sy))
		for sx := int(math.Floor(x0)); sx < int(math.Ceil(x1)); sx++ {
			wx := math.Min(x1, float64(sx+1)) - math.Max(x0, float64(sx))
			w := wx * wy
			if w <= 0 {
				continue
			}
			p := src.at(clamp(sx, 0, src.width-1), clamp(sy, 0, src.height-1))
			for c := range 4 {
				sum[c] += float64(p[c]) * w
			}
			total += w
		}
	}
	if total == 0 {
		return
	}
	for c := range 4 {
		out[c] = float32(sum[c] / total)
	}
}

// clamp clamps an integer value to [minVal, maxVal].
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	return lerp(lerp(v00, v10, tx), lerp(v01, v11, tx), ty)
}

// cubicWeight computes the Catmull-Rom cubic weight for distance t.
func cubicWeight(t float64) float64 {
	absT := math.Abs(t)
	if absT < 1 {
		return 1.5*absT*absT*absT - 2.5*absT*absT + 1.0
	}
	if absT < 2 {
		return -0.5*absT*absT*absT + 2.5*absT*absT - 4.0*absT + 2.0
	}
	return 0
}

// bicubicInterp performs bicubic interpolation on a 4x4 grid using Catmull-Rom weights.
func bicubicInterp(vals [4][4]float64, tx, ty float64) float64 {
	wx := [4]float64{cubicWeight(tx + 1), cubicWeight(tx), cubicWeight(tx - 1), cubicWeight(tx - 2)}
	wy := [4]float64{cubicWeight(ty + 1), cubicWeight(ty), cubicWeight(ty - 1), cubicWeight(ty - 2)}

	var result float64
	for i := range 4 {
		for j := range 4 {
			result += vals[i][j] * wx[j] * wy[i]
		}
	}
	return result
}
