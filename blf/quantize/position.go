package quantize

import "math"

// Bounds3 is an axis-aligned world-space box.
type Bounds3 struct {
	X Range `json:"x"`
	Y Range `json:"y"`
	Z Range `json:"z"`
}

// Range is a closed real interval.
type Range struct {
	Min float32 `json:"min"`
	Max float32 `json:"max"`
}

// Extent returns Max-Min.
func (r Range) Extent() float32 { return r.Max - r.Min }

func (b Bounds3) axes() [3]Range { return [3]Range{b.X, b.Y, b.Z} }

// Point3 is a world-space position.
type Point3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

func (p Point3) axes() [3]float32 { return [3]float32{p.X, p.Y, p.Z} }

const (
	// WorldUnitsPerInch converts inches to world units (one world unit is ten feet).
	WorldUnitsPerInch = 1.0 / 120.0

	// baselineAxisBits is the bit count at which the error goal equals one inch.
	baselineAxisBits = 16

	// maxAxisSamples caps the number of distinct positions along an axis.
	maxAxisSamples = 0x800000
)

// PositionErrorGoal returns the worst-case error, in world units, tolerated by
// an axis encoded with the given baseline bit count.
func PositionErrorGoal(bits int) float64 {
	goal := WorldUnitsPerInch
	switch {
	case bits < baselineAxisBits:
		goal *= math.Ldexp(1, baselineAxisBits-bits)
	case bits > baselineAxisBits:
		goal /= math.Ldexp(1, bits-baselineAxisBits)
	}
	return goal
}

// AdjustAxisEncodingBitCount computes per-axis bit counts for positions inside
// bounds so the worst-case quantization error stays under
// PositionErrorGoal(bits). Each axis is sized independently from its extent and
// the result is clamped to [1, maxBits].
func AdjustAxisEncodingBitCount(bits int, bounds Bounds3, maxBits int) [3]int {
	goal := PositionErrorGoal(bits)
	var out [3]int
	for i, r := range bounds.axes() {
		extent := float64(r.Extent())
		n := 1
		if extent > 0 {
			samples := extent / (2 * goal)
			if samples > maxAxisSamples {
				samples = maxAxisSamples
			}
			if samples > 1 {
				n = int(math.Ceil(math.Log2(samples)))
			}
		}
		if n > maxBits {
			n = maxBits
		}
		if n < 1 {
			n = 1
		}
		out[i] = n
	}
	return out
}

// Position quantizes p inside bounds with the given per-axis widths.
func Position(p Point3, bounds Bounds3, axisBits [3]int) [3]uint32 {
	var out [3]uint32
	ranges := bounds.axes()
	for i, v := range p.axes() {
		out[i] = Real(v, ranges[i].Min, ranges[i].Max, axisBits[i], false, true)
	}
	return out
}

// DequantizePosition reverses Position.
func DequantizePosition(codes [3]uint32, bounds Bounds3, axisBits [3]int) Point3 {
	ranges := bounds.axes()
	var v [3]float32
	for i := range v {
		v[i] = Dequantize(codes[i], ranges[i].Min, ranges[i].Max, axisBits[i], false, true)
	}
	return Point3{X: v[0], Y: v[1], Z: v[2]}
}
