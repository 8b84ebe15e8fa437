package quantize

import "math"

// Epsilon is the tolerance used when comparing dequantized reals.
const Epsilon = 0.001

// stepCount returns the number of steps a code of the given width spans. With
// exactMidpoint the count is forced even so that stepCount/2 is a valid code.
func stepCount(bits int, exactMidpoint bool) int64 {
	n := int64(1)<<uint(bits) - 1
	if exactMidpoint {
		n -= n % 2
	}
	return n
}

// MaxCode returns the largest code Real can produce for the given width.
func MaxCode(bits int, exactMidpoint bool) uint32 {
	return uint32(stepCount(bits, exactMidpoint))
}

// Real maps v in [min,max] onto [0, 2^bits-1]. Values outside the range are
// clamped. bits must be in 1..32 and min < max; exactMidpoint requires bits > 1.
func Real(v, min, max float32, bits int, exactMidpoint, exactEndpoints bool) uint32 {
	steps := stepCount(bits, exactMidpoint)
	if steps <= 0 || !(max > min) {
		return 0
	}
	if exactEndpoints {
		if v <= min {
			return 0
		}
		if v >= max {
			return uint32(steps)
		}
	}
	step := float64(max-min) / float64(steps)
	normalized := float64(v-min) / step
	sign := 1.0
	if normalized < 0 {
		sign = -1.0
	}
	q := int64(normalized + sign*0.5)
	if q < 0 {
		q = 0
	}
	if q > steps {
		q = steps
	}
	return uint32(q)
}

// Dequantize is the inverse of Real.
func Dequantize(code uint32, min, max float32, bits int, exactMidpoint, exactEndpoints bool) float32 {
	steps := stepCount(bits, exactMidpoint)
	if steps <= 0 {
		return min
	}
	q := int64(code)
	if q > steps {
		q = steps
	}
	if exactMidpoint && 2*q == steps {
		return (min + max) / 2
	}
	if exactEndpoints {
		if q == 0 {
			return min
		}
		if q == steps {
			return max
		}
	}
	return float32((float64(steps-q)*float64(min) + float64(q)*float64(max)) / float64(steps))
}

// MaxError returns the worst-case distance between a value in range and its
// dequantized code.
func MaxError(min, max float32, bits int, exactMidpoint bool) float64 {
	steps := stepCount(bits, exactMidpoint)
	if steps <= 0 {
		return math.Inf(1)
	}
	return float64(max-min) / float64(steps) / 2
}

// QuantizedRange is a reversible real <-> code mapping.
type QuantizedRange struct {
	Min            float32
	Max            float32
	Bits           int
	ExactMidpoint  bool
	ExactEndpoints bool
}

// Encode quantizes v.
func (q QuantizedRange) Encode(v float32) uint32 {
	return Real(v, q.Min, q.Max, q.Bits, q.ExactMidpoint, q.ExactEndpoints)
}

// Decode dequantizes code.
func (q QuantizedRange) Decode(code uint32) float32 {
	return Dequantize(code, q.Min, q.Max, q.Bits, q.ExactMidpoint, q.ExactEndpoints)
}
