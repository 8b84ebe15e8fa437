package quantize

import (
	"fmt"
	"math"

	"github.com/joshuapare/blfkit/pkg/types"
)

// Vector3 is a real-valued three component vector.
type Vector3 struct {
	I float32 `json:"i"`
	J float32 `json:"j"`
	K float32 `json:"k"`
}

// Length returns the Euclidean norm of v.
func (v Vector3) Length() float32 {
	return float32(math.Sqrt(float64(v.I)*float64(v.I) + float64(v.J)*float64(v.J) + float64(v.K)*float64(v.K)))
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vector3) Normalize() Vector3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vector3{v.I / l, v.J / l, v.K / l}
}

// UnitVectorFaceCount is the number of dominant-axis faces a unit vector code
// can select (+x, +y, +z, -x, -y, -z).
const UnitVectorFaceCount = 6

const unitVectorFaceBits = 3

// Widths accepted for a unit vector code. Below the minimum a minor component
// cannot represent its exact midpoint; above the maximum the code no longer
// fits a uint64.
const (
	MinUnitVectorBits = unitVectorFaceBits + 2*2
	MaxUnitVectorBits = 64
)

// faceMargin is how far the reconstructed dominant component must exceed both
// minors for a code to decode back onto its own face.
const faceMargin = 1e-6

var (
	// ErrInvalidFace indicates a unit vector code whose face index is not 0..5.
	ErrInvalidFace = &types.Error{Kind: types.ErrKindEncoding, Msg: "quantize: unit vector face out of range", Err: types.ErrInvalidEncoding}
	// ErrUnitVectorWidth indicates a unit vector width outside
	// MinUnitVectorBits..MaxUnitVectorBits.
	ErrUnitVectorWidth = &types.Error{Kind: types.ErrKindEncoding, Msg: "quantize: invalid unit vector width", Err: types.ErrInvalidEncoding}
)

// ValidUnitVectorBits reports whether totalBits can hold a unit vector code.
func ValidUnitVectorBits(totalBits int) bool {
	return totalBits >= MinUnitVectorBits && totalBits <= MaxUnitVectorBits
}

// componentBits returns the width of each minor component for a code of
// totalBits bits.
func componentBits(totalBits int) int {
	return (totalBits - unitVectorFaceBits) / 2
}

// UnitVector3 quantizes the direction of v into a code of totalBits bits. The
// dominant axis selects one of six faces (3 bits) and the two minor components
// are each stored in (totalBits-3)/2 bits over [-1,1]. The zero vector encodes
// as +x. Widths rejected by ValidUnitVectorBits encode as 0.
//
// Minors that round outward near a face edge would reconstruct a dominant
// component smaller than one of them, and the decoded vector would land on a
// neighbouring face. Such codes are pulled toward the face centre one step at a
// time until they decode back onto their own face, so that encoding a decoded
// vector always reproduces the code.
func UnitVector3(v Vector3, totalBits int) uint64 {
	if !ValidUnitVectorBits(totalBits) {
		return 0
	}
	n := v.Normalize()
	ai, aj, ak := abs32(n.I), abs32(n.J), abs32(n.K)

	var face int
	var a, b float32
	switch {
	case ai >= aj && ai >= ak:
		face, a, b = 0, n.J, n.K
		if n.I < 0 {
			face = 3
		}
	case aj >= ak:
		face, a, b = 1, n.I, n.K
		if n.J < 0 {
			face = 4
		}
	default:
		face, a, b = 2, n.I, n.J
		if n.K < 0 {
			face = 5
		}
	}

	bits := componentBits(totalBits)
	qa := Real(a, -1, 1, bits, true, true)
	qb := Real(b, -1, 1, bits, true, true)
	mid := MaxCode(bits, true) / 2
	for {
		da, db := Dequantize(qa, -1, 1, bits, true, true), Dequantize(qb, -1, 1, bits, true, true)
		if onFace(da, db) || (qa == mid && qb == mid) {
			break
		}
		if abs32(da) >= abs32(db) {
			qa = towardCode(qa, mid)
		} else {
			qb = towardCode(qb, mid)
		}
	}
	return uint64(face)<<(2*bits) | uint64(qa)<<bits | uint64(qb)
}

// dominant reconstructs the unsigned dominant component from two minors.
func dominant(a, b float32) float32 {
	rem := 1 - float64(a)*float64(a) - float64(b)*float64(b)
	if rem < 0 {
		rem = 0
	}
	return float32(math.Sqrt(rem))
}

// onFace reports whether minors a and b reconstruct a dominant component that
// strictly outweighs both of them.
func onFace(a, b float32) bool {
	return dominant(a, b)-max(abs32(a), abs32(b)) > faceMargin
}

func towardCode(q, mid uint32) uint32 {
	switch {
	case q > mid:
		return q - 1
	case q < mid:
		return q + 1
	}
	return q
}

// DequantizeUnitVector3 reverses UnitVector3. Codes whose minors leave no room
// for a dominant component decode with the dominant clamped just above them.
func DequantizeUnitVector3(code uint64, totalBits int) (Vector3, error) {
	if !ValidUnitVectorBits(totalBits) {
		return Vector3{}, fmt.Errorf("%d bits: %w", totalBits, ErrUnitVectorWidth)
	}
	bits := componentBits(totalBits)
	mask := uint64(1)<<uint(bits) - 1
	face := code >> (2 * bits)
	if face >= UnitVectorFaceCount {
		return Vector3{}, fmt.Errorf("face %d: %w", face, ErrInvalidFace)
	}
	a := Dequantize(uint32(code>>bits&mask), -1, 1, bits, true, true)
	b := Dequantize(uint32(code&mask), -1, 1, bits, true, true)

	d := dominant(a, b)
	if m := max(abs32(a), abs32(b)); d <= m {
		d = math.Nextafter32(m, 2)
	}
	if face >= 3 {
		d = -d
	}

	var v Vector3
	switch face % 3 {
	case 0:
		v = Vector3{d, a, b}
	case 1:
		v = Vector3{a, d, b}
	default:
		v = Vector3{a, b, d}
	}
	return v.Normalize(), nil
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
