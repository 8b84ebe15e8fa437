package reference

import (
	"fmt"

	"github.com/joshuapare/blfkit/blf/bitstream"
)

// Variable is a number operand: a constant, a numeric variable scoped to a
// target or the game, or a target's score.
type Variable struct {
	Kind     VariableKind `json:"kind"`
	Constant *int16       `json:"constant,omitempty"`
	Target   *Target      `json:"target,omitempty"`
	Index    *int         `json:"index,omitempty"`
}

func Constant(v int16) Variable   { return Variable{Kind: NumberConstant, Constant: &v} }
func GlobalNumber(i int) Variable { return Variable{Kind: NumberGlobal, Index: intPtr(i)} }

// MemberNumber returns the i'th numeric variable of t. The kind follows t's kind.
func MemberNumber(t Target, i int) Variable {
	kind := NumberPlayer
	switch t.Kind {
	case TargetObject:
		kind = NumberObject
	case TargetTeam:
		kind = NumberTeam
	}
	return Variable{Kind: kind, Target: &t, Index: intPtr(i)}
}

func Score(t Target) Variable { return Variable{Kind: NumberScore, Target: &t} }

func (v *Variable) check() error {
	var (
		wantTarget, wantIndex bool
		allowed               []TargetKind
	)
	switch v.Kind {
	case NumberPlayer:
		wantTarget, wantIndex, allowed = true, true, []TargetKind{TargetPlayer}
	case NumberObject:
		wantTarget, wantIndex, allowed = true, true, []TargetKind{TargetObject}
	case NumberTeam:
		wantTarget, wantIndex, allowed = true, true, []TargetKind{TargetTeam}
	case NumberGlobal:
		wantIndex = true
	case NumberScore:
		wantTarget, allowed = true, []TargetKind{TargetPlayer, TargetTeam}
	case NumberConstant:
	default:
		return fmt.Errorf("variable %s: %w", v.Kind, ErrUnknownKind)
	}
	if err := checkPayload(v.Kind,
		slot{"constant", v.Constant != nil, v.Kind == NumberConstant},
		slot{"target", v.Target != nil, wantTarget},
		slot{"index", v.Index != nil, wantIndex},
	); err != nil {
		return err
	}
	return checkTarget(v.Kind, v.Target, allowed...)
}

func (v *Variable) member(l *Layout) IndexField {
	switch v.Kind {
	case NumberPlayer:
		return l.PlayerNumber
	case NumberObject:
		return l.ObjectNumber
	case NumberTeam:
		return l.TeamNumber
	default:
		return l.GlobalNumber
	}
}

// Encode writes v under l.
func (v *Variable) Encode(w *bitstream.Writer, l *Layout) error {
	if err := v.check(); err != nil {
		return err
	}
	if err := l.Variable.encode(w, v.Kind); err != nil {
		return fmt.Errorf("variable: %w", err)
	}
	switch v.Kind {
	case NumberConstant:
		return w.WriteSignedInteger(int64(*v.Constant), l.ConstantBits)
	case NumberScore:
		return v.Target.Encode(w, l)
	case NumberGlobal:
	default:
		if err := v.Target.Encode(w, l); err != nil {
			return err
		}
	}
	if err := v.member(l).write(w, *v.Index); err != nil {
		return fmt.Errorf("%s: %w", v.Kind, err)
	}
	return nil
}

// Decode reads a variable written under l, replacing v.
func (v *Variable) Decode(r *bitstream.Reader, l *Layout) error {
	kind, err := l.Variable.decode(r)
	if err != nil {
		return fmt.Errorf("variable: %w", err)
	}
	*v = Variable{Kind: kind}
	switch kind {
	case NumberConstant:
		c, err := r.ReadSignedInteger(l.ConstantBits)
		if err != nil {
			return err
		}
		k := int16(c)
		v.Constant = &k
		return nil
	case NumberGlobal:
	default:
		v.Target = new(Target)
		if err := v.Target.Decode(r, l); err != nil {
			return err
		}
	}
	if kind != NumberScore {
		if v.Index, err = v.member(l).read(r); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	}
	return v.check()
}
