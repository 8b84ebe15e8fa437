package reference

import (
	"fmt"

	"github.com/joshuapare/blfkit/blf/bitstream"
)

// Target names a player, object or team through one of the script's
// variables of that type.
type Target struct {
	Kind  TargetKind `json:"kind"`
	Index *int       `json:"index,omitempty"`
}

func NoTarget() Target          { return Target{Kind: TargetNone} }
func PlayerTarget(i int) Target { return Target{Kind: TargetPlayer, Index: intPtr(i)} }
func ObjectTarget(i int) Target { return Target{Kind: TargetObject, Index: intPtr(i)} }
func TeamTarget(i int) Target   { return Target{Kind: TargetTeam, Index: intPtr(i)} }

func (t *Target) check() error {
	return checkPayload(t.Kind, slot{"index", t.Index != nil, t.Kind != TargetNone})
}

func (t *Target) field(l *Layout) (IndexField, error) {
	switch t.Kind {
	case TargetPlayer:
		return l.Player, nil
	case TargetObject:
		return l.Object, nil
	case TargetTeam:
		return l.Team, nil
	default:
		return IndexField{}, fmt.Errorf("%s: %w", t.Kind, ErrUnknownKind)
	}
}

// Encode writes t under l.
func (t *Target) Encode(w *bitstream.Writer, l *Layout) error {
	if err := t.check(); err != nil {
		return err
	}
	if err := l.Target.encode(w, t.Kind); err != nil {
		return fmt.Errorf("target: %w", err)
	}
	if t.Kind == TargetNone {
		return nil
	}
	f, err := t.field(l)
	if err != nil {
		return err
	}
	if err := f.write(w, *t.Index); err != nil {
		return fmt.Errorf("%s target: %w", t.Kind, err)
	}
	return nil
}

// Decode reads a target written under l, replacing t.
func (t *Target) Decode(r *bitstream.Reader, l *Layout) error {
	kind, err := l.Target.decode(r)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}
	*t = Target{Kind: kind}
	if kind == TargetNone {
		return nil
	}
	f, err := t.field(l)
	if err != nil {
		return err
	}
	if t.Index, err = f.read(r); err != nil {
		return fmt.Errorf("%s target: %w", kind, err)
	}
	return nil
}
