package reference

import (
	"fmt"

	"github.com/joshuapare/blfkit/blf/bitstream"
)

// Timer names a game timer or a timer variable.
type Timer struct {
	Kind   TimerKind `json:"kind"`
	Target *Target   `json:"target,omitempty"`
	Index  *int      `json:"index,omitempty"`
}

func GlobalTimer(i int) Timer { return Timer{Kind: TimerGlobal, Index: intPtr(i)} }
func RoundTimer() Timer       { return Timer{Kind: TimerRound} }
func SuddenDeathTimer() Timer { return Timer{Kind: TimerSuddenDeath} }
func GracePeriodTimer() Timer { return Timer{Kind: TimerGracePeriod} }

// MemberTimer returns the i'th timer variable of t. The kind follows t's kind.
func MemberTimer(t Target, i int) Timer {
	kind := TimerPlayer
	switch t.Kind {
	case TargetObject:
		kind = TimerObject
	case TargetTeam:
		kind = TimerTeam
	}
	return Timer{Kind: kind, Target: &t, Index: intPtr(i)}
}

func (t *Timer) owner() (TargetKind, bool) {
	switch t.Kind {
	case TimerPlayer:
		return TargetPlayer, true
	case TimerObject:
		return TargetObject, true
	case TimerTeam:
		return TargetTeam, true
	default:
		return TargetNone, false
	}
}

func (t *Timer) check() error {
	if int(t.Kind) >= len(timerNames) {
		return fmt.Errorf("timer %s: %w", t.Kind, ErrUnknownKind)
	}
	owner, scoped := t.owner()
	if err := checkPayload(t.Kind,
		slot{"target", t.Target != nil, scoped},
		slot{"index", t.Index != nil, scoped || t.Kind == TimerGlobal},
	); err != nil {
		return err
	}
	return checkTarget(t.Kind, t.Target, owner)
}

func (t *Timer) member(l *Layout) IndexField {
	switch t.Kind {
	case TimerPlayer:
		return l.PlayerTimer
	case TimerObject:
		return l.ObjectTimer
	case TimerTeam:
		return l.TeamTimer
	default:
		return l.GlobalTimer
	}
}

// Encode writes t under l.
func (t *Timer) Encode(w *bitstream.Writer, l *Layout) error {
	if err := t.check(); err != nil {
		return err
	}
	if err := l.Timer.encode(w, t.Kind); err != nil {
		return fmt.Errorf("timer: %w", err)
	}
	if t.Index == nil {
		return nil
	}
	if t.Target != nil {
		if err := t.Target.Encode(w, l); err != nil {
			return err
		}
	}
	if err := t.member(l).write(w, *t.Index); err != nil {
		return fmt.Errorf("%s timer: %w", t.Kind, err)
	}
	return nil
}

// Decode reads a timer written under l, replacing t.
func (t *Timer) Decode(r *bitstream.Reader, l *Layout) error {
	kind, err := l.Timer.decode(r)
	if err != nil {
		return fmt.Errorf("timer: %w", err)
	}
	*t = Timer{Kind: kind}
	_, scoped := t.owner()
	if !scoped && kind != TimerGlobal {
		return nil
	}
	if scoped {
		t.Target = new(Target)
		if err := t.Target.Decode(r, l); err != nil {
			return err
		}
	}
	if t.Index, err = t.member(l).read(r); err != nil {
		return fmt.Errorf("%s timer: %w", kind, err)
	}
	return t.check()
}
