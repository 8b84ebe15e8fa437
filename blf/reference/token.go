package reference

import (
	"fmt"

	"github.com/joshuapare/blfkit/blf/bitstream"
)

// Token is a value substituted into a localized format string.
type Token struct {
	Kind   TokenKind `json:"kind"`
	Target *Target   `json:"target,omitempty"`
	Number *Variable `json:"number,omitempty"`
	Timer  *Timer    `json:"timer,omitempty"`
}

func NoToken() Token               { return Token{Kind: TokenNone} }
func NumberToken(v Variable) Token { return Token{Kind: TokenNumber, Number: &v} }
func TimerToken(t Timer) Token     { return Token{Kind: TokenTimer, Timer: &t} }

// TargetToken substitutes the name of t. The kind follows t's kind.
func TargetToken(t Target) Token {
	kind := TokenPlayer
	switch t.Kind {
	case TargetObject:
		kind = TokenObject
	case TargetTeam:
		kind = TokenTeam
	}
	return Token{Kind: kind, Target: &t}
}

func (t *Token) owner() (TargetKind, bool) {
	switch t.Kind {
	case TokenPlayer:
		return TargetPlayer, true
	case TokenObject:
		return TargetObject, true
	case TokenTeam:
		return TargetTeam, true
	default:
		return TargetNone, false
	}
}

func (t *Token) check() error {
	if int(t.Kind) >= len(tokenNames) {
		return fmt.Errorf("token %s: %w", t.Kind, ErrUnknownKind)
	}
	owner, scoped := t.owner()
	if err := checkPayload(t.Kind,
		slot{"target", t.Target != nil, scoped},
		slot{"number", t.Number != nil, t.Kind == TokenNumber},
		slot{"timer", t.Timer != nil, t.Kind == TokenTimer},
	); err != nil {
		return err
	}
	if err := checkTarget(t.Kind, t.Target, owner); err != nil {
		return err
	}
	if t.Number != nil {
		if err := t.Number.check(); err != nil {
			return err
		}
	}
	if t.Timer != nil {
		return t.Timer.check()
	}
	return nil
}

// Encode writes t under l.
func (t *Token) Encode(w *bitstream.Writer, l *Layout) error {
	if err := t.check(); err != nil {
		return err
	}
	if err := l.Token.encode(w, t.Kind); err != nil {
		return fmt.Errorf("token: %w", err)
	}
	switch {
	case t.Target != nil:
		return t.Target.Encode(w, l)
	case t.Number != nil:
		return t.Number.Encode(w, l)
	case t.Timer != nil:
		return t.Timer.Encode(w, l)
	}
	return nil
}

// Decode reads a token written under l, replacing t.
func (t *Token) Decode(r *bitstream.Reader, l *Layout) error {
	kind, err := l.Token.decode(r)
	if err != nil {
		return fmt.Errorf("token: %w", err)
	}
	*t = Token{Kind: kind}
	switch kind {
	case TokenNone:
		return nil
	case TokenNumber:
		t.Number = new(Variable)
		err = t.Number.Decode(r, l)
	case TokenTimer:
		t.Timer = new(Timer)
		err = t.Timer.Decode(r, l)
	default:
		t.Target = new(Target)
		err = t.Target.Decode(r, l)
	}
	if err != nil {
		return err
	}
	return t.check()
}
