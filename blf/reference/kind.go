package reference

import (
	"fmt"
	"strings"
)

// TargetKind selects what a Target names.
type TargetKind uint8

const (
	TargetNone TargetKind = iota
	TargetPlayer
	TargetObject
	TargetTeam
)

var targetNames = []string{"none", "player", "object", "team"}

// VariableKind selects where a Variable's number comes from.
type VariableKind uint8

const (
	NumberConstant VariableKind = iota
	NumberPlayer
	NumberObject
	NumberTeam
	NumberGlobal
	NumberScore
)

var variableNames = []string{"constant", "player_number", "object_number", "team_number", "global_number", "score"}

// TimerKind selects which timer a Timer names.
type TimerKind uint8

const (
	TimerGlobal TimerKind = iota
	TimerPlayer
	TimerTeam
	TimerObject
	TimerRound
	TimerSuddenDeath
	TimerGracePeriod
)

var timerNames = []string{"global", "player", "team", "object", "round", "sudden_death", "grace_period"}

// TokenKind selects what a Token substitutes into a format string.
type TokenKind uint8

const (
	TokenNone TokenKind = iota
	TokenPlayer
	TokenTeam
	TokenObject
	TokenNumber
	TokenTimer
)

var tokenNames = []string{"none", "player", "team", "object", "number", "timer"}

func kindName(names []string, v uint8) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("kind(%d)", v)
}

func parseKind(names []string, family, s string) (uint8, error) {
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("%s kind %q: %w", family, s, ErrUnknownKind)
}

func (k TargetKind) String() string   { return kindName(targetNames, uint8(k)) }
func (k VariableKind) String() string { return kindName(variableNames, uint8(k)) }
func (k TimerKind) String() string    { return kindName(timerNames, uint8(k)) }
func (k TokenKind) String() string    { return kindName(tokenNames, uint8(k)) }

func (k TargetKind) MarshalText() ([]byte, error)   { return []byte(k.String()), nil }
func (k VariableKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k TimerKind) MarshalText() ([]byte, error)    { return []byte(k.String()), nil }
func (k TokenKind) MarshalText() ([]byte, error)    { return []byte(k.String()), nil }

func (k *TargetKind) UnmarshalText(b []byte) error {
	v, err := parseKind(targetNames, "target", string(b))
	if err != nil {
		return err
	}
	*k = TargetKind(v)
	return nil
}

func (k *VariableKind) UnmarshalText(b []byte) error {
	v, err := parseKind(variableNames, "variable", string(b))
	if err != nil {
		return err
	}
	*k = VariableKind(v)
	return nil
}

func (k *TimerKind) UnmarshalText(b []byte) error {
	v, err := parseKind(timerNames, "timer", string(b))
	if err != nil {
		return err
	}
	*k = TimerKind(v)
	return nil
}

func (k *TokenKind) UnmarshalText(b []byte) error {
	v, err := parseKind(tokenNames, "token", string(b))
	if err != nil {
		return err
	}
	*k = TokenKind(v)
	return nil
}
