package reference

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/joshuapare/blfkit/blf/bitstream"
)

// TagTable maps kinds to wire tags: Kinds[i] is written as tag i in a field
// of Bits bits.
type TagTable[K comparable] struct {
	Bits  int
	Kinds []K
}

func (t TagTable[K]) encode(w *bitstream.Writer, k K) error {
	for i, candidate := range t.Kinds {
		if candidate == k {
			return w.WriteInteger(uint64(i), t.Bits)
		}
	}
	return fmt.Errorf("%v: %w", k, ErrKindNotInLayout)
}

func (t TagTable[K]) decode(r *bitstream.Reader) (K, error) {
	var zero K
	tag, err := r.ReadInteger(t.Bits)
	if err != nil {
		return zero, err
	}
	if tag >= uint64(len(t.Kinds)) {
		return zero, fmt.Errorf("tag %d with %d kinds: %w", tag, len(t.Kinds), ErrUnknownTag)
	}
	return t.Kinds[tag], nil
}

func (t TagTable[K]) validate(family string) error {
	if t.Bits < 1 || t.Bits > 8 {
		return fmt.Errorf("reference: %s tag width %d", family, t.Bits)
	}
	if len(t.Kinds) == 0 || len(t.Kinds) > 1<<t.Bits {
		return fmt.Errorf("reference: %d %s kinds in %d bits", len(t.Kinds), family, t.Bits)
	}
	seen := make(map[K]bool, len(t.Kinds))
	for _, k := range t.Kinds {
		if seen[k] {
			return fmt.Errorf("reference: %s kind %v listed twice", family, k)
		}
		seen[k] = true
	}
	return nil
}

// IndexField is an index in [-1, Max) stored as index+1 in Bits bits.
type IndexField struct {
	Bits int
	Max  int
}

func (f IndexField) write(w *bitstream.Writer, v int) error {
	if v < -1 || v >= f.Max {
		return fmt.Errorf("index %d outside [-1,%d): %w", v, f.Max, ErrIndexRange)
	}
	return w.WriteIndex(v, f.Max, f.Bits)
}

func (f IndexField) read(r *bitstream.Reader) (*int, error) {
	v, err := r.ReadIndex(f.Max, f.Bits)
	if errors.Is(err, bitstream.ErrValueRange) {
		return nil, fmt.Errorf("%w: %w", ErrIndexRange, err)
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (f IndexField) validate(name string) error {
	if f.Max < 1 || f.Bits < bits.Len(uint(f.Max)) {
		return fmt.Errorf("reference: %s index max %d does not fit %d bits", name, f.Max, f.Bits)
	}
	return nil
}

// Layout is the per-build wire schema for every reference family.
type Layout struct {
	Name string

	Target   TagTable[TargetKind]
	Variable TagTable[VariableKind]
	Timer    TagTable[TimerKind]
	Token    TagTable[TokenKind]

	// Target payloads.
	Player IndexField
	Object IndexField
	Team   IndexField

	// Number payloads.
	ConstantBits int
	PlayerNumber IndexField
	ObjectNumber IndexField
	TeamNumber   IndexField
	GlobalNumber IndexField

	// Timer payloads.
	GlobalTimer IndexField
	PlayerTimer IndexField
	ObjectTimer IndexField
	TeamTimer   IndexField
}

// Validate checks that every tag table fits its width without duplicates and
// every index field can hold its maximum.
func (l *Layout) Validate() error {
	for _, err := range []error{
		l.Target.validate("target"),
		l.Variable.validate("variable"),
		l.Timer.validate("timer"),
		l.Token.validate("token"),
		l.Player.validate("player"),
		l.Object.validate("object"),
		l.Team.validate("team"),
		l.PlayerNumber.validate("player number"),
		l.ObjectNumber.validate("object number"),
		l.TeamNumber.validate("team number"),
		l.GlobalNumber.validate("global number"),
		l.GlobalTimer.validate("global timer"),
		l.PlayerTimer.validate("player timer"),
		l.ObjectTimer.validate("object timer"),
		l.TeamTimer.validate("team timer"),
	} {
		if err != nil {
			return fmt.Errorf("layout %s: %w", l.Name, err)
		}
	}
	if l.ConstantBits < 2 || l.ConstantBits > 32 {
		return fmt.Errorf("layout %s: constant width %d", l.Name, l.ConstantBits)
	}
	return nil
}

// ReachRelease is the layout of the shipped Halo: Reach build.
var ReachRelease = Layout{
	Name: "reach-release",
	Target: TagTable[TargetKind]{Bits: 2, Kinds: []TargetKind{
		TargetNone, TargetPlayer, TargetObject, TargetTeam,
	}},
	Variable: TagTable[VariableKind]{Bits: 3, Kinds: []VariableKind{
		NumberConstant, NumberPlayer, NumberObject, NumberTeam, NumberGlobal, NumberScore,
	}},
	Timer: TagTable[TimerKind]{Bits: 3, Kinds: []TimerKind{
		TimerGlobal, TimerPlayer, TimerTeam, TimerObject, TimerRound, TimerSuddenDeath, TimerGracePeriod,
	}},
	Token: TagTable[TokenKind]{Bits: 3, Kinds: []TokenKind{
		TokenNone, TokenPlayer, TokenTeam, TokenObject, TokenNumber, TokenTimer,
	}},
	Player:       IndexField{Bits: 4, Max: 8},
	Object:       IndexField{Bits: 5, Max: 16},
	Team:         IndexField{Bits: 4, Max: 8},
	ConstantBits: 16,
	PlayerNumber: IndexField{Bits: 4, Max: 8},
	ObjectNumber: IndexField{Bits: 4, Max: 8},
	TeamNumber:   IndexField{Bits: 4, Max: 8},
	GlobalNumber: IndexField{Bits: 4, Max: 12},
	GlobalTimer:  IndexField{Bits: 4, Max: 8},
	PlayerTimer:  IndexField{Bits: 3, Max: 4},
	ObjectTimer:  IndexField{Bits: 3, Max: 4},
	TeamTimer:    IndexField{Bits: 3, Max: 4},
}

// ReachBeta is the layout of the public beta build. It orders several
// families differently, spends a wider tag on numbers and allows fewer
// player and object variables.
var ReachBeta = Layout{
	Name: "reach-beta",
	Target: TagTable[TargetKind]{Bits: 2, Kinds: []TargetKind{
		TargetNone, TargetTeam, TargetPlayer, TargetObject,
	}},
	Variable: TagTable[VariableKind]{Bits: 4, Kinds: []VariableKind{
		NumberConstant, NumberGlobal, NumberPlayer, NumberTeam, NumberObject, NumberScore,
	}},
	Timer: TagTable[TimerKind]{Bits: 3, Kinds: []TimerKind{
		TimerRound, TimerSuddenDeath, TimerGracePeriod, TimerGlobal, TimerPlayer, TimerObject, TimerTeam,
	}},
	Token: TagTable[TokenKind]{Bits: 3, Kinds: []TokenKind{
		TokenNone, TokenNumber, TokenPlayer, TokenTeam, TokenObject, TokenTimer,
	}},
	Player:       IndexField{Bits: 3, Max: 4},
	Object:       IndexField{Bits: 4, Max: 8},
	Team:         IndexField{Bits: 4, Max: 8},
	ConstantBits: 16,
	PlayerNumber: IndexField{Bits: 3, Max: 4},
	ObjectNumber: IndexField{Bits: 3, Max: 4},
	TeamNumber:   IndexField{Bits: 4, Max: 8},
	GlobalNumber: IndexField{Bits: 4, Max: 8},
	GlobalTimer:  IndexField{Bits: 3, Max: 4},
	PlayerTimer:  IndexField{Bits: 2, Max: 2},
	ObjectTimer:  IndexField{Bits: 2, Max: 2},
	TeamTimer:    IndexField{Bits: 2, Max: 2},
}
