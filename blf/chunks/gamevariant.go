package chunks

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/blfkit/blf"
	"github.com/joshuapare/blfkit/blf/bitstream"
	"github.com/joshuapare/blfkit/blf/reference"
	"github.com/joshuapare/blfkit/internal/format"
)

// Game variant limits and field widths.
const (
	GameVariantMaxSize = 0x5028
	MaxStrings         = 112
	MaxConditions      = 512
	MaxActions         = 1024
	MaxTriggers        = 320
	MaxMessageTokens   = 2

	gameVariantVersion = 54
	stringCountBits    = 7
	conditionCountBits = 10
	actionCountBits    = 11
	triggerCountBits   = 9
	conditionTypeBits  = 5
	actionTypeBits     = 6
	triggerKindBits    = 3
	operatorBits       = 4
	tokenCountBits     = 2
)

// StringTableLayout frames the string table's embedded, optionally deflated
// buffer of NUL-terminated strings.
var StringTableLayout = bitstream.SubstreamLayout{LengthBits: 15, CompressedLengthBits: 15, MaxLength: 0x4C00}

// ConditionType selects a condition's test.
type ConditionType uint8

const (
	ConditionNone ConditionType = iota
	ConditionCompare
	ConditionTimerExpired
	ConditionTargetExists
)

var conditionTypes = enum{"none", "compare", "timer_expired", "target_exists"}

func (c ConditionType) String() string               { return conditionTypes.name(uint8(c)) }
func (c ConditionType) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *ConditionType) UnmarshalText(b []byte) error {
	v, err := conditionTypes.parse("condition type", b)
	if err != nil {
		return err
	}
	*c = ConditionType(v)
	return nil
}

// ActionType selects what an action does.
type ActionType uint8

const (
	ActionNone ActionType = iota
	ActionModifyNumber
	ActionStartTimer
	ActionShowMessage
	ActionRunTrigger
)

var actionTypes = enum{"none", "modify_number", "start_timer", "show_message", "run_trigger"}

func (a ActionType) String() string               { return actionTypes.name(uint8(a)) }
func (a ActionType) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *ActionType) UnmarshalText(b []byte) error {
	v, err := actionTypes.parse("action type", b)
	if err != nil {
		return err
	}
	*a = ActionType(v)
	return nil
}

// TriggerKind selects how a trigger iterates.
type TriggerKind uint8

const (
	TriggerNormal TriggerKind = iota
	TriggerSubroutine
	TriggerEachPlayer
	TriggerEachTeam
	TriggerEachObject
	TriggerInitialization
)

var triggerKinds = enum{"normal", "subroutine", "each_player", "each_team", "each_object", "initialization"}

func (k TriggerKind) String() string               { return triggerKinds.name(uint8(k)) }
func (k TriggerKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *TriggerKind) UnmarshalText(b []byte) error {
	v, err := triggerKinds.parse("trigger kind", b)
	if err != nil {
		return err
	}
	*k = TriggerKind(v)
	return nil
}

// Operator is the arithmetic or comparison applied by compare conditions and
// modify_number actions.
type Operator uint8

const (
	OpAdd Operator = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpSet
	OpModulo
	OpLess
	OpGreater
	OpEqual
	OpLessEqual
	OpGreaterEqual
	OpNotEqual
)

var operators = enum{"add", "subtract", "multiply", "divide", "set", "modulo",
	"less", "greater", "equal", "less_equal", "greater_equal", "not_equal"}

func (o Operator) String() string               { return operators.name(uint8(o)) }
func (o Operator) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Operator) UnmarshalText(b []byte) error {
	v, err := operators.parse("operator", b)
	if err != nil {
		return err
	}
	*o = Operator(v)
	return nil
}

// Condition gates the actions of a trigger.
type Condition struct {
	Type         ConditionType       `json:"type"`
	Negated      bool                `json:"negated,omitempty"`
	UnionGroup   int                 `json:"union_group"`
	ActionOffset int                 `json:"action_offset"`
	Left         *reference.Variable `json:"left,omitempty"`
	Right        *reference.Variable `json:"right,omitempty"`
	Operator     Operator            `json:"operator,omitempty"`
	Timer        *reference.Timer    `json:"timer,omitempty"`
	Target       *reference.Target   `json:"target,omitempty"`
}

// Action is one scripted effect.
type Action struct {
	Type     ActionType          `json:"type"`
	Number   *reference.Variable `json:"number,omitempty"`
	Operand  *reference.Variable `json:"operand,omitempty"`
	Operator Operator            `json:"operator,omitempty"`
	Timer    *reference.Timer    `json:"timer,omitempty"`
	Message  int                 `json:"message,omitempty"`
	Tokens   []reference.Token   `json:"tokens,omitempty"`
	Trigger  int                 `json:"trigger,omitempty"`
}

// Trigger owns a contiguous run of conditions and actions.
type Trigger struct {
	Kind           TriggerKind `json:"kind"`
	ConditionStart int         `json:"condition_start"`
	ConditionCount int         `json:"condition_count"`
	ActionStart    int         `json:"action_start"`
	ActionCount    int         `json:"action_count"`
}

// GameVariant (`mpvr` 54.1) is a scripted game mode: a string table plus the
// conditions, actions and triggers that reference it.
type GameVariant struct {
	Encoding Encoding `json:"-"`

	EncodingVersion uint32              `json:"encoding_version"`
	EngineVersion   uint32              `json:"engine_version"`
	Metadata        ContentItemMetadata `json:"metadata"`
	Strings         []string            `json:"strings"`
	Conditions      []Condition         `json:"conditions"`
	Actions         []Action            `json:"actions"`
	Triggers        []Trigger           `json:"triggers"`
}

var _ blf.Chunk = (*GameVariant)(nil)

func (*GameVariant) Signature() blf.Signature { return format.GameVariantSignature }
func (*GameVariant) Version() blf.Version     { return blf.Version{Major: gameVariantVersion, Minor: 1} }

func (g *GameVariant) MarshalBody() ([]byte, error) {
	if err := g.check(); err != nil {
		return nil, err
	}
	w, err := g.Encoding.writer(GameVariantMaxSize)
	if err != nil {
		return nil, err
	}
	if err := g.encode(w); err != nil {
		return nil, err
	}
	return w.Finish()
}

func (g *GameVariant) UnmarshalBody(body []byte) error {
	enc := g.Encoding
	*g = GameVariant{Encoding: enc}
	r, err := enc.reader(body)
	if err != nil {
		return err
	}
	if err := g.decode(r); err != nil {
		return err
	}
	if err := r.Finish(); err != nil {
		return err
	}
	return g.check()
}

func countErr(what string, n, limit int) error {
	return fmt.Errorf("%d %s, at most %d: %w", n, what, limit, ErrTooMany)
}

// check verifies list sizes and that every cross-reference resolves.
func (g *GameVariant) check() error {
	switch {
	case len(g.Strings) > MaxStrings:
		return countErr("strings", len(g.Strings), MaxStrings)
	case len(g.Conditions) > MaxConditions:
		return countErr("conditions", len(g.Conditions), MaxConditions)
	case len(g.Actions) > MaxActions:
		return countErr("actions", len(g.Actions), MaxActions)
	case len(g.Triggers) > MaxTriggers:
		return countErr("triggers", len(g.Triggers), MaxTriggers)
	}
	for i, c := range g.Conditions {
		if c.ActionOffset < 0 || c.ActionOffset > len(g.Actions) {
			return fmt.Errorf("condition %d: action offset %d with %d actions: %w", i, c.ActionOffset, len(g.Actions), ErrVariant)
		}
		if c.UnionGroup < 0 || c.UnionGroup >= MaxConditions {
			return fmt.Errorf("condition %d: union group %d: %w", i, c.UnionGroup, ErrVariant)
		}
	}
	for i, a := range g.Actions {
		if a.Type == ActionShowMessage && (a.Message < -1 || a.Message >= len(g.Strings)) {
			return fmt.Errorf("action %d: message %d with %d strings: %w", i, a.Message, len(g.Strings), ErrVariant)
		}
		if a.Type == ActionRunTrigger && (a.Trigger < 0 || a.Trigger >= len(g.Triggers)) {
			return fmt.Errorf("action %d: trigger %d with %d triggers: %w", i, a.Trigger, len(g.Triggers), ErrVariant)
		}
	}
	for i, t := range g.Triggers {
		if t.ConditionStart < 0 || t.ConditionCount < 0 || t.ConditionStart+t.ConditionCount > len(g.Conditions) {
			return fmt.Errorf("trigger %d: conditions [%d,+%d) with %d: %w", i, t.ConditionStart, t.ConditionCount, len(g.Conditions), ErrVariant)
		}
		if t.ActionStart < 0 || t.ActionCount < 0 || t.ActionStart+t.ActionCount > len(g.Actions) {
			return fmt.Errorf("trigger %d: actions [%d,+%d) with %d: %w", i, t.ActionStart, t.ActionCount, len(g.Actions), ErrVariant)
		}
	}
	return nil
}

func (g *GameVariant) encode(w *bitstream.Writer) error {
	if err := steps(
		func() error { return w.WriteInteger(uint64(g.EncodingVersion), 32) },
		func() error { return w.WriteInteger(uint64(g.EngineVersion), 32) },
		func() error { return g.Metadata.encodeBits(w) },
		func() error { return g.encodeStrings(w) },
		func() error { return w.WriteInteger(uint64(len(g.Conditions)), conditionCountBits) },
		func() error { return w.WriteInteger(uint64(len(g.Actions)), actionCountBits) },
		func() error { return w.WriteInteger(uint64(len(g.Triggers)), triggerCountBits) },
	); err != nil {
		return err
	}
	l := g.Encoding.layout()
	for i := range g.Conditions {
		if err := g.Conditions[i].encode(w, l); err != nil {
			return fmt.Errorf("condition %d: %w", i, err)
		}
	}
	for i := range g.Actions {
		if err := g.Actions[i].encode(w, l); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
	}
	for i := range g.Triggers {
		if err := g.Triggers[i].encode(w); err != nil {
			return fmt.Errorf("trigger %d: %w", i, err)
		}
	}
	return nil
}

func (g *GameVariant) decode(r *bitstream.Reader) error {
	br := &bitReader{r: r}
	g.EncodingVersion = uint32(br.unsigned(32))
	g.EngineVersion = uint32(br.unsigned(32))
	if br.err != nil {
		return br.err
	}
	if err := g.Metadata.decodeBits(r); err != nil {
		return err
	}
	if err := g.decodeStrings(r); err != nil {
		return err
	}
	conditions := int(br.unsigned(conditionCountBits))
	actions := int(br.unsigned(actionCountBits))
	triggers := int(br.unsigned(triggerCountBits))
	if br.err != nil {
		return br.err
	}
	switch {
	case conditions > MaxConditions:
		return countErr("conditions", conditions, MaxConditions)
	case actions > MaxActions:
		return countErr("actions", actions, MaxActions)
	case triggers > MaxTriggers:
		return countErr("triggers", triggers, MaxTriggers)
	}

	l := g.Encoding.layout()
	g.Conditions = makeN[Condition](conditions)
	for i := range g.Conditions {
		if err := g.Conditions[i].decode(r, l); err != nil {
			return fmt.Errorf("condition %d: %w", i, err)
		}
	}
	g.Actions = makeN[Action](actions)
	for i := range g.Actions {
		if err := g.Actions[i].decode(r, l); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
	}
	g.Triggers = makeN[Trigger](triggers)
	for i := range g.Triggers {
		if err := g.Triggers[i].decode(br); err != nil {
			return fmt.Errorf("trigger %d: %w", i, err)
		}
	}
	return nil
}

// encodeStrings writes the count followed by one sub-buffer holding every
// string NUL-terminated, deflated when Encoding.CompressStrings is set.
func (g *GameVariant) encodeStrings(w *bitstream.Writer) error {
	var table bytes.Buffer
	for i, s := range g.Strings {
		if bytes.IndexByte([]byte(s), 0) >= 0 {
			return fmt.Errorf("string %d contains NUL: %w", i, ErrVariant)
		}
		table.WriteString(s)
		table.WriteByte(0)
	}
	if err := w.WriteInteger(uint64(len(g.Strings)), stringCountBits); err != nil {
		return err
	}
	if len(g.Strings) == 0 {
		return nil
	}
	if err := w.WriteCompressed(table.Bytes(), StringTableLayout, g.Encoding.CompressStrings); err != nil {
		return fmt.Errorf("string table: %w", err)
	}
	return nil
}

func (g *GameVariant) decodeStrings(r *bitstream.Reader) error {
	count, err := r.ReadInteger(stringCountBits)
	if err != nil {
		return err
	}
	if count > MaxStrings {
		return countErr("strings", int(count), MaxStrings)
	}
	if count == 0 {
		return nil
	}
	g.Strings = make([]string, 0, count)
	table, err := r.ReadCompressed(StringTableLayout)
	if err != nil {
		return fmt.Errorf("string table: %w", err)
	}
	for range count {
		end := bytes.IndexByte(table, 0)
		if end < 0 {
			return fmt.Errorf("string table holds %d of %d strings: %w", len(g.Strings), count, ErrVariant)
		}
		g.Strings = append(g.Strings, string(table[:end]))
		table = table[end+1:]
	}
	return nil
}

func checkOperator(op Operator, err error) error {
	if err == nil && !operators.valid(uint8(op)) {
		return fmt.Errorf("operator %d: %w", op, ErrUnknownName)
	}
	return err
}

func (c *Condition) encode(w *bitstream.Writer, l *reference.Layout) error {
	if !conditionTypes.valid(uint8(c.Type)) {
		return fmt.Errorf("condition type %s: %w", c.Type, ErrUnknownName)
	}
	if err := steps(
		func() error { return w.WriteInteger(uint64(c.Type), conditionTypeBits) },
		func() error { return w.WriteBool(c.Negated) },
		func() error { return w.WriteInteger(uint64(c.UnionGroup), conditionCountBits) },
		func() error { return w.WriteInteger(uint64(c.ActionOffset), actionCountBits) },
	); err != nil {
		return err
	}
	if err := c.checkPayload(); err != nil {
		return err
	}
	switch c.Type {
	case ConditionCompare:
		return steps(
			func() error { return c.Left.Encode(w, l) },
			func() error { return c.Right.Encode(w, l) },
			func() error { return w.WriteInteger(uint64(c.Operator), operatorBits) },
		)
	case ConditionTimerExpired:
		return c.Timer.Encode(w, l)
	case ConditionTargetExists:
		return c.Target.Encode(w, l)
	}
	return nil
}

// checkPayload rejects payload fields that are missing for c's type or that
// belong to another type and would otherwise be dropped on write.
func (c *Condition) checkPayload() error {
	compare := c.Type == ConditionCompare
	return checkSlots(c.Type,
		payloadSlot{"left", c.Left != nil, compare, false},
		payloadSlot{"right", c.Right != nil, compare, false},
		payloadSlot{"operator", c.Operator != 0, compare, true},
		payloadSlot{"timer", c.Timer != nil, c.Type == ConditionTimerExpired, false},
		payloadSlot{"target", c.Target != nil, c.Type == ConditionTargetExists, false},
	)
}

func (c *Condition) decode(r *bitstream.Reader, l *reference.Layout) error {
	br := &bitReader{r: r}
	*c = Condition{
		Type:         ConditionType(br.unsigned(conditionTypeBits)),
		Negated:      br.flag(),
		UnionGroup:   int(br.unsigned(conditionCountBits)),
		ActionOffset: int(br.unsigned(actionCountBits)),
	}
	if br.err != nil {
		return br.err
	}
	switch c.Type {
	case ConditionNone:
	case ConditionCompare:
		c.Left, c.Right = new(reference.Variable), new(reference.Variable)
		if err := steps(
			func() error { return c.Left.Decode(r, l) },
			func() error { return c.Right.Decode(r, l) },
		); err != nil {
			return err
		}
		c.Operator = Operator(br.unsigned(operatorBits))
		return checkOperator(c.Operator, br.err)
	case ConditionTimerExpired:
		c.Timer = new(reference.Timer)
		return c.Timer.Decode(r, l)
	case ConditionTargetExists:
		c.Target = new(reference.Target)
		return c.Target.Decode(r, l)
	default:
		return fmt.Errorf("condition type %d: %w", c.Type, ErrUnknownName)
	}
	return nil
}

func (a *Action) encode(w *bitstream.Writer, l *reference.Layout) error {
	if !actionTypes.valid(uint8(a.Type)) {
		return fmt.Errorf("action type %s: %w", a.Type, ErrUnknownName)
	}
	if err := w.WriteInteger(uint64(a.Type), actionTypeBits); err != nil {
		return err
	}
	if err := a.checkPayload(); err != nil {
		return err
	}
	switch a.Type {
	case ActionModifyNumber:
		return steps(
			func() error { return a.Number.Encode(w, l) },
			func() error { return a.Operand.Encode(w, l) },
			func() error { return w.WriteInteger(uint64(a.Operator), operatorBits) },
		)
	case ActionStartTimer:
		return a.Timer.Encode(w, l)
	case ActionShowMessage:
		if len(a.Tokens) > MaxMessageTokens {
			return countErr("message tokens", len(a.Tokens), MaxMessageTokens)
		}
		if err := w.WriteIndex(a.Message, MaxStrings, stringCountBits); err != nil {
			return err
		}
		if err := w.WriteInteger(uint64(len(a.Tokens)), tokenCountBits); err != nil {
			return err
		}
		for i := range a.Tokens {
			if err := a.Tokens[i].Encode(w, l); err != nil {
				return fmt.Errorf("token %d: %w", i, err)
			}
		}
	case ActionRunTrigger:
		return w.WriteIndex(a.Trigger, MaxTriggers, triggerCountBits)
	}
	return nil
}

func (a *Action) checkPayload() error {
	modify, message := a.Type == ActionModifyNumber, a.Type == ActionShowMessage
	return checkSlots(a.Type,
		payloadSlot{"number", a.Number != nil, modify, false},
		payloadSlot{"operand", a.Operand != nil, modify, false},
		payloadSlot{"operator", a.Operator != 0, modify, true},
		payloadSlot{"timer", a.Timer != nil, a.Type == ActionStartTimer, false},
		payloadSlot{"message", a.Message != 0, message, true},
		payloadSlot{"tokens", len(a.Tokens) > 0, message, true},
		payloadSlot{"trigger", a.Trigger != 0, a.Type == ActionRunTrigger, true},
	)
}

// payloadSlot is one type-specific field of a condition or action. Optional
// slots may be unset on the owning type but are still rejected elsewhere.
type payloadSlot struct {
	name     string
	present  bool
	wanted   bool
	optional bool
}

func checkSlots(kind fmt.Stringer, slots ...payloadSlot) error {
	for _, s := range slots {
		switch {
		case s.wanted && !s.present && !s.optional:
			return fmt.Errorf("%s needs %s: %w", kind, s.name, reference.ErrMissingPayload)
		case !s.wanted && s.present:
			return fmt.Errorf("%s does not carry %s: %w", kind, s.name, reference.ErrUnexpectedPayload)
		}
	}
	return nil
}

func (a *Action) decode(r *bitstream.Reader, l *reference.Layout) error {
	br := &bitReader{r: r}
	*a = Action{Type: ActionType(br.unsigned(actionTypeBits))}
	if br.err != nil {
		return br.err
	}
	switch a.Type {
	case ActionNone:
	case ActionModifyNumber:
		a.Number, a.Operand = new(reference.Variable), new(reference.Variable)
		if err := steps(
			func() error { return a.Number.Decode(r, l) },
			func() error { return a.Operand.Decode(r, l) },
		); err != nil {
			return err
		}
		a.Operator = Operator(br.unsigned(operatorBits))
		return checkOperator(a.Operator, br.err)
	case ActionStartTimer:
		a.Timer = new(reference.Timer)
		return a.Timer.Decode(r, l)
	case ActionShowMessage:
		a.Message = br.index(MaxStrings, stringCountBits)
		n := int(br.unsigned(tokenCountBits))
		if br.err != nil {
			return br.err
		}
		if n > MaxMessageTokens {
			return countErr("message tokens", n, MaxMessageTokens)
		}
		if n > 0 {
			a.Tokens = make([]reference.Token, n)
		}
		for i := range a.Tokens {
			if err := a.Tokens[i].Decode(r, l); err != nil {
				return fmt.Errorf("token %d: %w", i, err)
			}
		}
	case ActionRunTrigger:
		a.Trigger = br.index(MaxTriggers, triggerCountBits)
	default:
		return fmt.Errorf("action type %d: %w", a.Type, ErrUnknownName)
	}
	return br.err
}

func (t *Trigger) encode(w *bitstream.Writer) error {
	if !triggerKinds.valid(uint8(t.Kind)) {
		return fmt.Errorf("trigger kind %s: %w", t.Kind, ErrUnknownName)
	}
	return steps(
		func() error { return w.WriteInteger(uint64(t.Kind), triggerKindBits) },
		func() error { return w.WriteInteger(uint64(t.ConditionStart), conditionCountBits) },
		func() error { return w.WriteInteger(uint64(t.ConditionCount), conditionCountBits) },
		func() error { return w.WriteInteger(uint64(t.ActionStart), actionCountBits) },
		func() error { return w.WriteInteger(uint64(t.ActionCount), actionCountBits) },
	)
}

func (t *Trigger) decode(br *bitReader) error {
	*t = Trigger{
		Kind:           TriggerKind(br.unsigned(triggerKindBits)),
		ConditionStart: int(br.unsigned(conditionCountBits)),
		ConditionCount: int(br.unsigned(conditionCountBits)),
		ActionStart:    int(br.unsigned(actionCountBits)),
		ActionCount:    int(br.unsigned(actionCountBits)),
	}
	if br.err == nil && !triggerKinds.valid(uint8(t.Kind)) {
		return fmt.Errorf("trigger kind %d: %w", t.Kind, ErrUnknownName)
	}
	return br.err
}
