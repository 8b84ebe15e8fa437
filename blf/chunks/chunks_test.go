package chunks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/blfkit/blf"
	"github.com/joshuapare/blfkit/blf/bitstream"
	"github.com/joshuapare/blfkit/blf/quantize"
	"github.com/joshuapare/blfkit/blf/reference"
	"github.com/joshuapare/blfkit/pkg/types"
)

// roundTrip frames c, then decodes the body into out.
func roundTrip(t *testing.T, c, out blf.Chunk) []byte {
	t.Helper()
	framed, err := blf.Frame(c, nil)
	require.NoError(t, err)
	hdr, err := blf.HeaderFor(c, len(framed)-blf.HeaderSize)
	require.NoError(t, err)
	require.NoError(t, blf.DecodeBody(out, framed[blf.HeaderSize:], hdr, nil))
	return framed[blf.HeaderSize:]
}

func sampleMetadata() ContentItemMetadata {
	return ContentItemMetadata{
		UniqueID:           0x0123456789ABCDEF,
		Name:               "Valhalla",
		Description:        "Two bases, one river.",
		Author:             "Bungie",
		FileType:           10,
		AuthorIsOnline:     true,
		AuthorID:           0xFEEDFACE,
		Size:               0xE090,
		Date:               1220000000,
		LengthSeconds:      600,
		CampaignID:         -1,
		MapID:              30,
		GameEngineType:     2,
		CampaignDifficulty: -1,
		InsertionPoint:     -1,
		IsSurvival:         false,
		GameID:             42,
	}
}

func TestStartOfFile(t *testing.T) {
	in := &StartOfFile{Name: "halo3 map variant"}
	var out StartOfFile
	body := roundTrip(t, in, &out)
	require.Len(t, body, startOfFileBodySize)
	assert.Equal(t, []byte{0xFF, 0xFE}, body[:2])
	assert.Equal(t, *in, out)

	bad := append([]byte(nil), body...)
	bad[1] = 0xFF
	err := out.UnmarshalBody(bad)
	require.ErrorIs(t, err, ErrByteOrderMark)
	assert.True(t, types.IsKind(err, types.ErrKindStructural))

	require.ErrorIs(t, out.UnmarshalBody(body[:10]), ErrBodySize)

	_, err = (&StartOfFile{Name: "a name that is far too long for thirty-two bytes"}).MarshalBody()
	require.ErrorIs(t, err, types.ErrInvalidEncoding)
}

func TestAuthor(t *testing.T) {
	in := &Author{ProgramName: "blfkit", BuildNumber: 12070, BuildString: "12070.08.09.05.2031.halo3_sh", AuthorName: "joshua"}
	var out Author
	body := roundTrip(t, in, &out)
	require.Len(t, body, authorBodySize)
	assert.Equal(t, *in, out)
}

func TestContentHeader(t *testing.T) {
	in := &ContentHeader{BuildNumber: 12070, MapMinorVersion: 1, Metadata: sampleMetadata()}
	var out ContentHeader
	body := roundTrip(t, in, &out)
	require.Len(t, body, 4+MetadataSize)
	assert.Equal(t, *in, out)

	// name is UTF-16BE right after the unique id
	assert.Equal(t, []byte{0, 'V', 0, 'a', 0, 'l'}, body[4+8:4+8+6])
	// game_id is the last field
	assert.Equal(t, byte(42), body[len(body)-1])
}

func TestMapManifest(t *testing.T) {
	in := &MapManifest{Signatures: make([]RSASignature, 3)}
	for i := range in.Signatures {
		in.Signatures[i][0] = byte(i + 1)
		in.Signatures[i][RSASignatureSize-1] = 0xEE
	}
	var out MapManifest
	body := roundTrip(t, in, &out)
	require.Len(t, body, 4+3*RSASignatureSize)
	assert.Equal(t, *in, out)

	require.ErrorIs(t, out.UnmarshalBody(body[:len(body)-1]), ErrBodySize)

	_, err := (&MapManifest{Signatures: make([]RSASignature, MaxManifestSignatures+1)}).MarshalBody()
	require.ErrorIs(t, err, ErrTooMany)

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	var back MapManifest
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, *in, back)
}

func sampleMapVariant() *MapVariant {
	return &MapVariant{
		Metadata:        sampleMetadata(),
		VariantVersion:  12,
		MapChecksum:     0xCAFEBABE,
		ScenarioObjects: 3,
		MapID:           30,
		BuiltIn:         false,
		WorldBounds: quantize.Bounds3{
			X: quantize.Range{Min: -100, Max: 100},
			Y: quantize.Range{Min: -50, Max: 150},
			Z: quantize.Range{Min: 0, Max: 40},
		},
		EngineSubtype:  3,
		MaximumBudget:  5000,
		SpentBudget:    1250,
		HelpersEnabled: true,
		Placements: []Placement{
			{
				Flags: 0x0003, Definition: 0, Parent: -1,
				Position:   quantize.Point3{X: 12.5, Y: -3.25, Z: 7},
				Forward:    quantize.Vector3{I: 1},
				UpRotation: 0,
				Team:       -1,
				SpawnOrder: 1, RespawnTime: 30, SpareClips: 2,
				Boundary: Boundary{Shape: BoundarySphere, Radius: 5},
			},
			{
				Flags: 0, Definition: 1, Parent: 0,
				Position:   quantize.Point3{X: -99, Y: 149, Z: 39.5},
				Forward:    quantize.Vector3{I: 0.6, J: 0, K: 0.8},
				UpRotation: 1.5,
				Team:       1,
				Boundary:   Boundary{Shape: BoundaryBox, Width: 10, Length: 4, Top: 3, Bottom: -1},
			},
			{Definition: -1},
		},
		Quotas: []Quota{
			{Definition: 0x1234, Minimum: 0, Maximum: 4, Placed: 1, MaxAllowed: 8, Price: 10},
			{Definition: -1, Maximum: 255, Price: 2.5},
		},
	}
}

func assertPlacementsNear(t *testing.T, want, got []Placement) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		w, g := want[i], got[i]
		assert.InDelta(t, w.Position.X, g.Position.X, 0.01, "placement %d x", i)
		assert.InDelta(t, w.Position.Y, g.Position.Y, 0.01, "placement %d y", i)
		assert.InDelta(t, w.Position.Z, g.Position.Z, 0.01, "placement %d z", i)
		assert.InDelta(t, w.Forward.I, g.Forward.I, 0.02, "placement %d forward", i)
		assert.InDelta(t, w.Forward.J, g.Forward.J, 0.02, "placement %d forward", i)
		assert.InDelta(t, w.Forward.K, g.Forward.K, 0.02, "placement %d forward", i)
		assert.InDelta(t, w.UpRotation, g.UpRotation, 0.02, "placement %d rotation", i)
		assert.InDelta(t, w.Boundary.Radius, g.Boundary.Radius, 0.1, "placement %d radius", i)
		assert.InDelta(t, w.Boundary.Width, g.Boundary.Width, 0.1, "placement %d width", i)
		assert.InDelta(t, w.Boundary.Length, g.Boundary.Length, 0.1, "placement %d length", i)
		assert.InDelta(t, w.Boundary.Top, g.Boundary.Top, 0.1, "placement %d top", i)
		assert.InDelta(t, w.Boundary.Bottom, g.Boundary.Bottom, 0.1, "placement %d bottom", i)

		// everything else is exact
		w.Position, g.Position = quantize.Point3{}, quantize.Point3{}
		w.Forward, g.Forward = quantize.Vector3{}, quantize.Vector3{}
		w.UpRotation, g.UpRotation = 0, 0
		w.Boundary, g.Boundary = Boundary{Shape: w.Boundary.Shape}, Boundary{Shape: g.Boundary.Shape}
		assert.Equal(t, w, g, "placement %d", i)
	}
}

func TestMapVariantRoundTrip(t *testing.T) {
	encodings := map[string]Encoding{
		"msb": {},
		"lsb": {FillOrder: bitstream.LSBFirst},
		"le":  {ByteOrder: bitstream.LittleEndian, FillOrder: bitstream.LSBFirst},
	}
	bodies := map[string][]byte{}
	for name, enc := range encodings {
		t.Run(name, func(t *testing.T) {
			in := sampleMapVariant()
			in.Encoding = enc
			out := &MapVariant{Encoding: enc}
			bodies[name] = roundTrip(t, in, out)

			assertPlacementsNear(t, in.Placements, out.Placements)
			in.Placements, out.Placements = nil, nil
			assert.Equal(t, in, out)
		})
	}
	assert.NotEqual(t, bodies["msb"], bodies["lsb"])
}

func TestMapVariantRejects(t *testing.T) {
	m := sampleMapVariant()
	m.Placements[1].Definition = 5
	_, err := m.MarshalBody()
	require.ErrorIs(t, err, ErrVariant)

	m = sampleMapVariant()
	m.Placements[0].Forward = quantize.Vector3{}
	_, err = m.MarshalBody()
	require.ErrorIs(t, err, bitstream.ErrValueRange)

	m = sampleMapVariant()
	m.Placements = make([]Placement, MaxPlacements+1)
	_, err = m.MarshalBody()
	require.ErrorIs(t, err, ErrTooMany)

	body, err := sampleMapVariant().MarshalBody()
	require.NoError(t, err)
	var out MapVariant
	require.ErrorIs(t, out.UnmarshalBody(body[:len(body)/2]), types.ErrTruncated)
}

func TestMapVariantAxisBits(t *testing.T) {
	m := sampleMapVariant()
	bits := m.AxisBits()
	for i, b := range bits {
		assert.GreaterOrEqual(t, b, 1, "axis %d", i)
		assert.LessOrEqual(t, b, MaxPositionBits, "axis %d", i)
	}
	// the wider X axis needs at least as many bits as the shorter Z axis
	assert.GreaterOrEqual(t, bits[0], bits[2])
}

func sampleGameVariant() *GameVariant {
	score := reference.Score(reference.PlayerTarget(0))
	limit := reference.Constant(50)
	one := reference.Constant(1)
	kills := reference.MemberNumber(reference.PlayerTarget(0), 1)
	round := reference.RoundTimer()
	return &GameVariant{
		EncodingVersion: 0x6A,
		EngineVersion:   0x11,
		Metadata:        sampleMetadata(),
		Strings:         []string{"Capture the flag", "%s scored", "Round over"},
		Conditions: []Condition{
			{Type: ConditionCompare, Left: &score, Right: &limit, Operator: OpGreaterEqual, ActionOffset: 0},
			{Type: ConditionTimerExpired, Timer: &round, ActionOffset: 1, UnionGroup: 1},
			{Type: ConditionTargetExists, Target: ptr(reference.PlayerTarget(0)), Negated: true, UnionGroup: 2, ActionOffset: 2},
		},
		Actions: []Action{
			{Type: ActionModifyNumber, Number: &kills, Operand: &one, Operator: OpAdd},
			{Type: ActionShowMessage, Message: 1, Tokens: []reference.Token{reference.TargetToken(reference.PlayerTarget(0))}},
			{Type: ActionShowMessage, Message: -1},
			{Type: ActionStartTimer, Timer: ptr(reference.GlobalTimer(2))},
			{Type: ActionRunTrigger, Trigger: 1},
			{Type: ActionNone},
		},
		Triggers: []Trigger{
			{Kind: TriggerEachPlayer, ConditionStart: 0, ConditionCount: 3, ActionStart: 0, ActionCount: 5},
			{Kind: TriggerSubroutine, ActionStart: 5, ActionCount: 1},
		},
	}
}

func ptr[T any](v T) *T { return &v }

func TestGameVariantRoundTrip(t *testing.T) {
	for _, layout := range []*reference.Layout{&reference.ReachRelease, &reference.ReachBeta} {
		for _, compress := range []bool{false, true} {
			enc := Encoding{References: layout, CompressStrings: compress}
			in := sampleGameVariant()
			in.Encoding = enc
			out := &GameVariant{Encoding: enc}
			roundTrip(t, in, out)
			assert.Equal(t, in, out, "%s compress=%v", layout.Name, compress)
		}
	}
}

func TestGameVariantLayoutsDiffer(t *testing.T) {
	release := sampleGameVariant()
	release.Encoding.References = &reference.ReachRelease
	beta := sampleGameVariant()
	beta.Encoding.References = &reference.ReachBeta

	a, err := release.MarshalBody()
	require.NoError(t, err)
	b, err := beta.MarshalBody()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGameVariantRejects(t *testing.T) {
	g := sampleGameVariant()
	g.Triggers[0].ActionCount = 7
	_, err := g.MarshalBody()
	require.ErrorIs(t, err, ErrVariant)

	g = sampleGameVariant()
	g.Actions[1].Message = 3
	_, err = g.MarshalBody()
	require.ErrorIs(t, err, ErrVariant)

	g = sampleGameVariant()
	g.Conditions[0].Right = nil
	_, err = g.MarshalBody()
	require.ErrorIs(t, err, reference.ErrMissingPayload)

	g = sampleGameVariant()
	g.Actions[1].Tokens = make([]reference.Token, 3)
	_, err = g.MarshalBody()
	require.ErrorIs(t, err, ErrTooMany)

	g = sampleGameVariant()
	g.Strings = append(g.Strings, "bad\x00string")
	_, err = g.MarshalBody()
	require.ErrorIs(t, err, ErrVariant)
}

func TestGameVariantRejectsForeignPayload(t *testing.T) {
	seven := reference.Constant(7)
	round := reference.RoundTimer()
	edits := map[string]func(g *GameVariant){
		"timer on compare":        func(g *GameVariant) { g.Conditions[0].Timer = &round },
		"target on timer_expired": func(g *GameVariant) { g.Conditions[1].Target = ptr(reference.PlayerTarget(1)) },
		"left on target_exists":   func(g *GameVariant) { g.Conditions[2].Left = &seven },
		"operator on timer":       func(g *GameVariant) { g.Conditions[1].Operator = OpAdd },
		"timer on modify_number":  func(g *GameVariant) { g.Actions[0].Timer = &round },
		"number on show_message":  func(g *GameVariant) { g.Actions[1].Number = &seven },
		"trigger on show_message": func(g *GameVariant) { g.Actions[2].Trigger = 1 },
		"message on start_timer":  func(g *GameVariant) { g.Actions[3].Message = 2 },
		"tokens on run_trigger": func(g *GameVariant) {
			g.Actions[4].Tokens = []reference.Token{reference.TargetToken(reference.PlayerTarget(0))}
		},
		"operand on none": func(g *GameVariant) { g.Actions[5].Operand = &seven },
	}
	for name, edit := range edits {
		t.Run(name, func(t *testing.T) {
			g := sampleGameVariant()
			edit(g)
			_, err := g.MarshalBody()
			require.ErrorIs(t, err, reference.ErrUnexpectedPayload)
		})
	}

	// payload-free actions still encode
	g := sampleGameVariant()
	g.Actions[2].Message = 0
	_, err := g.MarshalBody()
	require.NoError(t, err)
}

func TestGameVariantJSON(t *testing.T) {
	in := sampleGameVariant()
	in.Encoding = Encoding{References: &reference.ReachBeta, CompressStrings: true}
	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Encoding")
	assert.Contains(t, string(raw), `"type":"compare"`)

	var back GameVariant
	require.NoError(t, json.Unmarshal(raw, &back))
	in.Encoding = Encoding{}
	assert.Equal(t, *in, back)
}
