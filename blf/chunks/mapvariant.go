package chunks

import (
	"fmt"
	"math"

	"github.com/joshuapare/blfkit/blf"
	"github.com/joshuapare/blfkit/blf/bitstream"
	"github.com/joshuapare/blfkit/blf/quantize"
	"github.com/joshuapare/blfkit/internal/format"
)

// Map variant limits and field widths.
const (
	MapVariantMaxSize  = 0xE090
	MaxPlacements      = 640
	MaxQuotas          = 256
	MaxPlacementTeams  = 9
	PositionBaseline   = 16
	MaxPositionBits    = 26
	ForwardVectorBits  = 19
	UpRotationBits     = 8
	BoundaryDimBits    = 11
	MaxBoundaryExtent  = 200
	mapVariantVersion  = 12
	placementCountBits = 10
	quotaCountBits     = 9
	teamBits           = 4
	subtypeBits        = 4
	shapeBits          = 2
)

var (
	upRotationRange = quantize.QuantizedRange{
		Min: -math.Pi, Max: math.Pi, Bits: UpRotationBits, ExactMidpoint: true, ExactEndpoints: true,
	}
	boundaryRange = quantize.QuantizedRange{
		Min: 0, Max: MaxBoundaryExtent, Bits: BoundaryDimBits, ExactEndpoints: true,
	}
	boundaryHeightRange = quantize.QuantizedRange{
		Min: -MaxBoundaryExtent, Max: MaxBoundaryExtent, Bits: BoundaryDimBits, ExactMidpoint: true, ExactEndpoints: true,
	}
)

// BoundaryShape selects the shape of a placement's boundary volume.
type BoundaryShape uint8

const (
	BoundaryNone BoundaryShape = iota
	BoundarySphere
	BoundaryCylinder
	BoundaryBox
)

var boundaryShapes = enum{"none", "sphere", "cylinder", "box"}

func (s BoundaryShape) String() string                { return boundaryShapes.name(uint8(s)) }
func (s BoundaryShape) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *BoundaryShape) UnmarshalText(b []byte) error {
	v, err := boundaryShapes.parse("boundary shape", b)
	if err != nil {
		return err
	}
	*s = BoundaryShape(v)
	return nil
}

// Boundary is a placement's trigger volume. Only the dimensions the shape
// uses are encoded: Radius for spheres, Radius/Top/Bottom for cylinders and
// Width/Length/Top/Bottom for boxes.
type Boundary struct {
	Shape  BoundaryShape `json:"shape"`
	Radius float32       `json:"radius,omitempty"`
	Width  float32       `json:"width,omitempty"`
	Length float32       `json:"length,omitempty"`
	Top    float32       `json:"top,omitempty"`
	Bottom float32       `json:"bottom,omitempty"`
}

type boundaryDim struct {
	v *float32
	q quantize.QuantizedRange
}

// dims lists the encoded dimensions of b's shape in wire order.
func (b *Boundary) dims() []boundaryDim {
	switch b.Shape {
	case BoundarySphere:
		return []boundaryDim{{&b.Radius, boundaryRange}}
	case BoundaryCylinder:
		return []boundaryDim{{&b.Radius, boundaryRange}, {&b.Top, boundaryHeightRange}, {&b.Bottom, boundaryHeightRange}}
	case BoundaryBox:
		return []boundaryDim{
			{&b.Width, boundaryRange}, {&b.Length, boundaryRange},
			{&b.Top, boundaryHeightRange}, {&b.Bottom, boundaryHeightRange},
		}
	default:
		return nil
	}
}

func (b *Boundary) encode(w *bitstream.Writer) error {
	if !boundaryShapes.valid(uint8(b.Shape)) {
		return fmt.Errorf("boundary shape %s: %w", b.Shape, ErrUnknownName)
	}
	if err := w.WriteInteger(uint64(b.Shape), shapeBits); err != nil {
		return err
	}
	for _, d := range b.dims() {
		if err := w.WriteQuantized(*d.v, d.q); err != nil {
			return err
		}
	}
	return nil
}

func (b *Boundary) decode(r *bitstream.Reader) error {
	shape, err := r.ReadInteger(shapeBits)
	if err != nil {
		return err
	}
	*b = Boundary{Shape: BoundaryShape(shape)}
	for _, d := range b.dims() {
		if *d.v, err = r.ReadQuantized(d.q); err != nil {
			return err
		}
	}
	return nil
}

// Placement is one object placed by the map variant.
type Placement struct {
	Flags uint16 `json:"flags"`
	// Definition indexes MapVariant.Quotas; -1 marks an unused slot and ends
	// the placement's encoding.
	Definition  int              `json:"definition"`
	Parent      int              `json:"parent"`
	Position    quantize.Point3  `json:"position"`
	Forward     quantize.Vector3 `json:"forward"`
	UpRotation  float32          `json:"up_rotation"`
	Team        int              `json:"team"`
	SpawnOrder  uint8            `json:"spawn_order"`
	RespawnTime uint8            `json:"respawn_time"`
	SpareClips  uint8            `json:"spare_clips"`
	Boundary    Boundary         `json:"boundary"`
}

// Quota is a per-definition placement budget.
type Quota struct {
	Definition int32   `json:"definition"`
	Minimum    uint8   `json:"minimum"`
	Maximum    uint8   `json:"maximum"`
	Placed     uint8   `json:"placed"`
	MaxAllowed uint8   `json:"max_allowed"`
	Price      float32 `json:"price"`
}

// MapVariant (`mvar` 12.1) is a user-edited object layout for a map.
type MapVariant struct {
	Encoding Encoding `json:"-"`

	Metadata        ContentItemMetadata `json:"metadata"`
	VariantVersion  uint16              `json:"variant_version"`
	MapChecksum     uint32              `json:"map_checksum"`
	ScenarioObjects int                 `json:"scenario_objects"`
	MapID           int32               `json:"map_id"`
	BuiltIn         bool                `json:"built_in"`
	WorldBounds     quantize.Bounds3    `json:"world_bounds"`
	EngineSubtype   uint8               `json:"engine_subtype"`
	MaximumBudget   int32               `json:"maximum_budget"`
	SpentBudget     int32               `json:"spent_budget"`
	HelpersEnabled  bool                `json:"helpers_enabled"`
	Placements      []Placement         `json:"placements"`
	Quotas          []Quota             `json:"quotas"`
}

var _ blf.Chunk = (*MapVariant)(nil)

func (*MapVariant) Signature() blf.Signature { return format.MapVariantSignature }
func (*MapVariant) Version() blf.Version     { return blf.Version{Major: mapVariantVersion, Minor: 1} }

// AxisBits returns the per-axis position widths implied by the world bounds.
func (m *MapVariant) AxisBits() [3]int {
	return quantize.AdjustAxisEncodingBitCount(PositionBaseline, m.WorldBounds, MaxPositionBits)
}

func (m *MapVariant) MarshalBody() ([]byte, error) {
	if len(m.Placements) > MaxPlacements {
		return nil, fmt.Errorf("%d placements, at most %d: %w", len(m.Placements), MaxPlacements, ErrTooMany)
	}
	if len(m.Quotas) > MaxQuotas {
		return nil, fmt.Errorf("%d quotas, at most %d: %w", len(m.Quotas), MaxQuotas, ErrTooMany)
	}
	w, err := m.Encoding.writer(MapVariantMaxSize)
	if err != nil {
		return nil, err
	}
	if err := m.encode(w); err != nil {
		return nil, err
	}
	return w.Finish()
}

func (m *MapVariant) encode(w *bitstream.Writer) error {
	if err := m.Metadata.encodeBits(w); err != nil {
		return err
	}
	bounds := []float32{
		m.WorldBounds.X.Min, m.WorldBounds.X.Max,
		m.WorldBounds.Y.Min, m.WorldBounds.Y.Max,
		m.WorldBounds.Z.Min, m.WorldBounds.Z.Max,
	}
	if err := steps(
		func() error { return w.WriteInteger(uint64(m.VariantVersion), 16) },
		func() error { return w.WriteInteger(uint64(m.MapChecksum), 32) },
		func() error { return w.WriteInteger(uint64(m.ScenarioObjects), placementCountBits) },
		func() error { return w.WriteInteger(uint64(len(m.Placements)), placementCountBits) },
		func() error { return w.WriteInteger(uint64(len(m.Quotas)), quotaCountBits) },
		func() error { return w.WriteSignedInteger(int64(m.MapID), 32) },
		func() error { return w.WriteBool(m.BuiltIn) },
		func() error {
			for _, f := range bounds {
				if err := w.WriteFloat32(f); err != nil {
					return err
				}
			}
			return nil
		},
		func() error { return w.WriteInteger(uint64(m.EngineSubtype), subtypeBits) },
		func() error { return w.WriteSignedInteger(int64(m.MaximumBudget), 32) },
		func() error { return w.WriteSignedInteger(int64(m.SpentBudget), 32) },
		func() error { return w.WriteBool(m.HelpersEnabled) },
	); err != nil {
		return err
	}
	axisBits := m.AxisBits()
	for i := range m.Placements {
		if err := m.encodePlacement(w, &m.Placements[i], axisBits); err != nil {
			return fmt.Errorf("placement %d: %w", i, err)
		}
	}
	for i := range m.Quotas {
		if err := encodeQuota(w, &m.Quotas[i]); err != nil {
			return fmt.Errorf("quota %d: %w", i, err)
		}
	}
	return nil
}

func (m *MapVariant) encodePlacement(w *bitstream.Writer, p *Placement, axisBits [3]int) error {
	if p.Definition >= len(m.Quotas) {
		return fmt.Errorf("definition %d with %d quotas: %w", p.Definition, len(m.Quotas), ErrVariant)
	}
	if p.Parent >= len(m.Placements) {
		return fmt.Errorf("parent %d with %d placements: %w", p.Parent, len(m.Placements), ErrVariant)
	}
	if err := w.WriteInteger(uint64(p.Flags), 16); err != nil {
		return err
	}
	if err := w.WriteIndex(p.Definition, MaxQuotas, quotaCountBits); err != nil {
		return err
	}
	if p.Definition == -1 {
		return nil
	}
	return steps(
		func() error { return w.WriteIndex(p.Parent, MaxPlacements, placementCountBits) },
		func() error { return w.WritePosition(p.Position, m.WorldBounds, axisBits) },
		func() error { return w.WriteUnitVector(p.Forward, ForwardVectorBits) },
		func() error { return w.WriteQuantized(p.UpRotation, upRotationRange) },
		func() error { return w.WriteIndex(p.Team, MaxPlacementTeams, teamBits) },
		func() error { return w.WriteInteger(uint64(p.SpawnOrder), 8) },
		func() error { return w.WriteInteger(uint64(p.RespawnTime), 8) },
		func() error { return w.WriteInteger(uint64(p.SpareClips), 8) },
		func() error { return p.Boundary.encode(w) },
	)
}

func encodeQuota(w *bitstream.Writer, q *Quota) error {
	return steps(
		func() error { return w.WriteSignedInteger(int64(q.Definition), 32) },
		func() error { return w.WriteInteger(uint64(q.Minimum), 8) },
		func() error { return w.WriteInteger(uint64(q.Maximum), 8) },
		func() error { return w.WriteInteger(uint64(q.Placed), 8) },
		func() error { return w.WriteInteger(uint64(q.MaxAllowed), 8) },
		func() error { return w.WriteFloat32(q.Price) },
	)
}

func (m *MapVariant) UnmarshalBody(body []byte) error {
	enc := m.Encoding
	*m = MapVariant{Encoding: enc}
	r, err := enc.reader(body)
	if err != nil {
		return err
	}
	if err := m.decode(r); err != nil {
		return err
	}
	return r.Finish()
}

func (m *MapVariant) decode(r *bitstream.Reader) error {
	if err := m.Metadata.decodeBits(r); err != nil {
		return err
	}
	br := &bitReader{r: r}
	m.VariantVersion = uint16(br.unsigned(16))
	m.MapChecksum = uint32(br.unsigned(32))
	m.ScenarioObjects = int(br.unsigned(placementCountBits))
	placements := int(br.unsigned(placementCountBits))
	quotas := int(br.unsigned(quotaCountBits))
	m.MapID = int32(br.signed(32))
	m.BuiltIn = br.flag()
	m.WorldBounds.X = quantize.Range{Min: br.f32(), Max: br.f32()}
	m.WorldBounds.Y = quantize.Range{Min: br.f32(), Max: br.f32()}
	m.WorldBounds.Z = quantize.Range{Min: br.f32(), Max: br.f32()}
	m.EngineSubtype = uint8(br.unsigned(subtypeBits))
	m.MaximumBudget = int32(br.signed(32))
	m.SpentBudget = int32(br.signed(32))
	m.HelpersEnabled = br.flag()
	if br.err != nil {
		return br.err
	}
	if placements > MaxPlacements {
		return fmt.Errorf("%d placements, at most %d: %w", placements, MaxPlacements, ErrTooMany)
	}
	if quotas > MaxQuotas {
		return fmt.Errorf("%d quotas, at most %d: %w", quotas, MaxQuotas, ErrTooMany)
	}

	axisBits := m.AxisBits()
	m.Placements = makeN[Placement](placements)
	for i := range m.Placements {
		if err := m.decodePlacement(br, &m.Placements[i], axisBits, quotas); err != nil {
			return fmt.Errorf("placement %d: %w", i, err)
		}
	}
	m.Quotas = makeN[Quota](quotas)
	for i := range m.Quotas {
		q := &m.Quotas[i]
		q.Definition = int32(br.signed(32))
		q.Minimum = uint8(br.unsigned(8))
		q.Maximum = uint8(br.unsigned(8))
		q.Placed = uint8(br.unsigned(8))
		q.MaxAllowed = uint8(br.unsigned(8))
		q.Price = br.f32()
		if br.err != nil {
			return fmt.Errorf("quota %d: %w", i, br.err)
		}
	}
	return nil
}

func (m *MapVariant) decodePlacement(br *bitReader, p *Placement, axisBits [3]int, quotas int) error {
	p.Flags = uint16(br.unsigned(16))
	p.Definition = br.index(MaxQuotas, quotaCountBits)
	if br.err != nil || p.Definition == -1 {
		return br.err
	}
	if p.Definition >= quotas {
		return fmt.Errorf("definition %d with %d quotas: %w", p.Definition, quotas, ErrVariant)
	}
	p.Parent = br.index(MaxPlacements, placementCountBits)
	if br.err != nil {
		return br.err
	}
	if p.Parent >= len(m.Placements) {
		return fmt.Errorf("parent %d with %d placements: %w", p.Parent, len(m.Placements), ErrVariant)
	}
	var err error
	if p.Position, err = br.r.ReadPosition(m.WorldBounds, axisBits); err != nil {
		return err
	}
	if p.Forward, err = br.r.ReadUnitVector(ForwardVectorBits); err != nil {
		return err
	}
	if p.UpRotation, err = br.r.ReadQuantized(upRotationRange); err != nil {
		return err
	}
	p.Team = br.index(MaxPlacementTeams, teamBits)
	p.SpawnOrder = uint8(br.unsigned(8))
	p.RespawnTime = uint8(br.unsigned(8))
	p.SpareClips = uint8(br.unsigned(8))
	if br.err != nil {
		return br.err
	}
	return p.Boundary.decode(br.r)
}
