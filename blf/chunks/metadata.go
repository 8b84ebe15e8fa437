package chunks

import (
	"fmt"

	"github.com/joshuapare/blfkit/blf/bitstream"
	"github.com/joshuapare/blfkit/internal/buf"
)

const (
	metadataNameSize        = 16
	metadataDescriptionSize = 128
	metadataAuthorSize      = 16

	// MetadataSize is the byte-level size of ContentItemMetadata.
	MetadataSize = 0xF8
)

// ContentItemMetadata describes a piece of user content: who made it, what it
// is and which map and engine it targets.
type ContentItemMetadata struct {
	UniqueID           uint64 `json:"unique_id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	Author             string `json:"author"`
	FileType           int32  `json:"file_type"`
	AuthorIsOnline     bool   `json:"author_is_online"`
	AuthorID           uint64 `json:"author_id"`
	Size               uint64 `json:"size"`
	Date               uint64 `json:"date"`
	LengthSeconds      uint32 `json:"length_seconds"`
	CampaignID         int32  `json:"campaign_id"`
	MapID              int32  `json:"map_id"`
	GameEngineType     int32  `json:"game_engine_type"`
	CampaignDifficulty int32  `json:"campaign_difficulty"`
	InsertionPoint     int8   `json:"insertion_point"`
	IsSurvival         bool   `json:"is_survival"`
	GameID             uint64 `json:"game_id"`
}

// encodeBytes writes the 0xF8-byte layout used by chdr:
//
//	Offset  Size  Field
//	0x00    8     unique_id
//	0x08    32    name (wchar[16])
//	0x28    128   description (char[128])
//	0xA8    16    author (char[16])
//	0xB8    4     file_type
//	0xBC    1     author_is_online (+3 padding)
//	0xC0    8     author_id
//	0xC8    8     size
//	0xD0    8     date
//	0xD8    4     length_seconds
//	0xDC    4     campaign_id
//	0xE0    4     map_id
//	0xE4    4     game_engine_type
//	0xE8    4     campaign_difficulty
//	0xEC    1     insertion_point
//	0xED    1     is_survival (+2 padding)
//	0xF0    8     game_id
func (m *ContentItemMetadata) encodeBytes(w *buf.Writer) error {
	w.U64(m.UniqueID)
	if err := w.WChar(m.Name, metadataNameSize); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	if err := w.Char(m.Description, metadataDescriptionSize); err != nil {
		return fmt.Errorf("description: %w", err)
	}
	if err := w.Char(m.Author, metadataAuthorSize); err != nil {
		return fmt.Errorf("author: %w", err)
	}
	w.I32(m.FileType)
	w.Bool(m.AuthorIsOnline)
	w.Pad(3)
	w.U64(m.AuthorID)
	w.U64(m.Size)
	w.U64(m.Date)
	w.U32(m.LengthSeconds)
	w.I32(m.CampaignID)
	w.I32(m.MapID)
	w.I32(m.GameEngineType)
	w.I32(m.CampaignDifficulty)
	w.I8(m.InsertionPoint)
	w.Bool(m.IsSurvival)
	w.Pad(2)
	w.U64(m.GameID)
	return nil
}

func (m *ContentItemMetadata) decodeBytes(r *buf.Reader) error {
	var err error
	u64 := func() uint64 {
		if err != nil {
			return 0
		}
		var v uint64
		v, err = r.U64()
		return v
	}
	u32 := func() uint32 {
		if err != nil {
			return 0
		}
		var v uint32
		v, err = r.U32()
		return v
	}
	b := func(pad int) bool {
		if err != nil {
			return false
		}
		var v bool
		if v, err = r.Bool(); err == nil {
			err = r.Skip(pad)
		}
		return v
	}
	str := func(read func(int) (string, error), n int) string {
		if err != nil {
			return ""
		}
		var v string
		v, err = read(n)
		return v
	}

	m.UniqueID = u64()
	m.Name = str(r.WChar, metadataNameSize)
	m.Description = str(r.Char, metadataDescriptionSize)
	m.Author = str(r.Char, metadataAuthorSize)
	m.FileType = int32(u32())
	m.AuthorIsOnline = b(3)
	m.AuthorID = u64()
	m.Size = u64()
	m.Date = u64()
	m.LengthSeconds = u32()
	m.CampaignID = int32(u32())
	m.MapID = int32(u32())
	m.GameEngineType = int32(u32())
	m.CampaignDifficulty = int32(u32())
	if err == nil {
		m.InsertionPoint, err = r.I8()
	}
	m.IsSurvival = b(2)
	m.GameID = u64()
	return err
}

// Bit widths of the packed metadata inside variants.
const (
	metadataFileTypeBits   = 5
	metadataEngineBits     = 4
	metadataDifficultyBits = 3
)

// encodeBits writes the packed form embedded in variant bodies.
func (m *ContentItemMetadata) encodeBits(w *bitstream.Writer) error {
	if err := steps(
		func() error { return w.WriteInteger(m.UniqueID, 64) },
		func() error { return w.WriteStringWchar(m.Name, metadataNameSize) },
		func() error { return w.WriteStringUTF8(m.Description, metadataDescriptionSize) },
		func() error { return w.WriteStringUTF8(m.Author, metadataAuthorSize) },
		func() error { return w.WriteSignedInteger(int64(m.FileType), metadataFileTypeBits) },
		func() error { return w.WriteBool(m.AuthorIsOnline) },
		func() error { return w.WriteInteger(m.AuthorID, 64) },
		func() error { return w.WriteInteger(m.Size, 64) },
		func() error { return w.WriteInteger(m.Date, 64) },
		func() error { return w.WriteInteger(uint64(m.LengthSeconds), 32) },
		func() error { return w.WriteSignedInteger(int64(m.CampaignID), 32) },
		func() error { return w.WriteSignedInteger(int64(m.MapID), 32) },
		func() error { return w.WriteSignedInteger(int64(m.GameEngineType), metadataEngineBits) },
		func() error { return w.WriteSignedInteger(int64(m.CampaignDifficulty), metadataDifficultyBits) },
		func() error { return w.WriteSignedInteger(int64(m.InsertionPoint), 8) },
		func() error { return w.WriteBool(m.IsSurvival) },
		func() error { return w.WriteInteger(m.GameID, 64) },
	); err != nil {
		return fmt.Errorf("metadata: %w", err)
	}
	return nil
}

func (m *ContentItemMetadata) decodeBits(r *bitstream.Reader) error {
	br := &bitReader{r: r}
	m.UniqueID = br.unsigned(64)
	m.Name = br.wchar(metadataNameSize)
	m.Description = br.utf8(metadataDescriptionSize)
	m.Author = br.utf8(metadataAuthorSize)
	m.FileType = int32(br.signed(metadataFileTypeBits))
	m.AuthorIsOnline = br.flag()
	m.AuthorID = br.unsigned(64)
	m.Size = br.unsigned(64)
	m.Date = br.unsigned(64)
	m.LengthSeconds = uint32(br.unsigned(32))
	m.CampaignID = int32(br.signed(32))
	m.MapID = int32(br.signed(32))
	m.GameEngineType = int32(br.signed(metadataEngineBits))
	m.CampaignDifficulty = int32(br.signed(metadataDifficultyBits))
	m.InsertionPoint = int8(br.signed(8))
	m.IsSurvival = br.flag()
	m.GameID = br.unsigned(64)
	if br.err != nil {
		return fmt.Errorf("metadata: %w", br.err)
	}
	return nil
}
