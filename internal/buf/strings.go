package buf

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/blfkit/pkg/types"
)

// char fields are Windows-1252 on every title we handle.
func encodeChar(s string, n int) ([]byte, error) {
	enc, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, types.Errorf(types.ErrKindEncoding, fmt.Sprintf("char[%d] %q", n, s), err)
	}
	if len(enc) > n {
		return nil, types.Errorf(types.ErrKindEncoding,
			fmt.Sprintf("char[%d]: %d bytes do not fit", n, len(enc)), types.ErrInvalidEncoding)
	}
	out := make([]byte, n)
	copy(out, enc)
	return out, nil
}

func decodeChar(b []byte) (string, error) {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	dec, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return "", types.Errorf(types.ErrKindEncoding, "char field", err)
	}
	return string(dec), nil
}

func utf16For(order binary.ByteOrder) encoding.Encoding {
	if order == binary.LittleEndian {
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	}
	return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
}

func encodeWChar(s string, n int, order binary.ByteOrder) ([]byte, error) {
	enc, err := utf16For(order).NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, types.Errorf(types.ErrKindEncoding, fmt.Sprintf("wchar[%d] %q", n, s), err)
	}
	if len(enc) > 2*n {
		return nil, types.Errorf(types.ErrKindEncoding,
			fmt.Sprintf("wchar[%d]: %d code units do not fit", n, len(enc)/2), types.ErrInvalidEncoding)
	}
	out := make([]byte, 2*n)
	copy(out, enc)
	return out, nil
}

func decodeWChar(b []byte, order binary.ByteOrder) (string, error) {
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			b = b[:i]
			break
		}
	}
	dec, err := utf16For(order).NewDecoder().Bytes(b)
	if err != nil {
		return "", types.Errorf(types.ErrKindEncoding, "wchar field", err)
	}
	return string(dec), nil
}
