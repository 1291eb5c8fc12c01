package export

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/golang/snappy"
)

// Type represents the compression applied to an exported file.
type Type string

const (
	// TypeNone writes the CSV as-is.
	TypeNone Type = ""
	// TypeGzip favors ratio over speed.
	TypeGzip Type = "gzip"
	// TypeSnappy favors speed over ratio.
	TypeSnappy Type = "snappy"
)

// ParseType validates a configured compression name.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeNone, TypeGzip, TypeSnappy:
		return Type(s), nil
	default:
		return TypeNone, fmt.Errorf("unsupported compression type: %s", s)
	}
}

// Extension returns the file suffix appended for the compression type.
func Extension(t Type) string {
	switch t {
	case TypeGzip:
		return ".gz"
	case TypeSnappy:
		return ".sz"
	default:
		return ""
	}
}

// Compress encodes src with the given compression type.
func Compress(src []byte, t Type) ([]byte, error) {
	switch t {
	case TypeNone:
		return src, nil
	case TypeSnappy:
		return snappy.Encode(nil, src), nil
	case TypeGzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(src); err != nil {
			w.Close()
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported compression type: %s", t)
	}
}

// Decompress reverses Compress. Used by tests and by tooling that inspects
// exported files.
func Decompress(src []byte, t Type) ([]byte, error) {
	switch t {
	case TypeNone:
		return src, nil
	case TypeSnappy:
		return snappy.Decode(nil, src)
	case TypeGzip:
		r, err := gzip.NewReader(bytes.NewReader(src))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	default:
		return nil, fmt.Errorf("unsupported compression type: %s", t)
	}
}
