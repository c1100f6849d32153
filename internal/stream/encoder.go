// Package stream writes snapshots to a byte stream, one record per tick.
package stream

import (
	"encoding/json"
	"fmt"
	"io"

	"actiowatch/internal/config"
	"actiowatch/internal/domain"

	"github.com/fxamacker/cbor/v2"
)

type Encoder interface {
	Encode(snap domain.SystemSnapshot) error
}

// NewEncoder returns newline-delimited JSON or a sequence of CBOR items.
func NewEncoder(w io.Writer, format string) (Encoder, error) {
	switch format {
	case config.StreamJSON, "":
		return &jsonEncoder{enc: json.NewEncoder(w)}, nil
	case config.StreamCBOR:
		mode, err := cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
		if err != nil {
			return nil, fmt.Errorf("cbor encoder: %w", err)
		}
		return &cborEncoder{enc: mode.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("unknown stream format %q", format)
	}
}

type jsonEncoder struct {
	enc *json.Encoder
}

func (j *jsonEncoder) Encode(snap domain.SystemSnapshot) error {
	return j.enc.Encode(snap)
}

type cborEncoder struct {
	enc *cbor.Encoder
}

func (c *cborEncoder) Encode(snap domain.SystemSnapshot) error {
	return c.enc.Encode(snap)
}
