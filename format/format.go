package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/esdata/model"
)

// Encoder renders parsed records. MarshalText returns what Encode would
// write for the records passed to the last Encode call.
type Encoder interface {
	encoding.TextMarshaler
	Encode(objects []model.Object) error
}

// New returns the encoder registered under name, "json" or "line".
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q (want json or line)", name)
}
