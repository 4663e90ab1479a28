package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexString is a string that also accepts JSON numbers on decode.
//
// The backend emits integer primary keys and decimal scores either as numbers
// or as quoted strings depending on the serializer, so identifiers and scores
// are kept opaque on the client side.
type FlexString string

// UnmarshalJSON implements [json.Unmarshaler].
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("flex string: unsupported value %s", string(b))
	}
	*f = FlexString(n.String())
	return nil
}

// String implements [fmt.Stringer].
func (f FlexString) String() string {
	return string(f)
}
