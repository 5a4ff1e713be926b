package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexString is a string that also accepts a JSON number, as tweet ids
// arrive either way depending on how the upstream exported them.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("flex string: %w", err)
	}
	raw := n.String()
	if strings.ContainsAny(raw, ".eE") {
		v, err := n.Float64()
		if err != nil {
			return fmt.Errorf("flex string: %w", err)
		}
		raw = strconv.FormatFloat(v, 'f', -1, 64)
	}
	*f = FlexString(raw)
	return nil
}

// FlexFloat is an optional number that also accepts a numeric string.
// Any other value, including null and non-numeric strings, decodes as
// absent rather than failing the enclosing record.
type FlexFloat struct {
	Value *float64
}

// UnmarshalJSON implements json.Unmarshaler. It never returns an error.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	f.Value = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	var raw string
	switch data[0] {
	case '"':
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		raw = strings.TrimSpace(raw)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		raw = string(data)
	default:
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	f.Value = &v
	return nil
}
