package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// NumericKind tells whether a configuration value is integer or floating point.
type NumericKind int

const (
	// KindInt is used for count-like keys such as d_model or batch_size.
	KindInt NumericKind = iota
	// KindFloat is used for rate-like keys such as lr.
	KindFloat
)

// String returns the kind name.
func (k NumericKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("NumericKind(%d)", int(k))
	}
}

// ErrInvalidConfigValue is returned when a JSON config value is not a number.
var ErrInvalidConfigValue = errors.New("config value must be a JSON number")

// ConfigValue is a numeric configuration value that remembers its kind.
// Integer values encode without a fraction and float values always carry a
// decimal point or exponent, so the kind survives a JSON round trip.
type ConfigValue struct {
	kind NumericKind
	i    int64
	f    float64
}

// IntValue returns an integer ConfigValue.
func IntValue(v int64) ConfigValue {
	return ConfigValue{kind: KindInt, i: v}
}

// FloatValue returns a floating point ConfigValue.
func FloatValue(v float64) ConfigValue {
	return ConfigValue{kind: KindFloat, f: v}
}

// Kind returns the numeric kind of the value.
func (v ConfigValue) Kind() NumericKind {
	return v.kind
}

// Int returns the value as an integer. Float values are truncated.
func (v ConfigValue) Int() int64 {
	if v.kind == KindFloat {
		return int64(v.f)
	}
	return v.i
}

// Float returns the value as a float64.
func (v ConfigValue) Float() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// String formats the value the same way it is encoded in JSON.
func (v ConfigValue) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	}
	return string(b)
}

// MarshalJSON implements json.Marshaler.
func (v ConfigValue) MarshalJSON() ([]byte, error) {
	if v.kind == KindInt {
		return strconv.AppendInt(nil, v.i, 10), nil
	}
	b, err := json.Marshal(v.f)
	if err != nil {
		return nil, err
	}
	if !bytes.ContainsAny(b, ".eE") {
		b = append(b, ".0"...)
	}
	return b, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *ConfigValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == '"' || string(trimmed) == "null" {
		return ErrInvalidConfigValue
	}
	s := string(trimmed)
	if !bytes.ContainsAny(trimmed, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			*v = IntValue(i)
			return nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfigValue, s)
	}
	*v = FloatValue(f)
	return nil
}

// ConfigMap maps known hyperparameter names to their values.
// Keys that were not found in a log are absent.
type ConfigMap map[string]ConfigValue
