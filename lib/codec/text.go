// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding"
	"fmt"
	"strconv"
	"strings"
)

// Text returns the plain-text codec for scalar values: strings, byte
// slices, booleans, integers, floats, and any type implementing
// encoding.TextMarshaler / encoding.TextUnmarshaler. The on-disk form
// is the value's text representation with a trailing newline.
func Text() Codec {
	return textCodec{}
}

type textCodec struct{}

func (textCodec) Name() string { return "text" }
func (textCodec) Ext() string  { return "txt" }

func (textCodec) Marshal(v any) ([]byte, error) {
	var text string
	switch value := v.(type) {
	case string:
		text = value
	case []byte:
		text = string(value)
	case encoding.TextMarshaler:
		marshaled, err := value.MarshalText()
		if err != nil {
			return nil, encodeError("text", err)
		}
		text = string(marshaled)
	case bool:
		text = strconv.FormatBool(value)
	case int:
		text = strconv.Itoa(value)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		text = fmt.Sprintf("%d", value)
	case float32:
		text = strconv.FormatFloat(float64(value), 'g', -1, 32)
	case float64:
		text = strconv.FormatFloat(value, 'g', -1, 64)
	default:
		return nil, encodeError("text", fmt.Errorf("unsupported type %T", v))
	}
	return append([]byte(text), '\n'), nil
}

func (textCodec) Unmarshal(data []byte, v any) error {
	// The canonical form carries one trailing newline; values keep
	// any interior whitespace.
	text := strings.TrimSuffix(string(data), "\n")

	switch target := v.(type) {
	case *string:
		*target = text
	case *[]byte:
		*target = []byte(text)
	case encoding.TextUnmarshaler:
		if err := target.UnmarshalText([]byte(text)); err != nil {
			return decodeError("text", err)
		}
	case *bool:
		parsed, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return decodeError("text", err)
		}
		*target = parsed
	case *int:
		parsed, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return decodeError("text", err)
		}
		*target = parsed
	case *int64:
		parsed, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return decodeError("text", err)
		}
		*target = parsed
	case *uint64:
		parsed, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return decodeError("text", err)
		}
		*target = parsed
	case *float64:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return decodeError("text", err)
		}
		*target = parsed
	default:
		return decodeError("text", fmt.Errorf("unsupported target type %T", v))
	}
	return nil
}
