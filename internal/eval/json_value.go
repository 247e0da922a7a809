package eval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// JSONKind identifies the concrete type stored in a JSONValue.
type JSONKind int

const (
	JSONNull JSONKind = iota
	JSONString
	JSONNumber
	JSONBool
	JSONObject
	JSONArray
)

// String returns the JSON type name for the kind.
func (k JSONKind) String() string {
	switch k {
	case JSONNull:
		return "null"
	case JSONString:
		return "string"
	case JSONNumber:
		return "number"
	case JSONBool:
		return "boolean"
	case JSONObject:
		return "object"
	case JSONArray:
		return "array"
	default:
		return "unknown"
	}
}

// JSONValue represents an arbitrary JSON value without using empty interfaces.
// Numbers keep their literal text so integer checks stay exact.
type JSONValue struct {
	Kind   JSONKind
	String string
	Number json.Number
	Bool   bool
	Object map[string]JSONValue
	Array  []JSONValue
}

// ParseJSON decodes exactly one JSON value from data. Trailing data is an error.
func ParseJSON(data []byte) (JSONValue, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	value, err := decodeValue(decoder)
	if err != nil {
		return JSONValue{}, err
	}
	if _, err := decoder.Token(); err != io.EOF {
		if err == nil {
			return JSONValue{}, errors.New("unexpected data after top-level value")
		}
		return JSONValue{}, err
	}
	return value, nil
}

// UnmarshalJSON decodes a JSON value into the typed JSONValue representation.
func (v *JSONValue) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON encodes the value back into JSON.
func (v JSONValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToInterface())
}

func decodeValue(decoder *json.Decoder) (JSONValue, error) {
	token, err := decoder.Token()
	if err == io.EOF {
		return JSONValue{}, io.ErrUnexpectedEOF
	}
	if err != nil {
		return JSONValue{}, err
	}
	switch typed := token.(type) {
	case json.Delim:
		switch typed {
		case '{':
			return decodeObject(decoder)
		case '[':
			return decodeArray(decoder)
		default:
			return JSONValue{}, fmt.Errorf("unexpected delimiter %q", rune(typed))
		}
	case string:
		return JSONValue{Kind: JSONString, String: typed}, nil
	case json.Number:
		return JSONValue{Kind: JSONNumber, Number: typed}, nil
	case bool:
		return JSONValue{Kind: JSONBool, Bool: typed}, nil
	case nil:
		return JSONValue{Kind: JSONNull}, nil
	default:
		return JSONValue{}, fmt.Errorf("unexpected token %v", token)
	}
}

func decodeObject(decoder *json.Decoder) (JSONValue, error) {
	object := map[string]JSONValue{}
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return JSONValue{}, err
		}
		key, ok := keyToken.(string)
		if !ok {
			return JSONValue{}, fmt.Errorf("object key must be a string")
		}
		child, err := decodeValue(decoder)
		if err != nil {
			return JSONValue{}, err
		}
		object[key] = child
	}
	if _, err := decoder.Token(); err != nil {
		return JSONValue{}, err
	}
	return JSONValue{Kind: JSONObject, Object: object}, nil
}

func decodeArray(decoder *json.Decoder) (JSONValue, error) {
	array := make([]JSONValue, 0)
	for decoder.More() {
		child, err := decodeValue(decoder)
		if err != nil {
			return JSONValue{}, err
		}
		array = append(array, child)
	}
	if _, err := decoder.Token(); err != nil {
		return JSONValue{}, err
	}
	return JSONValue{Kind: JSONArray, Array: array}, nil
}

// ObjectValue returns the object map when the value is an object.
func (v JSONValue) ObjectValue() (map[string]JSONValue, bool) {
	if v.Kind != JSONObject {
		return nil, false
	}
	return v.Object, true
}

// StringValue returns the string when the value is a string.
func (v JSONValue) StringValue() (string, bool) {
	if v.Kind != JSONString {
		return "", false
	}
	return v.String, true
}

// Field returns an object member. Missing members and non-objects report false.
func (v JSONValue) Field(name string) (JSONValue, bool) {
	if v.Kind != JSONObject {
		return JSONValue{}, false
	}
	field, ok := v.Object[name]
	return field, ok
}

// StringField returns an object member only when it holds a string.
func (v JSONValue) StringField(name string) (string, bool) {
	field, ok := v.Field(name)
	if !ok {
		return "", false
	}
	return field.StringValue()
}

// ToInterface converts the JSONValue into standard Go JSON types.
func (v JSONValue) ToInterface() any {
	switch v.Kind {
	case JSONObject:
		out := make(map[string]any, len(v.Object))
		for key, value := range v.Object {
			out[key] = value.ToInterface()
		}
		return out
	case JSONArray:
		out := make([]any, 0, len(v.Array))
		for _, value := range v.Array {
			out = append(out, value.ToInterface())
		}
		return out
	case JSONString:
		return v.String
	case JSONNumber:
		return v.Number
	case JSONBool:
		return v.Bool
	default:
		return nil
	}
}
