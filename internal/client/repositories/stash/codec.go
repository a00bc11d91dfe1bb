package stash

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/sitecms/internal/client/models"
)

const (
	typeString = "string"
	typeBool   = "bool"
	typeInt    = "int"
	typeImage  = "image"
)

type storedValue struct {
	Type   string         `json:"t"`
	String string         `json:"s,omitempty"`
	Bool   bool           `json:"b,omitempty"`
	Int    int64          `json:"i,omitempty"`
	Path   string         `json:"p,omitempty"`
	Upload *models.Upload `json:"u,omitempty"`
}

func encodeFields(fields map[string]any) ([]byte, error) {
	out := make(map[string]storedValue, len(fields))
	for k, v := range fields {
		switch x := v.(type) {
		case string:
			out[k] = storedValue{Type: typeString, String: x}
		case bool:
			out[k] = storedValue{Type: typeBool, Bool: x}
		case int64:
			out[k] = storedValue{Type: typeInt, Int: x}
		case models.Image:
			out[k] = storedValue{Type: typeImage, Path: x.Path, Upload: x.Upload}
		default:
			return nil, fmt.Errorf("field %s: unsupported value %T", k, v)
		}
	}
	return json.Marshal(out)
}

func decodeFields(b []byte) (map[string]any, error) {
	var in map[string]storedValue
	if err := json.Unmarshal(b, &in); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		switch v.Type {
		case typeString:
			out[k] = v.String
		case typeBool:
			out[k] = v.Bool
		case typeInt:
			out[k] = v.Int
		case typeImage:
			out[k] = models.Image{Path: v.Path, Upload: v.Upload}
		default:
			return nil, fmt.Errorf("field %s: unknown type %q", k, v.Type)
		}
	}
	return out, nil
}
