// Package catalog describes every content type the admin console edits:
// where the Gateway serves it, which fields it has and how they are checked.
package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/sitecms/internal/client/models"
)

// FieldKind is the value type of a field.
type FieldKind int

const (
	KindString FieldKind = iota
	KindText
	KindBool
	KindInt
	KindImage
)

func (k FieldKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindImage:
		return "image"
	default:
		return "string"
	}
}

var (
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidValue = errors.New("invalid value")
	ErrMissingID    = errors.New("record has no id")
)

// Field describes one attribute of an entity.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	// MaxLen limits string length in characters; zero means unlimited.
	MaxLen  int
	Default any
}

// IsString reports whether the field holds free text.
func (f Field) IsString() bool {
	return f.Kind == KindString || f.Kind == KindText
}

func (f Field) zero() any {
	if f.Default != nil {
		return f.Default
	}
	switch f.Kind {
	case KindBool:
		return false
	case KindInt:
		return int64(0)
	case KindImage:
		return models.Image{}
	default:
		return ""
	}
}

// Entity is one content type served by the Gateway under BasePath.
type Entity struct {
	Name        string
	DisplayName string
	Noun        string
	BasePath    string
	Fields      []Field
	// UpdateMethod is PUT unless the Gateway only patches this type.
	UpdateMethod string
}

func (e Entity) Field(name string) (Field, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Singular names one record in messages, e.g. "Testimonial". It falls
// back to DisplayName when Noun is unset.
func (e Entity) Singular() string {
	if e.Noun == "" {
		return e.DisplayName
	}
	return e.Noun
}

func (e Entity) Method() string {
	if e.UpdateMethod == "" {
		return http.MethodPut
	}
	return e.UpdateMethod
}

// ItemPath is the address of one record: {base}{id}/.
func (e Entity) ItemPath(id int64) string {
	return fmt.Sprintf("%s%d/", e.BasePath, id)
}

// OrderField returns the name of the integer field controlling presentation
// order, if the entity has one.
func (e Entity) OrderField() (string, bool) {
	f, ok := e.Field("order")
	if !ok || f.Kind != KindInt {
		return "", false
	}
	return f.Name, true
}

// NewDraft returns a LocalOnly draft pre-filled with field defaults.
func (e Entity) NewDraft(now time.Time) *models.Draft {
	d := &models.Draft{ID: models.NewLocalID(now), Fields: make(map[string]any, len(e.Fields))}
	for _, f := range e.Fields {
		d.Fields[f.Name] = f.zero()
	}
	return d
}

// ParseValue converts console input into the field's value type.
func (e Entity) ParseValue(name, raw string) (any, error) {
	f, ok := e.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, e.Name, name)
	}
	switch f.Kind {
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects true/false", ErrInvalidValue, name)
		}
		return b, nil
	case KindInt:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects an integer", ErrInvalidValue, name)
		}
		return n, nil
	case KindImage:
		return models.StoredImage(strings.TrimSpace(raw)), nil
	default:
		return raw, nil
	}
}

// CheckValue verifies that v has the Go type the field stores.
func (e Entity) CheckValue(name string, v any) error {
	f, ok := e.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, e.Name, name)
	}
	var ok2 bool
	switch f.Kind {
	case KindBool:
		_, ok2 = v.(bool)
	case KindInt:
		_, ok2 = v.(int64)
	case KindImage:
		_, ok2 = v.(models.Image)
	default:
		_, ok2 = v.(string)
	}
	if !ok2 {
		return fmt.Errorf("%w: %s is a %s field, got %T", ErrInvalidValue, name, f.Kind, v)
	}
	return nil
}
