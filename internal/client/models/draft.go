package models

import "fmt"

// SaveStatus tracks one draft's save attempt.
type SaveStatus int

const (
	StatusIdle SaveStatus = iota
	StatusSaving
	StatusError
)

func (s SaveStatus) String() string {
	switch s {
	case StatusSaving:
		return "saving"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Record is one entity object as the Gateway encodes it in JSON.
type Record map[string]any

// Draft is one entity instance being edited. Field values are string, bool,
// int64 or Image.
type Draft struct {
	ID     DraftID
	Fields map[string]any
	Status SaveStatus
}

// Clone returns a deep copy; uploads are copied byte for byte.
func (d *Draft) Clone() *Draft {
	out := &Draft{ID: d.ID, Status: d.Status, Fields: make(map[string]any, len(d.Fields))}
	for k, v := range d.Fields {
		if img, ok := v.(Image); ok {
			v = img.Clone()
		}
		out.Fields[k] = v
	}
	return out
}

func (d *Draft) Text(field string) string {
	switch v := d.Fields[field].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (d *Draft) Bool(field string) bool {
	v, _ := d.Fields[field].(bool)
	return v
}

func (d *Draft) Int(field string) int64 {
	v, _ := d.Fields[field].(int64)
	return v
}

func (d *Draft) Image(field string) Image {
	v, _ := d.Fields[field].(Image)
	return v
}

// PendingUploads reports whether any image field carries unsubmitted data.
func (d *Draft) PendingUploads() bool {
	for _, v := range d.Fields {
		if img, ok := v.(Image); ok && img.Pending() {
			return true
		}
	}
	return false
}
