package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/sitecms/internal/client/models"
	"github.com/google/uuid"
)

// DraftFromRecord turns a Gateway record into a Persisted draft. Fields the
// entity does not know are dropped; missing ones get their defaults.
func (e Entity) DraftFromRecord(rec models.Record) (*models.Draft, error) {
	id, err := RecordID(rec)
	if err != nil {
		return nil, err
	}
	return e.draftWithID(models.PersistedID(id), rec)
}

// DraftsFromRecords converts a whole listing, failing on the first bad record.
func (e Entity) DraftsFromRecords(recs []models.Record) ([]*models.Draft, error) {
	out := make([]*models.Draft, 0, len(recs))
	for i, rec := range recs {
		d, err := e.DraftFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%s record %d: %w", e.Name, i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// DraftFromExport turns a record exported by the browser admin, whose id is
// a bare number, into a draft. The id is classified with
// models.OriginFromNumericID; records without an id become local drafts.
// A local key always maps to the same token, so importing a file twice
// replaces its local drafts instead of adding copies.
func (e Entity) DraftFromExport(rec models.Record, now time.Time) (*models.Draft, error) {
	raw, err := RecordID(rec)
	switch {
	case err != nil:
		return e.draftWithID(models.NewLocalID(now), rec)
	case models.OriginFromNumericID(raw, now) == models.OriginPersisted:
		return e.draftWithID(models.PersistedID(raw), rec)
	default:
		return e.draftWithID(models.LocalIDFrom(e.importToken(raw), time.UnixMilli(raw)), rec)
	}
}

func (e Entity) importToken(key int64) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("sitecms:"+e.Name+"/"+strconv.FormatInt(key, 10)))
}

// Export renders a draft as a record. Persisted drafts carry their server id,
// local ones their millisecond key, so re-importing classifies them again.
func (e Entity) Export(d *models.Draft) models.Record {
	rec := models.Record{"id": d.ID.Key()}
	for _, f := range e.Fields {
		v := d.Fields[f.Name]
		if img, ok := v.(models.Image); ok {
			rec[f.Name] = img.Path
			continue
		}
		rec[f.Name] = v
	}
	return rec
}

func (e Entity) draftWithID(id models.DraftID, rec models.Record) (*models.Draft, error) {
	d := &models.Draft{ID: id, Fields: make(map[string]any, len(e.Fields))}
	for _, f := range e.Fields {
		raw, present := rec[f.Name]
		if !present || raw == nil {
			d.Fields[f.Name] = f.zero()
			continue
		}
		v, err := coerce(f, raw)
		if err != nil {
			return nil, err
		}
		d.Fields[f.Name] = v
	}
	return d, nil
}

// RecordID extracts the integer id of a Gateway record.
func RecordID(rec models.Record) (int64, error) {
	raw, ok := rec["id"]
	if !ok || raw == nil {
		return 0, ErrMissingID
	}
	id, err := toInt(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMissingID, err)
	}
	return id, nil
}

func coerce(f Field, raw any) (any, error) {
	switch f.Kind {
	case KindBool:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %s=%q", ErrInvalidValue, f.Name, v)
			}
			return b, nil
		}
	case KindInt:
		n, err := toInt(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidValue, f.Name, err)
		}
		return n, nil
	case KindImage:
		if s, ok := raw.(string); ok {
			return models.StoredImage(s), nil
		}
	default:
		switch v := raw.(type) {
		case string:
			return v, nil
		case json.Number:
			return v.String(), nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		case bool:
			return strconv.FormatBool(v), nil
		}
	}
	return nil, fmt.Errorf("%w: %s has unexpected %T", ErrInvalidValue, f.Name, raw)
}

func toInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case json.Number:
		return v.Int64()
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("not a number: %T", raw)
	}
}

// FieldUpload is a pending image upload bound to its field.
type FieldUpload struct {
	Field  string
	Upload models.Upload
}

// ScalarFields returns every non-image field of d. Stored image paths are
// left out: the Gateway keeps the current image unless a new one is sent.
func (e Entity) ScalarFields(d *models.Draft) map[string]any {
	out := make(map[string]any, len(e.Fields))
	for _, f := range e.Fields {
		if f.Kind == KindImage {
			continue
		}
		v, ok := d.Fields[f.Name]
		if !ok {
			v = f.zero()
		}
		out[f.Name] = v
	}
	return out
}

// Uploads lists the image fields of d that carry unsubmitted data, in
// field declaration order.
func (e Entity) Uploads(d *models.Draft) []FieldUpload {
	var out []FieldUpload
	for _, f := range e.Fields {
		if f.Kind != KindImage {
			continue
		}
		if img := d.Image(f.Name); img.Pending() {
			out = append(out, FieldUpload{Field: f.Name, Upload: *img.Upload})
		}
	}
	return out
}
