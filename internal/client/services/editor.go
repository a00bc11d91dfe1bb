package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/sitecms/internal/client/catalog"
	"github.com/dmitrijs2005/sitecms/internal/client/client"
	"github.com/dmitrijs2005/sitecms/internal/client/drafts"
	"github.com/dmitrijs2005/sitecms/internal/client/models"
	"github.com/dmitrijs2005/sitecms/internal/client/repositories/stash"
	"github.com/dmitrijs2005/sitecms/internal/client/validation"
	"github.com/dmitrijs2005/sitecms/internal/logging"
	"github.com/dmitrijs2005/sitecms/internal/netx"
)

// Editor edits the Draft Collection of one entity and reconciles it with
// the Gateway. Edits stay in memory until Save; after every successful
// change the whole collection is re-fetched so it mirrors server truth.
//
// An Editor is safe for concurrent use. Two saves of the same draft never
// overlap: the second one fails with ErrSaveInFlight.
type Editor struct {
	entity    catalog.Entity
	gateway   client.Gateway
	store     *drafts.Store
	validator *validation.Validator
	stash     stash.Repository
	notifier  Notifier
	log       logging.Logger
	now       func() time.Time

	onUnauthorized func(ctx context.Context)

	mu     sync.Mutex
	errSet validation.ErrorSet
}

// EditorOption customises an Editor.
type EditorOption func(*Editor)

func WithNotifier(n Notifier) EditorOption {
	return func(e *Editor) { e.notifier = n }
}

func WithLogger(l logging.Logger) EditorOption {
	return func(e *Editor) { e.log = l }
}

// WithStash enables Stash and Restore.
func WithStash(r stash.Repository) EditorOption {
	return func(e *Editor) { e.stash = r }
}

// WithUnauthorizedHook registers fn to run whenever the Gateway refuses the
// session token.
func WithUnauthorizedHook(fn func(ctx context.Context)) EditorOption {
	return func(e *Editor) { e.onUnauthorized = fn }
}

// WithClock overrides time.Now, which stamps new local drafts.
func WithClock(now func() time.Time) EditorOption {
	return func(e *Editor) { e.now = now }
}

func NewEditor(entity catalog.Entity, gateway client.Gateway, opts ...EditorOption) *Editor {
	e := &Editor{
		entity:    entity,
		gateway:   gateway,
		store:     drafts.New(entity),
		validator: validation.New(entity),
		notifier:  nopNotifier{},
		log:       logging.Discard(),
		now:       time.Now,
		errSet:    validation.ErrorSet{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With("entity", entity.Name)
	return e
}

func (e *Editor) Entity() catalog.Entity {
	return e.entity
}

// Load seeds the collection from the Gateway, discarding every draft.
func (e *Editor) Load(ctx context.Context) error {
	if err := e.refresh(ctx); err != nil {
		e.checkUnauthorized(ctx, err)
		return fmt.Errorf("load %s: %w", e.entity.Name, err)
	}
	e.setErrors(validation.ErrorSet{})
	return nil
}

// Drafts returns copies of the drafts in collection order; positions are
// the indexes the other methods take.
func (e *Editor) Drafts() []*models.Draft {
	return e.store.Snapshot()
}

func (e *Editor) Draft(index int) (*models.Draft, error) {
	return e.store.At(index)
}

func (e *Editor) Len() int {
	return e.store.Len()
}

// Add appends a local-only draft filled with the entity defaults.
func (e *Editor) Add() int {
	return e.store.Append(e.entity.NewDraft(e.now()))
}

// UpdateField changes one field in memory and recomputes the error set.
func (e *Editor) UpdateField(index int, field string, value any) error {
	if err := e.store.UpdateField(index, field, value); err != nil {
		return err
	}
	e.revalidate()
	return nil
}

// SetField parses raw for the field's type and applies it.
func (e *Editor) SetField(index int, field, raw string) error {
	v, err := e.entity.ParseValue(field, raw)
	if err != nil {
		return err
	}
	return e.UpdateField(index, field, v)
}

// SetImage attaches a pending upload to an image field.
func (e *Editor) SetImage(index int, field string, u models.Upload) error {
	return e.UpdateField(index, field, models.PendingImage(u))
}

// Errors returns the current validation error set.
func (e *Editor) Errors() validation.ErrorSet {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(validation.ErrorSet, len(e.errSet))
	for k, v := range e.errSet {
		out[k] = v
	}
	return out
}

// CanSave is the cheap check used to enable saving: every required field
// of every draft is filled.
func (e *Editor) CanSave() bool {
	return e.validator.Submittable(e.store.Snapshot())
}

// Save submits the draft at index. The whole collection is validated first;
// any error aborts with *ValidationError and no request. Persisted drafts
// are updated in place, local ones created. On success the collection is
// replaced by a fresh listing; on failure it is left as it was and the
// draft is marked Error.
func (e *Editor) Save(ctx context.Context, index int) error {
	errs := e.validator.Validate(e.store.Snapshot())
	e.setErrors(errs)
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	d, err := e.store.BeginSave(index)
	if err != nil {
		return err
	}

	payload := e.payload(d)
	var created models.Record
	if id, ok := d.ID.ServerID(); ok {
		err = e.gateway.Update(ctx, e.entity.ItemPath(id), e.entity.Method(), payload)
	} else {
		created, err = e.gateway.Create(ctx, e.entity.BasePath, payload)
	}

	if err != nil {
		e.store.FinishSave(d.ID, err)
		e.notifier.Notify(saveFailedNotice(e.entity.Singular()))
		e.log.Warn(ctx, "save failed", "draft", d.ID.String(), "error", err)
		e.checkUnauthorized(ctx, err)
		return fmt.Errorf("save %s %s: %w", e.entity.Name, d.ID, err)
	}

	e.store.FinishSave(d.ID, nil)
	e.notifier.Notify(savedNotice(e.entity.Singular()))
	e.log.Info(ctx, "draft saved", "draft", d.ID.String(), "multipart", payload.Multipart())
	e.forget(ctx, d.ID)

	if err := e.refresh(ctx); err != nil {
		e.log.Warn(ctx, "refresh after save failed", "error", err)
		if d.ID.Origin() == models.OriginLocal && created != nil {
			if serverID, idErr := catalog.RecordID(created); idErr == nil {
				if err := e.store.Promote(d.ID, serverID); err != nil {
					e.log.Warn(ctx, "promote after save failed", "draft", d.ID.String(), "server_id", serverID, "error", err)
				}
			}
		}
		e.checkUnauthorized(ctx, err)
		return fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	e.setErrors(validation.ErrorSet{})
	return nil
}

// Delete removes the draft at index. Local drafts go away at once. For
// persisted drafts the Gateway is asked first and the draft is dropped only
// when it agrees.
func (e *Editor) Delete(ctx context.Context, index int) error {
	d, err := e.store.At(index)
	if err != nil {
		return err
	}

	id, persisted := d.ID.ServerID()
	if !persisted {
		if err := e.store.RemoveByID(d.ID); err != nil {
			return err
		}
		e.forget(ctx, d.ID)
		e.revalidateIfShown()
		return nil
	}

	if err := e.gateway.Delete(ctx, e.entity.ItemPath(id)); err != nil {
		e.notifier.Notify(deleteFailedNotice(e.entity.Singular()))
		e.log.Warn(ctx, "delete failed", "draft", d.ID.String(), "error", err)
		e.checkUnauthorized(ctx, err)
		return fmt.Errorf("delete %s %s: %w", e.entity.Name, d.ID, err)
	}

	// the draft may have moved while the request was in flight
	_ = e.store.RemoveByID(d.ID)
	e.notifier.Notify(deletedNotice(e.entity.Singular()))
	e.log.Info(ctx, "draft deleted", "draft", d.ID.String())
	e.revalidateIfShown()
	return nil
}

// Toggle flips a boolean field. Persisted drafts are patched on the Gateway
// with that field alone and the collection is re-fetched; local drafts only
// change in memory. A patch is a save: it is refused with ErrSaveInFlight
// while another request for the same draft is pending.
func (e *Editor) Toggle(ctx context.Context, index int, field string) error {
	f, ok := e.entity.Field(field)
	if !ok {
		return fmt.Errorf("%w: %s.%s", drafts.ErrUnknownField, e.entity.Name, field)
	}
	if f.Kind != catalog.KindBool {
		return fmt.Errorf("%w: %s", ErrNotBoolean, field)
	}

	d, err := e.store.At(index)
	if err != nil {
		return err
	}
	if d.ID.Origin() == models.OriginLocal {
		return e.UpdateField(index, field, !d.Bool(field))
	}

	d, err = e.store.BeginSave(index)
	if err != nil {
		return err
	}
	id, _ := d.ID.ServerID()
	value := !d.Bool(field)

	payload := client.Payload{Fields: map[string]any{field: value}}
	err = e.gateway.Update(ctx, e.entity.ItemPath(id), http.MethodPatch, payload)
	e.store.FinishSave(d.ID, err)
	if err != nil {
		e.notifier.Notify(updateFailedNotice(e.entity.Singular()))
		e.log.Warn(ctx, "toggle failed", "draft", d.ID.String(), "field", field, "error", err)
		e.checkUnauthorized(ctx, err)
		return fmt.Errorf("toggle %s %s: %w", field, d.ID, err)
	}
	e.notifier.Notify(updatedNotice(e.entity.Singular()))

	if err := e.refresh(ctx); err != nil {
		// the Gateway has the new value; mirror it locally
		if i := e.store.IndexOf(d.ID); i >= 0 {
			_ = e.store.UpdateField(i, field, value)
		}
		e.checkUnauthorized(ctx, err)
		return fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	return nil
}

// Import adds records exported by the browser admin. Bare numeric ids are
// classified with models.OriginFromNumericID: persisted ones replace the
// draft with the same id, the rest become local drafts.
func (e *Editor) Import(records []models.Record) (int, error) {
	now := e.now()
	ds := make([]*models.Draft, 0, len(records))
	for i, rec := range records {
		d, err := e.entity.DraftFromExport(rec, now)
		if err != nil {
			return 0, fmt.Errorf("import %s record %d: %w", e.entity.Name, i, err)
		}
		ds = append(ds, d)
	}
	for _, d := range ds {
		e.store.Put(d)
	}
	e.revalidateIfShown()
	return len(ds), nil
}

// Export renders the collection, sorted by the order field when the entity
// has one.
func (e *Editor) Export() []models.Record {
	ordered := e.store.Ordered()
	out := make([]models.Record, 0, len(ordered))
	for _, d := range ordered {
		out = append(out, e.entity.Export(d))
	}
	return out
}

// Stash writes every local-only draft to local storage and reports how many.
func (e *Editor) Stash(ctx context.Context) (int, error) {
	if e.stash == nil {
		return 0, ErrNoStash
	}
	n := 0
	for _, d := range e.store.Snapshot() {
		if d.ID.Origin() != models.OriginLocal {
			continue
		}
		if err := e.stash.Save(ctx, e.entity.Name, d); err != nil {
			return n, fmt.Errorf("stash %s: %w", d.ID, err)
		}
		n++
	}
	return n, nil
}

// Restore moves the stashed drafts of this entity into the collection.
func (e *Editor) Restore(ctx context.Context) (int, error) {
	if e.stash == nil {
		return 0, ErrNoStash
	}
	ds, err := e.stash.List(ctx, e.entity.Name)
	if err != nil {
		return 0, fmt.Errorf("restore %s: %w", e.entity.Name, err)
	}
	for _, d := range ds {
		e.store.Put(d)
	}
	if _, err := e.stash.Clear(ctx, e.entity.Name); err != nil {
		return len(ds), fmt.Errorf("clear stash %s: %w", e.entity.Name, err)
	}
	e.revalidateIfShown()
	return len(ds), nil
}

func (e *Editor) refresh(ctx context.Context) error {
	recs, err := e.gateway.List(ctx, e.entity.BasePath)
	if err != nil {
		return err
	}
	ds, err := e.entity.DraftsFromRecords(recs)
	if err != nil {
		return err
	}
	e.store.ReplaceAll(ds)
	return nil
}

// payload sends scalars as JSON, or everything as multipart when an image
// field holds a new upload. Stored image paths are never sent back.
func (e *Editor) payload(d *models.Draft) client.Payload {
	p := client.Payload{Fields: e.entity.ScalarFields(d)}
	for _, u := range e.entity.Uploads(d) {
		p.Files = append(p.Files, netx.FilePart{
			Field:       u.Field,
			Filename:    u.Upload.Filename,
			ContentType: u.Upload.ContentType,
			Data:        u.Upload.Data,
		})
	}
	return p
}

// forget drops a local draft from the stash once it no longer needs to be
// kept there.
func (e *Editor) forget(ctx context.Context, id models.DraftID) {
	if e.stash == nil || id.Origin() != models.OriginLocal {
		return
	}
	if err := e.stash.Delete(ctx, id); err != nil {
		e.log.Debug(ctx, "stash cleanup failed", "draft", id.String(), "error", err)
	}
}

func (e *Editor) checkUnauthorized(ctx context.Context, err error) {
	if e.onUnauthorized != nil && client.IsUnauthorized(err) {
		e.onUnauthorized(ctx)
	}
}

func (e *Editor) setErrors(errs validation.ErrorSet) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errSet = errs
}

func (e *Editor) revalidate() {
	e.setErrors(e.validator.Validate(e.store.Snapshot()))
}

// revalidateIfShown keeps a visible error set in step with shifted indexes.
func (e *Editor) revalidateIfShown() {
	e.mu.Lock()
	shown := len(e.errSet) > 0
	e.mu.Unlock()
	if shown {
		e.revalidate()
	}
}
