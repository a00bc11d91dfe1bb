package drafts

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/sitecms/internal/client/catalog"
	"github.com/dmitrijs2005/sitecms/internal/client/models"
	"github.com/dmitrijs2005/sitecms/internal/common"
)

var (
	ErrIndexOutOfRange = errors.New("draft index out of range")
	ErrUnknownField    = catalog.ErrUnknownField
	ErrNotFound        = common.ErrorNotFound
	ErrSaveInFlight    = errors.New("save already in progress")
)

// Store is an ordered collection of drafts of a single entity.
//
// Drafts between BeginSave and FinishSave are tracked apart from the
// collection, so a ReplaceAll running meanwhile keeps them Saving and keeps
// local-only ones whose create has not finished yet.
type Store struct {
	mu       sync.Mutex
	entity   catalog.Entity
	items    []*models.Draft
	inflight map[string]struct{}
}

func New(entity catalog.Entity) *Store {
	return &Store{entity: entity, inflight: make(map[string]struct{})}
}

func (s *Store) Entity() catalog.Entity {
	return s.entity
}

// ReplaceAll discards the collection and stores copies of ds in order.
// Drafts with a save in flight stay Saving; in-flight local-only drafts
// absent from ds are kept at the end until their FinishSave.
func (s *Store) ReplaceAll(ds []*models.Draft) {
	items := make([]*models.Draft, 0, len(ds))
	for _, d := range ds {
		items = append(items, d.Clone())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range items {
		d.Status = models.StatusIdle
		if _, busy := s.inflight[d.ID.String()]; busy {
			d.Status = models.StatusSaving
		}
	}
	for _, d := range s.items {
		if _, busy := s.inflight[d.ID.String()]; busy && d.ID.Origin() == models.OriginLocal {
			items = append(items, d)
		}
	}
	s.items = items
}

// UpdateField sets one field of the draft at index. The value must have the
// type the field stores.
func (s *Store) UpdateField(index int, field string, value any) error {
	if err := s.entity.CheckValue(field, value); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.at(index)
	if err != nil {
		return err
	}
	if img, ok := value.(models.Image); ok {
		value = img.Clone()
	}
	d.Fields[field] = value
	return nil
}

// Append adds a copy of d at the end and returns its index.
func (s *Store) Append(d *models.Draft) int {
	c := d.Clone()
	c.Status = models.StatusIdle

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, c)
	return len(s.items) - 1
}

// Put replaces the draft having the same id as d, or appends d when there is
// none. It returns the index d ends up at.
func (s *Store) Put(d *models.Draft) int {
	c := d.Clone()
	c.Status = models.StatusIdle

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[c.ID.String()]; busy {
		c.Status = models.StatusSaving
	}
	if i := s.indexOf(c.ID); i >= 0 {
		s.items[i] = c
		return i
	}
	s.items = append(s.items, c)
	return len(s.items) - 1
}

// RemoveAt drops the draft at index and returns it.
func (s *Store) RemoveAt(index int) (*models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.at(index)
	if err != nil {
		return nil, err
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return d, nil
}

// RemoveByID drops the draft with the given id wherever it currently sits.
func (s *Store) RemoveByID(id models.DraftID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

// Snapshot returns copies of all drafts in collection order.
func (s *Store) Snapshot() []*models.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Draft, len(s.items))
	for i, d := range s.items {
		out[i] = d.Clone()
	}
	return out
}

// Ordered returns Snapshot sorted by the entity's order field, when it has
// one. Ties keep collection order.
func (s *Store) Ordered() []*models.Draft {
	out := s.Snapshot()
	name, ok := s.entity.OrderField()
	if !ok {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Int(name) < out[j].Int(name)
	})
	return out
}

func (s *Store) At(index int) (*models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.at(index)
	if err != nil {
		return nil, err
	}
	return d.Clone(), nil
}

// IndexOf returns the current position of the draft with id, or -1.
func (s *Store) IndexOf(id models.DraftID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// BeginSave marks the draft at index as Saving and returns a copy of it to
// submit. A draft already Saving is rejected with ErrSaveInFlight.
func (s *Store) BeginSave(index int) (*models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.at(index)
	if err != nil {
		return nil, err
	}
	if _, busy := s.inflight[d.ID.String()]; busy || d.Status == models.StatusSaving {
		return nil, fmt.Errorf("%w: %s", ErrSaveInFlight, d.ID)
	}
	s.inflight[d.ID.String()] = struct{}{}
	d.Status = models.StatusSaving
	return d.Clone(), nil
}

// FinishSave ends the save started by BeginSave. A nil err leaves the draft
// Idle, anything else marks it Error. A draft that is gone, for instance
// after a refresh, is ignored.
func (s *Store) FinishSave(id models.DraftID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inflight, id.String())
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	if err != nil {
		s.items[i].Status = models.StatusError
		return
	}
	s.items[i].Status = models.StatusIdle
}

// Promote gives the local draft localID the server id the Gateway assigned.
// When a draft with that server id is already present, brought in by
// another refresh, the local copy is dropped instead.
func (s *Store) Promote(localID models.DraftID, serverID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inflight, localID.String())
	i := s.indexOf(localID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, localID)
	}
	if s.indexOf(models.PersistedID(serverID)) >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
		return nil
	}
	s.items[i].ID = models.PersistedID(serverID)
	s.items[i].Status = models.StatusIdle
	return nil
}

func (s *Store) at(index int) (*models.Draft, error) {
	if index < 0 || index >= len(s.items) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(s.items))
	}
	return s.items[index], nil
}

func (s *Store) indexOf(id models.DraftID) int {
	for i, d := range s.items {
		if d.ID.Equal(id) {
			return i
		}
	}
	return -1
}
