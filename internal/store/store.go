package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"doorquote/internal/model"
)

// StorageKey is the fixed namespace under which the catalog state is
// persisted. Kept identical to the original client-side storage key so
// existing persisted states remain loadable.
const StorageKey = "door-catalog-storage"

// Direction selects the neighbor for an adjacent product swap.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// State is the complete catalog state. EditingDoorID marks the product
// currently targeted by an edit session; it is session-transient and is
// persisted as null.
type State struct {
	Doors         []model.Product  `json:"doors"`
	GeneralNotes  string           `json:"generalNotes"`
	EditingDoorID *string          `json:"editingDoorId"`
	ClientInfo    model.ClientInfo `json:"clientInfo"`
}

// Clone deep-copies the state so callers can never mutate store internals.
func (s State) Clone() State {
	c := s
	c.Doors = model.CloneProducts(s.Doors)
	if s.EditingDoorID != nil {
		id := *s.EditingDoorID
		c.EditingDoorID = &id
	}
	return c
}

// DefaultState returns the documented empty catalog.
func DefaultState() State {
	return State{
		Doors:      []model.Product{},
		ClientInfo: model.DefaultClientInfo(),
	}
}

// Persistence is the durable key-value port the store writes through to.
// Load returns (nil, nil) when nothing has been persisted yet.
type Persistence interface {
	Save(ctx context.Context, st State) error
	Load(ctx context.Context) (*State, error)
}

// CatalogStore is the single authoritative holder of the catalog state.
//
// Every mutation computes the next state in full and installs it in a single
// assignment under the lock — partial application is impossible. Mutations
// return the newly installed state (a deep copy), which makes equality-based
// testing straightforward. After each mutation the full state is written
// through to the persistence port; a failed write is logged and does not
// roll back the in-memory state, which remains the source of truth for the
// running session.
type CatalogStore struct {
	mu      sync.RWMutex
	state   State
	persist Persistence
}

// New creates a store holding the default empty catalog. persist may be nil
// (tests), in which case write-through is skipped.
func New(persist Persistence) *CatalogStore {
	return &CatalogStore{state: DefaultState(), persist: persist}
}

// Hydrate replaces the in-memory state with whatever the persistence
// namespace holds, or keeps the defaults when nothing is persisted. The
// editing marker always starts a session as null.
func (s *CatalogStore) Hydrate(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	st, err := s.persist.Load(ctx)
	if err != nil {
		return err
	}
	if st == nil {
		return nil
	}
	next := st.Clone()
	if next.Doors == nil {
		next.Doors = []model.Product{}
	}
	next.EditingDoorID = nil

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
	return nil
}

// Current returns a deep copy of the present state.
func (s *CatalogStore) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// mutate runs fn on a deep copy of the current state under the write lock,
// installs the result as the new state in a single assignment, then writes
// it through. Returns a copy of the installed state.
func (s *CatalogStore) mutate(fn func(State) State) State {
	s.mu.Lock()
	next := fn(s.state.Clone())
	s.state = next
	s.mu.Unlock()

	s.writeThrough(next)
	return next.Clone()
}

// writeThrough persists the state under StorageKey. The editing marker is
// excluded (persisted as null). Fire-and-forget: failures are logged, never
// propagated — durability for that change is simply not guaranteed.
func (s *CatalogStore) writeThrough(st State) {
	if s.persist == nil {
		return
	}
	persisted := st.Clone()
	persisted.EditingDoorID = nil
	if err := s.persist.Save(context.Background(), persisted); err != nil {
		log.Error().Err(err).Str("key", StorageKey).Msg("store: write-through failed")
	}
}

// AddDoor appends the product to the end of the sequence. The caller is
// responsible for id uniqueness. The editing marker is left untouched.
func (s *CatalogStore) AddDoor(p model.Product) State {
	return s.mutate(func(st State) State {
		st.Doors = append(st.Doors, p.Clone())
		return st
	})
}

// DoorPatch carries the replaceable fields of an update. Nil fields keep
// their current value.
type DoorPatch struct {
	Name     *string
	Model    *string
	Images   *[]string
	Specs    *[]model.TechnicalSpec
	Concepts *[]model.PriceConcept
	Margin   *float64
}

// UpdateDoor merges the patch into the product matching id, keeping its
// position; unknown ids change nothing. The edit session is cleared
// unconditionally either way.
func (s *CatalogStore) UpdateDoor(id string, patch DoorPatch) State {
	return s.mutate(func(st State) State {
		for i := range st.Doors {
			if st.Doors[i].ID != id {
				continue
			}
			d := &st.Doors[i]
			if patch.Name != nil {
				d.Name = *patch.Name
			}
			if patch.Model != nil {
				d.Model = *patch.Model
			}
			if patch.Images != nil {
				d.Images = append([]string(nil), *patch.Images...)
			}
			if patch.Specs != nil {
				d.Specs = append([]model.TechnicalSpec(nil), *patch.Specs...)
			}
			if patch.Concepts != nil {
				d.Concepts = append([]model.PriceConcept(nil), *patch.Concepts...)
			}
			if patch.Margin != nil {
				d.Margin = *patch.Margin
			}
			break
		}
		st.EditingDoorID = nil
		return st
	})
}

// RemoveDoor deletes the matching product. When the removed product was the
// one being edited the edit session ends too. Unknown ids are a no-op.
func (s *CatalogStore) RemoveDoor(id string) State {
	return s.mutate(func(st State) State {
		kept := make([]model.Product, 0, len(st.Doors))
		found := false
		for _, d := range st.Doors {
			if d.ID == id {
				found = true
				continue
			}
			kept = append(kept, d)
		}
		if !found {
			return st
		}
		st.Doors = kept
		if st.EditingDoorID != nil && *st.EditingDoorID == id {
			st.EditingDoorID = nil
		}
		return st
	})
}

// MoveDoor swaps the product with its immediate neighbor in the given
// direction. Already at the boundary, or id unknown → no-op. This is the
// only reordering primitive.
func (s *CatalogStore) MoveDoor(id string, dir Direction) State {
	return s.mutate(func(st State) State {
		idx := -1
		for i, d := range st.Doors {
			if d.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return st
		}
		var swap int
		switch dir {
		case DirectionUp:
			swap = idx - 1
		case DirectionDown:
			swap = idx + 1
		default:
			return st
		}
		if swap < 0 || swap >= len(st.Doors) {
			return st
		}
		st.Doors[idx], st.Doors[swap] = st.Doors[swap], st.Doors[idx]
		return st
	})
}

// SetClientInfo replaces the client block as given, no validation.
func (s *CatalogStore) SetClientInfo(info model.ClientInfo) State {
	return s.mutate(func(st State) State {
		st.ClientInfo = info
		return st
	})
}

// SetGeneralNotes replaces the free-text notes.
func (s *CatalogStore) SetGeneralNotes(notes string) State {
	return s.mutate(func(st State) State {
		st.GeneralNotes = notes
		return st
	})
}

// SetEditingDoorID marks (or clears, with nil) the product targeted by the
// input form.
func (s *CatalogStore) SetEditingDoorID(id *string) State {
	return s.mutate(func(st State) State {
		if id != nil {
			v := *id
			st.EditingDoorID = &v
		} else {
			st.EditingDoorID = nil
		}
		return st
	})
}

// ResetAll restores the documented default state. Irreversible — callers
// must have obtained explicit user confirmation beforehand.
func (s *CatalogStore) ResetAll() State {
	return s.mutate(func(State) State {
		return DefaultState()
	})
}

// ImportBudget replaces products, client info and notes with the snapshot's
// contents, coalescing each missing field to its default independently:
// absent doors → empty list, absent clientInfo → documented defaults, absent
// notes → empty string. The edit session is always cleared. Never fails on
// partially-populated snapshots.
func (s *CatalogStore) ImportBudget(b model.SavedBudget) State {
	return s.mutate(func(State) State {
		next := State{
			Doors:        model.CloneProducts(b.Doors),
			GeneralNotes: b.GeneralNotes,
			ClientInfo:   model.DefaultClientInfo(),
		}
		if b.ClientInfo != nil {
			next.ClientInfo = *b.ClientInfo
		}
		return next
	})
}
