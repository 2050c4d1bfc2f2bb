package entity

import "github.com/tholloway/roguecore/pkg/tile"

// Store holds entities in insertion order with O(1) ID lookup. Go map
// iteration order must never leak into observable output, so every engine
// routine that needs "all entities, in order" goes through All, never a
// bare range over the map.
type Store struct {
	order  []ID
	byID   map[ID]*Entity
	nextID ID
}

// NewStore returns an empty store. Add assigns IDs starting at 1; ID 0 is
// left for an explicit AddWithID (the player).
func NewStore() *Store {
	return &Store{byID: make(map[ID]*Entity), nextID: 1}
}

// Add inserts e, assigning it a fresh ID, and returns that ID.
func (s *Store) Add(e *Entity) ID {
	id := s.nextID
	s.nextID++
	e.ID = id
	s.byID[id] = e
	s.order = append(s.order, id)
	return id
}

// AddWithID inserts e under an explicit id instead of auto-assigning one:
// the player at ID 0, a dropped item keeping its allocated ID, or a save
// file being rehydrated. The auto-assign counter is bumped past id so later
// Add calls stay unique.
func (s *Store) AddWithID(e *Entity, id ID) ID {
	e.ID = id
	s.byID[id] = e
	s.order = append(s.order, id)
	if id >= s.nextID {
		s.nextID = id + 1
	}
	return id
}

// AllocID reserves and returns a fresh ID without inserting an entity.
// Items created directly into an inventory need a stable ID (equipment
// slots reference items by ID) without ever appearing in the world list.
func (s *Store) AllocID() ID {
	id := s.nextID
	s.nextID++
	return id
}

// Get returns the entity with id, or nil if it doesn't exist.
func (s *Store) Get(id ID) *Entity {
	return s.byID[id]
}

// Remove deletes the entity with id, preserving insertion order of the rest.
func (s *Store) Remove(id ID) {
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// All returns every live entity in insertion order.
func (s *Store) All() []*Entity {
	out := make([]*Entity, 0, len(s.order))
	for _, id := range s.order {
		if e, ok := s.byID[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return len(s.order)
}

// EntityAt returns the movement-blocking entity at pos and true, or nil
// and false when no blocking entity occupies pos. Used by blocked-tile
// movement checks in the turn loop.
func (s *Store) EntityAt(pos tile.Position) (*Entity, bool) {
	for _, id := range s.order {
		e := s.byID[id]
		if e != nil && e.Position == pos && e.BlocksMovement {
			return e, true
		}
	}
	return nil, false
}
