// Package petstore holds the in-memory pet collection served by the demo API.
package petstore

import "sync"

// Pet is a single record in the store. ID is assigned by the store on
// creation; a zero ID means "not yet assigned".
type Pet struct {
	ID   int64  `json:"id,omitempty" yaml:"id,omitempty" doc:"Unique identifier assigned by the server" example:"1"`
	Name string `json:"name" yaml:"name" required:"true" doc:"Name of the pet" example:"max"`
}

// Store is an ordered, mutex-guarded collection of pets. Iteration order is
// creation order, except that Update moves the updated record to the end.
type Store struct {
	mu   sync.Mutex
	pets []Pet
	high int64
}

// New creates a store holding the given records in order.
func New(seed ...Pet) *Store {
	s := &Store{pets: make([]Pet, 0, len(seed))}
	for _, p := range seed {
		s.pets = append(s.pets, p)
		s.high = max(s.high, p.ID)
	}
	return s
}

// NewSeeded creates a store with the two demo pets, max (1) and moritz (2).
func NewSeeded() *Store {
	return New(
		Pet{ID: 1, Name: "max"},
		Pet{ID: 2, Name: "moritz"},
	)
}

// List returns a copy of every pet in iteration order.
func (s *Store) List() []Pet {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Pet, len(s.pets))
	copy(out, s.pets)
	return out
}

// Len reports the number of pets.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pets)
}

// Create appends a pet with the next free id and returns it.
//
// The next id is one above the largest id the store has ever held, so ids
// are never handed out twice even after deletes.
func (s *Store) Create(name string) Pet {
	s.mu.Lock()
	defer s.mu.Unlock()

	var highest int64
	for _, p := range s.pets {
		highest = max(highest, p.ID)
	}
	highest = max(highest, s.high)

	p := Pet{ID: highest + 1, Name: name}
	s.high = p.ID
	s.pets = append(s.pets, p)
	return p
}

// Find returns the pet with the given id.
func (s *Store) Find(id int64) (Pet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		return s.pets[i], true
	}
	return Pet{}, false
}

// Update replaces the pet with the given id by pet and moves it to the end.
// It reports false, leaving the store untouched, when no pet has that id or
// when pet.ID does not equal id.
func (s *Store) Update(id int64, pet Pet) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pet.ID != id {
		return false
	}
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.pets = append(s.pets[:i], s.pets[i+1:]...)
	s.pets = append(s.pets, pet)
	return true
}

// Delete removes the first pet with the given id.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return false
	}
	s.pets = append(s.pets[:i], s.pets[i+1:]...)
	return true
}

// index must be called with mu held.
func (s *Store) index(id int64) int {
	for i, p := range s.pets {
		if p.ID == id {
			return i
		}
	}
	return -1
}
