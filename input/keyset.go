package input

import (
	"sync"

	"github.com/zyedidia/generic/mapset"
)

// KeySet is the set of keys pressed in the current input batch, safe for concurrent use
type KeySet struct {
	mu   sync.Mutex
	keys mapset.Set[Key]
}

// NewKeySet creates an empty set
func NewKeySet() *KeySet {
	return &KeySet{keys: mapset.New[Key]()}
}

func (s *KeySet) Add(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys.Put(k)
}

func (s *KeySet) Remove(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys.Remove(k)
}

func (s *KeySet) Has(k Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys.Has(k)
}

func (s *KeySet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys.Size()
}

// Reset empties the set
func (s *KeySet) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = mapset.New[Key]()
}

// Keys returns a snapshot in no particular order
func (s *KeySet) Keys() []Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Key, 0, s.keys.Size())
	s.keys.Each(func(k Key) {
		out = append(out, k)
	})
	return out
}
