package cache

import "sync"

// Noms des collections suivies par la console.
const (
	Agences        = "agences"
	Qualifications = "qualifications"
	Interimaires   = "interimaires"
	Clients        = "clients"
	Commandes      = "commandes"
)

// Store regroupe les collections par nom. Les services y récupèrent
// leur miroir ; le tableau de bord y lit les compteurs.
type Store struct {
	mu          sync.Mutex
	collections map[string]*Collection
}

func NewStore() *Store {
	return &Store{collections: make(map[string]*Collection)}
}

func (s *Store) Collection(name string) *Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.collections[name]; ok {
		return c
	}
	c := NewCollection(name)
	s.collections[name] = c
	return c
}

// Revision agrège les révisions de toutes les collections ; le total
// change dès qu'un miroir quelconque est rafraîchi.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total uint64
	for _, c := range s.collections {
		total += c.Revision()
	}
	return total
}
