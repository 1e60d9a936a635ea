// Package cache tient les miroirs mémoire des collections du backend.
// Une collection est remplacée intégralement après chaque mutation
// confirmée ; un compteur de révision remplace toute invalidation
// implicite. Un seul écrivain à la fois : la couche service.
package cache

import (
	"strings"
	"sync"
)

// Item est la projection cachée d'un enregistrement : son libellé
// d'affichage, ses champs cherchables et ses clés d'unicité normalisées.
type Item struct {
	ID     string
	Label  string
	Fields []string
	Keys   map[string]string
}

type Collection struct {
	mu       sync.RWMutex
	name     string
	items    []Item
	byID     map[string]Item
	revision uint64
	loaded   bool
}

func NewCollection(name string) *Collection {
	return &Collection{
		name: name,
		byID: make(map[string]Item),
	}
}

func (c *Collection) Name() string {
	return c.name
}

// Replace substitue l'intégralité du miroir et incrémente la révision.
// L'ordre des éléments est celui renvoyé par le backend.
func (c *Collection) Replace(items []Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make([]Item, len(items))
	copy(c.items, items)

	c.byID = make(map[string]Item, len(items))
	for _, it := range items {
		c.byID[it.ID] = it
	}

	c.revision++
	c.loaded = true
}

func (c *Collection) Revision() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.revision
}

// Loaded indique si la collection a été chargée au moins une fois.
// Tant que c'est faux, les contrôles d'unicité fast-fail sont sautés
// et le backend reste seul juge.
func (c *Collection) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Label résout un id vers son libellé d'affichage.
func (c *Collection) Label(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.byID[id]
	if !ok {
		return "", false
	}
	return it.Label, true
}

func (c *Collection) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.byID[id]
	return ok
}

// Filter renvoie les éléments dont au moins un champ cherchable contient
// la sous-chaîne, sans tenir compte de la casse, dans l'ordre d'origine.
// Une sous-chaîne vide renvoie la collection entière.
func (c *Collection) Filter(substr string) []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if substr == "" {
		out := make([]Item, len(c.items))
		copy(out, c.items)
		return out
	}

	needle := strings.ToLower(substr)
	out := make([]Item, 0)
	for _, it := range c.items {
		for _, f := range it.Fields {
			if strings.Contains(strings.ToLower(f), needle) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// HasKey vérifie si une valeur de clé d'unicité est déjà prise par un
// autre enregistrement que excludeID. Comparaison insensible à la casse.
func (c *Collection) HasKey(keyName, value, excludeID string) bool {
	needle := strings.ToLower(strings.TrimSpace(value))
	if needle == "" {
		return false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, it := range c.items {
		if it.ID == excludeID {
			continue
		}
		if v, ok := it.Keys[keyName]; ok && strings.ToLower(v) == needle {
			return true
		}
	}
	return false
}

func (c *Collection) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}
