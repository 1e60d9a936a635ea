package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []Item {
	return []Item{
		{ID: "a1", Label: "AGENCE NORD", Fields: []string{"AGENCE NORD", "NRD1"}, Keys: map[string]string{"code": "NRD1"}},
		{ID: "a2", Label: "AGENCE SUD", Fields: []string{"AGENCE SUD", "SUD1"}, Keys: map[string]string{"code": "SUD1"}},
		{ID: "a3", Label: "AGENCE OUEST", Fields: []string{"AGENCE OUEST", "OUE1"}, Keys: map[string]string{"code": "OUE1"}},
	}
}

func TestReplaceIncrementeLaRevision(t *testing.T) {
	c := NewCollection(Agences)

	assert.False(t, c.Loaded())
	assert.Equal(t, uint64(0), c.Revision())

	c.Replace(sampleItems())
	assert.True(t, c.Loaded())
	assert.Equal(t, uint64(1), c.Revision())
	assert.Equal(t, 3, c.Len())

	// Un remplacement par une liste vide reste un chargement valide.
	c.Replace(nil)
	assert.True(t, c.Loaded())
	assert.Equal(t, uint64(2), c.Revision())
	assert.Equal(t, 0, c.Len())
}

func TestFiltreInsensibleALaCasse(t *testing.T) {
	c := NewCollection(Agences)
	c.Replace(sampleItems())

	out := c.Filter("sud")
	require.Len(t, out, 1)
	assert.Equal(t, "a2", out[0].ID)

	out = c.Filter("AGENCE")
	require.Len(t, out, 3)
	// L'ordre d'origine est conservé.
	assert.Equal(t, "a1", out[0].ID)
	assert.Equal(t, "a3", out[2].ID)

	assert.Empty(t, c.Filter("introuvable"))
}

func TestFiltreVideRenvoieTout(t *testing.T) {
	c := NewCollection(Agences)
	c.Replace(sampleItems())

	out := c.Filter("")
	require.Len(t, out, 3)

	// La copie renvoyée n'expose pas le tampon interne.
	out[0].ID = "modifié"
	assert.Equal(t, "a1", c.Filter("")[0].ID)
}

func TestHasKeySansCasseEtAvecExclusion(t *testing.T) {
	c := NewCollection(Agences)
	c.Replace(sampleItems())

	assert.True(t, c.HasKey("code", "nrd1", ""))
	assert.True(t, c.HasKey("code", "  NRD1  ", ""))

	// L'enregistrement garde sa propre clé lors d'une mise à jour.
	assert.False(t, c.HasKey("code", "NRD1", "a1"))
	assert.True(t, c.HasKey("code", "NRD1", "a2"))

	assert.False(t, c.HasKey("code", "", ""))
	assert.False(t, c.HasKey("nom", "NRD1", ""))
}

func TestLabelEtHas(t *testing.T) {
	c := NewCollection(Agences)
	c.Replace(sampleItems())

	label, ok := c.Label("a2")
	require.True(t, ok)
	assert.Equal(t, "AGENCE SUD", label)

	_, ok = c.Label("absent")
	assert.False(t, ok)

	assert.True(t, c.Has("a3"))
	assert.False(t, c.Has("absent"))
}

func TestStoreRevisionAgregee(t *testing.T) {
	s := NewStore()

	agences := s.Collection(Agences)
	clients := s.Collection(Clients)
	assert.Same(t, agences, s.Collection(Agences))

	assert.Equal(t, uint64(0), s.Revision())

	agences.Replace(sampleItems())
	clients.Replace(nil)
	clients.Replace(nil)
	assert.Equal(t, uint64(3), s.Revision())
}
