package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"interim-system/internal/cache"
	"interim-system/internal/entities"
	"interim-system/pkg/constants"
	"interim-system/pkg/eventbus"
)

func TestGetStatsCompteDepuisLesMiroirs(t *testing.T) {
	logger := zap.NewNop()
	store := cache.NewStore()
	bus := eventbus.New(logger)

	agenceRepo := newFakeAgenceRepo()
	qualifRepo := newFakeQualificationRepo()
	interimaireRepo := newFakeInterimaireRepo()
	clientRepo := newFakeClientRepo()
	commandeRepo := newFakeCommandeRepo()
	guard := NewGuardService(commandeRepo, interimaireRepo, clientRepo, logger)

	agenceRepo.agences["a1"] = entities.Agence{ID: "a1", Nom: "AGENCE NORD", Code: "NRD1"}
	qualifRepo.qualifications["q1"] = entities.Qualification{ID: "q1", Nom: "INFIRMIER"}
	interimaireRepo.interimaires["i1"] = fakeInterimaire("i1", "a1", "q1")
	clientRepo.clients["cl1"] = entities.Client{ID: "cl1", NomEtablissement: "CH Roubaix", AgenceID: "a1"}

	statuses := []string{
		constants.CommandeEnAttente,
		constants.CommandeEnAttente,
		constants.CommandeServie,
		constants.CommandeAnnuleeClient,
		constants.CommandeAnnuleeInterimaire,
	}
	for idx, status := range statuses {
		id := string(rune('a'+idx)) + "-cmd"
		commandeRepo.commandes[id] = entities.Commande{
			ID: id, ClientID: "cl1", AgenceID: "a1", QualificationID: "q1", Status: status,
		}
	}

	svc := NewStatsService(
		store,
		NewAgenceService(agenceRepo, guard, store, nil, 0, bus, logger),
		NewQualificationService(qualifRepo, guard, store, nil, 0, bus, logger),
		NewInterimaireService(interimaireRepo, guard, store, nil, 0, bus, logger),
		NewClientService(clientRepo, guard, store, nil, 0, bus, logger),
		NewCommandeService(commandeRepo, interimaireRepo, store, bus, logger),
		logger,
	)

	stats := svc.GetStats(context.Background())

	assert.Equal(t, 1, stats.Agences)
	assert.Equal(t, 1, stats.Qualifications)
	assert.Equal(t, 1, stats.Interimaires)
	assert.Equal(t, 1, stats.Clients)
	assert.Equal(t, 5, stats.Commandes)
	assert.Equal(t, 2, stats.CommandesEnAttente)
	assert.Equal(t, 1, stats.CommandesServies)
	assert.Equal(t, 2, stats.CommandesAnnulees)

	// Les cinq miroirs viennent d'être chargés, chacun à la révision 1.
	assert.Equal(t, uint64(5), stats.CacheRevision)

	// Un second appel relit les miroirs sans les recharger.
	again := svc.GetStats(context.Background())
	assert.Equal(t, stats.CacheRevision, again.CacheRevision)
}
