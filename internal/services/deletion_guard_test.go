package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"interim-system/internal/entities"
	"interim-system/pkg/constants"
	"interim-system/pkg/utils"
)

func newGuardFixture() (GuardServiceInterface, *fakeCommandeRepo, *fakeInterimaireRepo, *fakeClientRepo) {
	commandeRepo := newFakeCommandeRepo()
	interimaireRepo := newFakeInterimaireRepo()
	clientRepo := newFakeClientRepo()
	guard := NewGuardService(commandeRepo, interimaireRepo, clientRepo, zap.NewNop())
	return guard, commandeRepo, interimaireRepo, clientRepo
}

func TestGuardInterimaireBloqueParCommandeActive(t *testing.T) {
	guard, commandeRepo, _, _ := newGuardFixture()
	ctx := context.Background()

	commandeRepo.commandes["c1"] = entities.Commande{
		ID:            "c1",
		InterimaireID: utils.StringPtr("i1"),
		Status:        constants.CommandeEnAttente,
	}

	decision, err := guard.CanDelete(ctx, KindInterimaire, "i1")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Contains(t, decision.Reason, "commande")
}

func TestGuardInterimaireLibreSiCommandesAnnulees(t *testing.T) {
	guard, commandeRepo, _, _ := newGuardFixture()
	ctx := context.Background()

	// Les annulations ne bloquent pas la suppression.
	commandeRepo.commandes["c1"] = entities.Commande{
		ID:            "c1",
		InterimaireID: utils.StringPtr("i1"),
		Status:        constants.CommandeAnnuleeClient,
	}

	decision, err := guard.CanDelete(ctx, KindInterimaire, "i1")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestGuardClientBloqueParCommandeServie(t *testing.T) {
	guard, commandeRepo, _, _ := newGuardFixture()
	ctx := context.Background()

	commandeRepo.commandes["c1"] = entities.Commande{
		ID:       "c1",
		ClientID: "cl1",
		Status:   constants.CommandeServie,
	}

	decision, err := guard.CanDelete(ctx, KindClient, "cl1")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
}

func TestGuardAgenceCompteToutesLesReferences(t *testing.T) {
	guard, commandeRepo, interimaireRepo, clientRepo := newGuardFixture()
	ctx := context.Background()

	interimaireRepo.interimaires["i1"] = fakeInterimaire("i1", "a1", "q1")
	clientRepo.clients["cl1"] = entities.Client{ID: "cl1", AgenceID: "a1"}
	commandeRepo.commandes["c1"] = entities.Commande{ID: "c1", AgenceID: "a1", Status: constants.CommandeAnnuleeClient}

	decision, err := guard.CanDelete(ctx, KindAgence, "a1")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	// Même une commande annulée garde sa clé étrangère vers l'agence.
	assert.Contains(t, decision.Reason, "1 commande(s)")
}

func TestGuardQualificationBloquee(t *testing.T) {
	guard, _, interimaireRepo, _ := newGuardFixture()
	ctx := context.Background()

	interimaireRepo.interimaires["i1"] = fakeInterimaire("i1", "a1", "q1")

	decision, err := guard.CanDelete(ctx, KindQualification, "q1")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
}

func TestGuardAutoriseQuandAucuneReference(t *testing.T) {
	guard, _, _, _ := newGuardFixture()
	ctx := context.Background()

	for _, kind := range []EntityKind{KindAgence, KindQualification, KindInterimaire, KindClient} {
		decision, err := guard.CanDelete(ctx, kind, "inconnu")
		require.NoError(t, err)
		assert.True(t, decision.Allowed, "type %s", kind)
	}
}

func TestGuardTypeInconnu(t *testing.T) {
	guard, _, _, _ := newGuardFixture()

	_, err := guard.CanDelete(context.Background(), EntityKind("société"), "x")
	assert.Error(t, err)
}
