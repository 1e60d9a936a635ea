package services

import (
	"context"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"interim-system/internal/cache"
	"interim-system/internal/dto"
	"interim-system/pkg/constants"
	apperrors "interim-system/pkg/errors"
	"interim-system/pkg/eventbus"
)

type commandeFixture struct {
	svc             *CommandeService
	commandeRepo    *fakeCommandeRepo
	interimaireRepo *fakeInterimaireRepo
}

func newCommandeFixture() commandeFixture {
	logger := zap.NewNop()
	commandeRepo := newFakeCommandeRepo()
	interimaireRepo := newFakeInterimaireRepo()
	store := cache.NewStore()
	bus := eventbus.New(logger)

	return commandeFixture{
		svc:             NewCommandeService(commandeRepo, interimaireRepo, store, bus, logger),
		commandeRepo:    commandeRepo,
		interimaireRepo: interimaireRepo,
	}
}

func (f commandeFixture) createCommande(t *testing.T) *dto.CommandeDTO {
	t.Helper()
	res, err := f.svc.CreateCommande(context.Background(), dto.CreateCommandeDTO{
		ClientID:        "client-1",
		QualificationID: "qualif-1",
		AgenceID:        "agence-1",
		DateDebut:       "2026-09-01",
		DateFin:         "2026-09-05",
	})
	require.NoError(t, err)
	return res
}

func TestCreateCommandeDemarreEnAttente(t *testing.T) {
	f := newCommandeFixture()

	res := f.createCommande(t)
	assert.Equal(t, constants.CommandeEnAttente, res.Status)
	assert.Nil(t, res.InterimaireID)
	assert.Nil(t, res.MotifAnnulation)
}

func TestCreateCommandePeriodeInversee(t *testing.T) {
	f := newCommandeFixture()

	_, err := f.svc.CreateCommande(context.Background(), dto.CreateCommandeDTO{
		ClientID:        "client-1",
		QualificationID: "qualif-1",
		AgenceID:        "agence-1",
		DateDebut:       "2026-09-05",
		DateFin:         "2026-09-01",
	})
	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "date_fin", vErr.Field)
}

func TestAnnulationExigeUnMotif(t *testing.T) {
	f := newCommandeFixture()
	created := f.createCommande(t)

	_, err := f.svc.UpdateStatus(context.Background(), created.ID, dto.UpdateCommandeStatusDTO{
		Status: constants.CommandeAnnuleeClient,
	})
	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "motif_annulation", vErr.Field)

	res, err := f.svc.UpdateStatus(context.Background(), created.ID, dto.UpdateCommandeStatusDTO{
		Status:          constants.CommandeAnnuleeClient,
		MotifAnnulation: null.StringFrom("Chantier reporté"),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.CommandeAnnuleeClient, res.Status)
	require.NotNil(t, res.MotifAnnulation)
	assert.Equal(t, "Chantier reporté", *res.MotifAnnulation)
}

func TestMotifInterditHorsAnnulation(t *testing.T) {
	f := newCommandeFixture()
	created := f.createCommande(t)

	f.interimaireRepo.interimaires["i1"] = fakeInterimaire("i1", "agence-1", "qualif-1")
	_, err := f.svc.AssignInterimaire(context.Background(), created.ID, dto.AssignInterimaireDTO{InterimaireID: "i1"})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), created.ID, dto.UpdateCommandeStatusDTO{
		Status:          constants.CommandeServie,
		MotifAnnulation: null.StringFrom("inutile"),
	})
	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "motif_annulation", vErr.Field)
}

func TestServieExigeUnInterimaire(t *testing.T) {
	f := newCommandeFixture()
	created := f.createCommande(t)

	_, err := f.svc.UpdateStatus(context.Background(), created.ID, dto.UpdateCommandeStatusDTO{
		Status: constants.CommandeServie,
	})
	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "status", vErr.Field)
}

func TestStatutsTerminauxFiges(t *testing.T) {
	f := newCommandeFixture()
	created := f.createCommande(t)

	_, err := f.svc.UpdateStatus(context.Background(), created.ID, dto.UpdateCommandeStatusDTO{
		Status:          constants.CommandeAnnuleeInterimaire,
		MotifAnnulation: null.StringFrom("Indisponible"),
	})
	require.NoError(t, err)

	// Plus aucune transition ni modification possible.
	_, err = f.svc.UpdateStatus(context.Background(), created.ID, dto.UpdateCommandeStatusDTO{
		Status: constants.CommandeEnAttente,
	})
	assert.Error(t, err)

	_, err = f.svc.UpdateCommande(context.Background(), created.ID, dto.UpdateCommandeDTO{
		Notes: null.StringFrom("trop tard"),
	})
	assert.Error(t, err)
}

func TestAffectationBasculeLaDisponibilite(t *testing.T) {
	f := newCommandeFixture()
	ctx := context.Background()
	created := f.createCommande(t)

	f.interimaireRepo.interimaires["i1"] = fakeInterimaire("i1", "agence-1", "qualif-1")

	res, err := f.svc.AssignInterimaire(ctx, created.ID, dto.AssignInterimaireDTO{InterimaireID: "i1"})
	require.NoError(t, err)
	require.NotNil(t, res.InterimaireID)
	assert.Equal(t, "i1", *res.InterimaireID)
	assert.Equal(t, constants.DisponibiliteEnPoste, f.interimaireRepo.interimaires["i1"].Disponibilite)

	// Le détachement le libère.
	res, err = f.svc.UnassignInterimaire(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, res.InterimaireID)
	assert.Equal(t, constants.DisponibiliteDisponible, f.interimaireRepo.interimaires["i1"].Disponibilite)
}

func TestServieLibereLInterimaire(t *testing.T) {
	f := newCommandeFixture()
	ctx := context.Background()
	created := f.createCommande(t)

	f.interimaireRepo.interimaires["i1"] = fakeInterimaire("i1", "agence-1", "qualif-1")
	_, err := f.svc.AssignInterimaire(ctx, created.ID, dto.AssignInterimaireDTO{InterimaireID: "i1"})
	require.NoError(t, err)

	res, err := f.svc.UpdateStatus(ctx, created.ID, dto.UpdateCommandeStatusDTO{
		Status: constants.CommandeServie,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.CommandeServie, res.Status)
	assert.Equal(t, constants.DisponibiliteDisponible, f.interimaireRepo.interimaires["i1"].Disponibilite)
}

func TestAffectationRefuseeHorsEnAttente(t *testing.T) {
	f := newCommandeFixture()
	ctx := context.Background()
	created := f.createCommande(t)

	f.interimaireRepo.interimaires["i1"] = fakeInterimaire("i1", "agence-1", "qualif-1")
	_, err := f.svc.AssignInterimaire(ctx, created.ID, dto.AssignInterimaireDTO{InterimaireID: "i1"})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, created.ID, dto.UpdateCommandeStatusDTO{Status: constants.CommandeServie})
	require.NoError(t, err)

	f.interimaireRepo.interimaires["i2"] = fakeInterimaire("i2", "agence-1", "qualif-1")
	_, err = f.svc.AssignInterimaire(ctx, created.ID, dto.AssignInterimaireDTO{InterimaireID: "i2"})
	assert.Error(t, err)
}
