package services

import (
	"context"

	"go.uber.org/zap"

	"interim-system/internal/cache"
	"interim-system/internal/dto"
	"interim-system/pkg/constants"
)

// StatsService alimente le tableau de bord depuis les miroirs mémoire.
// Coût nul côté BD : les compteurs sont lus dans les caches et datés
// par la révision agrégée du Store.
type StatsService struct {
	store    *cache.Store
	agence   *AgenceService
	qualif   *QualificationService
	interim  *InterimaireService
	client   *ClientService
	commande *CommandeService
	logger   *zap.Logger
}

func NewStatsService(
	store *cache.Store,
	agence *AgenceService,
	qualif *QualificationService,
	interim *InterimaireService,
	client *ClientService,
	commande *CommandeService,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		store:    store,
		agence:   agence,
		qualif:   qualif,
		interim:  interim,
		client:   client,
		commande: commande,
		logger:   logger,
	}
}

func (s *StatsService) GetStats(ctx context.Context) dto.StatsDTO {
	s.agence.ensureCache(ctx)
	s.qualif.ensureCache(ctx)
	s.interim.ensureCache(ctx)
	s.client.ensureCache(ctx)
	s.commande.ensureCache(ctx)

	commandes := s.store.Collection(cache.Commandes).Items()

	var enAttente, servies, annulees int
	for _, it := range commandes {
		switch it.Keys["status"] {
		case constants.CommandeEnAttente:
			enAttente++
		case constants.CommandeServie:
			servies++
		case constants.CommandeAnnuleeClient, constants.CommandeAnnuleeInterimaire:
			annulees++
		}
	}

	return dto.StatsDTO{
		Agences:            s.store.Collection(cache.Agences).Len(),
		Qualifications:     s.store.Collection(cache.Qualifications).Len(),
		Interimaires:       s.store.Collection(cache.Interimaires).Len(),
		Clients:            s.store.Collection(cache.Clients).Len(),
		Commandes:          len(commandes),
		CommandesEnAttente: enAttente,
		CommandesServies:   servies,
		CommandesAnnulees:  annulees,
		CacheRevision:      s.store.Revision(),
	}
}
