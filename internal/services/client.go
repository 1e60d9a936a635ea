package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"interim-system/internal/cache"
	"interim-system/internal/dto"
	"interim-system/internal/entities"
	"interim-system/internal/events"
	"interim-system/internal/repositories"
	apperrors "interim-system/pkg/errors"
	"interim-system/pkg/eventbus"
	"interim-system/pkg/types"
	"interim-system/pkg/utils"
)

type ClientService struct {
	clientRepo repositories.ClientRepositoryInterface
	guard      GuardServiceInterface
	collection *cache.Collection
	agences    *cache.Collection
	cacheRepo  repositories.CacheRepositoryInterface
	listTTL    time.Duration
	bus        *eventbus.Bus
	logger     *zap.Logger
}

func NewClientService(
	clientRepo repositories.ClientRepositoryInterface,
	guard GuardServiceInterface,
	store *cache.Store,
	cacheRepo repositories.CacheRepositoryInterface,
	listTTL time.Duration,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		guard:      guard,
		collection: store.Collection(cache.Clients),
		agences:    store.Collection(cache.Agences),
		cacheRepo:  cacheRepo,
		listTTL:    listTTL,
		bus:        bus,
		logger:     logger,
	}
}

func (s *ClientService) GetClients(ctx context.Context, filter types.Filter) ([]dto.ClientDTO, uint64, error) {
	clients, total, err := s.clientRepo.GetClients(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.ClientDTO, 0, len(clients))
	for idx := range clients {
		out = append(out, *clientToDTO(&clients[idx]))
	}
	return out, total, nil
}

func (s *ClientService) FindClient(ctx context.Context, id string) (*dto.ClientDTO, error) {
	client, err := s.clientRepo.FindClient(ctx, id)
	if err != nil {
		return nil, err
	}
	return clientToDTO(client), nil
}

func (s *ClientService) Lookup(ctx context.Context, search string) []dto.ShortClientDTO {
	cacheKey := repositories.ListCacheKey(cache.Clients)
	if search == "" && s.cacheRepo != nil {
		if raw, err := s.cacheRepo.Get(ctx, cacheKey); err == nil {
			var cached []dto.ShortClientDTO
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached
			}
		}
	}

	s.ensureCache(ctx)

	items := s.collection.Filter(search)
	out := make([]dto.ShortClientDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ShortClientDTO{ID: it.ID, NomEtablissement: it.Label})
	}

	if search == "" && s.cacheRepo != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.cacheRepo.Set(ctx, cacheKey, raw, s.listTTL); err != nil {
				s.logger.Debug("Écriture du cache de liste impossible", zap.Error(err))
			}
		}
	}
	return out
}

func (s *ClientService) CreateClient(ctx context.Context, payload dto.CreateClientDTO) (*dto.ClientDTO, error) {
	client := entities.Client{
		NomEtablissement: utils.NormalizeUpper(payload.NomEtablissement),
		Service:          strings.TrimSpace(payload.Service),
		Adresse:          strings.TrimSpace(payload.Adresse),
		CodePostal:       strings.TrimSpace(payload.CodePostal),
		Ville:            utils.NormalizeUpper(payload.Ville),
		AgenceID:         payload.AgenceID,
	}

	if err := s.checkAgence(ctx, client.AgenceID); err != nil {
		return nil, err
	}

	newID, err := s.clientRepo.CreateClient(ctx, client)
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "created", newID)
	return s.FindClient(ctx, newID)
}

func (s *ClientService) UpdateClient(ctx context.Context, id string, payload dto.UpdateClientDTO) (*dto.ClientDTO, error) {
	existing, err := s.clientRepo.FindClient(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	if payload.NomEtablissement != "" {
		merged.NomEtablissement = utils.NormalizeUpper(payload.NomEtablissement)
	}
	if payload.Service != "" {
		merged.Service = strings.TrimSpace(payload.Service)
	}
	if payload.Adresse != "" {
		merged.Adresse = strings.TrimSpace(payload.Adresse)
	}
	if payload.CodePostal != "" {
		merged.CodePostal = strings.TrimSpace(payload.CodePostal)
	}
	if payload.Ville != "" {
		merged.Ville = utils.NormalizeUpper(payload.Ville)
	}
	if payload.AgenceID != "" {
		merged.AgenceID = payload.AgenceID
	}

	if err := s.checkAgence(ctx, merged.AgenceID); err != nil {
		return nil, err
	}

	if err := s.clientRepo.UpdateClient(ctx, id, merged); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "updated", id)
	return s.FindClient(ctx, id)
}

func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	decision, err := s.guard.CanDelete(ctx, KindClient, id)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return apperrors.NewReferentialGuardError("%s", decision.Reason)
	}

	if err := s.clientRepo.DeleteClient(ctx, id); err != nil {
		return err
	}

	s.afterMutation(ctx, "deleted", id)
	return nil
}

func (s *ClientService) checkAgence(ctx context.Context, agenceID string) error {
	if s.agences.Loaded() && !s.agences.Has(agenceID) {
		return apperrors.NewValidationError("agence_id", "L'agence référencée n'existe pas")
	}
	return nil
}

func (s *ClientService) ensureCache(ctx context.Context) {
	if !s.collection.Loaded() {
		s.refreshCache(ctx)
	}
}

func (s *ClientService) refreshCache(ctx context.Context) {
	clients, _, err := s.clientRepo.GetClients(ctx, types.Filter{})
	if err != nil {
		s.logger.Warn("Rafraîchissement du miroir clients impossible", zap.Error(err))
		return
	}

	items := make([]cache.Item, 0, len(clients))
	for _, c := range clients {
		items = append(items, cache.Item{
			ID:     c.ID,
			Label:  c.NomEtablissement,
			Fields: []string{c.NomEtablissement, c.Service, c.Ville},
		})
	}
	s.collection.Replace(items)
}

func (s *ClientService) afterMutation(ctx context.Context, action, id string) {
	s.refreshCache(ctx)
	s.bus.Publish(ctx, events.EntityChanged{Collection: cache.Clients, Action: action, ID: id})
}
