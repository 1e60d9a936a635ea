package services

import (
	"context"
	"encoding/json"
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
	"interim-system/pkg/validation"
)

type AgenceService struct {
	agenceRepo repositories.AgenceRepositoryInterface
	guard      GuardServiceInterface
	collection *cache.Collection
	cacheRepo  repositories.CacheRepositoryInterface
	listTTL    time.Duration
	bus        *eventbus.Bus
	logger     *zap.Logger
}

func NewAgenceService(
	agenceRepo repositories.AgenceRepositoryInterface,
	guard GuardServiceInterface,
	store *cache.Store,
	cacheRepo repositories.CacheRepositoryInterface,
	listTTL time.Duration,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *AgenceService {
	return &AgenceService{
		agenceRepo: agenceRepo,
		guard:      guard,
		collection: store.Collection(cache.Agences),
		cacheRepo:  cacheRepo,
		listTTL:    listTTL,
		bus:        bus,
		logger:     logger,
	}
}

func (s *AgenceService) GetAgences(ctx context.Context, filter types.Filter) ([]dto.AgenceDTO, uint64, error) {
	agences, total, err := s.agenceRepo.GetAgences(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.AgenceDTO, 0, len(agences))
	for idx := range agences {
		out = append(out, *agenceToDTO(&agences[idx]))
	}
	return out, total, nil
}

func (s *AgenceService) FindAgence(ctx context.Context, id string) (*dto.AgenceDTO, error) {
	agence, err := s.agenceRepo.FindAgence(ctx, id)
	if err != nil {
		return nil, err
	}
	return agenceToDTO(agence), nil
}

// Lookup filtre le miroir mémoire, sans toucher au backend. Sert les
// listes déroulantes des formulaires. La liste complète passe par
// Redis, purgé par le listener à chaque mutation.
func (s *AgenceService) Lookup(ctx context.Context, search string) []dto.ShortAgenceDTO {
	cacheKey := repositories.ListCacheKey(cache.Agences)
	if search == "" && s.cacheRepo != nil {
		if raw, err := s.cacheRepo.Get(ctx, cacheKey); err == nil {
			var cached []dto.ShortAgenceDTO
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached
			}
		}
	}

	s.ensureCache(ctx)

	items := s.collection.Filter(search)
	out := make([]dto.ShortAgenceDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ShortAgenceDTO{ID: it.ID, Nom: it.Label})
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

func (s *AgenceService) CreateAgence(ctx context.Context, payload dto.CreateAgenceDTO) (*dto.AgenceDTO, error) {
	agence := entities.Agence{
		Nom:       utils.NormalizeUpper(payload.Nom),
		Code:      utils.NormalizeUpper(payload.Code),
		Telephone: utils.NormalizeLower(payload.Telephone),
		Email:     utils.NormalizeLower(payload.Email),
	}

	if err := s.validateAgence(ctx, &agence, ""); err != nil {
		return nil, err
	}

	newID, err := s.agenceRepo.CreateAgence(ctx, agence)
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "created", newID)
	return s.FindAgence(ctx, newID)
}

func (s *AgenceService) UpdateAgence(ctx context.Context, id string, payload dto.UpdateAgenceDTO) (*dto.AgenceDTO, error) {
	existing, err := s.agenceRepo.FindAgence(ctx, id)
	if err != nil {
		return nil, err
	}

	// Mise à jour partielle : seuls les champs envoyés remplacent
	// l'existant.
	merged := *existing
	if payload.Nom != "" {
		merged.Nom = utils.NormalizeUpper(payload.Nom)
	}
	if payload.Code != "" {
		merged.Code = utils.NormalizeUpper(payload.Code)
	}
	if payload.Telephone != "" {
		merged.Telephone = utils.NormalizeLower(payload.Telephone)
	}
	if payload.Email != "" {
		merged.Email = utils.NormalizeLower(payload.Email)
	}

	if err := s.validateAgence(ctx, &merged, id); err != nil {
		return nil, err
	}

	if err := s.agenceRepo.UpdateAgence(ctx, id, merged); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "updated", id)
	return s.FindAgence(ctx, id)
}

func (s *AgenceService) DeleteAgence(ctx context.Context, id string) error {
	decision, err := s.guard.CanDelete(ctx, KindAgence, id)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return apperrors.NewReferentialGuardError("%s", decision.Reason)
	}

	if err := s.agenceRepo.DeleteAgence(ctx, id); err != nil {
		return err
	}

	s.afterMutation(ctx, "deleted", id)
	return nil
}

// validateAgence vérifie la forme du code après normalisation puis son
// unicité sur l'instantané local. Le backend reste l'autorité : un
// doublon inséré entre-temps reviendra en ConstraintViolation.
func (s *AgenceService) validateAgence(ctx context.Context, agence *entities.Agence, excludeID string) error {
	if agence.Nom == "" {
		return apperrors.NewValidationError("nom", "Le nom de l'agence est requis")
	}
	if !validation.AgencyCodePattern.MatchString(agence.Code) {
		return apperrors.NewValidationError("code", "Format de code invalide (attendu : 3 lettres puis 1 chiffre)")
	}

	s.ensureCache(ctx)
	if s.collection.HasKey("code", agence.Code, excludeID) {
		return apperrors.NewValidationError("code", "Ce code d'agence existe déjà")
	}

	return nil
}

func (s *AgenceService) ensureCache(ctx context.Context) {
	if !s.collection.Loaded() {
		s.refreshCache(ctx)
	}
}

func (s *AgenceService) refreshCache(ctx context.Context) {
	agences, _, err := s.agenceRepo.GetAgences(ctx, types.Filter{})
	if err != nil {
		s.logger.Warn("Rafraîchissement du miroir agences impossible", zap.Error(err))
		return
	}

	items := make([]cache.Item, 0, len(agences))
	for _, a := range agences {
		items = append(items, cache.Item{
			ID:     a.ID,
			Label:  a.Nom,
			Fields: []string{a.Nom, a.Code},
			Keys:   map[string]string{"code": a.Code},
		})
	}
	s.collection.Replace(items)
}

func (s *AgenceService) afterMutation(ctx context.Context, action, id string) {
	s.refreshCache(ctx)
	s.bus.Publish(ctx, events.EntityChanged{Collection: cache.Agences, Action: action, ID: id})
}
