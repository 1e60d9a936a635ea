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
)

type QualificationService struct {
	qualificationRepo repositories.QualificationRepositoryInterface
	guard             GuardServiceInterface
	collection        *cache.Collection
	cacheRepo         repositories.CacheRepositoryInterface
	listTTL           time.Duration
	bus               *eventbus.Bus
	logger            *zap.Logger
}

func NewQualificationService(
	qualificationRepo repositories.QualificationRepositoryInterface,
	guard GuardServiceInterface,
	store *cache.Store,
	cacheRepo repositories.CacheRepositoryInterface,
	listTTL time.Duration,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *QualificationService {
	return &QualificationService{
		qualificationRepo: qualificationRepo,
		guard:             guard,
		collection:        store.Collection(cache.Qualifications),
		cacheRepo:         cacheRepo,
		listTTL:           listTTL,
		bus:               bus,
		logger:            logger,
	}
}

func (s *QualificationService) GetQualifications(ctx context.Context, filter types.Filter) ([]dto.QualificationDTO, uint64, error) {
	qualifications, total, err := s.qualificationRepo.GetQualifications(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.QualificationDTO, 0, len(qualifications))
	for idx := range qualifications {
		out = append(out, *qualificationToDTO(&qualifications[idx]))
	}
	return out, total, nil
}

func (s *QualificationService) FindQualification(ctx context.Context, id string) (*dto.QualificationDTO, error) {
	qualification, err := s.qualificationRepo.FindQualification(ctx, id)
	if err != nil {
		return nil, err
	}
	return qualificationToDTO(qualification), nil
}

func (s *QualificationService) Lookup(ctx context.Context, search string) []dto.ShortQualificationDTO {
	cacheKey := repositories.ListCacheKey(cache.Qualifications)
	if search == "" && s.cacheRepo != nil {
		if raw, err := s.cacheRepo.Get(ctx, cacheKey); err == nil {
			var cached []dto.ShortQualificationDTO
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached
			}
		}
	}

	s.ensureCache(ctx)

	items := s.collection.Filter(search)
	out := make([]dto.ShortQualificationDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ShortQualificationDTO{ID: it.ID, Nom: it.Label})
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

func (s *QualificationService) CreateQualification(ctx context.Context, payload dto.CreateQualificationDTO) (*dto.QualificationDTO, error) {
	qualification := entities.Qualification{
		Nom:      utils.NormalizeUpper(payload.Nom),
		Acronyme: utils.NormalizeUpper(payload.Acronyme),
	}

	if err := s.validateQualification(ctx, &qualification, ""); err != nil {
		return nil, err
	}

	newID, err := s.qualificationRepo.CreateQualification(ctx, qualification)
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "created", newID)
	return s.FindQualification(ctx, newID)
}

func (s *QualificationService) UpdateQualification(ctx context.Context, id string, payload dto.UpdateQualificationDTO) (*dto.QualificationDTO, error) {
	existing, err := s.qualificationRepo.FindQualification(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	if payload.Nom != "" {
		merged.Nom = utils.NormalizeUpper(payload.Nom)
	}
	if payload.Acronyme != "" {
		merged.Acronyme = utils.NormalizeUpper(payload.Acronyme)
	}

	if err := s.validateQualification(ctx, &merged, id); err != nil {
		return nil, err
	}

	if err := s.qualificationRepo.UpdateQualification(ctx, id, merged); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "updated", id)
	return s.FindQualification(ctx, id)
}

func (s *QualificationService) DeleteQualification(ctx context.Context, id string) error {
	decision, err := s.guard.CanDelete(ctx, KindQualification, id)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return apperrors.NewReferentialGuardError("%s", decision.Reason)
	}

	if err := s.qualificationRepo.DeleteQualification(ctx, id); err != nil {
		return err
	}

	s.afterMutation(ctx, "deleted", id)
	return nil
}

func (s *QualificationService) validateQualification(ctx context.Context, qualification *entities.Qualification, excludeID string) error {
	if qualification.Nom == "" {
		return apperrors.NewValidationError("nom", "Le nom de la qualification est requis")
	}

	s.ensureCache(ctx)
	if s.collection.HasKey("nom", qualification.Nom, excludeID) {
		return apperrors.NewValidationError("nom", "Cette qualification existe déjà")
	}
	if s.collection.HasKey("acronyme", qualification.Acronyme, excludeID) {
		return apperrors.NewValidationError("acronyme", "Cet acronyme est déjà utilisé")
	}

	return nil
}

func (s *QualificationService) ensureCache(ctx context.Context) {
	if !s.collection.Loaded() {
		s.refreshCache(ctx)
	}
}

func (s *QualificationService) refreshCache(ctx context.Context) {
	qualifications, _, err := s.qualificationRepo.GetQualifications(ctx, types.Filter{})
	if err != nil {
		s.logger.Warn("Rafraîchissement du miroir qualifications impossible", zap.Error(err))
		return
	}

	items := make([]cache.Item, 0, len(qualifications))
	for _, q := range qualifications {
		items = append(items, cache.Item{
			ID:     q.ID,
			Label:  q.Nom,
			Fields: []string{q.Nom, q.Acronyme},
			Keys:   map[string]string{"nom": q.Nom, "acronyme": q.Acronyme},
		})
	}
	s.collection.Replace(items)
}

func (s *QualificationService) afterMutation(ctx context.Context, action, id string) {
	s.refreshCache(ctx)
	s.bus.Publish(ctx, events.EntityChanged{Collection: cache.Qualifications, Action: action, ID: id})
}
