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
	"interim-system/pkg/constants"
	apperrors "interim-system/pkg/errors"
	"interim-system/pkg/eventbus"
	"interim-system/pkg/types"
	"interim-system/pkg/utils"
)

type InterimaireService struct {
	interimaireRepo repositories.InterimaireRepositoryInterface
	guard           GuardServiceInterface
	collection      *cache.Collection
	agences         *cache.Collection
	qualifications  *cache.Collection
	cacheRepo       repositories.CacheRepositoryInterface
	listTTL         time.Duration
	bus             *eventbus.Bus
	logger          *zap.Logger
}

func NewInterimaireService(
	interimaireRepo repositories.InterimaireRepositoryInterface,
	guard GuardServiceInterface,
	store *cache.Store,
	cacheRepo repositories.CacheRepositoryInterface,
	listTTL time.Duration,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *InterimaireService {
	return &InterimaireService{
		interimaireRepo: interimaireRepo,
		guard:           guard,
		collection:      store.Collection(cache.Interimaires),
		agences:         store.Collection(cache.Agences),
		qualifications:  store.Collection(cache.Qualifications),
		cacheRepo:       cacheRepo,
		listTTL:         listTTL,
		bus:             bus,
		logger:          logger,
	}
}

func (s *InterimaireService) GetInterimaires(ctx context.Context, filter types.Filter) ([]dto.InterimaireDTO, uint64, error) {
	interimaires, total, err := s.interimaireRepo.GetInterimaires(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.InterimaireDTO, 0, len(interimaires))
	for idx := range interimaires {
		out = append(out, *interimaireToDTO(&interimaires[idx]))
	}
	return out, total, nil
}

func (s *InterimaireService) FindInterimaire(ctx context.Context, id string) (*dto.InterimaireDTO, error) {
	interimaire, err := s.interimaireRepo.FindInterimaire(ctx, id)
	if err != nil {
		return nil, err
	}
	return interimaireToDTO(interimaire), nil
}

func (s *InterimaireService) Lookup(ctx context.Context, search string) []dto.ShortInterimaireDTO {
	cacheKey := repositories.ListCacheKey(cache.Interimaires)
	if search == "" && s.cacheRepo != nil {
		if raw, err := s.cacheRepo.Get(ctx, cacheKey); err == nil {
			var cached []dto.ShortInterimaireDTO
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached
			}
		}
	}

	s.ensureCache(ctx)

	items := s.collection.Filter(search)
	out := make([]dto.ShortInterimaireDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ShortInterimaireDTO{
			ID:     it.ID,
			Nom:    it.Keys["nom"],
			Prenom: it.Keys["prenom"],
		})
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

func (s *InterimaireService) CreateInterimaire(ctx context.Context, payload dto.CreateInterimaireDTO) (*dto.InterimaireDTO, error) {
	interimaire := entities.Interimaire{
		Nom:             utils.NormalizeUpper(payload.Nom),
		Prenom:          strings.TrimSpace(payload.Prenom),
		Adresse:         trimPtr(payload.Adresse),
		Vehicule:        payload.Vehicule,
		Disponibilite:   constants.DisponibiliteDisponible,
		QualificationID: payload.QualificationID,
		AgenceID:        payload.AgenceID,
	}

	if err := s.checkReferences(ctx, interimaire.AgenceID, interimaire.QualificationID); err != nil {
		return nil, err
	}

	newID, err := s.interimaireRepo.CreateInterimaire(ctx, interimaire)
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "created", newID)
	return s.FindInterimaire(ctx, newID)
}

func (s *InterimaireService) UpdateInterimaire(ctx context.Context, id string, payload dto.UpdateInterimaireDTO) (*dto.InterimaireDTO, error) {
	existing, err := s.interimaireRepo.FindInterimaire(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	if payload.Nom != "" {
		merged.Nom = utils.NormalizeUpper(payload.Nom)
	}
	if payload.Prenom != "" {
		merged.Prenom = strings.TrimSpace(payload.Prenom)
	}
	// Une chaîne vide efface l'adresse, un champ absent la conserve.
	if payload.Adresse.Valid {
		merged.Adresse = trimPtr(&payload.Adresse.String)
	}
	if payload.Vehicule.Valid {
		merged.Vehicule = payload.Vehicule.Bool
	}
	if payload.QualificationID != "" {
		merged.QualificationID = payload.QualificationID
	}
	if payload.AgenceID != "" {
		merged.AgenceID = payload.AgenceID
	}

	if err := s.checkReferences(ctx, merged.AgenceID, merged.QualificationID); err != nil {
		return nil, err
	}

	if err := s.interimaireRepo.UpdateInterimaire(ctx, id, merged); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "updated", id)
	return s.FindInterimaire(ctx, id)
}

// UpdateDisponibilite bascule le marqueur sans passer par la mise à
// jour complète, pour les boutons rapides du tableau.
func (s *InterimaireService) UpdateDisponibilite(ctx context.Context, id string, payload dto.UpdateDisponibiliteDTO) (*dto.InterimaireDTO, error) {
	if !constants.IsValidDisponibilite(payload.Disponibilite) {
		return nil, apperrors.NewValidationError("disponibilite", "Disponibilité inconnue: %s", payload.Disponibilite)
	}

	if err := s.interimaireRepo.UpdateDisponibilite(ctx, id, payload.Disponibilite); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "updated", id)
	return s.FindInterimaire(ctx, id)
}

func (s *InterimaireService) DeleteInterimaire(ctx context.Context, id string) error {
	decision, err := s.guard.CanDelete(ctx, KindInterimaire, id)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return apperrors.NewReferentialGuardError("%s", decision.Reason)
	}

	if err := s.interimaireRepo.DeleteInterimaire(ctx, id); err != nil {
		return err
	}

	s.afterMutation(ctx, "deleted", id)
	return nil
}

// checkReferences court-circuite les renvois évidents d'agence ou de
// qualification inexistante quand les miroirs sont chargés. Le backend
// reste l'autorité via ses clés étrangères.
func (s *InterimaireService) checkReferences(ctx context.Context, agenceID, qualificationID string) error {
	if s.agences.Loaded() && !s.agences.Has(agenceID) {
		return apperrors.NewValidationError("agence_id", "L'agence référencée n'existe pas")
	}
	if s.qualifications.Loaded() && !s.qualifications.Has(qualificationID) {
		return apperrors.NewValidationError("qualification_id", "La qualification référencée n'existe pas")
	}
	return nil
}

func (s *InterimaireService) ensureCache(ctx context.Context) {
	if !s.collection.Loaded() {
		s.refreshCache(ctx)
	}
}

func (s *InterimaireService) refreshCache(ctx context.Context) {
	interimaires, _, err := s.interimaireRepo.GetInterimaires(ctx, types.Filter{})
	if err != nil {
		s.logger.Warn("Rafraîchissement du miroir intérimaires impossible", zap.Error(err))
		return
	}

	items := make([]cache.Item, 0, len(interimaires))
	for _, i := range interimaires {
		fields := []string{i.Nom, i.Prenom}
		if i.Qualification != nil {
			fields = append(fields, i.Qualification.Nom)
		}
		if i.Agence != nil {
			fields = append(fields, i.Agence.Nom)
		}
		items = append(items, cache.Item{
			ID:     i.ID,
			Label:  i.Nom + " " + i.Prenom,
			Fields: fields,
			Keys:   map[string]string{"nom": i.Nom, "prenom": i.Prenom},
		})
	}
	s.collection.Replace(items)
}

func (s *InterimaireService) afterMutation(ctx context.Context, action, id string) {
	s.refreshCache(ctx)
	s.bus.Publish(ctx, events.EntityChanged{Collection: cache.Interimaires, Action: action, ID: id})
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
