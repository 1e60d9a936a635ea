package services

import (
	"context"
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
)

type CommandeService struct {
	commandeRepo    repositories.CommandeRepositoryInterface
	interimaireRepo repositories.InterimaireRepositoryInterface
	collection      *cache.Collection
	clients         *cache.Collection
	qualifications  *cache.Collection
	agences         *cache.Collection
	interimaires    *cache.Collection
	bus             *eventbus.Bus
	logger          *zap.Logger
}

func NewCommandeService(
	commandeRepo repositories.CommandeRepositoryInterface,
	interimaireRepo repositories.InterimaireRepositoryInterface,
	store *cache.Store,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *CommandeService {
	return &CommandeService{
		commandeRepo:    commandeRepo,
		interimaireRepo: interimaireRepo,
		collection:      store.Collection(cache.Commandes),
		clients:         store.Collection(cache.Clients),
		qualifications:  store.Collection(cache.Qualifications),
		agences:         store.Collection(cache.Agences),
		interimaires:    store.Collection(cache.Interimaires),
		bus:             bus,
		logger:          logger,
	}
}

func (s *CommandeService) GetCommandes(ctx context.Context, filter types.Filter) ([]dto.CommandeDTO, uint64, error) {
	commandes, total, err := s.commandeRepo.GetCommandes(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.CommandeDTO, 0, len(commandes))
	for idx := range commandes {
		out = append(out, *commandeToDTO(&commandes[idx]))
	}
	return out, total, nil
}

func (s *CommandeService) FindCommande(ctx context.Context, id string) (*dto.CommandeDTO, error) {
	commande, err := s.commandeRepo.FindCommande(ctx, id)
	if err != nil {
		return nil, err
	}
	return commandeToDTO(commande), nil
}

func (s *CommandeService) CreateCommande(ctx context.Context, payload dto.CreateCommandeDTO) (*dto.CommandeDTO, error) {
	dateDebut, dateFin, err := parsePeriode(payload.DateDebut, payload.DateFin)
	if err != nil {
		return nil, err
	}

	commande := entities.Commande{
		ClientID:        payload.ClientID,
		QualificationID: payload.QualificationID,
		AgenceID:        payload.AgenceID,
		DateDebut:       dateDebut,
		DateFin:         dateFin,
		HoraireDebut:    payload.HoraireDebut,
		HoraireFin:      payload.HoraireFin,
		Status:          constants.CommandeEnAttente,
		Notes:           trimPtr(payload.Notes),
	}

	if err := s.checkReferences(ctx, &commande); err != nil {
		return nil, err
	}

	newID, err := s.commandeRepo.CreateCommande(ctx, commande)
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "created", newID)
	return s.FindCommande(ctx, newID)
}

func (s *CommandeService) UpdateCommande(ctx context.Context, id string, payload dto.UpdateCommandeDTO) (*dto.CommandeDTO, error) {
	existing, err := s.commandeRepo.FindCommande(ctx, id)
	if err != nil {
		return nil, err
	}
	if constants.IsFinalCommandeStatus(existing.Status) {
		return nil, apperrors.NewValidationError("status", "Une commande %s ne peut plus être modifiée", strings.ToLower(existing.Status))
	}

	merged := *existing
	if payload.ClientID != "" {
		merged.ClientID = payload.ClientID
	}
	if payload.QualificationID != "" {
		merged.QualificationID = payload.QualificationID
	}
	if payload.AgenceID != "" {
		merged.AgenceID = payload.AgenceID
	}
	if payload.DateDebut != "" {
		t, err := time.Parse(dateLayout, payload.DateDebut)
		if err != nil {
			return nil, apperrors.NewValidationError("date_debut", "Date de début invalide")
		}
		merged.DateDebut = t
	}
	if payload.DateFin != "" {
		t, err := time.Parse(dateLayout, payload.DateFin)
		if err != nil {
			return nil, apperrors.NewValidationError("date_fin", "Date de fin invalide")
		}
		merged.DateFin = t
	}
	if merged.DateFin.Before(merged.DateDebut) {
		return nil, apperrors.NewValidationError("date_fin", "La date de fin précède la date de début")
	}
	if payload.HoraireDebut.Valid {
		merged.HoraireDebut = trimPtr(&payload.HoraireDebut.String)
	}
	if payload.HoraireFin.Valid {
		merged.HoraireFin = trimPtr(&payload.HoraireFin.String)
	}
	if payload.Notes.Valid {
		merged.Notes = trimPtr(&payload.Notes.String)
	}

	if err := s.checkReferences(ctx, &merged); err != nil {
		return nil, err
	}

	if err := s.commandeRepo.UpdateCommande(ctx, id, merged); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "updated", id)
	return s.FindCommande(ctx, id)
}

// UpdateStatus fait avancer la machine à états. EN_ATTENTE est le seul
// état de départ ; SERVIE, ANNULEE_CLIENT et ANNULEE_INTERIMAIRE sont
// terminaux. Le motif est exigé exactement pour les annulations.
func (s *CommandeService) UpdateStatus(ctx context.Context, id string, payload dto.UpdateCommandeStatusDTO) (*dto.CommandeDTO, error) {
	existing, err := s.commandeRepo.FindCommande(ctx, id)
	if err != nil {
		return nil, err
	}

	target := payload.Status
	if target == existing.Status {
		return commandeToDTO(existing), nil
	}
	if constants.IsFinalCommandeStatus(existing.Status) {
		return nil, apperrors.NewValidationError("status", "Transition interdite : la commande est déjà %s", strings.ToLower(existing.Status))
	}
	if target == constants.CommandeEnAttente {
		return nil, apperrors.NewValidationError("status", "Retour à EN_ATTENTE interdit")
	}

	var motif *string
	if constants.IsCancelledCommandeStatus(target) {
		m := strings.TrimSpace(payload.MotifAnnulation.String)
		if !payload.MotifAnnulation.Valid || m == "" {
			return nil, apperrors.NewValidationError("motif_annulation", "Un motif d'annulation est requis")
		}
		motif = &m
	} else {
		if payload.MotifAnnulation.Valid && strings.TrimSpace(payload.MotifAnnulation.String) != "" {
			return nil, apperrors.NewValidationError("motif_annulation", "Le motif n'est admis que pour une annulation")
		}
		if target == constants.CommandeServie && existing.InterimaireID == nil {
			return nil, apperrors.NewValidationError("status", "Une commande sans intérimaire affecté ne peut pas être servie")
		}
	}

	if err := s.commandeRepo.UpdateStatus(ctx, id, target, motif); err != nil {
		return nil, err
	}

	// L'état terminal libère l'intérimaire : la mission est finie ou
	// n'aura jamais lieu.
	if existing.InterimaireID != nil {
		s.flipDisponibilite(ctx, *existing.InterimaireID, constants.DisponibiliteDisponible)
	}

	s.afterMutation(ctx, "updated", id)
	return s.FindCommande(ctx, id)
}

// AssignInterimaire rattache un intérimaire à une commande EN_ATTENTE
// et le passe EN_POSTE.
func (s *CommandeService) AssignInterimaire(ctx context.Context, id string, payload dto.AssignInterimaireDTO) (*dto.CommandeDTO, error) {
	existing, err := s.commandeRepo.FindCommande(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != constants.CommandeEnAttente {
		return nil, apperrors.NewValidationError("status", "L'affectation n'est possible que sur une commande en attente")
	}

	if s.interimaires.Loaded() && !s.interimaires.Has(payload.InterimaireID) {
		return nil, apperrors.NewValidationError("interimaire_id", "L'intérimaire référencé n'existe pas")
	}

	merged := *existing
	merged.InterimaireID = &payload.InterimaireID
	if err := s.commandeRepo.UpdateCommande(ctx, id, merged); err != nil {
		return nil, err
	}

	if existing.InterimaireID != nil && *existing.InterimaireID != payload.InterimaireID {
		s.flipDisponibilite(ctx, *existing.InterimaireID, constants.DisponibiliteDisponible)
	}
	s.flipDisponibilite(ctx, payload.InterimaireID, constants.DisponibiliteEnPoste)

	s.afterMutation(ctx, "updated", id)
	return s.FindCommande(ctx, id)
}

// UnassignInterimaire détache l'intérimaire d'une commande EN_ATTENTE
// et le repasse DISPONIBLE.
func (s *CommandeService) UnassignInterimaire(ctx context.Context, id string) (*dto.CommandeDTO, error) {
	existing, err := s.commandeRepo.FindCommande(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != constants.CommandeEnAttente {
		return nil, apperrors.NewValidationError("status", "Le détachement n'est possible que sur une commande en attente")
	}
	if existing.InterimaireID == nil {
		return commandeToDTO(existing), nil
	}

	previous := *existing.InterimaireID
	merged := *existing
	merged.InterimaireID = nil
	if err := s.commandeRepo.UpdateCommande(ctx, id, merged); err != nil {
		return nil, err
	}

	s.flipDisponibilite(ctx, previous, constants.DisponibiliteDisponible)

	s.afterMutation(ctx, "updated", id)
	return s.FindCommande(ctx, id)
}

// DeleteCommande supprime sans garde : rien ne référence une commande.
func (s *CommandeService) DeleteCommande(ctx context.Context, id string) error {
	existing, err := s.commandeRepo.FindCommande(ctx, id)
	if err != nil {
		return err
	}

	if err := s.commandeRepo.DeleteCommande(ctx, id); err != nil {
		return err
	}

	if existing.Status == constants.CommandeEnAttente && existing.InterimaireID != nil {
		s.flipDisponibilite(ctx, *existing.InterimaireID, constants.DisponibiliteDisponible)
	}

	s.afterMutation(ctx, "deleted", id)
	return nil
}

func (s *CommandeService) checkReferences(ctx context.Context, commande *entities.Commande) error {
	if s.clients.Loaded() && !s.clients.Has(commande.ClientID) {
		return apperrors.NewValidationError("client_id", "Le client référencé n'existe pas")
	}
	if s.qualifications.Loaded() && !s.qualifications.Has(commande.QualificationID) {
		return apperrors.NewValidationError("qualification_id", "La qualification référencée n'existe pas")
	}
	if s.agences.Loaded() && !s.agences.Has(commande.AgenceID) {
		return apperrors.NewValidationError("agence_id", "L'agence référencée n'existe pas")
	}
	return nil
}

func (s *CommandeService) flipDisponibilite(ctx context.Context, interimaireID, disponibilite string) {
	if err := s.interimaireRepo.UpdateDisponibilite(ctx, interimaireID, disponibilite); err != nil {
		s.logger.Warn("Bascule de disponibilité échouée",
			zap.String("interimaire_id", interimaireID),
			zap.String("disponibilite", disponibilite),
			zap.Error(err),
		)
	}
}

func (s *CommandeService) ensureCache(ctx context.Context) {
	if !s.collection.Loaded() {
		s.refreshCache(ctx)
	}
}

func (s *CommandeService) refreshCache(ctx context.Context) {
	commandes, _, err := s.commandeRepo.GetCommandes(ctx, types.Filter{})
	if err != nil {
		s.logger.Warn("Rafraîchissement du miroir commandes impossible", zap.Error(err))
		return
	}

	items := make([]cache.Item, 0, len(commandes))
	for _, cm := range commandes {
		label := cm.ID
		if cm.Client != nil {
			label = cm.Client.NomEtablissement
		}
		items = append(items, cache.Item{
			ID:     cm.ID,
			Label:  label,
			Fields: []string{label, cm.Status},
			Keys:   map[string]string{"status": cm.Status},
		})
	}
	s.collection.Replace(items)
}

func (s *CommandeService) afterMutation(ctx context.Context, action, id string) {
	s.refreshCache(ctx)
	s.bus.Publish(ctx, events.EntityChanged{Collection: cache.Commandes, Action: action, ID: id})
}

func parsePeriode(debut, fin string) (time.Time, time.Time, error) {
	dateDebut, err := time.Parse(dateLayout, debut)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("date_debut", "Date de début invalide")
	}
	dateFin, err := time.Parse(dateLayout, fin)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("date_fin", "Date de fin invalide")
	}
	if dateFin.Before(dateDebut) {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("date_fin", "La date de fin précède la date de début")
	}
	return dateDebut, dateFin, nil
}
