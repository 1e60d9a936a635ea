package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"interim-system/internal/repositories"
	apperrors "interim-system/pkg/errors"
)

// EntityKind désigne une entité protégée par la garde référentielle.
type EntityKind string

const (
	KindAgence        EntityKind = "agence"
	KindQualification EntityKind = "qualification"
	KindInterimaire   EntityKind = "interimaire"
	KindClient        EntityKind = "client"
)

// Decision est le verdict de la garde : autorisé, ou refusé avec un
// motif destiné à l'utilisateur.
type Decision struct {
	Allowed bool
	Reason  string
}

type GuardServiceInterface interface {
	CanDelete(ctx context.Context, kind EntityKind, id string) (Decision, error)
}

// GuardService applique la même protection aux quatre entités
// référencées : un enregistrement encore pointé par des dépendants
// actifs ne se supprime pas. L'ancienne console ne protégeait que les
// intérimaires et les clients ; ici la règle est uniforme.
type GuardService struct {
	commandeRepo    repositories.CommandeRepositoryInterface
	interimaireRepo repositories.InterimaireRepositoryInterface
	clientRepo      repositories.ClientRepositoryInterface
	logger          *zap.Logger
}

func NewGuardService(
	commandeRepo repositories.CommandeRepositoryInterface,
	interimaireRepo repositories.InterimaireRepositoryInterface,
	clientRepo repositories.ClientRepositoryInterface,
	logger *zap.Logger,
) GuardServiceInterface {
	return &GuardService{
		commandeRepo:    commandeRepo,
		interimaireRepo: interimaireRepo,
		clientRepo:      clientRepo,
		logger:          logger,
	}
}

func (s *GuardService) CanDelete(ctx context.Context, kind EntityKind, id string) (Decision, error) {
	switch kind {
	case KindInterimaire:
		return s.canDeleteInterimaire(ctx, id)
	case KindClient:
		return s.canDeleteClient(ctx, id)
	case KindAgence:
		return s.canDeleteAgence(ctx, id)
	case KindQualification:
		return s.canDeleteQualification(ctx, id)
	default:
		return Decision{}, apperrors.NewBadRequestError(fmt.Sprintf("type d'entité inconnu: %s", kind))
	}
}

func (s *GuardService) canDeleteInterimaire(ctx context.Context, id string) (Decision, error) {
	count, err := s.commandeRepo.CountActiveByInterimaire(ctx, id)
	if err != nil {
		return Decision{}, err
	}
	if count > 0 {
		return Decision{
			Allowed: false,
			Reason: fmt.Sprintf(
				"Suppression impossible : l'intérimaire est rattaché à %d commande(s) en attente ou servie(s). Annulez ou détachez ces commandes d'abord.",
				count,
			),
		}, nil
	}
	return Decision{Allowed: true}, nil
}

func (s *GuardService) canDeleteClient(ctx context.Context, id string) (Decision, error) {
	count, err := s.commandeRepo.CountActiveByClient(ctx, id)
	if err != nil {
		return Decision{}, err
	}
	if count > 0 {
		return Decision{
			Allowed: false,
			Reason: fmt.Sprintf(
				"Suppression impossible : le client possède %d commande(s) en attente ou servie(s).",
				count,
			),
		}, nil
	}
	return Decision{Allowed: true}, nil
}

func (s *GuardService) canDeleteAgence(ctx context.Context, id string) (Decision, error) {
	interimaires, err := s.interimaireRepo.CountByAgence(ctx, id)
	if err != nil {
		return Decision{}, err
	}
	clients, err := s.clientRepo.CountByAgence(ctx, id)
	if err != nil {
		return Decision{}, err
	}
	commandes, err := s.commandeRepo.CountByAgence(ctx, id)
	if err != nil {
		return Decision{}, err
	}

	if total := interimaires + clients + commandes; total > 0 {
		return Decision{
			Allowed: false,
			Reason: fmt.Sprintf(
				"Suppression impossible : l'agence est encore référencée par %d intérimaire(s), %d client(s) et %d commande(s).",
				interimaires, clients, commandes,
			),
		}, nil
	}
	return Decision{Allowed: true}, nil
}

func (s *GuardService) canDeleteQualification(ctx context.Context, id string) (Decision, error) {
	interimaires, err := s.interimaireRepo.CountByQualification(ctx, id)
	if err != nil {
		return Decision{}, err
	}
	commandes, err := s.commandeRepo.CountByQualification(ctx, id)
	if err != nil {
		return Decision{}, err
	}

	if total := interimaires + commandes; total > 0 {
		return Decision{
			Allowed: false,
			Reason: fmt.Sprintf(
				"Suppression impossible : la qualification est encore référencée par %d intérimaire(s) et %d commande(s).",
				interimaires, commandes,
			),
		}, nil
	}
	return Decision{Allowed: true}, nil
}
