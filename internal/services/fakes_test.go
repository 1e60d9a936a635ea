package services

import (
	"context"
	"fmt"

	apperrors "interim-system/pkg/errors"

	"interim-system/internal/entities"
	"interim-system/pkg/types"
)

// Dépôts en mémoire pour tester les services sans PostgreSQL.

type fakeAgenceRepo struct {
	agences map[string]entities.Agence
	nextID  int
}

func newFakeAgenceRepo() *fakeAgenceRepo {
	return &fakeAgenceRepo{agences: make(map[string]entities.Agence)}
}

func (r *fakeAgenceRepo) GetAgences(_ context.Context, _ types.Filter) ([]entities.Agence, uint64, error) {
	out := make([]entities.Agence, 0, len(r.agences))
	for _, a := range r.agences {
		out = append(out, a)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeAgenceRepo) FindAgence(_ context.Context, id string) (*entities.Agence, error) {
	a, ok := r.agences[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (r *fakeAgenceRepo) CreateAgence(_ context.Context, agence entities.Agence) (string, error) {
	r.nextID++
	id := fmt.Sprintf("agence-%d", r.nextID)
	agence.ID = id
	r.agences[id] = agence
	return id, nil
}

func (r *fakeAgenceRepo) UpdateAgence(_ context.Context, id string, agence entities.Agence) error {
	if _, ok := r.agences[id]; !ok {
		return apperrors.ErrNotFound
	}
	agence.ID = id
	r.agences[id] = agence
	return nil
}

func (r *fakeAgenceRepo) DeleteAgence(_ context.Context, id string) error {
	if _, ok := r.agences[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.agences, id)
	return nil
}

type fakeQualificationRepo struct {
	qualifications map[string]entities.Qualification
	nextID         int
}

func newFakeQualificationRepo() *fakeQualificationRepo {
	return &fakeQualificationRepo{qualifications: make(map[string]entities.Qualification)}
}

func (r *fakeQualificationRepo) GetQualifications(_ context.Context, _ types.Filter) ([]entities.Qualification, uint64, error) {
	out := make([]entities.Qualification, 0, len(r.qualifications))
	for _, q := range r.qualifications {
		out = append(out, q)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeQualificationRepo) FindQualification(_ context.Context, id string) (*entities.Qualification, error) {
	q, ok := r.qualifications[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &q, nil
}

func (r *fakeQualificationRepo) CreateQualification(_ context.Context, q entities.Qualification) (string, error) {
	r.nextID++
	id := fmt.Sprintf("qualification-%d", r.nextID)
	q.ID = id
	r.qualifications[id] = q
	return id, nil
}

func (r *fakeQualificationRepo) UpdateQualification(_ context.Context, id string, q entities.Qualification) error {
	if _, ok := r.qualifications[id]; !ok {
		return apperrors.ErrNotFound
	}
	q.ID = id
	r.qualifications[id] = q
	return nil
}

func (r *fakeQualificationRepo) DeleteQualification(_ context.Context, id string) error {
	if _, ok := r.qualifications[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.qualifications, id)
	return nil
}

type fakeInterimaireRepo struct {
	interimaires map[string]entities.Interimaire
	nextID       int
}

func newFakeInterimaireRepo() *fakeInterimaireRepo {
	return &fakeInterimaireRepo{interimaires: make(map[string]entities.Interimaire)}
}

func (r *fakeInterimaireRepo) GetInterimaires(_ context.Context, _ types.Filter) ([]entities.Interimaire, uint64, error) {
	out := make([]entities.Interimaire, 0, len(r.interimaires))
	for _, i := range r.interimaires {
		out = append(out, i)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeInterimaireRepo) FindInterimaire(_ context.Context, id string) (*entities.Interimaire, error) {
	i, ok := r.interimaires[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &i, nil
}

func (r *fakeInterimaireRepo) CreateInterimaire(_ context.Context, i entities.Interimaire) (string, error) {
	r.nextID++
	id := fmt.Sprintf("interimaire-%d", r.nextID)
	i.ID = id
	r.interimaires[id] = i
	return id, nil
}

func (r *fakeInterimaireRepo) UpdateInterimaire(_ context.Context, id string, i entities.Interimaire) error {
	if _, ok := r.interimaires[id]; !ok {
		return apperrors.ErrNotFound
	}
	i.ID = id
	r.interimaires[id] = i
	return nil
}

func (r *fakeInterimaireRepo) UpdateDisponibilite(_ context.Context, id string, disponibilite string) error {
	i, ok := r.interimaires[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	i.Disponibilite = disponibilite
	r.interimaires[id] = i
	return nil
}

func (r *fakeInterimaireRepo) DeleteInterimaire(_ context.Context, id string) error {
	if _, ok := r.interimaires[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.interimaires, id)
	return nil
}

func (r *fakeInterimaireRepo) CountByAgence(_ context.Context, agenceID string) (uint64, error) {
	var n uint64
	for _, i := range r.interimaires {
		if i.AgenceID == agenceID {
			n++
		}
	}
	return n, nil
}

func (r *fakeInterimaireRepo) CountByQualification(_ context.Context, qualificationID string) (uint64, error) {
	var n uint64
	for _, i := range r.interimaires {
		if i.QualificationID == qualificationID {
			n++
		}
	}
	return n, nil
}

type fakeClientRepo struct {
	clients map[string]entities.Client
	nextID  int
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]entities.Client)}
}

func (r *fakeClientRepo) GetClients(_ context.Context, _ types.Filter) ([]entities.Client, uint64, error) {
	out := make([]entities.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeClientRepo) FindClient(_ context.Context, id string) (*entities.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (r *fakeClientRepo) CreateClient(_ context.Context, c entities.Client) (string, error) {
	r.nextID++
	id := fmt.Sprintf("client-%d", r.nextID)
	c.ID = id
	r.clients[id] = c
	return id, nil
}

func (r *fakeClientRepo) UpdateClient(_ context.Context, id string, c entities.Client) error {
	if _, ok := r.clients[id]; !ok {
		return apperrors.ErrNotFound
	}
	c.ID = id
	r.clients[id] = c
	return nil
}

func (r *fakeClientRepo) DeleteClient(_ context.Context, id string) error {
	if _, ok := r.clients[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

func (r *fakeClientRepo) CountByAgence(_ context.Context, agenceID string) (uint64, error) {
	var n uint64
	for _, c := range r.clients {
		if c.AgenceID == agenceID {
			n++
		}
	}
	return n, nil
}

type fakeCommandeRepo struct {
	commandes map[string]entities.Commande
	nextID    int
}

func newFakeCommandeRepo() *fakeCommandeRepo {
	return &fakeCommandeRepo{commandes: make(map[string]entities.Commande)}
}

func (r *fakeCommandeRepo) GetCommandes(_ context.Context, _ types.Filter) ([]entities.Commande, uint64, error) {
	out := make([]entities.Commande, 0, len(r.commandes))
	for _, cm := range r.commandes {
		out = append(out, cm)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeCommandeRepo) FindCommande(_ context.Context, id string) (*entities.Commande, error) {
	cm, ok := r.commandes[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &cm, nil
}

func (r *fakeCommandeRepo) CreateCommande(_ context.Context, cm entities.Commande) (string, error) {
	r.nextID++
	id := fmt.Sprintf("commande-%d", r.nextID)
	cm.ID = id
	r.commandes[id] = cm
	return id, nil
}

func (r *fakeCommandeRepo) UpdateCommande(_ context.Context, id string, cm entities.Commande) error {
	if _, ok := r.commandes[id]; !ok {
		return apperrors.ErrNotFound
	}
	cm.ID = id
	r.commandes[id] = cm
	return nil
}

func (r *fakeCommandeRepo) UpdateStatus(_ context.Context, id string, status string, motif *string) error {
	cm, ok := r.commandes[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	cm.Status = status
	cm.MotifAnnulation = motif
	r.commandes[id] = cm
	return nil
}

func (r *fakeCommandeRepo) DeleteCommande(_ context.Context, id string) error {
	if _, ok := r.commandes[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.commandes, id)
	return nil
}

func (r *fakeCommandeRepo) CountActiveByInterimaire(_ context.Context, interimaireID string) (uint64, error) {
	var n uint64
	for _, cm := range r.commandes {
		if cm.InterimaireID != nil && *cm.InterimaireID == interimaireID && isBlockingStatus(cm.Status) {
			n++
		}
	}
	return n, nil
}

func (r *fakeCommandeRepo) CountActiveByClient(_ context.Context, clientID string) (uint64, error) {
	var n uint64
	for _, cm := range r.commandes {
		if cm.ClientID == clientID && isBlockingStatus(cm.Status) {
			n++
		}
	}
	return n, nil
}

func (r *fakeCommandeRepo) CountByAgence(_ context.Context, agenceID string) (uint64, error) {
	var n uint64
	for _, cm := range r.commandes {
		if cm.AgenceID == agenceID {
			n++
		}
	}
	return n, nil
}

func (r *fakeCommandeRepo) CountByQualification(_ context.Context, qualificationID string) (uint64, error) {
	var n uint64
	for _, cm := range r.commandes {
		if cm.QualificationID == qualificationID {
			n++
		}
	}
	return n, nil
}

func isBlockingStatus(status string) bool {
	return status == "EN_ATTENTE" || status == "SERVIE"
}

func fakeInterimaire(id, agenceID, qualificationID string) entities.Interimaire {
	return entities.Interimaire{
		ID:              id,
		Nom:             "DUPONT",
		Prenom:          "Jean",
		Disponibilite:   "DISPONIBLE",
		AgenceID:        agenceID,
		QualificationID: qualificationID,
	}
}
