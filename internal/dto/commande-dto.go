package dto

import "github.com/aarondl/null/v8"

type CreateCommandeDTO struct {
	ClientID        string  `json:"client_id" validate:"required,uuid4"`
	QualificationID string  `json:"qualification_id" validate:"required,uuid4"`
	AgenceID        string  `json:"agence_id" validate:"required,uuid4"`
	DateDebut       string  `json:"date_debut" validate:"required,datetime=2006-01-02"`
	DateFin         string  `json:"date_fin" validate:"required,datetime=2006-01-02"`
	HoraireDebut    *string `json:"horaire_debut" validate:"omitempty,datetime=15:04"`
	HoraireFin      *string `json:"horaire_fin" validate:"omitempty,datetime=15:04"`
	Notes           *string `json:"notes" validate:"omitempty,max=500"`
}

type UpdateCommandeDTO struct {
	ClientID        string      `json:"client_id" validate:"omitempty,uuid4"`
	QualificationID string      `json:"qualification_id" validate:"omitempty,uuid4"`
	AgenceID        string      `json:"agence_id" validate:"omitempty,uuid4"`
	DateDebut       string      `json:"date_debut" validate:"omitempty,datetime=2006-01-02"`
	DateFin         string      `json:"date_fin" validate:"omitempty,datetime=2006-01-02"`
	HoraireDebut    null.String `json:"horaire_debut" validate:"omitempty,datetime=15:04"`
	HoraireFin      null.String `json:"horaire_fin" validate:"omitempty,datetime=15:04"`
	Notes           null.String `json:"notes" validate:"omitempty,max=500"`
}

// UpdateCommandeStatusDTO : le motif est exigé exactement quand le nouveau
// statut est une variante annulée. La règle est vérifiée dans le service.
type UpdateCommandeStatusDTO struct {
	Status          string      `json:"status" validate:"required,oneof=EN_ATTENTE SERVIE ANNULEE_CLIENT ANNULEE_INTERIMAIRE"`
	MotifAnnulation null.String `json:"motif_annulation" validate:"omitempty,max=500"`
}

type AssignInterimaireDTO struct {
	InterimaireID string `json:"interimaire_id" validate:"required,uuid4"`
}

type CommandeDTO struct {
	ID              string                 `json:"id"`
	Status          string                 `json:"status"`
	DateDebut       string                 `json:"date_debut"`
	DateFin         string                 `json:"date_fin"`
	HoraireDebut    *string                `json:"horaire_debut"`
	HoraireFin      *string                `json:"horaire_fin"`
	MotifAnnulation *string                `json:"motif_annulation"`
	Notes           *string                `json:"notes"`
	Client          *ShortClientDTO        `json:"client,omitempty"`
	Qualification   *ShortQualificationDTO `json:"qualification,omitempty"`
	Agence          *ShortAgenceDTO        `json:"agence,omitempty"`
	Interimaire     *ShortInterimaireDTO   `json:"interimaire,omitempty"`
	ClientID        string                 `json:"client_id"`
	QualificationID string                 `json:"qualification_id"`
	AgenceID        string                 `json:"agence_id"`
	InterimaireID   *string                `json:"interimaire_id"`
	CreatedAt       string                 `json:"created_at"`
}
