package dto

import "github.com/aarondl/null/v8"

type CreateInterimaireDTO struct {
	Nom             string  `json:"nom" validate:"required,max=100"`
	Prenom          string  `json:"prenom" validate:"required,max=100"`
	Adresse         *string `json:"adresse" validate:"omitempty,max=200"`
	Vehicule        bool    `json:"vehicule"`
	QualificationID string  `json:"qualification_id" validate:"required,uuid4"`
	AgenceID        string  `json:"agence_id" validate:"required,uuid4"`
}

type UpdateInterimaireDTO struct {
	Nom             string      `json:"nom" validate:"omitempty,max=100"`
	Prenom          string      `json:"prenom" validate:"omitempty,max=100"`
	Adresse         null.String `json:"adresse" validate:"omitempty,max=200"`
	Vehicule        null.Bool   `json:"vehicule"`
	QualificationID string      `json:"qualification_id" validate:"omitempty,uuid4"`
	AgenceID        string      `json:"agence_id" validate:"omitempty,uuid4"`
}

type UpdateDisponibiliteDTO struct {
	Disponibilite string `json:"disponibilite" validate:"required,oneof=DISPONIBLE OCCUPE EN_POSTE"`
}

type InterimaireDTO struct {
	ID            string                 `json:"id"`
	Nom           string                 `json:"nom"`
	Prenom        string                 `json:"prenom"`
	Adresse       *string                `json:"adresse"`
	Vehicule      bool                   `json:"vehicule"`
	Disponibilite string                 `json:"disponibilite"`
	Qualification *ShortQualificationDTO `json:"qualification,omitempty"`
	Agence        *ShortAgenceDTO        `json:"agence,omitempty"`
	CreatedAt     string                 `json:"created_at"`
}

type ShortInterimaireDTO struct {
	ID     string `json:"id"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
}
