package entities

import (
	"interim-system/pkg/types"
)

type Interimaire struct {
	ID              string
	Nom             string
	Prenom          string
	Adresse         *string
	Vehicule        bool
	Disponibilite   string
	QualificationID string
	AgenceID        string

	// Remplis uniquement par List/Find (jointures), jamais par l'écho
	// de création ou de mise à jour.
	Qualification *ShortQualification
	Agence        *ShortAgence

	types.BaseEntity
}

type ShortInterimaire struct {
	ID     string
	Nom    string
	Prenom string
}
