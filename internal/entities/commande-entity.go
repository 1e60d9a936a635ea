package entities

import (
	"time"

	"interim-system/pkg/types"
)

type Commande struct {
	ID              string
	ClientID        string
	QualificationID string
	AgenceID        string
	InterimaireID   *string
	DateDebut       time.Time
	DateFin         time.Time
	HoraireDebut    *string
	HoraireFin      *string
	Status          string
	MotifAnnulation *string
	Notes           *string

	Client        *ShortClient
	Qualification *ShortQualification
	Agence        *ShortAgence
	Interimaire   *ShortInterimaire

	types.BaseEntity
}
