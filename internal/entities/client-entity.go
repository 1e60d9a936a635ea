package entities

import (
	"interim-system/pkg/types"
)

type Client struct {
	ID               string
	NomEtablissement string
	Service          string
	Adresse          string
	CodePostal       string
	Ville            string
	AgenceID         string

	Agence *ShortAgence

	types.BaseEntity
}

type ShortClient struct {
	ID               string
	NomEtablissement string
}
