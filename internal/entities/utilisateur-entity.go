package entities

import (
	"interim-system/pkg/types"
)

type Utilisateur struct {
	ID        string
	Nom       string
	Prenom    string
	Email     string
	Telephone string
	Password  string
	AgenceID  *string

	Agence *ShortAgence

	types.BaseEntity
}
