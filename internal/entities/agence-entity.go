package entities

import (
	"interim-system/pkg/types"
)

type Agence struct {
	ID        string
	Nom       string
	Code      string
	Telephone string
	Email     string

	types.BaseEntity
}

type ShortAgence struct {
	ID  string
	Nom string
}
