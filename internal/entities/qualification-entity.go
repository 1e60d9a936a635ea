package entities

import (
	"interim-system/pkg/types"
)

type Qualification struct {
	ID       string
	Nom      string
	Acronyme string

	types.BaseEntity
}

type ShortQualification struct {
	ID  string
	Nom string
}
