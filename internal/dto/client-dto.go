package dto

type CreateClientDTO struct {
	NomEtablissement string `json:"nom_etablissement" validate:"required,max=150"`
	Service          string `json:"service" validate:"omitempty,max=100"`
	Adresse          string `json:"adresse" validate:"omitempty,max=200"`
	CodePostal       string `json:"code_postal" validate:"required,postal_code"`
	Ville            string `json:"ville" validate:"required,max=100"`
	AgenceID         string `json:"agence_id" validate:"required,uuid4"`
}

type UpdateClientDTO struct {
	NomEtablissement string `json:"nom_etablissement" validate:"omitempty,max=150"`
	Service          string `json:"service" validate:"omitempty,max=100"`
	Adresse          string `json:"adresse" validate:"omitempty,max=200"`
	CodePostal       string `json:"code_postal" validate:"omitempty,postal_code"`
	Ville            string `json:"ville" validate:"omitempty,max=100"`
	AgenceID         string `json:"agence_id" validate:"omitempty,uuid4"`
}

type ClientDTO struct {
	ID               string          `json:"id"`
	NomEtablissement string          `json:"nom_etablissement"`
	Service          string          `json:"service"`
	Adresse          string          `json:"adresse"`
	CodePostal       string          `json:"code_postal"`
	Ville            string          `json:"ville"`
	Agence           *ShortAgenceDTO `json:"agence,omitempty"`
	CreatedAt        string          `json:"created_at"`
}

type ShortClientDTO struct {
	ID               string `json:"id"`
	NomEtablissement string `json:"nom_etablissement"`
}
