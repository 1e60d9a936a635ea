package dto

type CreateQualificationDTO struct {
	Nom      string `json:"nom" validate:"required,max=100"`
	Acronyme string `json:"acronyme" validate:"required,max=10"`
}

type UpdateQualificationDTO struct {
	Nom      string `json:"nom" validate:"omitempty,max=100"`
	Acronyme string `json:"acronyme" validate:"omitempty,max=10"`
}

type QualificationDTO struct {
	ID        string `json:"id"`
	Nom       string `json:"nom"`
	Acronyme  string `json:"acronyme"`
	CreatedAt string `json:"created_at"`
}

type ShortQualificationDTO struct {
	ID  string `json:"id"`
	Nom string `json:"nom"`
}
