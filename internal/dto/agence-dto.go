package dto

type CreateAgenceDTO struct {
	Nom       string `json:"nom" validate:"required,max=100"`
	Code      string `json:"code" validate:"required,len=4"`
	Telephone string `json:"telephone" validate:"omitempty,phone_FR"`
	Email     string `json:"email" validate:"omitempty,email"`
}

type UpdateAgenceDTO struct {
	Nom       string `json:"nom" validate:"omitempty,max=100"`
	Code      string `json:"code" validate:"omitempty,len=4"`
	Telephone string `json:"telephone" validate:"omitempty,phone_FR"`
	Email     string `json:"email" validate:"omitempty,email"`
}

type AgenceDTO struct {
	ID        string `json:"id"`
	Nom       string `json:"nom"`
	Code      string `json:"code"`
	Telephone string `json:"telephone"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type ShortAgenceDTO struct {
	ID  string `json:"id"`
	Nom string `json:"nom"`
}
