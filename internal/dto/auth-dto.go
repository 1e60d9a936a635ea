package dto

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UtilisateurDTO struct {
	ID        string          `json:"id"`
	Nom       string          `json:"nom"`
	Prenom    string          `json:"prenom"`
	Email     string          `json:"email"`
	Telephone string          `json:"telephone"`
	Agence    *ShortAgenceDTO `json:"agence,omitempty"`
	CreatedAt string          `json:"created_at"`
}
