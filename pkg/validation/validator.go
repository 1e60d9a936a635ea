package validation

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator - wrapper pour l'interface echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implémente echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New crée et configure le validateur partagé.
func New() *CustomValidator {
	v := validator.New()

	// 1. Support des types null (types_adapter.go)
	registerNullTypes(v)

	// 2. Règles métier (rules.go). Si une règle ne s'enregistre pas,
	// le serveur ne doit pas démarrer.
	if err := registerRules(v); err != nil {
		panic("erreur d'enregistrement des validateurs: " + err.Error())
	}

	return &CustomValidator{validator: v}
}
