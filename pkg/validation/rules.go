package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// AgencyCodePattern : trois lettres puis un chiffre, après normalisation
// en majuscules (ex: NRD1). Vérifié côté service, pas par un tag : la
// normalisation a lieu après le bind et un tag rejetterait la saisie
// minuscule légitime.
var AgencyCodePattern = regexp.MustCompile(`^[A-Z]{3}[0-9]$`)

var (
	postalCodePattern = regexp.MustCompile(`^[0-9]{5}$`)
	frPhonePattern    = regexp.MustCompile(`^(\+33|0)[1-9]\d{8}$`)
	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// registerRules enregistre toutes les règles métier sur l'instance partagée.
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("postal_code", isPostalCode); err != nil {
		return err
	}
	if err := v.RegisterValidation("phone_FR", isFrenchPhoneNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}

	return nil
}

func isPostalCode(fl validator.FieldLevel) bool {
	return postalCodePattern.MatchString(fl.Field().String())
}

func isFrenchPhoneNumber(fl validator.FieldLevel) bool {
	return frPhonePattern.MatchString(fl.Field().String())
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}
