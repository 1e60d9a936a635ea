package validation

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
)

type agenceForm struct {
	Code       string `validate:"required,len=4"`
	CodePostal string `validate:"omitempty,postal_code"`
	Telephone  string `validate:"omitempty,phone_FR"`
	Email      string `validate:"omitempty,email"`
}

func TestAgencyCodePattern(t *testing.T) {
	valides := []string{"NRD1", "SUD9", "OUE0"}
	for _, code := range valides {
		assert.True(t, AgencyCodePattern.MatchString(code), code)
	}

	// Le motif attend la forme déjà normalisée en majuscules.
	invalides := []string{"nrd1", "1ABC", "NRDD", "NR1", "NRD12", ""}
	for _, code := range invalides {
		assert.False(t, AgencyCodePattern.MatchString(code), code)
	}
}

func TestPostalCode(t *testing.T) {
	cv := New()

	assert.NoError(t, cv.Validate(agenceForm{Code: "NRD1", CodePostal: "59000"}))
	assert.Error(t, cv.Validate(agenceForm{Code: "NRD1", CodePostal: "5900"}))
	assert.Error(t, cv.Validate(agenceForm{Code: "NRD1", CodePostal: "59 000"}))
}

func TestTelephoneFrancais(t *testing.T) {
	cv := New()

	assert.NoError(t, cv.Validate(agenceForm{Code: "NRD1", Telephone: "0320123456"}))
	assert.NoError(t, cv.Validate(agenceForm{Code: "NRD1", Telephone: "+33612345678"}))
	assert.Error(t, cv.Validate(agenceForm{Code: "NRD1", Telephone: "0020123456"}))
	assert.Error(t, cv.Validate(agenceForm{Code: "NRD1", Telephone: "032012345"}))
}

func TestEmail(t *testing.T) {
	cv := New()

	assert.NoError(t, cv.Validate(agenceForm{Code: "NRD1", Email: "contact@agence.fr"}))
	assert.Error(t, cv.Validate(agenceForm{Code: "NRD1", Email: "contact@agence"}))
}

type majForm struct {
	Adresse null.String `validate:"omitempty,min=3"`
	Actif   null.Bool   `validate:"omitempty"`
}

func TestTypesNullDansLesDTO(t *testing.T) {
	cv := New()

	// Champ absent : la contrainte omitempty laisse passer.
	assert.NoError(t, cv.Validate(majForm{}))

	// Champ présent : la contrainte s'applique à la valeur interne.
	assert.NoError(t, cv.Validate(majForm{Adresse: null.StringFrom("12 rue des Lilas")}))
	assert.Error(t, cv.Validate(majForm{Adresse: null.StringFrom("ab")}))

	assert.NoError(t, cv.Validate(majForm{Actif: null.BoolFrom(false)}))
}
