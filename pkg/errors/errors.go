package errors

import (
	"fmt"
	"net/http"
)

var (
	// JWT et jetons
	ErrInvalidSigningMethod = fmt.Errorf("méthode de signature du jeton invalide")
	ErrInvalidToken         = fmt.Errorf("jeton invalide")
	ErrTokenExpired         = fmt.Errorf("le jeton a expiré")
	ErrTokenIsNotRefresh    = fmt.Errorf("le jeton n'est pas un jeton de rafraîchissement")
	ErrTokenIsNotAccess     = fmt.Errorf("le jeton n'est pas un jeton d'accès")

	// Authentification
	ErrEmptyAuthHeader    = fmt.Errorf("l'en-tête d'autorisation est absent")
	ErrInvalidAuthHeader  = fmt.Errorf("format de l'en-tête d'autorisation invalide")
	ErrInvalidCredentials = fmt.Errorf("identifiants invalides")
	ErrUnauthorized       = fmt.Errorf("non autorisé")

	// Contexte
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID absent du contexte de la requête")

	// Générales
	ErrNotFound   = fmt.Errorf("enregistrement introuvable")
	ErrBadRequest = fmt.Errorf("requête invalide")
)

// HttpError porte le code HTTP et le message destiné à l'utilisateur.
// Err garde la cause technique pour les logs, jamais pour la réponse.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

func NewBadRequestError(message string) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *HttpError {
	return &HttpError{Code: http.StatusNotFound, Message: message}
}

// --- Taxonomie métier ---

// ValidationError : champ invalide, détecté avant tout appel distant.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ConstraintViolationError : le backend a rejeté la mutation
// (unicité ou clé étrangère manquante).
type ConstraintViolationError struct {
	Constraint string
	Message    string
	Err        error
}

func (e *ConstraintViolationError) Error() string { return e.Message }
func (e *ConstraintViolationError) Unwrap() error { return e.Err }

func NewConstraintViolationError(constraint, message string, err error) error {
	return &ConstraintViolationError{Constraint: constraint, Message: message, Err: err}
}

// ReferentialGuardError : suppression bloquée par des dépendants actifs.
type ReferentialGuardError struct {
	Reason string
}

func (e *ReferentialGuardError) Error() string { return e.Reason }

func NewReferentialGuardError(format string, args ...interface{}) error {
	return &ReferentialGuardError{Reason: fmt.Sprintf(format, args...)}
}

// TransportError : le backend est injoignable ou a échoué de façon générique.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("le service de persistance est indisponible: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func NewTransportError(err error) error {
	return &TransportError{Err: err}
}
