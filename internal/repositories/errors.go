package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "interim-system/pkg/errors"
)

// Codes SQLSTATE que le backend renvoie sur violation de contrainte.
// Ce sont les mêmes codes que l'ancienne console inspectait côté client.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError classe une erreur pgx dans la taxonomie métier :
// violation de contrainte distinguée d'une panne de transport.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.NewConstraintViolationError(
				pgErr.ConstraintName,
				"Un enregistrement avec ces informations existe déjà.",
				err,
			)
		case pgForeignKeyViolation:
			return apperrors.NewConstraintViolationError(
				pgErr.ConstraintName,
				"La référence sélectionnée n'existe pas ou est encore utilisée.",
				err,
			)
		}
	}

	// Tout le reste (réseau, timeout, pool fermé) est une panne de transport.
	return apperrors.NewTransportError(err)
}
