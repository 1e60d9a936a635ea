package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedAgences(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Remplissage de la table 'agences'...")

	query := `INSERT INTO agences (nom, code, telephone, email) VALUES ($1, $2, $3, $4)
	          ON CONFLICT DO NOTHING`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, a := range agencesData {
		if _, err := tx.Exec(ctx, query, a.Nom, a.Code, a.Telephone, a.Email); err != nil {
			log.Printf("Erreur à l'insertion de l'agence '%s': %v", a.Nom, err)
			return err
		}
	}

	return tx.Commit(ctx)
}
