package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedQualifications(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Remplissage de la table 'qualifications'...")

	query := `INSERT INTO qualifications (nom, acronyme) VALUES ($1, $2)
	          ON CONFLICT DO NOTHING`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, q := range qualificationsData {
		if _, err := tx.Exec(ctx, query, q.Nom, q.Acronyme); err != nil {
			log.Printf("Erreur à l'insertion de la qualification '%s': %v", q.Nom, err)
			return err
		}
	}

	return tx.Commit(ctx)
}
