package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedReferentiels remplit les référentiels de base : qualifications et
// agences. Idempotent, les enregistrements existants sont ignorés.
func SeedReferentiels(db *pgxpool.Pool) {
	ctx := context.Background()

	if err := seedQualifications(ctx, db); err != nil {
		log.Fatalf("Échec du seeder qualifications: %v", err)
	}
	if err := seedAgences(ctx, db); err != nil {
		log.Fatalf("Échec du seeder agences: %v", err)
	}

	log.Println("✅ Référentiels en place.")
}

// SeedAdmin crée le compte administrateur initial de la console.
func SeedAdmin(db *pgxpool.Pool) {
	if err := seedAdminUser(context.Background(), db); err != nil {
		log.Fatalf("Échec du seeder administrateur: %v", err)
	}
	log.Println("✅ Compte administrateur en place.")
}
