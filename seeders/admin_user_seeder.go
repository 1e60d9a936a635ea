package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func seedAdminUser(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Création du compte administrateur...")

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@interim-system.fr"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "ChangezMoi2024!"
		log.Println("    - ADMIN_PASSWORD absent, mot de passe par défaut utilisé. Changez-le.")
	}

	var existingID string
	err := db.QueryRow(ctx, "SELECT id FROM utilisateurs WHERE LOWER(email) = LOWER($1)", email).Scan(&existingID)
	if err == nil {
		log.Println("    - Le compte administrateur existe déjà. Ignoré.")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("vérification du compte administrateur: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hachage du mot de passe: %w", err)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO utilisateurs (nom, prenom, email, password) VALUES ($1, $2, $3, $4)`,
		"ADMIN", "Console", email, string(hash),
	)
	if err != nil {
		return fmt.Errorf("insertion du compte administrateur: %w", err)
	}

	log.Printf("    - Compte administrateur créé (%s).", email)
	return nil
}
