package main

import (
	"flag"
	"log"

	"interim-system/pkg/config"
	"interim-system/pkg/database/postgresql"
	"interim-system/seeders"
)

func main() {
	runReferentiels := flag.Bool("referentiels", false, "Remplir les référentiels (qualifications, agences)")
	runAdmin := flag.Bool("admin", false, "Créer le compte administrateur")
	runAll := flag.Bool("all", false, "Tout exécuter")

	flag.Parse()

	if !*runReferentiels && !*runAdmin && !*runAll {
		log.Println("Aucun seeder sélectionné.")
		flag.PrintDefaults()
		log.Println("Exemple: go run ./seeders/cmd/seed -all")
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if *runAll || *runReferentiels {
		seeders.SeedReferentiels(dbPool)
	}
	if *runAll || *runAdmin {
		seeders.SeedAdmin(dbPool)
	}

	log.Println("🌱 Seeders terminés.")
}
