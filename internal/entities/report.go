package entities

import (
	"database/sql"
	"time"
)

// ReportFilter borne l'extraction du registre des commandes.
type ReportFilter struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	Statuses  []string
	AgenceIDs []string
	Page      int
	PerPage   int
}

// ReportItem est une ligne du rapport, déjà jointe et dénormalisée.
type ReportItem struct {
	CommandeID       string
	ClientNom        string
	ClientVille      sql.NullString
	AgenceNom        sql.NullString
	AgenceCode       sql.NullString
	QualificationNom sql.NullString
	InterimaireNom   sql.NullString
	DateDebut        time.Time
	DateFin          time.Time
	HoraireDebut     sql.NullString
	HoraireFin       sql.NullString
	Status           string
	MotifAnnulation  sql.NullString
	Notes            sql.NullString
	CreatedAt        time.Time
}
